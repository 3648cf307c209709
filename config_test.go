package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettingsMergesDefaults(t *testing.T) {
	path := writeSettings(t, `
code:
  lang: python3
  layout: category
catalog:
  jobs: 0
  timeout: 5s
`)

	settings, err := loadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, "python3", settings.Code.Lang)
	assert.Equal(t, LayoutCategory, settings.Code.Layout)
	assert.Equal(t, "${slug}", settings.Code.Pick)
	assert.Equal(t, ManifestDeclare, settings.Code.ManifestStyle)
	assert.Equal(t, "code", settings.Storage.Code)
	assert.Equal(t, 1, settings.Catalog.Jobs, "jobs are clamped to one")
	assert.Equal(t, 3, settings.Catalog.Retries)
	assert.Equal(t, 5*time.Second, settings.Catalog.Timeout)
	assert.Contains(t, settings.Catalog.Categories, "algorithms")
}

func TestLoadSettingsRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"layout", "code:\n  layout: nested\n", "code.layout"},
		{"manifest style", "code:\n  manifest_style: inline\n", "code.manifest_style"},
		{"empty lang", "code:\n  lang: \"\"\n", "code.lang is required"},
		{"yaml", "code: [", "failed to parse settings YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadSettings(writeSettings(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadConfigLangOverrideIsSaved(t *testing.T) {
	path := writeSettings(t, "code:\n  lang: rust\n")
	lang := "golang"

	settings, err := LoadConfig(&ConfigOverrides{SettingsPath: &path, Lang: &lang})
	require.NoError(t, err)
	assert.Equal(t, "golang", settings.Code.Lang)

	reloaded, err := loadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "golang", reloaded.Code.Lang)
}

func TestLoadConfigCreatesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	settings, err := LoadConfig(nil)

	require.NoError(t, err)
	assert.Equal(t, "rust", settings.Code.Lang)
	assert.FileExists(t, filepath.Join(defaultConfigDir, "settings.yaml"))
}

func TestLoadCredentials(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEETCODE_SESSION", "abc")
	t.Setenv("LEETCODE_CSRF", "")

	creds := LoadCredentials()

	assert.Equal(t, Credentials{Session: "abc"}, creds)
}

func TestProblemURL(t *testing.T) {
	settings := newTestSettings(t)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", settings.ProblemURL("two-sum"))

	settings.URLs.Base = "https://leetcode.cn/"
	assert.Equal(t, "https://leetcode.cn/problems/two-sum/", settings.ProblemURL("two-sum"))
}

func TestSaveRequiresLoadedFile(t *testing.T) {
	assert.Error(t, newTestSettings(t).Save())
}
