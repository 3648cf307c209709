package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rustBoilerplate = "\n\n#[allow(dead_code)]\npub(crate) struct Solution;\n"

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestManifestOrdering(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "mod.rs")
	other := filepath.Join(dir, "other")
	require.NoError(t, os.MkdirAll(other, 0755))
	second := filepath.Join(other, "mod.rs")

	m := NewManifestAggregator(LookupLanguage("rust"), ManifestDeclare)
	require.NoError(t, m.Register(first, "a", "a.rs"))
	require.NoError(t, m.Register(second, "b", "b.rs"))
	require.NoError(t, m.Register(first, "c", "c.rs"))
	assert.Equal(t, 2, m.Len())

	// nothing trails the references before finalize
	assert.Equal(t, "mod a;\nmod c;\n", readFile(t, first))

	require.NoError(t, m.Finalize())

	assert.Equal(t, "mod a;\nmod c;\n"+rustBoilerplate, readFile(t, first))
	assert.Equal(t, "mod b;\n"+rustBoilerplate, readFile(t, second))
}

func TestManifestFinalizeOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.rs")
	m := NewManifestAggregator(LookupLanguage("rust"), ManifestDeclare)
	require.NoError(t, m.Register(path, "a", "a.rs"))

	require.NoError(t, m.Finalize())
	require.NoError(t, m.Finalize())

	assert.Equal(t, 1, strings.Count(readFile(t, path), "pub(crate) struct Solution;"))

	err := m.Register(path, "b", "b.rs")
	assert.True(t, errors.Is(err, ErrManifestFinalized))
}

func TestManifestReopenKeepsSingleBoilerplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.rs")

	run := NewManifestAggregator(LookupLanguage("rust"), ManifestDeclare)
	require.NoError(t, run.Register(path, "a", "a.rs"))
	require.NoError(t, run.Finalize())

	next := NewManifestAggregator(LookupLanguage("rust"), ManifestDeclare)
	require.NoError(t, next.Register(path, "b", "b.rs"))
	require.NoError(t, next.Finalize())

	assert.Equal(t, "mod a;\nmod b;\n"+rustBoilerplate, readFile(t, path))
}

func TestManifestCommentStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.rs")
	m := NewManifestAggregator(LookupLanguage("rust"), ManifestComment)

	require.NoError(t, m.Register(path, "two_sum", "two_sum.rs"))
	require.NoError(t, m.Register(path, "two-sum", "two-sum.rs"))
	require.NoError(t, m.Finalize())

	want := "// mod two_sum;\n" +
		"// #[path = \"two-sum.rs\"]\n// mod two_sum;\n" +
		rustBoilerplate
	assert.Equal(t, want, readFile(t, path))
}

func TestManifestGoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.go")
	m := NewManifestAggregator(LookupLanguage("golang"), ManifestDeclare)

	require.NoError(t, m.Register(path, "two-sum", "two-sum.go"))
	require.NoError(t, m.Finalize())

	content := readFile(t, path)
	assert.True(t, strings.HasPrefix(content, "// Package solutions collects generated solution stubs.\npackage solutions\n\n// two-sum.go\n"))
	assert.True(t, strings.HasSuffix(content, "type Solution struct{}\n"))
}

func TestManifestOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "mod.rs")
	m := NewManifestAggregator(LookupLanguage("rust"), ManifestDeclare)

	err := m.Register(path, "a", "a.rs")

	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.NoError(t, m.Finalize())
}
