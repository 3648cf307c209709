package main

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// newTestSettings returns the embedded defaults rooted in a temp directory
func newTestSettings(t *testing.T) *Settings {
	t.Helper()
	var settings Settings
	require.NoError(t, yaml.Unmarshal([]byte(defaultSettings), &settings))
	require.NoError(t, settings.validate())
	settings.Storage.Root = t.TempDir()
	settings.Storage.Cache = filepath.Join(settings.Storage.Root, ".leetcode", "problems.db")
	return &settings
}

func twoSum() Problem {
	return Problem{
		ID:       1,
		Slug:     "two-sum",
		Name:     "Two Sum",
		Category: "array",
		Level:    Easy,
		Percent:  47.5,
	}
}

func twoSumQuestion(lang string) *Question {
	return &Question{
		Statement: "Given an array of integers, return indices of the two numbers.\n\nExample: [2,7,11,15]",
		TestCases: "[2,7,11,15]\n9",
		Defs: []LanguageDef{
			{Lang: "cpp", Code: "class Solution {};"},
			{Lang: lang, Code: "impl Solution {\n    pub fn two_sum(nums: Vec<i32>, target: i32) -> Vec<i32> {\n        vec![]\n    }\n}"},
		},
	}
}

func withDescriptor(t *testing.T, p Problem, q *Question) Problem {
	t.Helper()
	desc, err := json.Marshal(q)
	require.NoError(t, err)
	p.Desc = string(desc)
	return p
}

// fakeCatalog serves questions from memory and counts fetches
type fakeCatalog struct {
	mu        sync.Mutex
	problems  []Problem
	questions map[int]*Question
	errs      map[int]error
	fetches   map[int]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		questions: make(map[int]*Question),
		errs:      make(map[int]error),
		fetches:   make(map[int]int),
	}
}

func (c *fakeCatalog) Problems(ctx context.Context) ([]Problem, error) {
	return c.problems, nil
}

func (c *fakeCatalog) DownloadProblems(ctx context.Context) error {
	return nil
}

func (c *fakeCatalog) Question(ctx context.Context, id int) (*Question, error) {
	return c.QuestionSilent(ctx, id, false)
}

func (c *fakeCatalog) QuestionSilent(ctx context.Context, id int, bestEffort bool) (*Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches[id]++
	if err := c.errs[id]; err != nil {
		return nil, err
	}
	q, ok := c.questions[id]
	if !ok {
		return nil, errors.New("question not found")
	}
	return q, nil
}

func (c *fakeCatalog) fetchCount(id int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches[id]
}

// snapshot maps every path below root to its content, or "-> target" for links
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		switch {
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			files[rel] = "-> " + target
		case !d.IsDir():
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			files[rel] = string(data)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

// chdir switches the working directory for the test and restores it on cleanup
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
