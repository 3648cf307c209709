package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentBucket(t *testing.T) {
	tests := []struct {
		percent  float64
		expected string
	}{
		{0, "0-10"},
		{9.99, "0-10"},
		{10, "10-20"},
		{47.5, "40-50"},
		{55, "50-60"},
		{99.9, "90-100"},
		{100, "90-100"},
		{100.01, "unknown"},
		{150, "unknown"},
		{-1, "unknown"},
		{math.NaN(), "unknown"},
		{math.Inf(1), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PercentBucket(tt.percent), "percent %v", tt.percent)
	}
}

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))
	return path
}

func TestIndexCreatesRelativeLinks(t *testing.T) {
	dir := t.TempDir()
	stub := writeStub(t, dir, "two-sum.rs")
	p := twoSum()

	require.NoError(t, (&ViewIndexer{}).Index(&p, stub))

	links := map[string]string{
		"array/two-sum.rs":         "../two-sum.rs",
		"Easy/two-sum.rs":          "../two-sum.rs",
		"unstarred/two-sum.rs":     "../two-sum.rs",
		"percent/40-50/two-sum.rs": "../../two-sum.rs",
	}
	for link, target := range links {
		path := filepath.Join(dir, filepath.FromSlash(link))
		got, err := os.Readlink(path)
		require.NoError(t, err, link)
		assert.Equal(t, filepath.FromSlash(target), got, link)

		content, err := os.ReadFile(path)
		require.NoError(t, err, "link %s must resolve", link)
		assert.Equal(t, "stub", string(content))
	}
}

func TestIndexStarredAndUnknownPercent(t *testing.T) {
	dir := t.TempDir()
	stub := writeStub(t, dir, "x.rs")
	p := Problem{ID: 2, Slug: "x", Category: "", Level: Hard, Percent: 150, Starred: true}

	require.NoError(t, (&ViewIndexer{}).Index(&p, stub))

	for _, link := range []string{"uncategorized/x.rs", "Hard/x.rs", "starred/x.rs", "percent/unknown/x.rs"} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(link)))
		assert.NoError(t, err, link)
	}
	assert.NoDirExists(t, filepath.Join(dir, "unstarred"))
}

func TestIndexIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	stub := writeStub(t, dir, "two-sum.rs")
	p := twoSum()
	indexer := &ViewIndexer{}

	require.NoError(t, indexer.Index(&p, stub))
	require.NoError(t, indexer.Index(&p, stub))
}

func TestIndexReplacesStaleLink(t *testing.T) {
	dir := t.TempDir()
	stub := writeStub(t, dir, "two-sum.rs")
	p := twoSum()

	viewDir := filepath.Join(dir, "array")
	require.NoError(t, os.MkdirAll(viewDir, 0755))
	require.NoError(t, os.Symlink("../elsewhere.rs", filepath.Join(viewDir, "two-sum.rs")))

	require.NoError(t, (&ViewIndexer{}).Index(&p, stub))

	got, err := os.Readlink(filepath.Join(viewDir, "two-sum.rs"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("..", "two-sum.rs"), got)
}
