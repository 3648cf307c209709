package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "cache", "problems.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	locked := Problem{ID: 156, Slug: "binary-tree-upside-down", Name: "Binary Tree Upside Down",
		Category: "algorithms", Level: Medium, Percent: 33.33, Locked: true}

	require.NoError(t, store.SaveProblems(ctx, []Problem{locked, twoSum()}))

	problems, err := store.Problems(ctx)
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, twoSum(), problems[0], "problems are ordered by id")
	assert.Equal(t, locked, problems[1])

	p, err := store.Problem(ctx, 156)
	require.NoError(t, err)
	assert.True(t, p.Locked)
	assert.Equal(t, Medium, p.Level)
}

func TestStoreProblemNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Problem(context.Background(), 42)
	assert.True(t, errors.Is(err, errProblemNotFound))

	err = store.SaveDescriptor(context.Background(), 42, "{}")
	assert.True(t, errors.Is(err, errProblemNotFound))
}

func TestStoreKeepsDescriptorOnRefresh(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveProblems(ctx, []Problem{twoSum()}))
	require.NoError(t, store.SaveDescriptor(ctx, 1, `{"defs":[]}`))

	refreshed := twoSum()
	refreshed.Percent = 48.1
	refreshed.Starred = true
	require.NoError(t, store.SaveProblems(ctx, []Problem{refreshed}))

	p, err := store.Problem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 48.1, p.Percent)
	assert.True(t, p.Starred)
	assert.Equal(t, `{"defs":[]}`, p.Desc)
}
