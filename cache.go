package main

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Catalog provides problems and their questions to the pipeline
type Catalog interface {
	Problems(ctx context.Context) ([]Problem, error)
	DownloadProblems(ctx context.Context) error
	Question(ctx context.Context, id int) (*Question, error)
	QuestionSilent(ctx context.Context, id int, bestEffort bool) (*Question, error)
}

// questionFetcher is the part of CatalogClient used by Cache
type questionFetcher interface {
	FetchProblems(ctx context.Context, category string) ([]Problem, error)
	FetchQuestion(ctx context.Context, slug string, bestEffort bool) (*Question, error)
}

// Cache is a Catalog backed by the SQLite store and the LeetCode client.
// Fetched questions are written back as problem descriptors.
type Cache struct {
	store      *Store
	client     questionFetcher
	categories []string
	logger     *zap.Logger
}

// NewCache creates a catalog over an open store
func NewCache(store *Store, client questionFetcher, categories []string, logger *zap.Logger) *Cache {
	return &Cache{
		store:      store,
		client:     client,
		categories: categories,
		logger:     logger,
	}
}

func (c *Cache) Problems(ctx context.Context) ([]Problem, error) {
	return c.store.Problems(ctx)
}

// DownloadProblems refreshes the problem list for every configured category
func (c *Cache) DownloadProblems(ctx context.Context) error {
	for _, category := range c.categories {
		problems, err := c.client.FetchProblems(ctx, category)
		if err != nil {
			return fmt.Errorf("downloading %s problems: %w", category, err)
		}
		if err := c.store.SaveProblems(ctx, problems); err != nil {
			return fmt.Errorf("saving %s problems: %w", category, err)
		}
		c.logger.Info("Downloaded problems", zap.String("category", category), zap.Int("count", len(problems)))
	}
	return nil
}

// Question fetches a complete question, failing on missing content
func (c *Cache) Question(ctx context.Context, id int) (*Question, error) {
	return c.question(ctx, id, false)
}

// QuestionSilent fetches a question; with bestEffort missing fields are tolerated
func (c *Cache) QuestionSilent(ctx context.Context, id int, bestEffort bool) (*Question, error) {
	return c.question(ctx, id, bestEffort)
}

func (c *Cache) question(ctx context.Context, id int, bestEffort bool) (*Question, error) {
	p, err := c.store.Problem(ctx, id)
	if err != nil {
		return nil, err
	}
	if q, err := parseDescriptor(p.Desc); err == nil {
		return q, nil
	}

	q, err := c.client.FetchQuestion(ctx, p.Slug, bestEffort)
	if err != nil {
		return nil, fmt.Errorf("fetching question %d: %w", id, err)
	}

	desc, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encoding question %d: %w", id, err)
	}
	if err := c.store.SaveDescriptor(ctx, id, string(desc)); err != nil {
		c.logger.Warn("Failed to cache question", zap.Int("id", id), zap.Error(err))
	}
	return q, nil
}
