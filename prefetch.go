package main

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Prefetcher warms the question cache for problems that still need a stub
type Prefetcher struct {
	catalog  Catalog
	resolver *Resolver
	lang     Language
	jobs     int
	logger   *zap.Logger
}

// NewPrefetcher creates a prefetcher running at most jobs fetches at once
func NewPrefetcher(catalog Catalog, resolver *Resolver, lang Language, jobs int, logger *zap.Logger) *Prefetcher {
	return &Prefetcher{
		catalog:  catalog,
		resolver: resolver,
		lang:     lang,
		jobs:     max(jobs, 1),
		logger:   logger,
	}
}

// Prefetch fetches questions concurrently. Problems with an existing stub or
// a self-contained descriptor are not fetched. Failures are logged and left
// to the gate; the returned count is the number of questions fetched.
func (f *Prefetcher) Prefetch(ctx context.Context, problems []Problem, skipPremium bool) int {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.jobs)

	fetched := make(chan struct{}, len(problems))
	for i := range problems {
		p := &problems[i]
		if !f.needsFetch(p, skipPremium) {
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if _, err := f.catalog.QuestionSilent(ctx, p.ID, true); err != nil {
				f.logger.Warn("Prefetch failed", zap.Int("id", p.ID), zap.String("name", p.Name), zap.Error(err))
				return nil
			}
			fetched <- struct{}{}
			return nil
		})
	}
	_ = g.Wait()
	close(fetched)
	return len(fetched)
}

func (f *Prefetcher) needsFetch(p *Problem, skipPremium bool) bool {
	if skipPremium && p.Locked {
		return false
	}
	if _, err := parseDescriptor(p.Desc); err == nil {
		return false
	}
	exists, err := fileExists(f.resolver.Resolve(p, f.lang).Stub)
	return err == nil && !exists
}
