package main

import (
	"context"
	"errors"
	"path/filepath"

	"go.uber.org/zap"
)

// PopulateOptions are the batch policy flags
type PopulateOptions struct {
	SkipPremium     bool
	ContinueOnError bool
}

// Populator drives stub generation, view indexing and manifest aggregation
// over a batch of problems
type Populator struct {
	gate       *Gate
	views      *ViewIndexer
	manifests  *ManifestAggregator
	prefetcher *Prefetcher
	options    PopulateOptions
	logger     *zap.Logger
}

// NewPopulator wires the pipeline for the configured language
func NewPopulator(catalog Catalog, settings *Settings, options PopulateOptions, logger *zap.Logger) *Populator {
	lang := LookupLanguage(settings.Code.Lang)
	resolver := NewResolver(settings)

	p := &Populator{
		gate:      NewGate(catalog, NewAssembler(settings, logger), resolver, settings, logger),
		views:     &ViewIndexer{},
		manifests: NewManifestAggregator(lang, settings.Code.ManifestStyle),
		options:   options,
		logger:    logger,
	}
	if settings.Catalog.Jobs > 1 {
		p.prefetcher = NewPrefetcher(catalog, resolver, lang, settings.Catalog.Jobs, logger)
	}
	return p
}

// Run processes the problems in order. Manifests are finalized once after the
// loop, also when it aborts; the summary is returned in every case.
func (p *Populator) Run(ctx context.Context, problems []Problem) (*Summary, error) {
	summary := &Summary{Total: len(problems)}

	if p.prefetcher != nil {
		n := p.prefetcher.Prefetch(ctx, problems, p.options.SkipPremium)
		p.logger.Info("Prefetched questions", zap.Int("count", n))
	}

	runErr := p.run(ctx, problems, summary)

	if err := p.manifests.Finalize(); err != nil {
		runErr = errors.Join(runErr, err)
	}
	return summary, runErr
}

func (p *Populator) run(ctx context.Context, problems []Problem, summary *Summary) error {
	for i := range problems {
		if err := ctx.Err(); err != nil {
			return err
		}
		problem := &problems[i]
		p.logger.Debug("Processing problem",
			zap.Int("index", i+1), zap.Int("total", len(problems)),
			zap.Int("id", problem.ID), zap.String("name", problem.Name))

		if p.options.SkipPremium && problem.Locked {
			p.logger.Warn("Skipping premium question", zap.Int("id", problem.ID), zap.String("name", problem.Name))
			summary.record(ProcessingResult{ProblemID: problem.ID, Name: problem.Name, Status: StatusPremium})
			continue
		}

		paths, status, err := p.gate.Generate(ctx, problem)
		if err != nil {
			summary.record(ProcessingResult{
				ProblemID: problem.ID, Name: problem.Name, Status: StatusError, Path: paths.Stub, Error: err,
			})
			if !p.options.ContinueOnError {
				return err
			}
			p.logger.Error("Failed to populate problem", zap.Int("id", problem.ID), zap.Error(err))
			continue
		}

		if status == StatusSuccess {
			if err := p.index(problem, paths); err != nil {
				summary.record(ProcessingResult{
					ProblemID: problem.ID, Name: problem.Name, Status: StatusError, Path: paths.Stub, Error: err,
				})
				return err
			}
		}
		summary.record(ProcessingResult{ProblemID: problem.ID, Name: problem.Name, Status: status, Path: paths.Stub})
	}
	return nil
}

// index links a committed stub into the views and registers it in its manifest
func (p *Populator) index(problem *Problem, paths Paths) error {
	if err := p.views.Index(problem, paths.Stub); err != nil {
		return fsError(problem, paths.Stub, err)
	}
	if err := p.manifests.Register(paths.Manifest, paths.Stem, filepath.Base(paths.Stub)); err != nil {
		return fsError(problem, paths.Manifest, err)
	}
	return nil
}

// Reindex recreates the views of every problem whose stub exists. Nothing is
// fetched or written besides the links.
func Reindex(problems []Problem, settings *Settings, logger *zap.Logger) (int, error) {
	lang := LookupLanguage(settings.Code.Lang)
	resolver := NewResolver(settings)
	views := &ViewIndexer{}

	linked := 0
	for i := range problems {
		problem := &problems[i]
		stub := resolver.Resolve(problem, lang).Stub
		exists, err := fileExists(stub)
		if err != nil {
			return linked, fsError(problem, stub, err)
		}
		if !exists {
			continue
		}
		if err := views.Index(problem, stub); err != nil {
			return linked, fsError(problem, stub, err)
		}
		linked++
		logger.Debug("Reindexed stub", zap.String("path", stub))
	}
	return linked, nil
}
