package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Gate decides whether a stub needs generating and commits it or rolls it back
type Gate struct {
	catalog   Catalog
	assembler *Assembler
	resolver  *Resolver
	lang      Language
	code      CodeSettings
	logger    *zap.Logger
}

// NewGate creates a gate writing stubs for the configured language
func NewGate(catalog Catalog, assembler *Assembler, resolver *Resolver, settings *Settings, logger *zap.Logger) *Gate {
	return &Gate{
		catalog:   catalog,
		assembler: assembler,
		resolver:  resolver,
		lang:      LookupLanguage(settings.Code.Lang),
		code:      settings.Code,
		logger:    logger,
	}
}

// Generate writes the stub of a problem unless it already exists.
func (g *Gate) Generate(ctx context.Context, p *Problem) (Paths, ProcessingStatus, error) {
	paths := g.resolver.Resolve(p, g.lang)

	exists, err := fileExists(paths.Stub)
	if err != nil {
		return paths, StatusError, fsError(p, paths.Stub, err)
	}
	if exists {
		return paths, StatusSkipped, nil
	}

	question, err := g.question(ctx, p)
	if err != nil {
		return paths, StatusError, err
	}

	stub := g.assembler.Assemble(p, question)
	if !stub.Matched {
		if err := g.rollback(paths); err != nil {
			return paths, StatusError, fsError(p, paths.Stub, err)
		}
		return paths, StatusError, unsupportedError(p, g.code.Lang)
	}

	if err := g.commit(paths, stub); err != nil {
		if rbErr := g.rollback(paths); rbErr != nil {
			g.logger.Error("Rollback failed", zap.String("path", paths.Stub), zap.Error(rbErr))
		}
		return paths, StatusError, fsError(p, paths.Stub, err)
	}
	return paths, StatusSuccess, nil
}

// question parses the embedded descriptor, falling back to the catalog
func (g *Gate) question(ctx context.Context, p *Problem) (*Question, error) {
	q, err := parseDescriptor(p.Desc)
	if err == nil {
		return q, nil
	}
	g.logger.Debug("Descriptor not self-contained, fetching question", zap.Int("id", p.ID))

	q, err = g.catalog.QuestionSilent(ctx, p.ID, true)
	if err != nil {
		return nil, fetchError(p, err)
	}
	return q, nil
}

// commit writes the test file first and the stub last, so an existing stub
// always means a complete generation.
func (g *Gate) commit(paths Paths, stub Stub) error {
	if err := os.MkdirAll(filepath.Dir(paths.Stub), 0755); err != nil {
		return fmt.Errorf("creating stub directory: %w", err)
	}
	if g.code.Test {
		if err := writeFileAtomic(paths.Tests, []byte(stub.Tests)); err != nil {
			return fmt.Errorf("writing test cases: %w", err)
		}
	}
	if err := writeFileAtomic(paths.Stub, []byte(stub.Code)); err != nil {
		return fmt.Errorf("writing stub: %w", err)
	}
	return nil
}

// rollback removes the stub, and the test file when this gate writes one.
// Test files are shared by every language of a problem.
func (g *Gate) rollback(paths Paths) error {
	owned := []string{paths.Stub}
	if g.code.Test {
		owned = append(owned, paths.Tests)
	}
	var errs []error
	for _, path := range owned {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// writeFileAtomic writes data to a temporary sibling and renames it into place
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func fileExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
