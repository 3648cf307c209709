package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

type manifestFile struct {
	path string
	file *os.File
}

// ManifestAggregator keeps one append handle per manifest for the duration of
// a batch and appends the trailing boilerplate once when finalized.
type ManifestAggregator struct {
	lang  Language
	style ManifestStyle

	mu        sync.Mutex
	files     map[string]*manifestFile
	order     []string
	finalized bool
}

// NewManifestAggregator creates an empty aggregator
func NewManifestAggregator(lang Language, style ManifestStyle) *ManifestAggregator {
	return &ManifestAggregator{
		lang:  lang,
		style: style,
		files: make(map[string]*manifestFile),
	}
}

// Register appends the reference line of a stub to its manifest
func (m *ManifestAggregator) Register(path, stem, file string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.finalized {
		return fmt.Errorf("registering %s: %w", path, ErrManifestFinalized)
	}

	mf, ok := m.files[path]
	if !ok {
		f, err := m.open(path)
		if err != nil {
			return err
		}
		mf = &manifestFile{path: path, file: f}
		m.files[path] = mf
		m.order = append(m.order, path)
	}

	if _, err := io.WriteString(mf.file, m.referenceLine(stem, file)+"\n"); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Finalize appends the boilerplate to every open manifest and closes them.
// Calling it again is a no-op.
func (m *ManifestAggregator) Finalize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.finalized {
		return nil
	}
	m.finalized = true

	var errs []error
	for _, path := range m.order {
		mf := m.files[path]
		if _, err := io.WriteString(mf.file, m.lang.Boilerplate); err != nil {
			errs = append(errs, fmt.Errorf("finalizing manifest %s: %w", path, err))
		}
		if err := mf.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing manifest %s: %w", path, err))
		}
	}
	m.files = nil
	m.order = nil
	return errors.Join(errs...)
}

// Len returns the number of open manifests
func (m *ManifestAggregator) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

func (m *ManifestAggregator) referenceLine(stem, file string) string {
	line := m.lang.Reference(stem, file)
	if m.style != ManifestComment || strings.HasPrefix(line, m.lang.Comment) {
		return line
	}
	lines := strings.Split(line, "\n")
	for i, l := range lines {
		lines[i] = m.lang.Comment + " " + l
	}
	return strings.Join(lines, "\n")
}

// open creates the manifest or reopens it for appending. A boilerplate block
// left by a previous run is truncated so it is written once, after the new
// references.
func (m *ManifestAggregator) open(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	switch {
	case len(content) == 0 && m.lang.ManifestHeader != "":
		if _, err := io.WriteString(f, m.lang.ManifestHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing manifest header %s: %w", path, err)
		}
	case m.lang.Boilerplate != "" && bytes.HasSuffix(content, []byte(m.lang.Boilerplate)):
		if err := f.Truncate(int64(len(content) - len(m.lang.Boilerplate))); err != nil {
			f.Close()
			return nil, fmt.Errorf("truncating manifest %s: %w", path, err)
		}
	}
	return f, nil
}
