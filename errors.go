package main

import (
	"errors"
	"fmt"
)

var (
	ErrFetch               = errors.New("fetch failure")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrFilesystem          = errors.New("filesystem failure")
	ErrManifestFinalized   = errors.New("manifest already finalized")
)

// ProblemError wraps a per-problem failure with the problem identity.
type ProblemError struct {
	Kind error
	ID   int
	Name string
	Path string
	Err  error
}

func (e *ProblemError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg += " at " + e.Path
	}
	msg = fmt.Sprintf("%s. name: %s id: %d", msg, e.Name, e.ID)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProblemError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fetchError(p *Problem, err error) error {
	return &ProblemError{Kind: ErrFetch, ID: p.ID, Name: p.Name, Err: err}
}

func fsError(p *Problem, path string, err error) error {
	return &ProblemError{Kind: ErrFilesystem, ID: p.ID, Name: p.Name, Path: path, Err: err}
}

func unsupportedError(p *Problem, lang string) error {
	return &ProblemError{
		Kind: ErrUnsupportedLanguage,
		ID:   p.ID,
		Name: p.Name,
		Err:  fmt.Errorf("question doesn't support %s, please try another", lang),
	}
}

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}
