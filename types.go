package main

import (
	"encoding/json"
	"errors"
)

// Difficulty is the problem level as reported by the catalog (1, 2, 3)
type Difficulty int

const (
	Easy   Difficulty = 1
	Medium Difficulty = 2
	Hard   Difficulty = 3
)

// String returns the display label used in headers and view directories
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Problem represents one catalog entry
type Problem struct {
	ID       int        `json:"id"`
	Slug     string     `json:"slug"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Level    Difficulty `json:"level"`
	Percent  float64    `json:"percent"`
	Starred  bool       `json:"starred"`
	Locked   bool       `json:"locked"`
	Desc     string     `json:"desc"` // JSON encoded Question, empty until fetched
}

// LanguageDef is the starter code of a problem for one language
type LanguageDef struct {
	Lang string `json:"value"`
	Code string `json:"code"`
}

// Question holds the statement and starter code of a problem
type Question struct {
	Statement string        `json:"statement"`
	TestCases string        `json:"all_cases"`
	Defs      []LanguageDef `json:"defs"`
}

// parseDescriptor decodes a Question embedded in a problem descriptor.
func parseDescriptor(desc string) (*Question, error) {
	var q Question
	if err := json.Unmarshal([]byte(desc), &q); err != nil {
		return nil, err
	}
	if len(q.Defs) == 0 {
		return nil, errors.New("descriptor has no code definitions")
	}
	return &q, nil
}

// ProcessingStatus represents the outcome status of processing a problem
type ProcessingStatus string

const (
	StatusSuccess ProcessingStatus = "success"
	StatusSkipped ProcessingStatus = "skipped"
	StatusPremium ProcessingStatus = "premium"
	StatusError   ProcessingStatus = "error"
)

// ProcessingResult tracks the outcome of processing each problem
type ProcessingResult struct {
	ProblemID int
	Name      string
	Status    ProcessingStatus
	Path      string
	Error     error
}

// Summary is the per-run tally reported after a batch
type Summary struct {
	Total     int
	Premium   int
	Errors    int
	Generated int
	Skipped   int
	Results   []ProcessingResult
}

func (s *Summary) record(r ProcessingResult) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusSuccess:
		s.Generated++
	case StatusSkipped:
		s.Skipped++
	case StatusPremium:
		s.Premium++
	case StatusError:
		s.Errors++
	}
}
