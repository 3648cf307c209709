package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

var percentViews = []string{
	"0-10", "10-20", "20-30", "30-40", "40-50", "50-60", "60-70", "70-80", "80-90", "90-100",
}

const unknownPercentView = "unknown"

// PercentBucket returns the decade label of an acceptance percentage
func PercentBucket(percent float64) string {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return unknownPercentView
	}
	index := int(percent) / 10
	if index >= len(percentViews) {
		index = len(percentViews) - 1
	}
	return percentViews[index]
}

// ViewIndexer links stubs into the category, difficulty, star and percent views
type ViewIndexer struct{}

type view struct {
	dir    string // relative to the stub directory
	target string // link target prefix relative to the view directory
}

func viewsFor(p *Problem) []view {
	star := "unstarred"
	if p.Starred {
		star = "starred"
	}
	return []view{
		{dir: categoryDir(p.Category), target: ".."},
		{dir: p.Level.String(), target: ".."},
		{dir: star, target: ".."},
		{dir: filepath.Join("percent", PercentBucket(p.Percent)), target: filepath.Join("..", "..")},
	}
}

// Index creates one symlink per view pointing back at the stub
func (v *ViewIndexer) Index(p *Problem, stubPath string) error {
	base := filepath.Dir(stubPath)
	name := filepath.Base(stubPath)

	for _, vw := range viewsFor(p) {
		viewDir := filepath.Join(base, vw.dir)
		if err := os.MkdirAll(viewDir, 0755); err != nil {
			return fmt.Errorf("creating view %s: %w", viewDir, err)
		}
		if err := ensureSymlink(filepath.Join(vw.target, name), filepath.Join(viewDir, name)); err != nil {
			return err
		}
	}
	return nil
}

// ensureSymlink creates link -> target, replacing a link with a different target
func ensureSymlink(target, link string) error {
	current, err := os.Readlink(link)
	switch {
	case err == nil && current == target:
		return nil
	case err == nil:
		if err := os.Remove(link); err != nil {
			return fmt.Errorf("replacing link %s: %w", link, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("reading link %s: %w", link, err)
	}

	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("linking %s: %w", link, err)
	}
	return nil
}
