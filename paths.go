package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Layout selects the directory a stub is placed in below the code directory
type Layout string

const (
	LayoutFlat     Layout = "flat"
	LayoutCategory Layout = "category"
	LayoutID       Layout = "id"
)

const defaultPick = "${slug}"

// Paths are the files owned by one problem for one language
type Paths struct {
	Stub     string
	Tests    string
	Manifest string
	Stem     string
}

// Resolver computes workspace paths. It performs no I/O.
type Resolver struct {
	Dir    string // code directory, e.g. <root>/code
	Pick   string
	Layout Layout
}

// NewResolver creates a resolver for the storage and code settings.
func NewResolver(settings *Settings) *Resolver {
	return &Resolver{
		Dir:    filepath.Join(settings.Storage.Root, settings.Storage.Code),
		Pick:   settings.Code.Pick,
		Layout: settings.Code.Layout,
	}
}

// Resolve returns the stub, test and manifest paths of a problem.
func (r *Resolver) Resolve(p *Problem, lang Language) Paths {
	stem := r.stem(p)
	dir := r.dir(p)
	return Paths{
		Stub:     filepath.Join(dir, stem+"."+lang.Ext),
		Tests:    filepath.Join(dir, stem+".tests.dat"),
		Manifest: filepath.Join(dir, lang.Manifest),
		Stem:     stem,
	}
}

func (r *Resolver) stem(p *Problem) string {
	pick := r.Pick
	if pick == "" {
		pick = defaultPick
	}
	return strings.NewReplacer(
		"${fid}", strconv.Itoa(p.ID),
		"${slug}", p.Slug,
		"${snake_slug}", strings.ReplaceAll(p.Slug, "-", "_"),
		"${name}", p.Name,
	).Replace(pick)
}

func (r *Resolver) dir(p *Problem) string {
	switch r.Layout {
	case LayoutCategory:
		return filepath.Join(r.Dir, categoryDir(p.Category))
	case LayoutID:
		lo := (max(p.ID, 1)-1)/100*100 + 1
		return filepath.Join(r.Dir, fmt.Sprintf("%04d-%04d", lo, lo+99))
	default:
		return r.Dir
	}
}

func categoryDir(category string) string {
	if strings.TrimSpace(category) == "" {
		return "uncategorized"
	}
	return category
}
