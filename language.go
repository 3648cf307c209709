package main

import (
	"fmt"
	"go/format"
	"regexp"
	"strings"
)

// Language describes how stubs and manifests are written for one target language
type Language struct {
	Tag        string
	Ext        string
	Comment    string // line comment token
	DocComment string // token prefixed to header lines
	Import     string // shared solution declaration
	Open       string // emitted before the starter code block
	Close      string // emitted after the starter code block
	Manifest   string // manifest file name within a stub directory
	Prelude    string // written before the header, e.g. an opening tag

	// ManifestHeader is written when a manifest file is created.
	ManifestHeader string
	// Boilerplate is appended once per manifest when a batch finalizes.
	Boilerplate string

	reference func(stem, file string) string
	fixup     func(code string) string
	format    func(code string) (string, error)

	// generic is set for tags without a table entry
	generic bool
}

// Reference returns the manifest line declaring a stub.
func (l Language) Reference(stem, file string) string {
	if l.reference == nil {
		return file
	}
	return l.reference(stem, file)
}

// Finish applies language fixups and the formatter. Formatter errors keep the
// fixed-up text.
func (l Language) Finish(code string) (string, error) {
	if l.fixup != nil {
		code = l.fixup(code)
	}
	if l.format == nil {
		return code, nil
	}
	formatted, err := l.format(code)
	if err != nil {
		return code, err
	}
	return formatted, nil
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func identifier(stem string) string {
	id := regexp.MustCompile(`[^A-Za-z0-9_]`).ReplaceAllString(stem, "_")
	if id == "" || (id[0] >= '0' && id[0] <= '9') {
		id = "p" + id
	}
	return id
}

var languages = map[string]Language{
	"rust": {
		Tag:        "rust",
		Ext:        "rs",
		Comment:    "//",
		DocComment: "//!",
		Import:     "use crate::solutions::Solution;",
		Open:       "// delete the line below to build the solution\n\n#[cfg(feature = \"ignored\")]\nmod inner {",
		Close:      "mod x {}\n}",
		Manifest:   "mod.rs",
		Boilerplate: "\n\n#[allow(dead_code)]\n" +
			"pub(crate) struct Solution;\n",
		reference: func(stem, file string) string {
			if identRe.MatchString(stem) {
				return fmt.Sprintf("mod %s;", stem)
			}
			return fmt.Sprintf("#[path = %q]\nmod %s;", file, identifier(stem))
		},
		fixup: func(code string) string {
			code = strings.ReplaceAll(code, "\t", "    ")
			return strings.ReplaceAll(code, "box: Vec<Vec<char>>", "boxy: Vec<Vec<char>>")
		},
	},
	"python3": {
		Tag:         "python3",
		Ext:         "py",
		Comment:     "#",
		DocComment:  "#",
		Import:      "from typing import *",
		Manifest:    "__init__.py",
		Boilerplate: "\n\nfrom typing import *  # noqa: F401,F403\n",
		reference: func(stem, file string) string {
			if identRe.MatchString(stem) {
				return fmt.Sprintf("from . import %s", stem)
			}
			return fmt.Sprintf("# %s", file)
		},
	},
	"golang": {
		Tag:            "golang",
		Ext:            "go",
		Comment:        "//",
		DocComment:     "//",
		Import:         "package solutions",
		Manifest:       "doc.go",
		ManifestHeader: "// Package solutions collects generated solution stubs.\npackage solutions\n\n",
		Boilerplate:    "\n// Solution is the shared receiver for generated stubs.\ntype Solution struct{}\n",
		reference: func(stem, file string) string {
			return "// " + file
		},
		format: func(code string) (string, error) {
			out, err := format.Source([]byte(code))
			return string(out), err
		},
	},
}

// lineCommentLanguages are the remaining catalog tags. Their manifests are an
// index of commented file references.
var lineCommentLanguages = []struct {
	tag     string
	ext     string
	comment string
}{
	{"cpp", "cpp", "//"},
	{"java", "java", "//"},
	{"c", "c", "//"},
	{"csharp", "cs", "//"},
	{"javascript", "js", "//"},
	{"typescript", "ts", "//"},
	{"swift", "swift", "//"},
	{"kotlin", "kt", "//"},
	{"dart", "dart", "//"},
	{"scala", "scala", "//"},
	{"ruby", "rb", "#"},
	{"bash", "sh", "#"},
	{"elixir", "ex", "#"},
	{"erlang", "erl", "%"},
	{"racket", "rkt", ";"},
	{"mysql", "sql", "--"},
	{"mssql", "sql", "--"},
	{"oraclesql", "sql", "--"},
	{"postgresql", "sql", "--"},
}

func init() {
	for _, l := range lineCommentLanguages {
		languages[l.tag] = lineCommented(l.tag, l.ext, l.comment)
	}

	php := lineCommented("php", "php", "//")
	php.Prelude = "<?php\n\n"
	php.ManifestHeader = "<?php\n\n"
	languages["php"] = php

	python := pythonLanguage("python", "")
	python.Boilerplate = "\n\n# end of generated stubs\n"
	languages["python"] = python
	languages["pythondata"] = pythonLanguage("pythondata", "import pandas as pd")
}

func lineCommented(tag, ext, comment string) Language {
	return Language{
		Tag:         tag,
		Ext:         ext,
		Comment:     comment,
		DocComment:  comment,
		Manifest:    "index." + ext,
		Boilerplate: "\n" + comment + " end of generated stubs\n",
		reference: func(stem, file string) string {
			return comment + " " + file
		},
	}
}

func pythonLanguage(tag, imports string) Language {
	l := languages["python3"]
	l.Tag = tag
	l.Import = imports
	return l
}

// LookupLanguage returns the language for a catalog tag. Unknown tags get
// line comments and an index manifest named after the tag.
func LookupLanguage(tag string) Language {
	if l, ok := languages[tag]; ok {
		return l
	}
	l := lineCommented(tag, tag, "//")
	l.generic = true
	return l
}
