package main

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Stub is the assembled content of one problem
type Stub struct {
	Code    string
	Tests   string
	Matched bool
}

// Assembler builds stub text from a problem, its question and the code settings
type Assembler struct {
	lang       Language
	code       CodeSettings
	problemURL func(slug string) string
	logger     *zap.Logger
}

// NewAssembler creates an assembler for the configured target language
func NewAssembler(settings *Settings, logger *zap.Logger) *Assembler {
	return &Assembler{
		lang:       LookupLanguage(settings.Code.Lang),
		code:       settings.Code,
		problemURL: settings.ProblemURL,
		logger:     logger,
	}
}

// Assemble renders the stub. Matched reports whether any definition is for
// the target language; every matching definition is emitted.
func (a *Assembler) Assemble(p *Problem, q *Question) Stub {
	var b strings.Builder
	b.WriteString(a.lang.Prelude)
	a.writeHeader(&b, p, q.Statement)

	if a.lang.Open != "" {
		b.WriteString(a.lang.Open)
		b.WriteString("\n")
	}
	if a.lang.Import != "" {
		b.WriteString(a.lang.Import)
		b.WriteString("\n\n")
	}

	matched := false
	for _, def := range q.Defs {
		if def.Lang != a.code.Lang {
			continue
		}
		matched = true
		a.writeBody(&b, p, q, def)
	}

	if a.lang.Close != "" {
		b.WriteString(a.lang.Close)
		b.WriteString("\n")
	}

	code, err := a.lang.Finish(b.String())
	if err != nil {
		a.logger.Debug("Formatter rejected stub, keeping unformatted text",
			zap.Int("id", p.ID), zap.Error(err))
	}

	stub := Stub{Code: code, Matched: matched}
	if matched && a.code.Test {
		stub.Tests = q.TestCases
	}
	return stub
}

func (a *Assembler) writeHeader(b *strings.Builder, p *Problem, statement string) {
	doc := a.lang.DocComment
	comment := func(line string) {
		if strings.TrimSpace(line) == "" {
			b.WriteString(doc + "\n")
			return
		}
		b.WriteString(doc + " " + line + "\n")
	}

	comment("# Challenge info")
	comment("url: <" + a.problemURL(p.Slug) + ">")
	comment("percent: " + formatPercent(p.Percent))
	comment("level: " + p.Level.String())
	comment("category: " + p.Category)
	comment("")
	comment("# Question")
	for _, line := range statementLines(statement) {
		comment(line)
	}
	b.WriteString("\n")
}

func (a *Assembler) writeBody(b *strings.Builder, p *Problem, q *Question, def LanguageDef) {
	lead := a.commentLead()
	if a.code.CommentProblemDesc {
		b.WriteString(lead + " Category: " + p.Category + "\n")
		b.WriteString(lead + " Level: " + p.Level.String() + "\n")
		b.WriteString(lead + " Percent: " + formatPercent(p.Percent) + "%\n\n")
		for _, line := range statementLines(q.Statement) {
			b.WriteString(strings.TrimRight(lead+" "+line, " ") + "\n")
		}
		b.WriteString("\n")
	}
	for _, line := range a.code.InjectBefore {
		b.WriteString(line + "\n")
	}
	if a.code.EditCodeMarker {
		b.WriteString(lead + " " + a.code.StartMarker + "\n")
	}
	b.WriteString(def.Code + "\n")
	if a.code.EditCodeMarker {
		b.WriteString(lead + " " + a.code.EndMarker + "\n")
	}
	for _, line := range a.code.InjectAfter {
		b.WriteString(line + "\n")
	}
}

// commentLead is the prefix of generated comment lines in the body. A
// configured prefix is used for tags without a table entry, or when it
// extends the language's own comment token (e.g. "///" for rust).
func (a *Assembler) commentLead() string {
	lead := a.code.CommentLeading
	switch {
	case lead == "":
		return a.lang.Comment
	case a.lang.generic, strings.HasPrefix(lead, a.lang.Comment):
		return lead
	default:
		return a.lang.Comment
	}
}

// statementLines splits a statement into lines, normalising CRLF and CR and
// dropping trailing blank lines.
func statementLines(statement string) []string {
	statement = strings.ReplaceAll(statement, "\r\n", "\n")
	statement = strings.ReplaceAll(statement, "\r", "\n")
	statement = strings.TrimRight(statement, "\n \t")
	if statement == "" {
		return nil
	}
	return strings.Split(statement, "\n")
}

func formatPercent(percent float64) string {
	return strconv.FormatFloat(percent, 'f', -1, 64)
}
