package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	countStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	premiumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// PrintSummary writes the end-of-batch totals
func PrintSummary(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "\nproblems found: %s\n", countStyle.Render(fmt.Sprint(s.Total)))
	fmt.Fprintf(w, "generated: %s, already present: %s\n",
		countStyle.Render(fmt.Sprint(s.Generated)), countStyle.Render(fmt.Sprint(s.Skipped)))
	fmt.Fprintf(w, "premium questions: %s\n", premiumStyle.Render(fmt.Sprint(s.Premium)))
	fmt.Fprintf(w, "errors encountered: %s\n", errorStyle.Render(fmt.Sprint(s.Errors)))
}
