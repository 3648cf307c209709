package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// boilerplate maps manifest file names to the trailing block they end with
var boilerplate = map[string][]string{
	"mod.rs":      {"#[allow(dead_code)]", "pub(crate) struct Solution;"},
	"__init__.py": {"from typing import *  # noqa: F401,F403"},
	"doc.go":      {"// Solution is the shared receiver for generated stubs.", "type Solution struct{}"},
}

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: migrate <dedupe-manifests|remove-dangling-links> <code-directory>")
	}

	command := os.Args[1]
	codeDir := os.Args[2]

	switch command {
	case "dedupe-manifests":
		if err := dedupeManifests(codeDir, bufio.NewReader(os.Stdin)); err != nil {
			log.Fatal(err)
		}
	case "remove-dangling-links":
		if err := removeDanglingLinks(codeDir, bufio.NewReader(os.Stdin)); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("Unknown command %q", command)
	}
}

// dedupeManifests rewrites manifests written by earlier runs that appended
// reference lines and trailing blocks more than once.
func dedupeManifests(codeDir string, reader *bufio.Reader) error {
	return filepath.WalkDir(codeDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Continue on errors
		}
		if d.Type()&os.ModeSymlink != 0 || d.IsDir() {
			return nil
		}
		trailer, ok := boilerplate[d.Name()]
		if !ok {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Error reading %s: %v", path, err)
			return nil
		}
		deduped := dedupeManifest(string(content), trailer)
		if deduped == string(content) {
			return nil
		}

		if !confirm(reader, "REWRITE", path) {
			fmt.Printf("  SKIP: %s\n", path)
			return nil
		}
		if err := os.WriteFile(path, []byte(deduped), 0644); err != nil {
			log.Printf("Error writing %s: %v", path, err)
			return nil
		}
		fmt.Printf("  REWRITTEN: %s\n", path)
		return nil
	})
}

// dedupeManifest keeps the first occurrence of every reference line and a
// single trailing block at the end.
func dedupeManifest(content string, trailer []string) string {
	isTrailer := make(map[string]bool, len(trailer))
	for _, line := range trailer {
		isTrailer[line] = true
	}

	seen := make(map[string]bool)
	var lines []string
	hasTrailer := false
	raw := strings.Split(content, "\n")
	for i := 0; i < len(raw); i++ {
		line := raw[i]
		if isTrailer[line] {
			hasTrailer = true
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		// a path attribute belongs to the declaration that follows it
		if strings.HasPrefix(line, "#[path") && i+1 < len(raw) {
			i++
			line += "\n" + raw[i]
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}

	out := strings.Join(lines, "\n") + "\n"
	if hasTrailer {
		out += "\n\n" + strings.Join(trailer, "\n") + "\n"
	}
	return out
}

// removeDanglingLinks deletes view symlinks whose stub no longer exists
func removeDanglingLinks(codeDir string, reader *bufio.Reader) error {
	totalRemoved := 0
	if err := filepath.WalkDir(codeDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Continue on errors
		}
		if d.Type()&os.ModeSymlink == 0 {
			return nil
		}
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			return nil
		}

		if confirm(reader, "DELETE", path) {
			if err := os.Remove(path); err != nil {
				log.Printf("Error removing %s: %v", path, err)
			} else {
				totalRemoved++
				fmt.Printf("  REMOVED: %s\n", path)
			}
		} else {
			fmt.Printf("  SKIP: %s\n", path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walking directory: %w", err)
	}

	fmt.Printf("\nRemoved %d dangling links\n", totalRemoved)
	return nil
}

func confirm(reader *bufio.Reader, action, path string) bool {
	for {
		fmt.Printf("  %s %s? [y/N]: ", action, path)
		input, err := reader.ReadString('\n')
		if err != nil {
			log.Printf("Error reading input: %v", err)
			return false
		}
		response := strings.ToLower(strings.TrimSpace(input))
		switch response {
		case "y", "yes":
			return true
		case "", "n", "no":
			return false
		default:
			fmt.Println("  Please enter y or n.")
		}
	}
}
