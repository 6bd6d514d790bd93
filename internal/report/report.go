// Package report writes the generated analysis report to a local text
// artifact.
package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Filename derives the download name for a report from its document
// identifier, matching the service's naming scheme.
func Filename(docID string) string {
	if len(docID) > 8 {
		docID = docID[:8]
	}
	return fmt.Sprintf("ClauseSense_Report_%s.txt", docID)
}

// Save writes the report text under dir and returns the full path.
// The write goes through a temp file + rename so a crash never leaves
// a half-written artifact.
func Save(dir, docID, text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("refusing to save an empty report")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(docID))
	tmp, err := os.CreateTemp(dir, "report-*.txt.tmp")
	if err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("saving report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("saving report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("saving report: %w", err)
	}
	return path, nil
}
