package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilename(t *testing.T) {
	cases := []struct{ docID, want string }{
		{"abc123def456ghi", "ClauseSense_Report_abc123de.txt"},
		{"short", "ClauseSense_Report_short.txt"},
		{"", "ClauseSense_Report_.txt"},
	}
	for _, tc := range cases {
		if got := Filename(tc.docID); got != tc.want {
			t.Fatalf("Filename(%q) = %q, want %q", tc.docID, got, tc.want)
		}
	}
}

func TestSaveWritesReportVerbatim(t *testing.T) {
	dir := t.TempDir()
	text := "=== REPORT ===\nUncapped liability clause\n"

	path, err := Save(dir, "abc123def456", text)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "ClauseSense_Report_abc123de.txt" {
		t.Fatalf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != text {
		t.Fatalf("report not saved verbatim: %q", data)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Fatalf("leftover temp file %s", e.Name())
		}
	}
}

func TestSaveRejectsEmptyReport(t *testing.T) {
	if _, err := Save(t.TempDir(), "abc", ""); err == nil {
		t.Fatal("expected error for empty report")
	}
}

func TestSaveCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "nested")
	if _, err := Save(dir, "abc", "text"); err != nil {
		t.Fatalf("Save into missing dir: %v", err)
	}
}
