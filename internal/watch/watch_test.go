package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFilesEmitsNewFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Files(ctx, dir)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	want := filepath.Join(dir, "contract.pdf")
	if err := os.WriteFile(want, []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("got %s, want %s", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for file event")
	}
}

func TestFilesSkipsHiddenAndTempFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Files(ctx, dir)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	for _, name := range []string{".hidden.pdf", "draft.tmp", "lease.pdf.part", "notes~"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	want := filepath.Join(dir, "real.pdf")
	if err := os.WriteFile(want, []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("skipped file leaked through: %s", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for file event")
	}
}

func TestFilesChannelClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := Files(ctx, dir)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestFilesMissingDir(t *testing.T) {
	if _, err := Files(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
