package session

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/fakeyudi/clausesense/internal/gateway"
)

func started(t *testing.T) *Session {
	t.Helper()
	s := New()
	if err := s.Begin(File{Name: "contract.pdf", Path: "/tmp/contract.pdf", Size: 200 << 10}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return s
}

func TestBeginRejectsEmptyFile(t *testing.T) {
	s := New()
	if err := s.Begin(File{}); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
}

func TestBeginClearsPriorSession(t *testing.T) {
	s := started(t)
	if err := s.AttachDocument("doc-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.AttachAnalysis(gateway.Analysis{}, "old report"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFeedbackDraft(5, "great"); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkFeedbackSubmitted(); err != nil {
		t.Fatal(err)
	}
	firstID := s.ID

	if err := s.Begin(File{Name: "lease.pdf"}); err != nil {
		t.Fatalf("second Begin: %v", err)
	}
	if s.DocumentID != "" || s.Analysis != nil || s.Report != "" || s.Feedback != nil {
		t.Fatalf("Begin left prior state behind: %+v", s)
	}
	if s.UploadProgress != 0 {
		t.Fatalf("progress not reset: %d", s.UploadProgress)
	}
	if s.ID == firstID || s.ID == "" {
		t.Fatal("Begin must assign a fresh session ID")
	}
}

func TestAttachDocumentRequiresFileAndIsOneShot(t *testing.T) {
	s := New()
	if err := s.AttachDocument("doc-1"); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}

	s = started(t)
	if err := s.AttachDocument("doc-1"); err != nil {
		t.Fatal(err)
	}
	if s.UploadProgress != 100 {
		t.Fatalf("progress should be 100 after ack, got %d", s.UploadProgress)
	}
	if err := s.AttachDocument("doc-2"); !errors.Is(err, ErrDocumentAssigned) {
		t.Fatalf("expected ErrDocumentAssigned, got %v", err)
	}
}

func TestAttachAnalysisRequiresDocument(t *testing.T) {
	s := started(t)
	if err := s.AttachAnalysis(gateway.Analysis{}, "r"); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if s.Analysis != nil || s.Report != "" {
		t.Fatal("rejected attach must not mutate session")
	}
}

func TestReanalysisOverwrites(t *testing.T) {
	s := started(t)
	_ = s.AttachDocument("doc-1")
	_ = s.AttachAnalysis(gateway.Analysis{}, "first")
	if err := s.AttachAnalysis(gateway.Analysis{}, "second"); err != nil {
		t.Fatal(err)
	}
	if s.Report != "second" {
		t.Fatalf("report = %q, want second", s.Report)
	}
}

func TestFeedbackIsTerminal(t *testing.T) {
	s := started(t)
	_ = s.AttachDocument("doc-1")

	if err := s.SetFeedbackDraft(0, ""); !errors.Is(err, ErrRatingOutOfRange) {
		t.Fatalf("rating 0: %v", err)
	}
	if err := s.SetFeedbackDraft(6, ""); !errors.Is(err, ErrRatingOutOfRange) {
		t.Fatalf("rating 6: %v", err)
	}

	if err := s.SetFeedbackDraft(4, "missed a termination clause"); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkFeedbackSubmitted(); err != nil {
		t.Fatal(err)
	}
	if s.Feedback == nil || s.Feedback.Rating != 4 {
		t.Fatalf("feedback = %+v", s.Feedback)
	}

	if err := s.MarkFeedbackSubmitted(); !errors.Is(err, ErrFeedbackSubmitted) {
		t.Fatalf("second submit: %v", err)
	}
	if err := s.SetFeedbackDraft(5, "changed my mind"); !errors.Is(err, ErrFeedbackSubmitted) {
		t.Fatalf("draft after submit: %v", err)
	}
}

func TestMarkFeedbackRequiresDocument(t *testing.T) {
	s := started(t)
	if err := s.MarkFeedbackSubmitted(); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
}

// Property: upload progress is monotonically non-decreasing and stays
// within [0,100] under any sequence of advances.
func TestProgressMonotoneProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		_ = s.Begin(File{Name: "f.pdf"})

		prev := s.UploadProgress
		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			step := rapid.IntRange(0, 30).Draw(t, "step")
			max := rapid.IntRange(0, 90).Draw(t, "max")
			s.AdvanceProgress(step, max)
			if s.UploadProgress < prev {
				t.Fatalf("progress decreased: %d -> %d", prev, s.UploadProgress)
			}
			if s.UploadProgress < 0 || s.UploadProgress > 100 {
				t.Fatalf("progress out of range: %d", s.UploadProgress)
			}
			prev = s.UploadProgress
		}

		// Only the gateway ack may complete the bar.
		if s.UploadProgress == 100 {
			t.Fatal("simulated progress must stay strictly below 100")
		}
		_ = s.AttachDocument("doc-1")
		if s.UploadProgress != 100 {
			t.Fatal("ack must complete the bar")
		}
	})
}
