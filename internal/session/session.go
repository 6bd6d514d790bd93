// Package session holds the state of one document review session, from
// file selection through feedback. Only the workflow controller writes
// it; every helper refuses updates that would break the session
// invariants, so a violating transition surfaces as an error instead of
// corrupt state.
package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/fakeyudi/clausesense/internal/gateway"
)

// Misuse errors returned by the mutation helpers.
var (
	ErrNoFile            = errors.New("no file selected")
	ErrNoDocument        = errors.New("no document uploaded")
	ErrDocumentAssigned  = errors.New("document already assigned")
	ErrFeedbackSubmitted = errors.New("feedback already submitted")
	ErrRatingOutOfRange  = errors.New("rating must be between 1 and 5")
)

// File is the artifact the user selected for upload.
type File struct {
	Name string
	Path string
	Size int64
}

// Feedback is a user rating with an optional comment.
type Feedback struct {
	Rating  int
	Comment string
}

// Session is scoped to one document at a time. Begin clears every
// field; a new upload never inherits results from a previous one.
type Session struct {
	// ID identifies this session attempt; regenerated by Begin and
	// used to discard responses that outlive the session they belong
	// to.
	ID string

	File           *File
	DocumentID     string
	UploadProgress int
	Analysis       *gateway.Analysis
	Report         string

	// FeedbackDraft survives a failed submission so the user can
	// retry without re-entering rating and comment.
	FeedbackDraft Feedback
	Feedback      *Feedback
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Begin starts a new session for the given file, discarding any prior
// document, analysis, report and feedback.
func (s *Session) Begin(f File) error {
	if f.Name == "" {
		return ErrNoFile
	}
	s.Clear()
	s.ID = uuid.New().String()
	s.File = &f
	return nil
}

// Clear resets every field. The user's analysis options live elsewhere
// and are deliberately not touched.
func (s *Session) Clear() {
	*s = Session{}
}

// AdvanceProgress moves the upload bar forward by step, capped at max.
// Progress never decreases.
func (s *Session) AdvanceProgress(step, max int) {
	p := s.UploadProgress + step
	if p > max {
		p = max
	}
	if p > s.UploadProgress {
		s.UploadProgress = p
	}
}

// CompleteProgress sets the upload bar to 100. Called only once the
// gateway has acknowledged the upload.
func (s *Session) CompleteProgress() {
	s.UploadProgress = 100
}

// AttachDocument records the gateway-assigned document identifier and
// completes the upload bar. Valid exactly once per session.
func (s *Session) AttachDocument(docID string) error {
	if s.File == nil {
		return ErrNoFile
	}
	if s.DocumentID != "" {
		return ErrDocumentAssigned
	}
	s.DocumentID = docID
	s.UploadProgress = 100
	return nil
}

// AttachAnalysis stores the analysis and its report for the current
// document. Re-analysis overwrites the prior result.
func (s *Session) AttachAnalysis(a gateway.Analysis, report string) error {
	if s.DocumentID == "" {
		return ErrNoDocument
	}
	s.Analysis = &a
	s.Report = report
	return nil
}

// SetFeedbackDraft stores the unsubmitted rating and comment.
func (s *Session) SetFeedbackDraft(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrRatingOutOfRange
	}
	if s.Feedback != nil {
		return ErrFeedbackSubmitted
	}
	s.FeedbackDraft = Feedback{Rating: rating, Comment: comment}
	return nil
}

// MarkFeedbackSubmitted promotes the draft to the accepted feedback
// record. Submission is terminal: no edit, no resubmit.
func (s *Session) MarkFeedbackSubmitted() error {
	if s.DocumentID == "" {
		return ErrNoDocument
	}
	if s.Feedback != nil {
		return ErrFeedbackSubmitted
	}
	fb := s.FeedbackDraft
	s.Feedback = &fb
	return nil
}
