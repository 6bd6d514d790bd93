package workflow

import (
	"github.com/fakeyudi/clausesense/internal/gateway"
	"github.com/fakeyudi/clausesense/internal/session"
)

// Snapshot is a read-only view of the workflow for rendering. Analysis
// is shared, not copied; it is never mutated after being attached.
type Snapshot struct {
	State          string
	SessionID      string
	File           *session.File
	DocumentID     string
	UploadProgress int
	Analysis       *gateway.Analysis
	Report         string

	FeedbackDraft     session.Feedback
	Feedback          *session.Feedback
	FeedbackCollected bool
}

// Snapshot captures the current state for the presentation layer.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:             c.machine.CurrentState(),
		SessionID:         c.sess.ID,
		DocumentID:        c.sess.DocumentID,
		UploadProgress:    c.sess.UploadProgress,
		Analysis:          c.sess.Analysis,
		Report:            c.sess.Report,
		FeedbackDraft:     c.sess.FeedbackDraft,
		FeedbackCollected: c.sess.Feedback != nil,
	}
	if c.sess.File != nil {
		f := *c.sess.File
		snap.File = &f
	}
	if c.sess.Feedback != nil {
		fb := *c.sess.Feedback
		snap.Feedback = &fb
	}
	return snap
}
