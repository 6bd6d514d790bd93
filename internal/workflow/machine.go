package workflow

import (
	"github.com/anggasct/fluo"

	"github.com/fakeyudi/clausesense/internal/gateway"
	"github.com/fakeyudi/clausesense/internal/session"
)

// Workflow states. A session moves idle → uploading → ready →
// analyzing → analyzed; feedback-collected is a property of the
// session within analyzed, not a separate machine state.
const (
	StateIdle      = "idle"
	StateUploading = "uploading"
	StateReady     = "ready"
	StateAnalyzing = "analyzing"
	StateAnalyzed  = "analyzed"
)

// Intents and completions driving the machine.
const (
	eventFileSelected     = "FILE_SELECTED"
	eventUploadSucceeded  = "UPLOAD_SUCCEEDED"
	eventUploadFailed     = "UPLOAD_FAILED"
	eventAnalyzeRequested = "ANALYZE_REQUESTED"
	eventAnalyzeSucceeded = "ANALYZE_SUCCEEDED"
	eventAnalyzeFailed    = "ANALYZE_FAILED"
	eventFeedbackAccepted = "FEEDBACK_ACCEPTED"
	eventReset            = "RESET"
)

// buildMachine wires the transition table. Guards read the session,
// actions are the only writers; both run with the controller's lock
// held by the calling method.
func (c *Controller) buildMachine() (fluo.Machine, error) {
	definition := fluo.NewMachine().
		State(StateIdle).Initial().
		To(StateUploading).On(eventFileSelected).When(c.guardFileProvided).Do(c.actionBeginSession).
		ToSelf().On(eventReset).
		State(StateUploading).
		To(StateReady).On(eventUploadSucceeded).Do(c.actionAttachDocument).
		To(StateIdle).On(eventUploadFailed).Do(c.actionDiscardSession).
		To(StateIdle).On(eventReset).Do(c.actionDiscardSession).
		State(StateReady).
		To(StateAnalyzing).On(eventAnalyzeRequested).When(c.guardDocumentAssigned).
		To(StateUploading).On(eventFileSelected).When(c.guardFileProvided).Do(c.actionBeginSession).
		To(StateIdle).On(eventReset).Do(c.actionDiscardSession).
		State(StateAnalyzing).
		To(StateAnalyzed).On(eventAnalyzeSucceeded).Do(c.actionAttachAnalysis).
		To(StateReady).On(eventAnalyzeFailed).
		To(StateIdle).On(eventReset).Do(c.actionDiscardSession).
		State(StateAnalyzed).
		To(StateAnalyzing).On(eventAnalyzeRequested).When(c.guardDocumentAssigned).
		To(StateUploading).On(eventFileSelected).When(c.guardFileProvided).Do(c.actionBeginSession).
		ToSelf().On(eventFeedbackAccepted).When(c.guardFeedbackOpen).Do(c.actionRecordFeedback).
		To(StateIdle).On(eventReset).Do(c.actionDiscardSession).
		Build()

	m := definition.CreateInstance()
	if err := m.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Controller) guardFileProvided(ctx fluo.Context) bool {
	f, ok := ctx.GetEventData().(session.File)
	return ok && f.Name != ""
}

func (c *Controller) guardDocumentAssigned(fluo.Context) bool {
	return c.sess.DocumentID != ""
}

func (c *Controller) guardFeedbackOpen(fluo.Context) bool {
	return c.sess.Feedback == nil
}

func (c *Controller) actionBeginSession(ctx fluo.Context) error {
	return c.sess.Begin(ctx.GetEventData().(session.File))
}

func (c *Controller) actionAttachDocument(ctx fluo.Context) error {
	return c.sess.AttachDocument(ctx.GetEventData().(string))
}

func (c *Controller) actionAttachAnalysis(ctx fluo.Context) error {
	result := ctx.GetEventData().(gateway.AnalyzeResult)
	return c.sess.AttachAnalysis(result.Analysis, result.Report)
}

func (c *Controller) actionRecordFeedback(fluo.Context) error {
	return c.sess.MarkFeedbackSubmitted()
}

func (c *Controller) actionDiscardSession(fluo.Context) error {
	c.sess.Clear()
	return nil
}
