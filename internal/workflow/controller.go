// Package workflow is the controller that drives a document review
// from file selection through feedback. It owns the session state and
// the activity mirror: presentation code reads snapshots and calls
// intent methods, never mutating state itself. Methods are safe to
// call from multiple goroutines: all mutation is serialized through
// one mutex, with gateway calls made outside it.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/anggasct/fluo"
	"go.uber.org/zap"

	"github.com/fakeyudi/clausesense/internal/activity"
	"github.com/fakeyudi/clausesense/internal/gateway"
	"github.com/fakeyudi/clausesense/internal/options"
	"github.com/fakeyudi/clausesense/internal/session"
)

// Intent rejection errors. Each is a local guard failure: no gateway
// call was made.
var (
	ErrBusy        = errors.New("a request is already in progress")
	ErrEmptyFile   = errors.New("selected file is empty")
	ErrNoDocument  = errors.New("no document uploaded yet")
	ErrNotAnalyzed = errors.New("document has not been analyzed yet")
	ErrNoReport    = errors.New("no report available")

	// ErrSuperseded means the session was reset or replaced while the
	// request was in flight; its response was discarded.
	ErrSuperseded = errors.New("response discarded: session superseded")
)

// Gateway is the remote analysis service as the controller sees it.
// *gateway.Client satisfies it; tests substitute fakes.
type Gateway interface {
	Upload(ctx context.Context, filename string, r io.Reader) (gateway.UploadResult, error)
	Analyze(ctx context.Context, docID string, opts options.Options) (gateway.AnalyzeResult, error)
	Feedback(ctx context.Context, docID string, rating int, comment string) error
	History(ctx context.Context) ([]activity.Entry, error)
}

// Timing controls the upload progress simulation. The bar advances by
// Step every Tick while the request is outstanding, capped at Cap; the
// real 100 is set only on gateway ack and held for CompletionHold so
// the user always sees a full bar before the transition.
type Timing struct {
	Tick           time.Duration
	Step           int
	Cap            int
	CompletionHold time.Duration
}

// DefaultTiming matches the observed product behavior.
func DefaultTiming() Timing {
	return Timing{
		Tick:           100 * time.Millisecond,
		Step:           10,
		Cap:            90,
		CompletionHold: 500 * time.Millisecond,
	}
}

// Config assembles a Controller.
type Config struct {
	Gateway Gateway
	Mirror  *activity.Mirror
	Options options.Options
	Timing  Timing
	Logger  *zap.Logger
}

// Controller owns the workflow state machine and all session mutation.
type Controller struct {
	mu      sync.Mutex
	machine fluo.Machine
	sess    *session.Session
	opts    options.Options
	mirror  *activity.Mirror
	gw      Gateway
	timing  Timing
	log     *zap.Logger

	// gen is bumped whenever the session is replaced or reset. Every
	// in-flight request carries the generation it was issued under;
	// responses for a stale generation are dropped.
	gen uint64

	// feedbackInFlight rejects a second submission while the first is
	// still on the wire. Upload and analyze get this for free from
	// their machine states; feedback stays in analyzed, so it needs
	// its own flag.
	feedbackInFlight bool
}

// New builds and starts a controller in the idle state.
func New(cfg Config) (*Controller, error) {
	if cfg.Gateway == nil {
		return nil, errors.New("workflow: gateway is required")
	}
	if cfg.Mirror == nil {
		cfg.Mirror = activity.NewMirror()
	}
	if cfg.Options == (options.Options{}) {
		cfg.Options = options.Defaults()
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timing == (Timing{}) {
		cfg.Timing = DefaultTiming()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	c := &Controller{
		sess:   session.New(),
		opts:   cfg.Options,
		mirror: cfg.Mirror,
		gw:     cfg.Gateway,
		timing: cfg.Timing,
		log:    cfg.Logger,
	}
	m, err := c.buildMachine()
	if err != nil {
		return nil, fmt.Errorf("workflow: building state machine: %w", err)
	}
	c.machine = m
	return c, nil
}

// Upload starts a new session for the file at path, uploads it and
// waits for the gateway's document identifier. Selecting a file from
// ready or analyzed implicitly discards the prior session; while a
// request is outstanding the intent is rejected with ErrBusy.
func (c *Controller) Upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return ErrEmptyFile
	}
	file := session.File{Name: filepath.Base(path), Path: path, Size: info.Size()}

	c.mu.Lock()
	res := c.machine.HandleEvent(eventFileSelected, file)
	if !res.Processed || res.Error != nil {
		c.mu.Unlock()
		return c.rejection(res)
	}
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	c.log.Info("upload started", zap.String("file", file.Name), zap.Int64("size", file.Size))

	// Optimistic progress while the request is outstanding.
	done := make(chan struct{})
	go c.simulateProgress(gen, done)

	result, err := c.gw.Upload(ctx, file.Name, f)
	close(done)

	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.gen {
			return ErrSuperseded
		}
		c.machine.HandleEvent(eventUploadFailed, nil)
		c.log.Warn("upload failed", zap.Error(err))
		return err
	}

	// Complete the bar first, hold briefly, then make the session
	// usable. The request itself is already finished.
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return ErrSuperseded
	}
	c.sess.CompleteProgress()
	c.mu.Unlock()

	sleepCtx(ctx, c.timing.CompletionHold)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrSuperseded
	}
	if res := c.machine.HandleEvent(eventUploadSucceeded, result.DocID); res.Error != nil {
		return res.Error
	}
	c.refreshAsync()
	return nil
}

// Analyze issues an analysis request for the current document with a
// snapshot of the current options. On failure the session is retained
// and the workflow returns to ready so the user can retry.
func (c *Controller) Analyze(ctx context.Context) error {
	c.mu.Lock()
	res := c.machine.HandleEvent(eventAnalyzeRequested, nil)
	if !res.Processed || res.Error != nil {
		c.mu.Unlock()
		return c.rejection(res)
	}
	gen, docID, opts := c.gen, c.sess.DocumentID, c.opts
	c.mu.Unlock()

	result, err := c.gw.Analyze(ctx, docID, opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || docID != c.sess.DocumentID {
		return ErrSuperseded
	}
	if err != nil {
		c.machine.HandleEvent(eventAnalyzeFailed, nil)
		c.log.Warn("analysis failed", zap.String("doc_id", docID), zap.Error(err))
		return err
	}
	if res := c.machine.HandleEvent(eventAnalyzeSucceeded, result); res.Error != nil {
		return res.Error
	}
	c.refreshAsync()
	return nil
}

// SubmitFeedback sends a rating and comment for the analyzed document.
// A second submission, whether the first already completed or is still
// in flight, is rejected locally without a gateway call; a failed
// submission keeps the draft so the user can retry it.
func (c *Controller) SubmitFeedback(ctx context.Context, rating int, comment string) error {
	c.mu.Lock()
	if c.machine.CurrentState() != StateAnalyzed {
		c.mu.Unlock()
		return ErrNotAnalyzed
	}
	if c.feedbackInFlight {
		c.mu.Unlock()
		return ErrBusy
	}
	if err := c.sess.SetFeedbackDraft(rating, comment); err != nil {
		c.mu.Unlock()
		return err
	}
	c.feedbackInFlight = true
	gen, docID := c.gen, c.sess.DocumentID
	c.mu.Unlock()

	err := c.gw.Feedback(ctx, docID, rating, comment)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.feedbackInFlight = false
	if gen != c.gen || docID != c.sess.DocumentID {
		return ErrSuperseded
	}
	if err != nil {
		c.log.Warn("feedback failed, draft retained", zap.Error(err))
		return err
	}
	if res := c.machine.HandleEvent(eventFeedbackAccepted, nil); res.Error != nil {
		return res.Error
	}
	c.refreshAsync()
	return nil
}

// Reset clears the session from any state and returns to idle.
// Analysis options are preserved. Any in-flight response for the old
// session will be dropped when it arrives.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.machine.HandleEvent(eventReset, nil)
}

// RefreshHistory fetches the remote feed and replaces the mirror's
// snapshot. On failure the previous snapshot stays untouched.
func (c *Controller) RefreshHistory(ctx context.Context) error {
	entries, err := c.gw.History(ctx)
	if err != nil {
		c.log.Warn("history refresh failed, keeping previous snapshot", zap.Error(err))
		return err
	}
	c.mirror.Replace(entries)
	return nil
}

// refreshAsync triggers a causal history refresh without blocking the
// workflow; callers hold the lock, so the fetch runs in a goroutine.
func (c *Controller) refreshAsync() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = c.RefreshHistory(ctx)
	}()
}

func (c *Controller) simulateProgress(gen uint64, done <-chan struct{}) {
	ticker := time.NewTicker(c.timing.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.gen == gen && c.machine.CurrentState() == StateUploading {
				c.sess.AdvanceProgress(c.timing.Step, c.timing.Cap)
			}
			c.mu.Unlock()
		}
	}
}

// rejection maps an unprocessed machine event to a user-facing error.
// Called with the lock released; the mapping re-reads current state.
func (c *Controller) rejection(res *fluo.EventResult) error {
	if res.Error != nil && res.RejectionReason == "" {
		return res.Error
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.machine.CurrentState() {
	case StateUploading, StateAnalyzing:
		return ErrBusy
	}
	if c.sess.DocumentID == "" {
		return ErrNoDocument
	}
	return fmt.Errorf("intent rejected in state %s", c.machine.CurrentState())
}

// Mirror exposes the activity log mirror for display.
func (c *Controller) Mirror() *activity.Mirror { return c.mirror }

// Options returns a copy of the current analysis options.
func (c *Controller) Options() options.Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// CycleTone advances the tone preference.
func (c *Controller) CycleTone() { c.cycle(func(o *options.Options) { o.CycleTone() }) }

// CycleStructure advances the structure preference.
func (c *Controller) CycleStructure() { c.cycle(func(o *options.Options) { o.CycleStructure() }) }

// CycleFocus advances the extraction focus.
func (c *Controller) CycleFocus() { c.cycle(func(o *options.Options) { o.CycleFocus() }) }

func (c *Controller) cycle(f func(*options.Options)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(&c.opts)
}

// State returns the current workflow state tag.
func (c *Controller) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.CurrentState()
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
