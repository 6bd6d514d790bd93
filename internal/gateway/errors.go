package gateway

import "fmt"

// Every gateway call failure is one of four recoverable, user-visible
// error kinds. Each wraps its cause and carries the HTTP status code
// when the server answered at all (0 for transport failures).

// UploadError reports a failed upload call.
type UploadError struct {
	StatusCode int
	Err        error
}

func (e *UploadError) Error() string { return callError("upload", e.StatusCode, e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// AnalysisError reports a failed analyze call.
type AnalysisError struct {
	DocID      string
	StatusCode int
	Err        error
}

func (e *AnalysisError) Error() string { return callError("analyze", e.StatusCode, e.Err) }
func (e *AnalysisError) Unwrap() error { return e.Err }

// FeedbackError reports a failed feedback call.
type FeedbackError struct {
	DocID      string
	StatusCode int
	Err        error
}

func (e *FeedbackError) Error() string { return callError("feedback", e.StatusCode, e.Err) }
func (e *FeedbackError) Unwrap() error { return e.Err }

// HistoryError reports a failed history fetch.
type HistoryError struct {
	StatusCode int
	Err        error
}

func (e *HistoryError) Error() string { return callError("history", e.StatusCode, e.Err) }
func (e *HistoryError) Unwrap() error { return e.Err }

func callError(op string, status int, err error) string {
	if status != 0 {
		return fmt.Sprintf("gateway %s failed (HTTP %d): %v", op, status, err)
	}
	return fmt.Sprintf("gateway %s failed: %v", op, err)
}
