// Package activity mirrors the remote activity feed. The mirror is a
// best-effort, eventually-consistent snapshot: each successful refresh
// replaces it wholesale, and a failed refresh leaves the previous
// snapshot untouched.
package activity

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultPollInterval is how often the feed is re-polled in the absence
// of a causal trigger.
const DefaultPollInterval = 30 * time.Second

// EntryType discriminates the shape of an entry's details.
type EntryType string

const (
	TypeUpload   EntryType = "UPLOAD"
	TypeAnalyze  EntryType = "ANALYZE"
	TypeFeedback EntryType = "FEEDBACK"
)

// Entry is one immutable record from the remote feed.
type Entry struct {
	ID        int       `json:"id"`
	Type      EntryType `json:"type"`
	Timestamp Timestamp `json:"timestamp"`
	Details   Details   `json:"details"`
}

// Details carries the type-dependent payload. Only the fields matching
// the entry's Type are populated by the server.
type Details struct {
	Filename       string `json:"filename,omitempty"`
	DocID          string `json:"doc_id,omitempty"`
	Classification string `json:"classification,omitempty"`
	Tone           string `json:"tone,omitempty"`
	Focus          string `json:"focus,omitempty"`
	Structure      string `json:"structure,omitempty"`
	Rating         int    `json:"rating,omitempty"`
	Comments       string `json:"comments,omitempty"`
}

// Summary renders a one-line human description of the entry.
func (e Entry) Summary() string {
	switch e.Type {
	case TypeUpload:
		return "Uploaded " + e.Details.Filename
	case TypeAnalyze:
		return "Analyzed contract (Doc: " + shortID(e.Details.DocID) + ")"
	case TypeFeedback:
		return fmt.Sprintf("Feedback: %d stars", e.Details.Rating)
	}
	return string(e.Type)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Timestamp wraps time.Time to accept the gateway's timestamp encoding.
// The server emits Python datetime.isoformat() strings, which carry no
// zone and may include fractional seconds; RFC3339 is accepted too.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON parses the timestamp, trying each known layout in order.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON emits RFC3339Nano.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}
