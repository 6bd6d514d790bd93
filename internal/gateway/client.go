// Package gateway is the HTTP client for the ClauseSense analysis
// service. The service owns all business logic and persistence; this
// client only issues requests and decodes responses. Each operation
// makes exactly one attempt; retry is a user action, not a client
// policy.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fakeyudi/clausesense/internal/activity"
	"github.com/fakeyudi/clausesense/internal/options"
)

// DefaultTimeout bounds each gateway call. Analyses run a multi-agent
// pipeline server-side, so the bound is generous.
const DefaultTimeout = 120 * time.Second

// Client talks to one ClauseSense gateway instance.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// New returns a client for the gateway at baseURL. A zero timeout
// falls back to DefaultTimeout; a nil logger disables logging.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Upload sends the file as multipart form data and returns the
// document identifier the gateway assigned. The body is streamed
// through a pipe so large contracts are never buffered in memory.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (UploadResult, error) {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(w.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", pr)
	if err != nil {
		pr.Close()
		return UploadResult{}, &UploadError{Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var result UploadResult
	status, err := c.do(req, &result)
	if err != nil {
		return UploadResult{}, &UploadError{StatusCode: status, Err: err}
	}
	c.log.Info("upload accepted",
		zap.String("filename", filename),
		zap.String("doc_id", result.DocID))
	return result, nil
}

// Analyze requests a multi-domain analysis of an uploaded document.
// Safe to re-issue with different options; the server overwrites the
// prior result.
func (c *Client) Analyze(ctx context.Context, docID string, opts options.Options) (AnalyzeResult, error) {
	q := url.Values{}
	q.Set("doc_id", docID)
	q.Set("tone", opts.Tone)
	q.Set("focus", opts.Focus)
	q.Set("structure", opts.Structure)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze?"+q.Encode(), nil)
	if err != nil {
		return AnalyzeResult{}, &AnalysisError{DocID: docID, Err: err}
	}

	var result AnalyzeResult
	status, err := c.do(req, &result)
	if err != nil {
		return AnalyzeResult{}, &AnalysisError{DocID: docID, StatusCode: status, Err: err}
	}
	c.log.Info("analysis complete",
		zap.String("doc_id", docID),
		zap.String("tone", opts.Tone),
		zap.String("focus", opts.Focus))
	return result, nil
}

// Feedback submits a rating and optional comment for a document.
func (c *Client) Feedback(ctx context.Context, docID string, rating int, comment string) error {
	q := url.Values{}
	q.Set("doc_id", docID)
	q.Set("rating", strconv.Itoa(rating))
	if comment != "" {
		q.Set("comments", comment)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/feedback?"+q.Encode(), nil)
	if err != nil {
		return &FeedbackError{DocID: docID, Err: err}
	}

	status, err := c.do(req, nil)
	if err != nil {
		return &FeedbackError{DocID: docID, StatusCode: status, Err: err}
	}
	c.log.Info("feedback submitted", zap.String("doc_id", docID), zap.Int("rating", rating))
	return nil
}

// History fetches the full current activity feed. Read-only and
// side-effect-free.
func (c *Client) History(ctx context.Context) ([]activity.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/history", nil)
	if err != nil {
		return nil, &HistoryError{Err: err}
	}

	var entries []activity.Entry
	status, err := c.do(req, &entries)
	if err != nil {
		return nil, &HistoryError{StatusCode: status, Err: err}
	}
	return entries, nil
}

// Health pings the gateway root endpoint.
func (c *Client) Health(ctx context.Context) (Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return Status{}, err
	}
	var s Status
	if _, err := c.do(req, &s); err != nil {
		return Status{}, err
	}
	return s, nil
}

// do executes the request and decodes a 2xx JSON body into out (when
// out is non-nil). It returns the HTTP status code when the server
// answered, 0 for transport failures.
func (c *Client) do(req *http.Request, out any) (int, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, fmt.Errorf("server error: %s", strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
