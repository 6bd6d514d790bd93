package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeGatewayServer implements the upload, analyze, feedback and history
// endpoints with canned responses.
func fakeGatewayServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"status": "uploaded", "doc_id": "doc-12345678", "classification": "NDA",
		})
	})
	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"doc_id": r.URL.Query().Get("doc_id"),
			"analysis": map[string]any{
				"legal":      map[string]any{"key_findings": []string{"termination clause found"}, "risks": []string{}},
				"finance":    map[string]any{"financial_risks": []string{"late payment penalty"}},
				"compliance": map[string]any{"checks_performed": []string{"GDPR"}},
				"operations": map[string]any{"optimization_suggestions": []string{"automate renewal"}},
			},
			"report": "FULL CONTRACT REPORT\ntone=" + r.URL.Query().Get("tone"),
		})
	})
	mux.HandleFunc("POST /feedback", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "recorded"})
	})
	mux.HandleFunc("GET /history", func(w http.ResponseWriter, r *http.Request) {
		// The gateway prepends new actions, so the feed arrives
		// most-recent-first.
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 2, "type": "ANALYZE", "timestamp": "2026-08-28T10:01:00", "details": map[string]any{"doc_id": "doc-12345678"}},
			{"id": 1, "type": "UPLOAD", "timestamp": "2026-08-28T10:00:00.123456", "details": map[string]any{"filename": "nda.pdf"}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyzeCommandPrintsReport(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	srv := fakeGatewayServer(t)
	t.Setenv("CLAUSESENSE_GATEWAY_URL", srv.URL)

	contract := filepath.Join(tmp, "nda.pdf")
	if err := os.WriteFile(contract, []byte("agreement text"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(rootCmd, "analyze", contract, "--tone", "concise")
	if err != nil {
		t.Fatalf("analyze command error: %v", err)
	}
	if !strings.Contains(out, "doc-12345678") {
		t.Errorf("expected doc id in output, got:\n%s", out)
	}
	if !strings.Contains(out, "FULL CONTRACT REPORT") {
		t.Errorf("expected report body in output, got:\n%s", out)
	}
	if !strings.Contains(out, "tone=concise") {
		t.Errorf("expected tone override forwarded to gateway, got:\n%s", out)
	}
}

func TestAnalyzeCommandRejectsBadTone(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	srv := fakeGatewayServer(t)
	t.Setenv("CLAUSESENSE_GATEWAY_URL", srv.URL)

	contract := filepath.Join(tmp, "nda.pdf")
	if err := os.WriteFile(contract, []byte("agreement text"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := executeCommand(rootCmd, "analyze", contract, "--tone", "sarcastic")
	if err == nil {
		t.Fatal("expected validation error for unknown tone")
	}
	analyzeTone = "" // reset for other tests
}

func TestHistoryCommandListsMostRecentFirst(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	srv := fakeGatewayServer(t)
	t.Setenv("CLAUSESENSE_GATEWAY_URL", srv.URL)

	out, err := executeCommand(rootCmd, "history")
	if err != nil {
		t.Fatalf("history command error: %v", err)
	}
	if !strings.Contains(out, "Uploaded nda.pdf") {
		t.Errorf("expected upload entry in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Analyzed contract") {
		t.Errorf("expected analyze entry in output, got:\n%s", out)
	}
	// The analyze at 10:01 happened after the upload at 10:00 and must
	// be printed first.
	if strings.Index(out, "Analyzed contract") > strings.Index(out, "Uploaded nda.pdf") {
		t.Errorf("entries must be most-recent-first, got:\n%s", out)
	}
}

func TestHistoryCommandLimitKeepsNewestEntries(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	srv := fakeGatewayServer(t)
	t.Setenv("CLAUSESENSE_GATEWAY_URL", srv.URL)

	out, err := executeCommand(rootCmd, "history", "-n", "1")
	if err != nil {
		t.Fatalf("history command error: %v", err)
	}
	if !strings.Contains(out, "Analyzed contract") {
		t.Errorf("limit must keep the newest entry, got:\n%s", out)
	}
	if strings.Contains(out, "Uploaded nda.pdf") {
		t.Errorf("limit 1 must drop the older entry, got:\n%s", out)
	}
	historyLimit = 0 // reset for other tests
}

func TestFeedbackCommandValidatesRating(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	srv := fakeGatewayServer(t)
	t.Setenv("CLAUSESENSE_GATEWAY_URL", srv.URL)

	_, err := executeCommand(rootCmd, "feedback", "doc-12345678", "--rating", "9")
	if err == nil {
		t.Fatal("expected error for out-of-range rating")
	}

	out, err := executeCommand(rootCmd, "feedback", "doc-12345678", "--rating", "4", "-m", "helpful")
	if err != nil {
		t.Fatalf("feedback command error: %v", err)
	}
	if !strings.Contains(out, "Feedback recorded") {
		t.Errorf("expected confirmation, got:\n%s", out)
	}
}
