package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/curie-network/curie/internal/api"
	"github.com/curie-network/curie/internal/app/recognition"
	"github.com/curie-network/curie/internal/app/reward"
	"github.com/curie-network/curie/internal/app/scoring"
	"github.com/curie-network/curie/internal/infra/ledgerstore"
	"github.com/curie-network/curie/internal/infra/sqlite"
)

// testServer wires a full server over temp storage.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := ledgerstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	launch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ledger, err := recognition.NewService(store, launch)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	srv := api.NewServer(scoring.NewEngine(), reward.NewAllocator(100), ledger, db, 1)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts := testServer(t)
	var body map[string]string
	resp := getJSON(t, ts, "/health", &body)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("unexpected health response: %d %v", resp.StatusCode, body)
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts, "/api/evaluate", map[string]string{
		"title":       "Novel experiment on superconductivity",
		"description": "We describe a novel experiment with significant evidence of a new mechanism. Data was replicated. This discovery could transform the field.",
		"evidence":    "Dataset with DOI, code repository, replicated measurement protocol.",
		"category":    "physics",
		"contributor": "alice",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var eval struct {
		SubmissionID string  `json:"submission_id"`
		OverallScore float64 `json:"overall_score"`
		Status       string  `json:"status"`
	}
	if err := json.Unmarshal(body, &eval); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if eval.SubmissionID == "" {
		t.Error("server must assign a submission id when absent")
	}
	if eval.OverallScore < 0 || eval.OverallScore > 1 {
		t.Errorf("overall out of range: %v", eval.OverallScore)
	}
}

func TestEvaluateEndpoint_ValidationListsViolations(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts, "/api/evaluate", map[string]string{
		"title": "", "description": "", "category": "",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var payload struct {
		Violations []string `json:"violations"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Violations) != 3 {
		t.Errorf("expected 3 violations listed, got %v", payload.Violations)
	}
}

func TestAllocateEndpoint(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts, "/api/allocate", map[string]any{
		"evaluation": map[string]any{
			"submission_id": "sub-1",
			"overall_score": 0.825,
			"status":        "approved",
			"scores": map[string]float64{
				"novelty": 0.9, "significance": 0.85, "verification": 0.8, "documentation": 0.75,
			},
		},
		"epoch": 1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	var alloc struct {
		TotalTokens float64 `json:"total_tokens"`
	}
	if err := json.Unmarshal(body, &alloc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if alloc.TotalTokens != 190.75 {
		t.Errorf("reference scenario total: expected 190.75, got %v", alloc.TotalTokens)
	}
}

func TestAllocateBatchEndpoint_SkipsRejected(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts, "/api/allocate/batch", map[string]any{
		"evaluations": []map[string]any{
			{"submission_id": "a", "overall_score": 0.9, "status": "excellent"},
			{"submission_id": "b", "overall_score": 0.7, "status": "rejected"},
			{"submission_id": "c", "overall_score": 0.6, "status": "good"},
		},
		"epoch": 1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	var result struct {
		Summary struct {
			Successful int `json:"successful_allocations"`
			Failed     int `json:"failed_allocations"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Summary.Successful != 2 || result.Summary.Failed != 0 {
		t.Errorf("expected 2 successful / 0 failed, got %+v", result.Summary)
	}
}

func TestContributionAndQueries(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts, "/api/contributions", map[string]any{
		"contributor_id":  "alice",
		"category":        "physics",
		"submission_date": "2024-01-05",
		"coherence_score": 0.9,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	var rec struct {
		Update struct {
			SubmissionOrder  int    `json:"submission_order"`
			RecognitionLevel string `json:"recognition_level"`
		} `json:"update"`
		Durable bool `json:"durable"`
	}
	if err := json.Unmarshal(body, &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Update.SubmissionOrder != 1 || !rec.Durable {
		t.Errorf("unexpected contribution response: %+v", rec)
	}
	if rec.Update.RecognitionLevel != "legendary_pioneer" {
		t.Errorf("first contributor should be legendary_pioneer, got %s", rec.Update.RecognitionLevel)
	}

	// Contributor lookup
	var contributor struct {
		SubmissionOrder int `json:"submission_order"`
	}
	if resp := getJSON(t, ts, "/api/contributors/alice", &contributor); resp.StatusCode != http.StatusOK {
		t.Fatalf("contributor lookup failed: %d", resp.StatusCode)
	}
	if contributor.SubmissionOrder != 1 {
		t.Errorf("expected order 1, got %d", contributor.SubmissionOrder)
	}

	// Unknown contributor → 404
	if resp := getJSON(t, ts, "/api/contributors/ghost", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown contributor, got %d", resp.StatusCode)
	}

	// Leaderboard and legacy
	var board []map[string]any
	getJSON(t, ts, "/api/leaderboard?limit=5", &board)
	if len(board) != 1 {
		t.Errorf("expected 1 leaderboard entry, got %d", len(board))
	}
	var legacy []struct {
		LegacyStatus string `json:"legacy_status"`
	}
	getJSON(t, ts, "/api/legacy", &legacy)
	if len(legacy) != 1 || legacy[0].LegacyStatus != "Genesis Contributor" {
		t.Errorf("unexpected legacy response: %+v", legacy)
	}
}

func TestBadgeCatalogEndpoint(t *testing.T) {
	ts := testServer(t)
	var catalog []map[string]any
	getJSON(t, ts, "/api/badges", &catalog)
	if len(catalog) != 5 {
		t.Errorf("expected 5 badge definitions, got %d", len(catalog))
	}
}

func TestVerifyEndpoint_NovelAgainstEmptyArchive(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts, "/api/verify", map[string]string{
		"title":       "A novel result nobody archived before",
		"description": "Entirely fresh content with no archived counterpart in the corpus.",
		"category":    "biology",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	var result struct {
		IsNovel bool `json:"is_novel"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.IsNovel {
		t.Error("empty archive must yield novel")
	}
}

func TestHistoryEndpoints(t *testing.T) {
	ts := testServer(t)

	// Generate one evaluation so history is non-empty.
	postJSON(t, ts, "/api/evaluate", map[string]string{
		"title":       "History test title",
		"description": "A description long enough to score without being rejected by validation.",
		"category":    "misc",
	})

	var evals []map[string]any
	if resp := getJSON(t, ts, "/api/history/evaluations", &evals); resp.StatusCode != http.StatusOK {
		t.Fatalf("history failed: %d", resp.StatusCode)
	}
	if len(evals) != 1 {
		t.Errorf("expected 1 history row, got %d", len(evals))
	}
}

func TestArchiveDocumentUpload(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts, "/api/archive/documents", map[string]string{
		"title":    "Archived paper",
		"abstract": "Abstract text for the archived paper goes here.",
		"category": "physics",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	var doc struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.ID == "" {
		t.Error("server must assign a document id when absent")
	}
}

func TestLeaderboardLimitParsing(t *testing.T) {
	ts := testServer(t)
	for i := 0; i < 4; i++ {
		postJSON(t, ts, "/api/contributions", map[string]any{
			"contributor_id":  fmt.Sprintf("c-%d", i),
			"category":        "misc",
			"submission_date": "2024-01-10",
			"coherence_score": 0.8,
		})
	}
	var board []map[string]any
	getJSON(t, ts, "/api/leaderboard?limit=2", &board)
	if len(board) != 2 {
		t.Errorf("expected limit 2 applied, got %d", len(board))
	}
}
