package ranking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskmesh/internal/config"
	"taskmesh/internal/domain/assignment"
	"taskmesh/internal/domain/mediator"

	"github.com/google/uuid"
)

func TestNewLLMClient_NoKeyDisables(t *testing.T) {
	if c := NewLLMClient(config.RankingConfig{}, nil); c != nil {
		t.Fatalf("expected nil client without api key")
	}
}

func TestRank_ParsesOrdering(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}

		content := `[{"id":"` + b.String() + `","reason":"stronger rating"},{"id":"` + a.String() + `","reason":"lighter workload"}]`
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewLLMClient(config.RankingConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, nil)

	ranked, err := c.Rank(context.Background(), assignment.Assignment{Title: "build api"}, []mediator.Candidate{{ID: a}, {ID: b}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 2 || ranked[0].ID != b || ranked[1].ID != a {
		t.Fatalf("unexpected ordering: %v", ranked)
	}
	if ranked[0].Reason != "stronger rating" {
		t.Fatalf("unexpected reason: %q", ranked[0].Reason)
	}
}

func TestRank_ServerErrorSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewLLMClient(config.RankingConfig{APIKey: "k", BaseURL: srv.URL}, nil)
	if _, err := c.Rank(context.Background(), assignment.Assignment{}, []mediator.Candidate{{ID: uuid.New()}}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseOrdering_CodeFence(t *testing.T) {
	id := uuid.New()
	content := "```json\n[{\"id\":\"" + id.String() + "\",\"reason\":\"fit\"}]\n```"

	ranked, err := parseOrdering(content)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 1 || ranked[0].ID != id {
		t.Fatalf("unexpected result: %v", ranked)
	}
}

func TestParseOrdering_Malformed(t *testing.T) {
	if _, err := parseOrdering("not json"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := parseOrdering("[]"); err == nil {
		t.Fatalf("expected error for empty array")
	}
}
