package mediator

import (
	"testing"

	"github.com/google/uuid"
)

func TestFallbackOrder_PreservesInputOrder(t *testing.T) {
	candidates := []Candidate{
		{ID: uuid.New()},
		{ID: uuid.New()},
		{ID: uuid.New()},
	}

	ranked := FallbackOrder(candidates)

	if len(ranked) != len(candidates) {
		t.Fatalf("expected %d ranked, got %d", len(candidates), len(ranked))
	}
	for i, r := range ranked {
		if r.ID != candidates[i].ID {
			t.Fatalf("order changed at %d", i)
		}
		if r.Reason != FallbackReason {
			t.Fatalf("unexpected reason %q", r.Reason)
		}
	}
}

func TestFallbackOrder_EmptyInput(t *testing.T) {
	ranked := FallbackOrder(nil)
	if len(ranked) != 0 {
		t.Fatalf("expected empty result, got %d", len(ranked))
	}
}

func TestValidOrdering(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	candidates := []Candidate{{ID: a}, {ID: b}}

	cases := []struct {
		name   string
		ranked []RankedCandidate
		want   bool
	}{
		{"complete", []RankedCandidate{{ID: b}, {ID: a}}, true},
		{"missing", []RankedCandidate{{ID: a}}, false},
		{"duplicate", []RankedCandidate{{ID: a}, {ID: a}}, false},
		{"unknown id", []RankedCandidate{{ID: a}, {ID: uuid.New()}}, false},
	}
	for _, tc := range cases {
		if got := ValidOrdering(candidates, tc.ranked); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
