package mediator

import (
	"context"

	"taskmesh/internal/domain/assignment"

	"github.com/google/uuid"
)

// FallbackReason is attached to every candidate when no ranking strategy is
// available or the configured one fails.
const FallbackReason = "ranking unavailable; candidates returned in submission order"

type RankedCandidate struct {
	ID     uuid.UUID
	Reason string
}

// Ranker orders candidates for a task. Implementations may fail; callers are
// expected to degrade to FallbackOrder rather than surface the error.
type Ranker interface {
	Rank(ctx context.Context, task assignment.Assignment, candidates []Candidate) ([]RankedCandidate, error)
}

// FallbackOrder returns every candidate exactly once, in input order, with
// the fixed fallback reason. It never fails.
func FallbackOrder(candidates []Candidate) []RankedCandidate {
	out := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, RankedCandidate{ID: c.ID, Reason: FallbackReason})
	}
	return out
}

// ValidOrdering reports whether ranked covers the candidate set exactly once.
// Orderings from an external strategy are checked before being trusted.
func ValidOrdering(candidates []Candidate, ranked []RankedCandidate) bool {
	if len(ranked) != len(candidates) {
		return false
	}
	want := make(map[uuid.UUID]struct{}, len(candidates))
	for _, c := range candidates {
		want[c.ID] = struct{}{}
	}
	for _, r := range ranked {
		if _, ok := want[r.ID]; !ok {
			return false
		}
		delete(want, r.ID)
	}
	return len(want) == 0
}
