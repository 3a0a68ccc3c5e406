package assignment

import "testing"

func TestOpponentRating(t *testing.T) {
	cases := []struct {
		imp  Importance
		want float64
	}{
		{ImportanceLow, 1400},
		{ImportanceMedium, 1500},
		{ImportanceHigh, 1600},
		{ImportanceCritical, 1700},
		{Importance("urgent"), 1500},
		{Importance(""), 1500},
	}
	for _, tc := range cases {
		if got := OpponentRating(tc.imp); got != tc.want {
			t.Fatalf("OpponentRating(%q) = %v, want %v", tc.imp, got, tc.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCompleted, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusInProgress, StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
