package rating

import (
	"math"
	"testing"
)

func TestUpdate_EqualRatings(t *testing.T) {
	got := Update(1500, 1500, ScoreWin)
	if got != 1512 {
		t.Fatalf("expected 1512, got %v", got)
	}
}

func TestUpdate_CriticalOpponent(t *testing.T) {
	got := Update(1500, 1700, ScoreWin)
	if got != 1518 {
		t.Fatalf("expected 1518, got %v", got)
	}
}

func TestUpdate_Deterministic(t *testing.T) {
	first := Update(1473, 1600, ScoreWin)
	for i := 0; i < 10; i++ {
		if got := Update(1473, 1600, ScoreWin); got != first {
			t.Fatalf("non-deterministic result: %v vs %v", got, first)
		}
	}
}

func TestUpdate_WinNeverDecreasesAgainstStrongerOpponent(t *testing.T) {
	for _, cur := range []float64{1200, 1400, 1500, 1650, 1800} {
		prev := -1.0
		for _, opp := range []float64{cur, cur + 100, cur + 200, cur + 400} {
			got := Update(cur, opp, ScoreWin)
			if got < cur {
				t.Fatalf("rating decreased on win: cur=%v opp=%v got=%v", cur, opp, got)
			}
			if got < prev {
				t.Fatalf("gain not monotonic in opponent rating: cur=%v opp=%v got=%v prev=%v", cur, opp, got, prev)
			}
			if got > cur+KFactor {
				t.Fatalf("gain exceeded k ceiling: cur=%v opp=%v got=%v", cur, opp, got)
			}
			prev = got
		}
	}
}

func TestUpdate_FiniteForFiniteInputs(t *testing.T) {
	for _, cur := range []float64{0, 1, 1500, 3000} {
		for _, opp := range []float64{0, 1400, 1700, 3000} {
			got := Update(cur, opp, ScoreWin)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("non-finite result for cur=%v opp=%v", cur, opp)
			}
		}
	}
}

func TestApplyCompletion_DefaultsUnratedSkillTo1500(t *testing.T) {
	out := ApplyCompletion(nil, []string{"Go"}, 1500)
	if out["Go"] != 1512 {
		t.Fatalf("expected unrated skill to start from %d, got %v", Default, out["Go"])
	}
}

func TestApplyCompletion_EmptySkillsIsNoop(t *testing.T) {
	in := map[string]float64{"SQL": 1600}

	out := ApplyCompletion(in, nil, 1400)
	if len(out) != 1 || out["SQL"] != 1600 {
		t.Fatalf("expected unchanged ratings, got %v", out)
	}

	out = ApplyCompletion(in, []string{}, 1400)
	if len(out) != 1 || out["SQL"] != 1600 {
		t.Fatalf("expected unchanged ratings, got %v", out)
	}
}

func TestApplyCompletion_BlankNamesSkipped(t *testing.T) {
	in := map[string]float64{"SQL": 1600}
	out := ApplyCompletion(in, []string{"", "   "}, 1500)
	if len(out) != 1 || out["SQL"] != 1600 {
		t.Fatalf("expected unchanged ratings, got %v", out)
	}
}

func TestApplyCompletion_TrimsAndDedupes(t *testing.T) {
	out := ApplyCompletion(map[string]float64{}, []string{"React", " React "}, 1600)
	if len(out) != 1 {
		t.Fatalf("expected a single rated skill, got %v", out)
	}
	want := Update(Default, 1600, ScoreWin)
	if out["React"] != want {
		t.Fatalf("expected one update to %v, got %v", want, out["React"])
	}
}

func TestApplyCompletion_LeavesUnusedSkillsUntouched(t *testing.T) {
	in := map[string]float64{"SQL": 1600, "Go": 1550}
	out := ApplyCompletion(in, []string{"Go"}, 1700)
	if out["SQL"] != 1600 {
		t.Fatalf("unused skill mutated: %v", out["SQL"])
	}
	if out["Go"] == 1550 {
		t.Fatalf("used skill not updated")
	}
	if in["Go"] != 1550 {
		t.Fatalf("input map mutated")
	}
}
