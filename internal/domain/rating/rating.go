package rating

import (
	"math"
	"strings"
)

const (
	// Default is the rating assumed for a skill that has never been rated.
	Default = 1500

	// KFactor bounds how far a single completed task can move a rating.
	KFactor = 24

	// ScoreWin is the score fed into the formula on task completion. A
	// completed task always counts as a win; 0 and 0.5 are meaningful to
	// the formula but nothing in the system produces them today.
	ScoreWin = 1.0
)

// Expected returns the expected score of a player against an opponent on the
// standard Elo curve.
func Expected(player, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-player)/400))
}

// Update computes the post-task rating for a single skill. The result is
// rounded half-up to the nearest integer.
func Update(current, opponent, score float64) float64 {
	return math.Round(current + KFactor*(score-Expected(current, opponent)))
}

// ApplyCompletion returns a new rating map reflecting a completed task.
// Every skill in skillsUsed is trimmed; empty names are skipped and repeated
// names are applied once. Skills the task did not use keep their ratings
// untouched. A nil or empty skillsUsed returns the input map as-is.
func ApplyCompletion(ratings map[string]float64, skillsUsed []string, opponent float64) map[string]float64 {
	if len(skillsUsed) == 0 {
		return ratings
	}

	out := make(map[string]float64, len(ratings)+len(skillsUsed))
	for k, v := range ratings {
		out[k] = v
	}

	seen := make(map[string]struct{}, len(skillsUsed))
	for _, raw := range skillsUsed {
		skill := strings.TrimSpace(raw)
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}

		current, ok := out[skill]
		if !ok {
			current = Default
		}
		out[skill] = Update(current, opponent, ScoreWin)
	}

	if len(seen) == 0 {
		return ratings
	}
	return out
}
