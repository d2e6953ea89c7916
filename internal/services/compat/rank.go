package compat

import (
	"fmt"
	"math"
	"sort"

	"housing-match-engine/internal/models"
)

// Dimension weights, in evaluation order. Every dimension adds its weight
// to the running maximum, so the final score is a clean percentage by
// construction.
const (
	weightMoveIn      = 30
	weightBudget      = 30
	weightLifestyle   = 10
	weightDealbreaker = 10
)

// lifestyleScale flattens the two three-step scales (cleanliness/guests on
// low/medium/high, sleep on early/medium/late) into one five-point ordinal
// line for adjacency comparisons. Known sharp edge: by position, "high"
// (guests) sits adjacent to "late" (sleep), which may not be the intended
// semantics. The behavior is locked in by tests; do not reorder.
var lifestyleScale = []string{"low", "early", "medium", "high", "late"}

func scalePos(value string) int {
	for i, v := range lifestyleScale {
		if v == value {
			return i
		}
	}
	return -1
}

// lifestylePoints awards full weight for an exact match, half for values
// at most one position apart on the combined scale, and nothing otherwise.
func lifestylePoints(a, b string) int {
	if a == b {
		return weightLifestyle
	}
	pa, pb := scalePos(a), scalePos(b)
	if pa < 0 || pb < 0 {
		return 0
	}
	diff := pa - pb
	if diff < 0 {
		diff = -diff
	}
	if diff <= 1 {
		return weightLifestyle / 2
	}
	return 0
}

func lifestyleReason(label, a, b string, points int) string {
	switch points {
	case weightLifestyle:
		return fmt.Sprintf("%s match (%s)", label, a)
	case weightLifestyle / 2:
		return fmt.Sprintf("%s are close (%s vs %s)", label, a, b)
	default:
		return fmt.Sprintf("%s clash (%s vs %s)", label, a, b)
	}
}

// ScorePair scores one seeker/candidate pair across six fixed-order
// dimensions and returns an integer 0-100 with one reason per dimension.
// Scoring is total: any two well-typed profiles produce a defined result,
// including degenerate zero-width budget ranges.
func ScorePair(seeker, other models.RoommateProfile) models.MatchResult {
	score := 0
	maxScore := 0
	reasons := make([]string, 0, 6)

	// 1. Move-in month: strict equality, no partial credit.
	maxScore += weightMoveIn
	if seeker.MoveInMonth == other.MoveInMonth {
		score += weightMoveIn
		reasons = append(reasons, fmt.Sprintf("move-in month matches (%s)", seeker.MoveInMonth))
	} else {
		reasons = append(reasons, fmt.Sprintf("move-in months differ (%s vs %s)", seeker.MoveInMonth, other.MoveInMonth))
	}

	// 2. Budget overlap, scaled by overlap width against the average of
	// the two range widths and capped at full credit.
	maxScore += weightBudget
	lo := math.Max(seeker.BudgetMin, other.BudgetMin)
	hi := math.Min(seeker.BudgetMax, other.BudgetMax)
	if lo > hi {
		reasons = append(reasons, "budgets have no overlap")
	} else {
		avgWidth := ((seeker.BudgetMax - seeker.BudgetMin) + (other.BudgetMax - other.BudgetMin)) / 2
		if avgWidth == 0 {
			avgWidth = 1
		}
		ratio := (hi - lo) / avgWidth
		if ratio > 1 {
			ratio = 1
		}
		score += int(math.Round(weightBudget * ratio))
		reasons = append(reasons, fmt.Sprintf("budgets overlap at $%.0f-$%.0f", lo, hi))
	}

	// 3-5. Lifestyle dimensions on the combined ordinal scale.
	pts := lifestylePoints(string(seeker.Cleanliness), string(other.Cleanliness))
	maxScore += weightLifestyle
	score += pts
	reasons = append(reasons, lifestyleReason("cleanliness levels", string(seeker.Cleanliness), string(other.Cleanliness), pts))

	pts = lifestylePoints(string(seeker.Sleep), string(other.Sleep))
	maxScore += weightLifestyle
	score += pts
	reasons = append(reasons, lifestyleReason("sleep schedules", string(seeker.Sleep), string(other.Sleep), pts))

	pts = lifestylePoints(string(seeker.Guests), string(other.Guests))
	maxScore += weightLifestyle
	score += pts
	reasons = append(reasons, lifestyleReason("guest habits", string(seeker.Guests), string(other.Guests), pts))

	// 6. Dealbreaker conflict. The only hard rule modeled today is quiet
	// vs frequent hosting; further dealbreaker x attribute combinations
	// need product guidance before being added here.
	maxScore += weightDealbreaker
	if seeker.HasDealbreaker(models.DealbreakerQuiet) && other.Guests == models.LifestyleHigh {
		reasons = append(reasons, "wants quiet but other hosts often")
	} else {
		score += weightDealbreaker
		reasons = append(reasons, "no dealbreaker conflicts")
	}

	return models.MatchResult{
		Profile: other,
		Score:   int(math.Round(100 * float64(score) / float64(maxScore))),
		Reasons: reasons,
	}
}

// RankCandidates scores every candidate against the seeker and returns the
// results sorted best-first. The seeker is excluded from the pool by
// identity before scoring; ties keep the input order (stable sort).
func RankCandidates(seeker models.RoommateProfile, candidates []models.RoommateProfile) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == seeker.ID {
			continue
		}
		results = append(results, ScorePair(seeker, c))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}
