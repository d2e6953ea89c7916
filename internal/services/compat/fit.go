// Package compat implements the pure compatibility scoring core: the
// unit-fit classifier and the roommate compatibility ranker. Both are
// side-effect free and safe to call concurrently.
package compat

import (
	"fmt"
	"math"

	"housing-match-engine/internal/models"
)

// ClassifyFit tags a listing Great, OK, or Conflict against a housing
// group's constraints and explains the tag with human-readable reasons.
// A nil unit, or a unit with no members, yields a neutral OK with empty
// reason lists. A single bad reason makes the tag Conflict no matter how
// many good reasons were collected.
func ClassifyFit(listing models.Listing, unit *models.HousingUnit) models.FitResult {
	result := models.FitResult{
		Tag:         models.FitOK,
		GoodReasons: []string{},
		BadReasons:  []string{},
	}

	if unit == nil || len(unit.Members) == 0 {
		return result
	}

	checkRent(listing, unit, &result)
	checkMoveIn(listing, unit, &result)
	checkDealbreakers(listing, unit, &result)

	if len(result.BadReasons) > 0 {
		result.Tag = models.FitConflict
	} else if len(result.GoodReasons) > 0 {
		result.Tag = models.FitGreat
	}

	return result
}

// checkRent applies the three-way budget rule. Being under budget is never
// penalized. Whole-unit listings compare the rent split evenly across the
// group members, rounded to the nearest dollar. Rent 0 means "not
// specified" and emits no reason at all.
func checkRent(listing models.Listing, unit *models.HousingUnit, result *models.FitResult) {
	if listing.Rent <= 0 {
		return
	}

	if listing.Type == models.ListingTypeWholeUnit {
		members := len(unit.Members)
		if members < 1 {
			members = 1
		}
		perPerson := math.Round(listing.Rent / float64(members))

		switch {
		case perPerson > unit.BudgetMax:
			result.BadReasons = append(result.BadReasons,
				fmt.Sprintf("split rent ~$%.0f/person exceeds max budget by $%.0f", perPerson, perPerson-unit.BudgetMax))
		case perPerson < unit.BudgetMin:
			result.GoodReasons = append(result.GoodReasons,
				fmt.Sprintf("split rent ~$%.0f/person is below minimum budget - good deal", perPerson))
		default:
			result.GoodReasons = append(result.GoodReasons,
				fmt.Sprintf("split rent ~$%.0f/person is within budget", perPerson))
		}
		return
	}

	switch {
	case listing.Rent > unit.BudgetMax:
		result.BadReasons = append(result.BadReasons,
			fmt.Sprintf("rent exceeds max budget by $%.0f", listing.Rent-unit.BudgetMax))
	case listing.Rent < unit.BudgetMin:
		result.GoodReasons = append(result.GoodReasons,
			"rent is below minimum budget - good deal")
	default:
		result.GoodReasons = append(result.GoodReasons, "rent within budget")
	}
}

// checkMoveIn is a strict year-month equality test: roommates must
// coordinate lease start, so "close" months earn no partial credit.
func checkMoveIn(listing models.Listing, unit *models.HousingUnit, result *models.FitResult) {
	if listing.MoveInDate == "" || unit.MoveInMonth == "" {
		return
	}

	month := listing.MoveInMonth()
	if month == unit.MoveInMonth {
		result.GoodReasons = append(result.GoodReasons, "move-in date matches")
		return
	}

	result.BadReasons = append(result.BadReasons,
		fmt.Sprintf("move-in %s does not match the group's target %s", month, unit.MoveInMonth))
}

// checkDealbreakers evaluates each flag in the unit's dealbreaker set
// independently. Absence of information stays silent: a listing that
// declares no pet stance neither satisfies nor violates pet-free.
func checkDealbreakers(listing models.Listing, unit *models.HousingUnit, result *models.FitResult) {
	features := make(map[string]bool, len(listing.Features))
	for _, f := range listing.Features {
		features[models.NormalizeFeature(f)] = true
	}

	for _, d := range unit.Dealbreakers {
		switch d {
		case models.DealbreakerPetFree:
			if features[models.FeaturePetFree] {
				result.GoodReasons = append(result.GoodReasons, "pet-free, as the group requires")
			} else if features[models.FeaturePetFriendly] {
				result.BadReasons = append(result.BadReasons, "allows pets but the group requires pet-free")
			}
		case models.DealbreakerSmokingFree:
			if features[models.FeatureSmokingAllowed] {
				result.BadReasons = append(result.BadReasons, "allows smoking but the group requires smoking-free")
			} else if features[models.FeatureSmokingFree] {
				result.GoodReasons = append(result.GoodReasons, "smoking-free, as the group requires")
			}
		case models.DealbreakerQuiet:
			// Quiet is never inferred as violated; only its presence counts.
			if features[models.FeatureQuiet] {
				result.GoodReasons = append(result.GoodReasons, "advertised as quiet")
			}
		}
	}
}
