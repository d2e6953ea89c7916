package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housing-match-engine/internal/models"
)

// mockListing creates a test listing with default values
func mockListing(overrides map[string]interface{}) models.Listing {
	listing := models.Listing{
		ID:         1,
		Title:      "Sunny room near campus",
		Rent:       750,
		Type:       models.ListingTypeRoom,
		MoveInDate: "2025-09-01",
		Features:   []string{},
		IsActive:   true,
	}

	if v, ok := overrides["rent"]; ok {
		listing.Rent = v.(float64)
	}
	if v, ok := overrides["type"]; ok {
		listing.Type = v.(models.ListingType)
	}
	if v, ok := overrides["move_in_date"]; ok {
		listing.MoveInDate = v.(string)
	}
	if v, ok := overrides["features"]; ok {
		listing.Features = v.([]string)
	}

	return listing
}

// mockUnit creates a test housing unit with one member whose constraints
// drive the derived budget and dealbreakers
func mockUnit(overrides map[string]interface{}) *models.HousingUnit {
	member := models.UnitMember{
		Name:      "Alex",
		BudgetMin: 600,
		BudgetMax: 900,
	}

	if v, ok := overrides["budget_min"]; ok {
		member.BudgetMin = v.(float64)
	}
	if v, ok := overrides["budget_max"]; ok {
		member.BudgetMax = v.(float64)
	}
	if v, ok := overrides["dealbreakers"]; ok {
		member.Dealbreakers = v.([]models.Dealbreaker)
	}

	unit := models.AddMember(models.HousingUnit{
		ID:          1,
		Name:        "Maple St group",
		MoveInMonth: "2025-09",
	}, member)

	if v, ok := overrides["move_in_month"]; ok {
		unit.MoveInMonth = v.(string)
	}
	if v, ok := overrides["extra_members"]; ok {
		for _, m := range v.([]models.UnitMember) {
			unit = models.AddMember(unit, m)
		}
	}

	return &unit
}

func TestClassifyFit_RoomWithinBudget(t *testing.T) {
	unit := mockUnit(map[string]interface{}{
		"dealbreakers": []models.Dealbreaker{models.DealbreakerPetFree},
	})
	listing := mockListing(nil)

	result := ClassifyFit(listing, unit)

	assert.Equal(t, models.FitGreat, result.Tag)
	assert.Contains(t, result.GoodReasons, "rent within budget")
	assert.Contains(t, result.GoodReasons, "move-in date matches")
	assert.Empty(t, result.BadReasons, "pet-free dealbreaker should stay silent with no pet stance declared")
}

func TestClassifyFit_RentExceedsBudget(t *testing.T) {
	unit := mockUnit(nil)
	listing := mockListing(map[string]interface{}{"rent": float64(1000)})

	result := ClassifyFit(listing, unit)

	assert.Equal(t, models.FitConflict, result.Tag, "conflict must dominate even with a move-in match")
	require.NotEmpty(t, result.BadReasons)
	assert.Contains(t, result.BadReasons[0], "rent exceeds max budget")
	assert.Contains(t, result.BadReasons[0], "100", "reason should carry the numeric overage")
}

func TestClassifyFit_RentBelowMinimum(t *testing.T) {
	unit := mockUnit(nil)
	listing := mockListing(map[string]interface{}{"rent": float64(500)})

	result := ClassifyFit(listing, unit)

	assert.Equal(t, models.FitGreat, result.Tag, "being under budget is never penalized")
	assert.Contains(t, result.GoodReasons[0], "good deal")
}

func TestClassifyFit_WholeUnitSplitRent(t *testing.T) {
	unit := mockUnit(map[string]interface{}{
		"budget_min": float64(700),
		"budget_max": float64(900),
		"extra_members": []models.UnitMember{
			{Name: "Sam", BudgetMin: 700, BudgetMax: 900},
			{Name: "Riley", BudgetMin: 700, BudgetMax: 900},
		},
	})
	require.Len(t, unit.Members, 3)

	listing := mockListing(map[string]interface{}{
		"type": models.ListingTypeWholeUnit,
		"rent": float64(2400),
	})

	result := ClassifyFit(listing, unit)

	assert.Equal(t, models.FitGreat, result.Tag)
	assert.Contains(t, result.GoodReasons[0], "$800/person")
}

func TestClassifyFit_WholeUnitSplitExceeds(t *testing.T) {
	unit := mockUnit(map[string]interface{}{
		"extra_members": []models.UnitMember{
			{Name: "Sam", BudgetMin: 600, BudgetMax: 900},
		},
	})

	listing := mockListing(map[string]interface{}{
		"type": models.ListingTypeWholeUnit,
		"rent": float64(2000),
	})

	result := ClassifyFit(listing, unit)

	assert.Equal(t, models.FitConflict, result.Tag)
	assert.Contains(t, result.BadReasons[0], "exceeds max budget")
}

func TestClassifyFit_MoveInMismatch(t *testing.T) {
	unit := mockUnit(map[string]interface{}{"move_in_month": "2025-10"})
	listing := mockListing(nil)

	result := ClassifyFit(listing, unit)

	assert.Equal(t, models.FitConflict, result.Tag)
	require.NotEmpty(t, result.BadReasons)
	assert.Contains(t, result.BadReasons[0], "2025-09")
	assert.Contains(t, result.BadReasons[0], "2025-10")
}

func TestClassifyFit_NilUnitNeutral(t *testing.T) {
	listing := mockListing(map[string]interface{}{
		"rent":     float64(99999),
		"features": []string{"pet-friendly", "smoking-allowed"},
	})

	result := ClassifyFit(listing, nil)

	assert.Equal(t, models.FitOK, result.Tag)
	assert.Empty(t, result.GoodReasons)
	assert.Empty(t, result.BadReasons)
}

func TestClassifyFit_ZeroMemberUnitNeutral(t *testing.T) {
	unit := &models.HousingUnit{ID: 9, Name: "empty", MoveInMonth: "2025-09"}
	listing := mockListing(nil)

	result := ClassifyFit(listing, unit)

	assert.Equal(t, models.FitOK, result.Tag)
	assert.Empty(t, result.GoodReasons)
	assert.Empty(t, result.BadReasons)
}

func TestClassifyFit_UnspecifiedRentSkipsRentCheck(t *testing.T) {
	unit := mockUnit(nil)
	listing := mockListing(map[string]interface{}{"rent": float64(0)})

	result := ClassifyFit(listing, unit)

	for _, r := range result.GoodReasons {
		assert.NotContains(t, r, "rent")
	}
	for _, r := range result.BadReasons {
		assert.NotContains(t, r, "rent")
	}
}

func TestClassifyFit_Dealbreakers(t *testing.T) {
	tests := []struct {
		name        string
		dealbreaker models.Dealbreaker
		features    []string
		wantTag     models.FitTag
		wantGood    int
		wantBad     int
	}{
		{"pet-free satisfied", models.DealbreakerPetFree, []string{"pet-free"}, models.FitGreat, 1, 0},
		{"pet-free violated", models.DealbreakerPetFree, []string{"pet-friendly"}, models.FitConflict, 0, 1},
		{"pet-free silent", models.DealbreakerPetFree, []string{"furnished"}, models.FitOK, 0, 0},
		{"pet synonym violated", models.DealbreakerPetFree, []string{"pets allowed"}, models.FitConflict, 0, 1},
		{"smoking violated", models.DealbreakerSmokingFree, []string{"smoking-allowed"}, models.FitConflict, 0, 1},
		{"smoking satisfied", models.DealbreakerSmokingFree, []string{"no smoking"}, models.FitGreat, 1, 0},
		{"smoking silent", models.DealbreakerSmokingFree, []string{}, models.FitOK, 0, 0},
		{"quiet satisfied", models.DealbreakerQuiet, []string{"quiet"}, models.FitGreat, 1, 0},
		{"quiet never violated", models.DealbreakerQuiet, []string{"smoking-allowed"}, models.FitOK, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			unit := mockUnit(map[string]interface{}{
				"move_in_month": "",
				"dealbreakers":  []models.Dealbreaker{tc.dealbreaker},
			})
			listing := mockListing(map[string]interface{}{
				"rent":     float64(0),
				"features": tc.features,
			})

			result := ClassifyFit(listing, unit)

			assert.Equal(t, tc.wantTag, result.Tag)
			assert.Len(t, result.GoodReasons, tc.wantGood)
			assert.Len(t, result.BadReasons, tc.wantBad)
		})
	}
}

func TestClassifyFit_ConflictDominance(t *testing.T) {
	unit := mockUnit(map[string]interface{}{
		"dealbreakers": []models.Dealbreaker{models.DealbreakerPetFree, models.DealbreakerQuiet},
	})
	listing := mockListing(map[string]interface{}{
		"features": []string{"pet-friendly", "quiet"},
	})

	result := ClassifyFit(listing, unit)

	assert.NotEmpty(t, result.GoodReasons, "rent, move-in and quiet all matched")
	assert.NotEmpty(t, result.BadReasons)
	assert.Equal(t, models.FitConflict, result.Tag, "any bad reason must force Conflict")
}

func TestClassifyFit_RentMonotonicity(t *testing.T) {
	unit := mockUnit(nil)

	// Decreasing rent within budget never degrades the tag.
	tagRank := map[models.FitTag]int{models.FitConflict: 0, models.FitOK: 1, models.FitGreat: 2}
	prev := -1
	for rent := 900.0; rent >= 600.0; rent -= 50 {
		listing := mockListing(map[string]interface{}{"rent": rent})
		result := ClassifyFit(listing, unit)
		if prev >= 0 {
			assert.GreaterOrEqual(t, tagRank[result.Tag], prev, "tag degraded as rent dropped to %.0f", rent)
		}
		prev = tagRank[result.Tag]
	}
}
