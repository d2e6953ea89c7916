package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFeature(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"pet-free", FeaturePetFree},
		{"No Pets", FeaturePetFree},
		{"pets allowed", FeaturePetFriendly},
		{"Pet_Friendly", FeaturePetFriendly},
		{"smoke-free", FeatureSmokingFree},
		{"No Smoking", FeatureSmokingFree},
		{"smoking allowed", FeatureSmokingAllowed},
		{"QUIET", FeatureQuiet},
		{"quiet street", FeatureQuiet},
		{"furnished", "furnished"},
		{"  Washer/Dryer  ", "washer/dryer"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeFeature(tc.input), "input %q", tc.input)
	}
}

func TestValidateListingCreate(t *testing.T) {
	valid := &ListingCreate{Title: "Room near campus", Rent: 750, Type: ListingTypeRoom}
	assert.NoError(t, ValidateListingCreate(valid))

	assert.ErrorIs(t, ValidateListingCreate(&ListingCreate{Title: " ", Rent: 750, Type: ListingTypeRoom}), ErrEmptyTitle)
	assert.ErrorIs(t, ValidateListingCreate(&ListingCreate{Title: "x", Rent: -1, Type: ListingTypeRoom}), ErrInvalidRent)
	assert.ErrorIs(t, ValidateListingCreate(&ListingCreate{Title: "x", Rent: 0, Type: "mansion"}), ErrInvalidListingType)
}

func TestValidateProfileCreate(t *testing.T) {
	valid := &RoommateProfileCreate{
		Name:        "Jordan",
		BudgetMin:   600,
		BudgetMax:   900,
		Cleanliness: LifestyleMedium,
		Sleep:       SleepMedium,
		Guests:      LifestyleMedium,
	}
	assert.NoError(t, ValidateProfileCreate(valid))

	bad := *valid
	bad.BudgetMax = 100
	assert.ErrorIs(t, ValidateProfileCreate(&bad), ErrInvalidBudget)

	bad = *valid
	bad.Sleep = "midnight"
	assert.ErrorIs(t, ValidateProfileCreate(&bad), ErrInvalidSleep)

	bad = *valid
	bad.Dealbreakers = []Dealbreaker{"no-parties"}
	assert.ErrorIs(t, ValidateProfileCreate(&bad), ErrInvalidDealbreaker)
}
