package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrInvalidListingType = errors.New("invalid listing type")
	ErrInvalidLifestyle   = errors.New("invalid lifestyle level")
	ErrInvalidSleep       = errors.New("invalid sleep schedule")
	ErrInvalidDealbreaker = errors.New("invalid dealbreaker")
	ErrInvalidBudget      = errors.New("budget range is invalid")
	ErrInvalidRent        = errors.New("rent cannot be negative")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrEmptyName          = errors.New("name cannot be empty")
)

// Canonical feature strings used by the fit classifier. Upstream listing
// features are free text drawn loosely from this vocabulary plus synonyms.
const (
	FeaturePetFree        = "pet-free"
	FeaturePetFriendly    = "pet-friendly"
	FeatureSmokingFree    = "smoking-free"
	FeatureSmokingAllowed = "smoking-allowed"
	FeatureQuiet          = "quiet"
)

// NormalizeFeature converts free-text listing feature strings to the
// canonical vocabulary. Unrecognized features are returned lowercased and
// are simply ignored by the classifier.
func NormalizeFeature(feature string) string {
	normalized := strings.ToLower(strings.TrimSpace(feature))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")

	featureMap := map[string]string{
		"pet-free":         FeaturePetFree,
		"no-pets":          FeaturePetFree,
		"pets-not-allowed": FeaturePetFree,
		"pet-friendly":     FeaturePetFriendly,
		"pets-allowed":     FeaturePetFriendly,
		"pets-ok":          FeaturePetFriendly,
		"cats-ok":          FeaturePetFriendly,
		"dogs-ok":          FeaturePetFriendly,
		"smoking-free":     FeatureSmokingFree,
		"smoke-free":       FeatureSmokingFree,
		"no-smoking":       FeatureSmokingFree,
		"non-smoking":      FeatureSmokingFree,
		"smoking-allowed":  FeatureSmokingAllowed,
		"smoking-ok":       FeatureSmokingAllowed,
		"smoker-friendly":  FeatureSmokingAllowed,
		"quiet":            FeatureQuiet,
		"quiet-building":   FeatureQuiet,
		"quiet-street":     FeatureQuiet,
	}

	if mapped, ok := featureMap[normalized]; ok {
		return mapped
	}

	return normalized
}

// ValidateListingCreate validates listing creation data.
func ValidateListingCreate(l *ListingCreate) error {
	if strings.TrimSpace(l.Title) == "" {
		return ErrEmptyTitle
	}

	if l.Rent < 0 {
		return ErrInvalidRent
	}

	if !l.Type.IsValid() {
		return ErrInvalidListingType
	}

	return nil
}

// ValidateProfileCreate validates roommate profile creation data.
func ValidateProfileCreate(p *RoommateProfileCreate) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}

	if p.BudgetMin < 0 || p.BudgetMax < p.BudgetMin {
		return ErrInvalidBudget
	}

	if !p.Cleanliness.IsValid() {
		return ErrInvalidLifestyle
	}

	if !p.Sleep.IsValid() {
		return ErrInvalidSleep
	}

	if !p.Guests.IsValid() {
		return ErrInvalidLifestyle
	}

	for _, d := range p.Dealbreakers {
		if !d.IsValid() {
			return ErrInvalidDealbreaker
		}
	}

	return nil
}
