package models

// FitTag is the three-level classification of a listing against a housing
// group's constraints.
type FitTag string

const (
	FitGreat    FitTag = "Great"
	FitOK       FitTag = "OK"
	FitConflict FitTag = "Conflict"
)

// FitResult is the output of the unit-fit classifier. A listing is tagged
// Conflict whenever BadReasons is non-empty, regardless of how many good
// reasons it collected.
type FitResult struct {
	Tag         FitTag   `json:"tag"`
	GoodReasons []string `json:"good_reasons"`
	BadReasons  []string `json:"bad_reasons"`
}

// MatchResult is one scored roommate candidate. Reasons hold exactly one
// string per scoring dimension, in evaluation order; callers may truncate
// the list for display. Results are recomputed on every ranking request and
// never persisted.
type MatchResult struct {
	Profile RoommateProfile `json:"profile"`
	Score   int             `json:"score"`
	Reasons []string        `json:"reasons"`
}

// ListingFit pairs a listing with its fit classification for list views.
type ListingFit struct {
	Listing ListingSummary `json:"listing"`
	Fit     FitResult      `json:"fit"`
}
