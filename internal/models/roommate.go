package models

import (
	"time"
)

// LifestyleLevel is the three-step scale used for cleanliness and guest
// frequency.
type LifestyleLevel string

const (
	LifestyleLow    LifestyleLevel = "low"
	LifestyleMedium LifestyleLevel = "medium"
	LifestyleHigh   LifestyleLevel = "high"
)

// IsValid checks if the lifestyle level is valid.
func (l LifestyleLevel) IsValid() bool {
	switch l {
	case LifestyleLow, LifestyleMedium, LifestyleHigh:
		return true
	}
	return false
}

// SleepSchedule is the three-step scale used for sleep timing.
type SleepSchedule string

const (
	SleepEarly  SleepSchedule = "early"
	SleepMedium SleepSchedule = "medium"
	SleepLate   SleepSchedule = "late"
)

// IsValid checks if the sleep schedule is valid.
func (s SleepSchedule) IsValid() bool {
	switch s {
	case SleepEarly, SleepMedium, SleepLate:
		return true
	}
	return false
}

// Dealbreaker is a hard requirement a person or group holds about a place.
type Dealbreaker string

const (
	DealbreakerPetFree     Dealbreaker = "pet-free"
	DealbreakerSmokingFree Dealbreaker = "smoking-free"
	DealbreakerQuiet       Dealbreaker = "quiet"
)

// ValidDealbreakers returns all valid dealbreaker values.
func ValidDealbreakers() []Dealbreaker {
	return []Dealbreaker{
		DealbreakerPetFree,
		DealbreakerSmokingFree,
		DealbreakerQuiet,
	}
}

// IsValid checks if the dealbreaker is valid.
func (d Dealbreaker) IsValid() bool {
	for _, valid := range ValidDealbreakers() {
		if d == valid {
			return true
		}
	}
	return false
}

// RoommateProfile represents a person seeking a roommate. Profiles are
// immutable inputs to the compatibility ranker.
type RoommateProfile struct {
	ID           int64          `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Email        string         `json:"email,omitempty" db:"email"`
	BudgetMin    float64        `json:"budget_min" db:"budget_min"`
	BudgetMax    float64        `json:"budget_max" db:"budget_max"`
	MoveInMonth  string         `json:"move_in_month" db:"move_in_month"`
	Dealbreakers []Dealbreaker  `json:"dealbreakers" db:"dealbreakers"`
	Cleanliness  LifestyleLevel `json:"cleanliness" db:"cleanliness"`
	Sleep        SleepSchedule  `json:"sleep" db:"sleep"`
	Guests       LifestyleLevel `json:"guests" db:"guests"`
	Bio          string         `json:"bio,omitempty" db:"bio"`
	Latitude     float64        `json:"latitude,omitempty" db:"latitude"`
	Longitude    float64        `json:"longitude,omitempty" db:"longitude"`
	Geohash      string         `json:"geohash,omitempty" db:"geohash"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
	IsActive     bool           `json:"is_active" db:"is_active"`
}

// HasDealbreaker reports whether the profile carries the given dealbreaker.
func (p *RoommateProfile) HasDealbreaker(d Dealbreaker) bool {
	for _, have := range p.Dealbreakers {
		if have == d {
			return true
		}
	}
	return false
}

// RoommateProfileCreate represents the data needed to create a new profile.
type RoommateProfileCreate struct {
	Name         string         `json:"name" validate:"required,min=1,max=100"`
	Email        string         `json:"email,omitempty"`
	BudgetMin    float64        `json:"budget_min" validate:"gte=0"`
	BudgetMax    float64        `json:"budget_max" validate:"gte=0"`
	MoveInMonth  string         `json:"move_in_month"`
	Dealbreakers []Dealbreaker  `json:"dealbreakers"`
	Cleanliness  LifestyleLevel `json:"cleanliness" validate:"required"`
	Sleep        SleepSchedule  `json:"sleep" validate:"required"`
	Guests       LifestyleLevel `json:"guests" validate:"required"`
	Bio          string         `json:"bio,omitempty"`
	Latitude     float64        `json:"latitude,omitempty"`
	Longitude    float64        `json:"longitude,omitempty"`
	Geohash      string         `json:"geohash,omitempty"`
}
