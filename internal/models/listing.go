// Package models defines the data structures for the housing match engine.
package models

import (
	"time"
)

// ListingType represents whether a listing is a single room or a whole unit.
type ListingType string

const (
	ListingTypeRoom      ListingType = "room"
	ListingTypeWholeUnit ListingType = "whole-unit"
)

// ValidListingTypes returns all valid listing type values.
func ValidListingTypes() []ListingType {
	return []ListingType{
		ListingTypeRoom,
		ListingTypeWholeUnit,
	}
}

// IsValid checks if the listing type is valid.
func (t ListingType) IsValid() bool {
	for _, valid := range ValidListingTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

// Listing represents a rentable place or sublet opportunity.
// Rent of 0 means "not specified". Listings are immutable inputs to the
// fit classifier.
type Listing struct {
	ID            int64       `json:"id" db:"id"`
	Title         string      `json:"title" db:"title"`
	Rent          float64     `json:"rent" db:"rent"`
	Type          ListingType `json:"type" db:"type"`
	MoveInDate    string      `json:"move_in_date" db:"move_in_date"`
	Features      []string    `json:"features" db:"features"`
	Address       string      `json:"address,omitempty" db:"address"`
	Latitude      float64     `json:"latitude,omitempty" db:"latitude"`
	Longitude     float64     `json:"longitude,omitempty" db:"longitude"`
	Geohash       string      `json:"geohash,omitempty" db:"geohash"`
	ContactEmail  string      `json:"contact_email,omitempty" db:"contact_email"`
	SourceURL     string      `json:"source_url,omitempty" db:"source_url"`
	ImportBatchID string      `json:"import_batch_id,omitempty" db:"import_batch_id"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
	IsActive      bool        `json:"is_active" db:"is_active"`
}

// MoveInMonth returns the listing's move-in date truncated to YYYY-MM.
// An empty or shorter-than-month date string is returned as-is.
func (l *Listing) MoveInMonth() string {
	if len(l.MoveInDate) < 7 {
		return l.MoveInDate
	}
	return l.MoveInDate[:7]
}

// ListingCreate represents the data needed to create a new listing.
type ListingCreate struct {
	Title         string      `json:"title" validate:"required,min=1,max=200"`
	Rent          float64     `json:"rent" validate:"gte=0"`
	Type          ListingType `json:"type" validate:"required"`
	MoveInDate    string      `json:"move_in_date"`
	Features      []string    `json:"features"`
	Address       string      `json:"address,omitempty"`
	Latitude      float64     `json:"latitude,omitempty"`
	Longitude     float64     `json:"longitude,omitempty"`
	Geohash       string      `json:"geohash,omitempty"`
	ContactEmail  string      `json:"contact_email,omitempty"`
	SourceURL     string      `json:"source_url,omitempty"`
	ImportBatchID string      `json:"import_batch_id,omitempty"`
}

// ListingSummary is a lightweight view of a listing for map pins and lists.
type ListingSummary struct {
	ID         int64       `json:"id"`
	Title      string      `json:"title"`
	Rent       float64     `json:"rent"`
	Type       ListingType `json:"type"`
	MoveInDate string      `json:"move_in_date"`
	Latitude   float64     `json:"latitude,omitempty"`
	Longitude  float64     `json:"longitude,omitempty"`
	Geohash    string      `json:"geohash,omitempty"`
}

// ToSummary converts a Listing to ListingSummary.
func (l *Listing) ToSummary() ListingSummary {
	return ListingSummary{
		ID:         l.ID,
		Title:      l.Title,
		Rent:       l.Rent,
		Type:       l.Type,
		MoveInDate: l.MoveInDate,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		Geohash:    l.Geohash,
	}
}

// BulkInsertResult contains the results of a bulk insert operation.
type BulkInsertResult struct {
	InsertedCount int      `json:"inserted_count"`
	FailedCount   int      `json:"failed_count"`
	Errors        []string `json:"errors,omitempty"`
}
