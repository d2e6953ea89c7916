package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"housing-match-engine/internal/models"
)

// ProfileRepository handles roommate profile database operations.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new roommate profile into the database.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.RoommateProfileCreate) (int64, error) {
	dealbreakersJSON, err := json.Marshal(profile.Dealbreakers)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal dealbreakers: %w", err)
	}

	query := `
		INSERT INTO roommate_profiles (
			name, email, budget_min, budget_max, move_in_month, dealbreakers,
			cleanliness, sleep, guests, bio, latitude, longitude, geohash,
			created_at, updated_at, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14, true)
		RETURNING id`

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		profile.Name,
		profile.Email,
		profile.BudgetMin,
		profile.BudgetMax,
		profile.MoveInMonth,
		string(dealbreakersJSON),
		string(profile.Cleanliness),
		string(profile.Sleep),
		string(profile.Guests),
		profile.Bio,
		profile.Latitude,
		profile.Longitude,
		profile.Geohash,
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create profile: %w", err)
	}

	return id, nil
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.RoommateProfile, error) {
	query := profileSelect + ` WHERE id = $1`

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("profile %d not found", id)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// GetAllActive retrieves all active roommate profiles. These form the
// candidate pool for the compatibility ranker.
func (r *ProfileRepository) GetAllActive(ctx context.Context) ([]*models.RoommateProfile, error) {
	query := profileSelect + ` WHERE is_active = true ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.RoommateProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// Deactivate soft-deletes a profile.
func (r *ProfileRepository) Deactivate(ctx context.Context, id int64) error {
	affected, err := r.db.ExecContext(ctx,
		`UPDATE roommate_profiles SET is_active = false, updated_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to deactivate profile: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %d not found", id)
	}
	return nil
}

const profileSelect = `
	SELECT id, name, email, budget_min, budget_max, move_in_month, dealbreakers,
	       cleanliness, sleep, guests, bio, latitude, longitude, geohash,
	       created_at, updated_at, is_active
	FROM roommate_profiles`

func scanProfile(row pgx.Row) (*models.RoommateProfile, error) {
	var profile models.RoommateProfile
	var dealbreakersJSON, cleanliness, sleep, guests string

	err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&profile.BudgetMin,
		&profile.BudgetMax,
		&profile.MoveInMonth,
		&dealbreakersJSON,
		&cleanliness,
		&sleep,
		&guests,
		&profile.Bio,
		&profile.Latitude,
		&profile.Longitude,
		&profile.Geohash,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.IsActive,
	)
	if err != nil {
		return nil, err
	}

	profile.Cleanliness = models.LifestyleLevel(cleanliness)
	profile.Sleep = models.SleepSchedule(sleep)
	profile.Guests = models.LifestyleLevel(guests)
	if dealbreakersJSON != "" {
		if err := json.Unmarshal([]byte(dealbreakersJSON), &profile.Dealbreakers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dealbreakers: %w", err)
		}
	}

	return &profile, nil
}
