package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"housing-match-engine/internal/models"
)

// ListingRepository handles listing database operations.
type ListingRepository struct {
	db *DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create inserts a new listing into the database.
func (r *ListingRepository) Create(ctx context.Context, listing *models.ListingCreate) (int64, error) {
	featuresJSON, err := json.Marshal(listing.Features)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal features: %w", err)
	}

	query := `
		INSERT INTO listings (
			title, rent, type, move_in_date, features, address,
			latitude, longitude, geohash, contact_email, source_url,
			import_batch_id, created_at, updated_at, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13, true)
		RETURNING id`

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		listing.Title,
		listing.Rent,
		string(listing.Type),
		listing.MoveInDate,
		string(featuresJSON),
		listing.Address,
		listing.Latitude,
		listing.Longitude,
		listing.Geohash,
		listing.ContactEmail,
		listing.SourceURL,
		listing.ImportBatchID,
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create listing: %w", err)
	}

	return id, nil
}

// BulkInsert inserts multiple listings into the database, deduplicating on
// source URL so repeated rental-API syncs stay idempotent.
func (r *ListingRepository) BulkInsert(ctx context.Context, listings []*models.ListingCreate) (*models.BulkInsertResult, error) {
	result := &models.BulkInsertResult{
		Errors: []string{},
	}

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, listing := range listings {
			featuresJSON, err := json.Marshal(listing.Features)
			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("listing %s: %v", listing.Title, err))
				continue
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO listings (
					title, rent, type, move_in_date, features, address,
					latitude, longitude, geohash, contact_email, source_url,
					import_batch_id, created_at, updated_at, is_active
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13, true)
				ON CONFLICT (source_url) WHERE source_url <> '' DO UPDATE SET
					title = EXCLUDED.title,
					rent = EXCLUDED.rent,
					move_in_date = EXCLUDED.move_in_date,
					features = EXCLUDED.features,
					import_batch_id = EXCLUDED.import_batch_id,
					updated_at = EXCLUDED.updated_at`,
				listing.Title,
				listing.Rent,
				string(listing.Type),
				listing.MoveInDate,
				string(featuresJSON),
				listing.Address,
				listing.Latitude,
				listing.Longitude,
				listing.Geohash,
				listing.ContactEmail,
				listing.SourceURL,
				listing.ImportBatchID,
				time.Now().UTC(),
			)

			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("listing %s: %v", listing.Title, err))
			} else {
				result.InsertedCount++
			}
		}
		return nil
	})

	if err != nil {
		return result, fmt.Errorf("bulk insert failed: %w", err)
	}

	return result, nil
}

// GetByID retrieves a listing by its ID.
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	query := `
		SELECT id, title, rent, type, move_in_date, features, address,
		       latitude, longitude, geohash, contact_email, source_url,
		       import_batch_id, created_at, updated_at, is_active
		FROM listings
		WHERE id = $1`

	listing, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("listing %d not found", id)
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return listing, nil
}

// GetAllActive retrieves all active listings.
func (r *ListingRepository) GetAllActive(ctx context.Context) ([]*models.Listing, error) {
	query := `
		SELECT id, title, rent, type, move_in_date, features, address,
		       latitude, longitude, geohash, contact_email, source_url,
		       import_batch_id, created_at, updated_at, is_active
		FROM listings
		WHERE is_active = true
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

// Deactivate soft-deletes a listing.
func (r *ListingRepository) Deactivate(ctx context.Context, id int64) error {
	affected, err := r.db.ExecContext(ctx,
		`UPDATE listings SET is_active = false, updated_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to deactivate listing: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("listing %d not found", id)
	}
	return nil
}

func scanListing(row pgx.Row) (*models.Listing, error) {
	var listing models.Listing
	var typeStr, featuresJSON string

	err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Rent,
		&typeStr,
		&listing.MoveInDate,
		&featuresJSON,
		&listing.Address,
		&listing.Latitude,
		&listing.Longitude,
		&listing.Geohash,
		&listing.ContactEmail,
		&listing.SourceURL,
		&listing.ImportBatchID,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&listing.IsActive,
	)
	if err != nil {
		return nil, err
	}

	listing.Type = models.ListingType(typeStr)
	if featuresJSON != "" {
		if err := json.Unmarshal([]byte(featuresJSON), &listing.Features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal features: %w", err)
		}
	}

	return &listing, nil
}
