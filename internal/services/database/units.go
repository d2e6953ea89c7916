package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"housing-match-engine/internal/models"
)

// UnitRepository handles housing unit database operations. Only name,
// move-in month and members are authoritative in storage; the derived
// budget range and dealbreaker set are recomputed on every read.
type UnitRepository struct {
	db *DB
}

// NewUnitRepository creates a new unit repository.
func NewUnitRepository(db *DB) *UnitRepository {
	return &UnitRepository{db: db}
}

// Create inserts a new housing unit into the database.
func (r *UnitRepository) Create(ctx context.Context, unit *models.HousingUnitCreate) (int64, error) {
	membersJSON, err := json.Marshal(unit.Members)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal members: %w", err)
	}

	query := `
		INSERT INTO housing_units (name, move_in_month, members, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id`

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		unit.Name,
		unit.MoveInMonth,
		string(membersJSON),
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create unit: %w", err)
	}

	return id, nil
}

// GetByID retrieves a housing unit by its ID with derived constraints
// recomputed.
func (r *UnitRepository) GetByID(ctx context.Context, id int64) (*models.HousingUnit, error) {
	query := `
		SELECT id, name, move_in_month, members, created_at, updated_at
		FROM housing_units
		WHERE id = $1`

	unit, err := scanUnit(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("unit %d not found", id)
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}

	return unit, nil
}

// GetAll retrieves all housing units with derived constraints recomputed.
func (r *UnitRepository) GetAll(ctx context.Context) ([]*models.HousingUnit, error) {
	query := `
		SELECT id, name, move_in_month, members, created_at, updated_at
		FROM housing_units
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []*models.HousingUnit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}

	return units, rows.Err()
}

// AddMember applies the pure AddMember reducer to the stored unit and
// persists the grown member list. The returned unit carries the freshly
// derived budget intersection and dealbreaker union.
func (r *UnitRepository) AddMember(ctx context.Context, id int64, member models.UnitMember) (*models.HousingUnit, error) {
	unit, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	grown := models.AddMember(*unit, member)

	membersJSON, err := json.Marshal(grown.Members)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal members: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE housing_units SET members = $2, updated_at = $3 WHERE id = $1`,
		id, string(membersJSON), time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update unit members: %w", err)
	}

	return &grown, nil
}

// Delete removes a housing unit.
func (r *UnitRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.ExecContext(ctx, `DELETE FROM housing_units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("unit %d not found", id)
	}
	return nil
}

func scanUnit(row pgx.Row) (*models.HousingUnit, error) {
	var unit models.HousingUnit
	var membersJSON string

	err := row.Scan(
		&unit.ID,
		&unit.Name,
		&unit.MoveInMonth,
		&membersJSON,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if membersJSON != "" {
		if err := json.Unmarshal([]byte(membersJSON), &unit.Members); err != nil {
			return nil, fmt.Errorf("failed to unmarshal members: %w", err)
		}
	}

	derived := models.RecomputeConstraints(unit)
	return &derived, nil
}
