// Package main creates the database schema for the housing match engine.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"housing-match-engine/internal/config"
	"housing-match-engine/internal/services/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS listings (
	id              BIGSERIAL PRIMARY KEY,
	title           TEXT NOT NULL,
	rent            DOUBLE PRECISION NOT NULL DEFAULT 0,
	type            TEXT NOT NULL,
	move_in_date    TEXT NOT NULL DEFAULT '',
	features        TEXT NOT NULL DEFAULT '[]',
	address         TEXT NOT NULL DEFAULT '',
	latitude        DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude       DOUBLE PRECISION NOT NULL DEFAULT 0,
	geohash         TEXT NOT NULL DEFAULT '',
	contact_email   TEXT NOT NULL DEFAULT '',
	source_url      TEXT NOT NULL DEFAULT '',
	import_batch_id TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL,
	is_active       BOOLEAN NOT NULL DEFAULT true
);

CREATE UNIQUE INDEX IF NOT EXISTS listings_source_url_idx
	ON listings (source_url) WHERE source_url <> '';

CREATE INDEX IF NOT EXISTS listings_geohash_idx ON listings (geohash);

CREATE TABLE IF NOT EXISTS roommate_profiles (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	budget_min    DOUBLE PRECISION NOT NULL DEFAULT 0,
	budget_max    DOUBLE PRECISION NOT NULL DEFAULT 0,
	move_in_month TEXT NOT NULL DEFAULT '',
	dealbreakers  TEXT NOT NULL DEFAULT '[]',
	cleanliness   TEXT NOT NULL,
	sleep         TEXT NOT NULL,
	guests        TEXT NOT NULL,
	bio           TEXT NOT NULL DEFAULT '',
	latitude      DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude     DOUBLE PRECISION NOT NULL DEFAULT 0,
	geohash       TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL,
	is_active     BOOLEAN NOT NULL DEFAULT true
);

CREATE INDEX IF NOT EXISTS roommate_profiles_geohash_idx ON roommate_profiles (geohash);

CREATE TABLE IF NOT EXISTS housing_units (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	move_in_month TEXT NOT NULL DEFAULT '',
	members       TEXT NOT NULL DEFAULT '[]',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := database.NewFromURL(cfg.DatabaseURL())
	if err != nil {
		fmt.Printf("failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		fmt.Printf("failed to apply schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("schema applied")
}
