package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/types"
)

// SaveProfile upserts the candidate profile for a user.
func (db *DB) SaveProfile(ctx context.Context, userID uuid.UUID, profile *types.ProfileData) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, data)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET data = $2, updated_at = NOW()`,
		userID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile retrieves the candidate profile for a user. Returns nil when no
// profile has been saved yet.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileData, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT data FROM profiles WHERE user_id = $1`, userID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.ProfileData
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// DeleteProfile removes the candidate profile for a user.
func (db *DB) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
