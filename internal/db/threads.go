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

// SaveThreadState upserts the conversation state for a thread.
func (db *DB) SaveThreadState(ctx context.Context, state *types.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation state: %w", err)
	}

	var userID *uuid.UUID
	if !state.IsGuest && state.UserID != "" {
		if parsed, err := uuid.Parse(state.UserID); err == nil {
			userID = &parsed
		}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO threads (thread_id, user_id, state)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (thread_id) DO UPDATE SET state = $3, updated_at = NOW()`,
		state.ThreadID, userID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save thread state: %w", err)
	}
	return nil
}

// GetThreadState retrieves the conversation state for a thread. Returns nil
// when the thread is unknown.
func (db *DB) GetThreadState(ctx context.Context, threadID string) (*types.ConversationState, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT state FROM threads WHERE thread_id = $1`, threadID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get thread state: %w", err)
	}

	var state types.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation state: %w", err)
	}
	return &state, nil
}

// DeleteThread removes a thread and its state.
func (db *DB) DeleteThread(ctx context.Context, threadID string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM threads WHERE thread_id = $1`, threadID)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	return nil
}
