package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/types"
)

// SaveGeneration stores a generated resume record and returns its ID.
func (db *DB) SaveGeneration(ctx context.Context, gen *types.Generation) (uuid.UUID, error) {
	content, err := json.Marshal(gen.TailoredContent)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal tailored content: %w", err)
	}
	keywords, err := json.Marshal(gen.MatchedKeywords)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal matched keywords: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO generations
		   (user_id, job_title, company_name, job_description, tailored_content,
		    matched_keywords, ats_score, latex_code, pdf_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		gen.UserID, gen.JobTitle, gen.CompanyName, gen.JobDescription, content,
		keywords, gen.ATSScore, gen.LaTeXCode, gen.PDFPath,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save generation: %w", err)
	}
	return id, nil
}

// GetGeneration retrieves a generation owned by userID. Returns nil when the
// generation does not exist or belongs to another user.
func (db *DB) GetGeneration(ctx context.Context, id, userID uuid.UUID) (*types.Generation, error) {
	var gen types.Generation
	var content, keywords []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, job_title, company_name, job_description,
		        tailored_content, matched_keywords, ats_score, latex_code,
		        pdf_path, created_at
		 FROM generations WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&gen.ID, &gen.UserID, &gen.JobTitle, &gen.CompanyName, &gen.JobDescription,
		&content, &keywords, &gen.ATSScore, &gen.LaTeXCode, &gen.PDFPath, &gen.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}

	if err := json.Unmarshal(content, &gen.TailoredContent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tailored content: %w", err)
	}
	if err := json.Unmarshal(keywords, &gen.MatchedKeywords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matched keywords: %w", err)
	}
	return &gen, nil
}

// GenerationSummary is a lightweight view of a generation for listing.
type GenerationSummary struct {
	ID          uuid.UUID `json:"id"`
	JobTitle    string    `json:"job_title"`
	CompanyName string    `json:"company_name,omitempty"`
	ATSScore    float64   `json:"ats_score"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListGenerations retrieves a user's generations, newest first.
func (db *DB) ListGenerations(ctx context.Context, userID uuid.UUID, limit int) ([]GenerationSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, job_title, company_name, ats_score, created_at
		 FROM generations WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var summaries []GenerationSummary
	for rows.Next() {
		var s GenerationSummary
		if err := rows.Scan(&s.ID, &s.JobTitle, &s.CompanyName, &s.ATSScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// DeleteGeneration removes a generation owned by userID.
func (db *DB) DeleteGeneration(ctx context.Context, id, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM generations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete generation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("generation not found: %s", id)
	}
	return nil
}
