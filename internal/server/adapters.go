package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/agent"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// The agent identifies users by string (guest IDs are not UUIDs) and the
// database by uuid.UUID. These adapters bridge the two so the engine never
// imports the database package.

// DBProfileStore adapts db.DB to agent.ProfileStore.
type DBProfileStore struct {
	DB *db.DB
}

func (s *DBProfileStore) GetProfile(ctx context.Context, userID string) (*types.ProfileData, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	return s.DB.GetProfile(ctx, id)
}

func (s *DBProfileStore) SaveProfile(ctx context.Context, userID string, profile *types.ProfileData) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	return s.DB.SaveProfile(ctx, id, profile)
}

// DBGenerationStore adapts db.DB to agent.GenerationStore.
type DBGenerationStore struct {
	DB *db.DB
}

func (s *DBGenerationStore) SaveGeneration(ctx context.Context, gen *types.Generation) error {
	_, err := s.DB.SaveGeneration(ctx, gen)
	return err
}

// LayeredStateStore keeps all conversation state in memory and additionally
// persists authenticated threads to the database, so logged-in users survive
// a restart. Guest threads never reach the database.
type LayeredStateStore struct {
	Memory *agent.MemoryStateStore
	DB     *db.DB
}

// NewLayeredStateStore creates a state store backed by memory with database
// durability for authenticated threads.
func NewLayeredStateStore(database *db.DB) *LayeredStateStore {
	return &LayeredStateStore{
		Memory: agent.NewMemoryStateStore(),
		DB:     database,
	}
}

func (s *LayeredStateStore) Get(ctx context.Context, threadID string) (*types.ConversationState, error) {
	state, err := s.Memory.Get(ctx, threadID)
	if err != nil || state != nil {
		return state, err
	}
	if s.DB == nil {
		return nil, nil
	}
	return s.DB.GetThreadState(ctx, threadID)
}

func (s *LayeredStateStore) Save(ctx context.Context, state *types.ConversationState) error {
	if err := s.Memory.Save(ctx, state); err != nil {
		return err
	}
	if state.IsGuest || s.DB == nil {
		return nil
	}
	return s.DB.SaveThreadState(ctx, state)
}
