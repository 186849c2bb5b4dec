// Package agent implements the conversation engine that walks a user from
// pasted resume to tailored PDF. Each turn advances an explicit stage machine
// held in a per-thread ConversationState.
package agent

import (
	"context"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// ProfileStore persists candidate profiles for authenticated users keyed by
// user ID. Guest profiles never reach this store.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*types.ProfileData, error)
	SaveProfile(ctx context.Context, userID string, profile *types.ProfileData) error
}

// GenerationStore records generated resumes for authenticated users.
type GenerationStore interface {
	SaveGeneration(ctx context.Context, gen *types.Generation) error
}

// StateStore holds conversation state keyed by thread ID.
type StateStore interface {
	Get(ctx context.Context, threadID string) (*types.ConversationState, error)
	Save(ctx context.Context, state *types.ConversationState) error
}

// MemoryStateStore is the default StateStore: a mutex-guarded map. Guest
// threads always live here; losing them on restart is acceptable because
// guest sessions are ephemeral.
type MemoryStateStore struct {
	mu     sync.RWMutex
	states map[string]*types.ConversationState
}

// NewMemoryStateStore creates an empty in-memory state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]*types.ConversationState)}
}

// Get returns the state for a thread, or nil for an unknown thread. The
// returned state is a copy: mutations made during a turn only land in the
// store through Save, so a turn that dies mid-flight leaves no half-advanced
// stage behind.
func (s *MemoryStateStore) Get(_ context.Context, threadID string) (*types.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[threadID]
	if !ok {
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

// Save stores a copy of the state for its thread.
func (s *MemoryStateStore) Save(_ context.Context, state *types.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *state
	s.states[state.ThreadID] = &copied
	return nil
}
