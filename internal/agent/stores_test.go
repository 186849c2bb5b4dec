package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestMemoryStateStore_UnknownThread(t *testing.T) {
	store := NewMemoryStateStore()

	state, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMemoryStateStore_RoundTrip(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	saved := types.NewConversationState("t1", "guest_t1", true)
	saved.Stage = types.StageWaitingForResume
	require.NoError(t, store.Save(ctx, saved))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.StageWaitingForResume, got.Stage)
	assert.Equal(t, "guest_t1", got.UserID)
}

// Mutating a fetched state must not change the stored one until Save runs;
// otherwise a turn that panics mid-flight would leave a half-advanced stage
// in the store.
func TestMemoryStateStore_SaveIsTheCommitPoint(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, types.NewConversationState("t1", "guest_t1", true)))

	working, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	working.Stage = types.StageGeneratingResume
	working.JobDescription = "half-processed"

	stored, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, types.StageInit, stored.Stage)
	assert.Empty(t, stored.JobDescription)

	require.NoError(t, store.Save(ctx, working))
	stored, err = store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, types.StageGeneratingResume, stored.Stage)
}

func TestMemoryStateStore_SaveCopiesItsArgument(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	state := types.NewConversationState("t1", "guest_t1", true)
	require.NoError(t, store.Save(ctx, state))

	state.Stage = types.StageError

	stored, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, types.StageInit, stored.Stage)
}
