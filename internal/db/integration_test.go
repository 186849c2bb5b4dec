//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func setupTestDB(t *testing.T) *DB {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("failed to connect to test database: %v", err)
	}
	require.NoError(t, db.Migrate(ctx))
	return db
}

func createTestUser(t *testing.T, db *DB) uuid.UUID {
	ctx := context.Background()
	email := "it-" + uuid.New().String() + "@example.com"
	id, err := db.CreateUser(ctx, "Integration Tester", email, "hash")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.DeleteUser(ctx, id) })
	return id
}

func TestIntegration_UserLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	email := "it-" + uuid.New().String() + "@example.com"
	id, err := db.CreateUser(ctx, "Ada", email, "hash")
	require.NoError(t, err)
	defer func() { _ = db.DeleteUser(ctx, id) }()

	user, err := db.GetUserByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hash", user.PasswordHash)

	// Duplicate email is rejected with a typed error.
	_, err = db.CreateUser(ctx, "Ada Again", email, "hash2")
	var dupErr *DuplicateEmailError
	require.ErrorAs(t, err, &dupErr)

	// Unknown email yields nil without error.
	missing, err := db.GetUserByEmail(ctx, "nobody-"+uuid.New().String()+"@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_ProfileUpsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := createTestUser(t, db)

	profile := &types.ProfileData{
		Contact:         types.ContactInfo{FullName: "Ada", Email: "ada@example.com", Phone: "555"},
		Experience:      []types.Experience{{Title: "Engineer", Organization: "Acme"}},
		TechnicalSkills: types.TechnicalSkills{Languages: []string{"Go"}},
	}
	require.NoError(t, db.SaveProfile(ctx, userID, profile))

	loaded, err := db.GetProfile(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Ada", loaded.Contact.FullName)

	// Upsert replaces the stored profile.
	profile.Contact.FullName = "Ada Lovelace"
	require.NoError(t, db.SaveProfile(ctx, userID, profile))
	loaded, err = db.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", loaded.Contact.FullName)
}

func TestIntegration_Generations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := createTestUser(t, db)

	gen := &types.Generation{
		UserID:          userID,
		JobTitle:        "Backend Engineer",
		CompanyName:     "Acme",
		MatchedKeywords: []string{"go", "postgres"},
		ATSScore:        66.7,
		LaTeXCode:       `\documentclass{article}`,
	}
	id, err := db.SaveGeneration(ctx, gen)
	require.NoError(t, err)

	loaded, err := db.GetGeneration(ctx, id, userID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Backend Engineer", loaded.JobTitle)
	assert.Equal(t, []string{"go", "postgres"}, loaded.MatchedKeywords)

	// Ownership is enforced.
	otherUser := createTestUser(t, db)
	stolen, err := db.GetGeneration(ctx, id, otherUser)
	require.NoError(t, err)
	assert.Nil(t, stolen)

	list, err := db.ListGenerations(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	require.NoError(t, db.DeleteGeneration(ctx, id, userID))
	assert.Error(t, db.DeleteGeneration(ctx, id, userID))
}

func TestIntegration_ThreadState(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := createTestUser(t, db)

	state := types.NewConversationState("thread-"+uuid.New().String(), userID.String(), false)
	state.Stage = types.StageWaitingForJob
	require.NoError(t, db.SaveThreadState(ctx, state))
	defer func() { _ = db.DeleteThread(ctx, state.ThreadID) }()

	loaded, err := db.GetThreadState(ctx, state.ThreadID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, types.StageWaitingForJob, loaded.Stage)

	state.Stage = types.StageComplete
	require.NoError(t, db.SaveThreadState(ctx, state))
	loaded, err = db.GetThreadState(ctx, state.ThreadID)
	require.NoError(t, err)
	assert.Equal(t, types.StageComplete, loaded.Stage)

	missing, err := db.GetThreadState(ctx, "no-such-thread")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
