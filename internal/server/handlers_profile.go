package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// ProfileDBStore is the subset of the database used for profile endpoints.
type ProfileDBStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileData, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, profile *types.ProfileData) error
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
}

// handleGetMyProfile returns the authenticated user's stored profile.
func (s *Server) handleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := s.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "no profile on file")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleDeleteMyProfile removes the stored profile. The next conversation
// turn starts from resume extraction again.
func (s *Server) handleDeleteMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// Deletion is idempotent; deleting an absent profile is not an error.
	if err := s.profiles.DeleteProfile(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "profile deleted"})
}
