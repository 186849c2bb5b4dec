package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeStore is the subset of the database used for resume history.
type ResumeStore interface {
	GetGeneration(ctx context.Context, id, userID uuid.UUID) (*types.Generation, error)
	ListGenerations(ctx context.Context, userID uuid.UUID, limit int) ([]db.GenerationSummary, error)
	DeleteGeneration(ctx context.Context, id, userID uuid.UUID) error
}

// guestFilenamePattern matches the fixed naming scheme for guest artifacts.
// Anything else, including path separators and dot segments, is rejected.
var guestFilenamePattern = regexp.MustCompile(`^resume_guest_[0-9a-fA-F-]+_[0-9]{8}_[0-9]{6}\.pdf$`)

// handleListResumes returns the authenticated user's generated resumes,
// newest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	summaries, err := s.resumes.ListGenerations(r.Context(), userID, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}
	if summaries == nil {
		summaries = []db.GenerationSummary{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": summaries})
}

// handleGetResume returns a single generation with its full content.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	gen, ok := s.ownedGeneration(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, gen)
}

// handleDownloadResume streams the generated PDF.
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	gen, ok := s.ownedGeneration(w, r)
	if !ok {
		return
	}
	if gen.PDFPath == "" {
		s.errorResponse(w, http.StatusNotFound, "no PDF was produced for this resume")
		return
	}
	if _, err := os.Stat(gen.PDFPath); err != nil {
		s.errorResponse(w, http.StatusNotFound, "PDF file no longer exists")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(gen.PDFPath)))
	http.ServeFile(w, r, gen.PDFPath)
}

// handleDeleteResume removes a generation owned by the authenticated user.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	if err := s.resumes.DeleteGeneration(r.Context(), id, userID); err != nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "resume deleted"})
}

// handleGuestDownload serves a guest-generated PDF without authentication.
// Guests hold the only reference to their thread ID, which is embedded in the
// filename, so the strict pattern check is the access control here.
func (s *Server) handleGuestDownload(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	if !guestFilenamePattern.MatchString(filename) {
		s.errorResponse(w, http.StatusBadRequest, "invalid filename")
		return
	}

	path := filepath.Join(s.outputDir, filename)
	if _, err := os.Stat(path); err != nil {
		s.errorResponse(w, http.StatusNotFound, "file not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

// ownedGeneration resolves the {id} path value to a generation owned by the
// authenticated user, writing the error response itself on failure.
func (s *Server) ownedGeneration(w http.ResponseWriter, r *http.Request) (*types.Generation, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return nil, false
	}

	gen, err := s.resumes.GetGeneration(r.Context(), id, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to get resume")
		return nil, false
	}
	if gen == nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return nil, false
	}
	return gen, true
}
