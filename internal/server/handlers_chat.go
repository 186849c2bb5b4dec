package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/server/middleware"
)

// chatRequest is one conversation turn from the client.
type chatRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id,omitempty"`
}

// handleChatMessage runs one conversation turn. Requests without a valid
// Bearer token are processed as guest threads: nothing is persisted and the
// generated PDF is only reachable through the guest download endpoint.
func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		s.errorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	userID := ""
	isGuest := true
	if id, err := middleware.GetUserID(r); err == nil {
		userID = id.String()
		isGuest = false
	}

	result, err := s.engine.HandleTurn(r.Context(), req.ThreadID, userID, isGuest, req.Message)
	if err != nil {
		log.Printf("chat turn failed on thread %q: %v", req.ThreadID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}
