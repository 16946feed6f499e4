package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/worktrust/backend/internal/server/middleware"
	"github.com/worktrust/backend/internal/types"
)

// handleSyncProfile runs the synchronization workflow for the authenticated
// principal. Per-experience failures are reported alongside the profile, not
// as a request failure.
func (s *Server) handleSyncProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req types.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	skillLevel := req.SkillLevel
	if skillLevel == "" {
		skillLevel = defaultSkillLevel
	}

	result, err := s.syncer.Sync(r.Context(), principal, req.Name, skillLevel, req.Experiences)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if partial := result.PartialFailure(); partial != nil {
		log.Printf("profile sync for %s: %v", principal, partial)
	}

	s.dataResponse(w, http.StatusOK, types.SyncData{
		Profile:  result.Profile,
		Failures: result.Failures,
	})
}

// handleGetProfile returns the authenticated principal's stored profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), principal)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.dataResponse(w, http.StatusOK, profile)
}

// handleListProfiles returns every stored profile for the verifier view.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetPrincipal(r); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	entries, err := s.store.ListAllProfiles(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.dataResponse(w, http.StatusOK, entries)
}

// handleVerifyPosition marks one position on the target profile as verified
// or reviewed.
func (s *Server) handleVerifyPosition(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetPrincipal(r); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	target := r.PathValue("principal")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		s.errorResponse(w, http.StatusBadRequest, "Invalid position index")
		return
	}

	var req types.VerifyPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.store.VerifyPosition(r.Context(), target, index, req.Field, req.Value); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.dataResponse(w, http.StatusOK, nil)
}
