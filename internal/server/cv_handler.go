package server

import (
	"encoding/json"
	"net/http"

	"github.com/worktrust/backend/internal/types"
)

// handleParseCV extracts structured work experiences from raw CV text.
func (s *Server) handleParseCV(w http.ResponseWriter, r *http.Request) {
	var req types.ParseCVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	experiences, claims, err := s.extractor.Extract(r.Context(), req.Text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.dataResponse(w, http.StatusOK, types.ParseCVData{
		WorkExperiences: experiences,
		Claims:          claims,
	})
}
