// Package server provides the HTTP REST API for the worktrust backend.
package server

import (
	"errors"
	"net/http"

	"github.com/worktrust/backend/internal/cv"
	"github.com/worktrust/backend/internal/identity"
	"github.com/worktrust/backend/internal/linkedin"
	"github.com/worktrust/backend/internal/profilestore"
	"github.com/worktrust/backend/internal/profilesync"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Caller errors are 4xx; upstream extraction, store, and handshake failures
// all surface as 500 so the UI can present them as server-side trouble.
func HTTPStatus(err error) int {
	var (
		invalidInput     *cv.InvalidInputError
		extraction       *cv.ExtractionError
		storeUnavailable *profilestore.UnavailableError
		registration     *profilesync.RegistrationError
		readBack         *profilesync.ReadBackError
		handshake        *identity.HandshakeError
		derivation       *identity.DerivationError
		invalidPrincipal *identity.InvalidPrincipalError
		oauth            *linkedin.OAuthError
	)

	switch {
	case errors.As(err, &invalidInput), errors.As(err, &invalidPrincipal):
		return http.StatusBadRequest
	case errors.As(err, &oauth):
		if oauth.Status >= 400 && oauth.Status < 500 {
			return http.StatusUnauthorized
		}
		return http.StatusBadGateway
	case errors.As(err, &extraction),
		errors.As(err, &storeUnavailable),
		errors.As(err, &registration),
		errors.As(err, &readBack),
		errors.As(err, &handshake),
		errors.As(err, &derivation):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
