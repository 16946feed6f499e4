package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/worktrust/backend/internal/identity"
	"github.com/worktrust/backend/internal/profilestore"
	"github.com/worktrust/backend/internal/server/middleware"
	"github.com/worktrust/backend/internal/types"
)

// defaultSkillLevel seeds the profile skeleton created during login. The user
// refines it later through the normal sync flow.
const defaultSkillLevel = "unspecified"

// handleLinkedInAuth redirects the browser to LinkedIn's authorization page.
func (s *Server) handleLinkedInAuth(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.oauth.AuthURL(), http.StatusFound)
}

// handleLinkedInCallback completes the login flow: exchange the authorization
// code, fetch the LinkedIn identity, resolve it to a principal, make sure a
// profile skeleton exists, and issue the session token.
func (s *Server) handleLinkedInCallback(w http.ResponseWriter, r *http.Request) {
	if oauthErr := r.URL.Query().Get("error"); oauthErr != "" {
		s.errorResponse(w, http.StatusUnauthorized, "linkedin authorization denied: "+oauthErr)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		s.errorResponse(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	ctx := r.Context()

	accessToken, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	info, err := s.oauth.FetchUserInfo(ctx, accessToken)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	principal, err := s.bridge.Login(ctx, info.Sub, info.Email)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.RegisterUser(ctx, principal, info.Name, defaultSkillLevel); err != nil {
		var dup *profilestore.AlreadyRegisteredError
		if !errors.As(err, &dup) {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	token, err := s.jwtService.GenerateToken(principal)
	if err != nil {
		log.Printf("Failed to generate token for %s: %v", principal, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.setAuthCookie(w, r, token)
	s.jsonResponse(w, http.StatusOK, types.VerifyResponse{
		Success:   true,
		Token:     token,
		Principal: principal,
	})
}

// handleVerify issues a session token for an already-known principal. The
// principal text is checked for structural validity before anything is signed.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req types.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if _, err := identity.DecodePrincipal(req.Principal); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(req.Principal)
	if err != nil {
		log.Printf("Failed to generate token for %s: %v", req.Principal, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.setAuthCookie(w, r, token)
	s.jsonResponse(w, http.StatusOK, types.VerifyResponse{
		Success:   true,
		Token:     token,
		Principal: req.Principal,
	})
}

// setAuthCookie installs the session token as an HTTP-only cookie.
func (s *Server) setAuthCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.jwtService.TokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}
