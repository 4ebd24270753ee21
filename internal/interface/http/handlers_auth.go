package http

import (
	"errors"
	"net/http"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/user"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// AUTHENTICATION HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleToken exchanges credentials for a bearer token.
// Failed logins always answer 401 with the same message, so the
// endpoint leaks nothing about which accounts exist.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.deps.UserRepo.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		writeDomainError(w, err)
		return
	}

	if !u.VerifyPassword(req.Password) {
		s.logger.Warn("failed login attempt",
			logger.String("username", req.Username),
			logger.String("ip", getClientIP(r)))
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		s.logger.Error("token issue failed", logger.Err(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// handleRegister creates a teacher account. Only routed when
// registration is enabled in the config.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u := &user.User{Username: req.Username}
	if err := u.SetPassword(req.Password); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := u.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.deps.UserRepo.Create(r.Context(), u); err != nil {
		writeDomainError(w, err)
		return
	}

	s.logger.Info("account registered", logger.String("username", u.Username), logger.Int64("user_id", u.ID))
	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": u.ID, "username": u.Username})
}
