package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// TOKEN MANAGER
// Bearer tokens are stateless JWTs. The calendar client keeps the token
// for the whole session; a 401 from any endpoint means the token is
// expired or forged and the client must re-authenticate.
// ══════════════════════════════════════════════════════════════════════════════

// TokenManager issues and verifies bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

type sessionClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Issue creates a signed token for the account.
func (m *TokenManager) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and returns the account ID.
func (m *TokenManager) Verify(tokenString string) (int64, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrUnauthorized, err)
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, shared.ErrUnauthorized
	}
	return claims.UserID, nil
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// ══════════════════════════════════════════════════════════════════════════════
// AUTH MIDDLEWARE
// ══════════════════════════════════════════════════════════════════════════════

const contextKeyUserID contextKey = "user_id"

var errMissingToken = errors.New("missing bearer token")

// authMiddleware verifies the Authorization header and puts the account
// ID into the request context. Every /api route except the token
// endpoint goes through it.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.authenticate(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) authenticate(r *http.Request) (int64, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return 0, errMissingToken
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return 0, errMissingToken
	}

	return s.tokens.Verify(strings.TrimSpace(token))
}

// userIDFrom returns the authenticated account ID from the context.
func userIDFrom(ctx context.Context) int64 {
	if id, ok := ctx.Value(contextKeyUserID).(int64); ok {
		return id
	}
	return 0
}
