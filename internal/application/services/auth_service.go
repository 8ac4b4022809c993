package services

import (
	"crypto/subtle"
	"time"

	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/security"
)

// AuthService handles the admin console session lifecycle. Credentials come
// from configuration; sessions are stateless signed tokens carried in a
// cookie.
type AuthService struct {
	adminUser  string
	adminPass  string
	jwtSecret  string
	sessionTTL time.Duration
	logger     *logging.ChanneledLogger
}

// NewAuthService creates a new admin auth service
func NewAuthService(adminUser, adminPass, jwtSecret string, sessionTTL time.Duration, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		adminUser:  adminUser,
		adminPass:  adminPass,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Enabled reports whether admin credentials are configured at all.
func (s *AuthService) Enabled() bool {
	return s.adminUser != "" && s.adminPass != "" && s.jwtSecret != ""
}

// Login verifies admin credentials and returns a session token. Returns
// ErrInvalidCredentials on mismatch.
func (s *AuthService) Login(username, password string) (string, error) {
	if !s.Enabled() {
		s.logger.Auth().Warn("Admin login attempted but admin auth is not configured")
		return "", ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPass)) == 1
	if !userOK || !passOK {
		s.logger.Auth().Warn("Admin login failed", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := security.GenerateSessionToken(username, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return "", err
	}
	s.logger.Auth().Info("Admin session issued", "username", username, "ttl", s.sessionTTL)
	return token, nil
}

// ValidateSession checks a session token and returns the session it encodes.
// Returns ErrInvalidCredentials for missing, expired or tampered tokens.
func (s *AuthService) ValidateSession(token string) (*admin.Session, error) {
	if token == "" || !s.Enabled() {
		return nil, ErrInvalidCredentials
	}

	username, err := security.ValidateSessionToken(token, s.jwtSecret)
	if err != nil {
		s.logger.Auth().Debug("Session token rejected", "error", err)
		return nil, ErrInvalidCredentials
	}
	return &admin.Session{Username: username, IssuedAt: time.Now().UTC()}, nil
}

// SessionTTL exposes the configured token lifetime for cookie expiry.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}
