// Package auth implements the single shared-secret admin gate.
package auth

import (
	"crypto/subtle"

	"github.com/monaco/tienda/internal/domain/shared"
)

const (
	// CookieName is the admin session cookie
	CookieName = "admin_auth"
	// SessionValue is the only value a valid admin cookie carries
	SessionValue = "ok"
	// MsgWrongPassword is returned on a failed login
	MsgWrongPassword = "wrong password"
)

// GateService checks the admin password and session cookie
type GateService struct {
	secret []byte
}

// NewGateService creates a gate for the configured secret. An empty
// secret locks the back-office.
func NewGateService(secret string) *GateService {
	return &GateService{secret: []byte(secret)}
}

// Login compares password with the secret in constant time
func (g *GateService) Login(password string) error {
	if len(g.secret) == 0 || subtle.ConstantTimeCompare([]byte(password), g.secret) != 1 {
		return shared.NewAuthError(MsgWrongPassword)
	}
	return nil
}

// IsAuthenticated reports whether a cookie value opens the gate
func (g *GateService) IsAuthenticated(cookieValue string) bool {
	return cookieValue == SessionValue
}
