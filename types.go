package photoauth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenService mints and decodes signed session tokens.
type TokenService interface {
	Generate(user *User) (string, error)
	SignClaims(claims *SessionClaims) (string, error)
	// Decode verifies the token signature and structure. It deliberately does
	// NOT validate expiry; callers that gate requests must check the claim's
	// expiration themselves (see SessionVerifier).
	Decode(raw string) (*SessionClaims, error)
}

// AccountAuthenticator exposes the three account resolution operations the
// transport layer maps routes onto.
type AccountAuthenticator interface {
	Signup(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ExchangeCode(ctx context.Context, code, authorizationHeader string) (*AuthResult, error)
}

// AuthResult is what every successful resolver operation returns.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] PHOTOAUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] PHOTOAUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] PHOTOAUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] PHOTOAUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
