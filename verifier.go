package photoauth

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
)

// SessionVerifier gates authenticated requests: it resolves an Authorization
// header to the user it was minted for, or fails with the first check that
// does not hold. The checks run in order and each one short-circuits:
// missing header, bad signature, expired claim, unknown subject.
type SessionVerifier struct {
	tokens TokenService
	users  Users
	logger Logger
	now    func() time.Time
}

// NewSessionVerifier returns a verifier backed by the given codec and store.
func NewSessionVerifier(tokens TokenService, users Users) *SessionVerifier {
	return &SessionVerifier{
		tokens: tokens,
		users:  users,
		logger: defLogger{},
		now:    time.Now,
	}
}

func (v *SessionVerifier) WithLogger(logger Logger) *SessionVerifier {
	if logger != nil {
		v.logger = logger
	}
	return v
}

// Verify validates the raw Authorization header and returns the user the
// session belongs to.
func (v *SessionVerifier) Verify(ctx context.Context, authorizationHeader string) (*User, error) {
	raw, err := TokenFromHeader(authorizationHeader)
	if err != nil {
		return nil, err
	}

	claims, err := v.tokens.Decode(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := sessionFromClaims(claims)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if session.Expired(v.now()) {
		return nil, ErrTokenExpired
	}

	id, err := session.GetUserUUID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := v.users.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		v.logger.Error("SessionVerifier failed to resolve subject", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve session subject")
	}

	return user, nil
}

// TokenFromHeader extracts the raw token from a "Bearer <token>" header.
func TokenFromHeader(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingToken
	}

	return parts[1], nil
}
