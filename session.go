package photoauth

import (
	"time"

	"github.com/google/uuid"
)

// SessionObject is the decoded view of a session claim handed to callers
// that only care about who the token belongs to and how long it is good for.
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

// Expired reports whether the session's validity window has closed at the
// given instant. A session with no expiration is treated as expired.
func (s *SessionObject) Expired(now time.Time) bool {
	if s == nil || s.ExpirationDate == nil {
		return true
	}
	return !now.Before(*s.ExpirationDate)
}

func sessionFromClaims(claims *SessionClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrInvalidToken
	}

	session := &SessionObject{
		UserID: claims.Subject,
		Issuer: claims.Issuer,
	}

	if claims.IssuedAt != nil {
		issuedAt := claims.IssuedAt.Time
		session.IssuedAt = &issuedAt
	}

	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		session.ExpirationDate = &expiresAt
	}

	return session, nil
}
