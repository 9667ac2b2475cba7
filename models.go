package photoauth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the only persisted entity. A record starts with either a local
// credential (email + password hash) or a provider identity (instagram_id +
// profile fields) and may gain the other side through linking or a merge.
//
// The password hash is never serialized; partial unique indexes on email and
// instagram_id enforce global uniqueness while both stay optional.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email        string     `bun:"email,nullzero" json:"email,omitempty"`
	InstagramID  string     `bun:"instagram_id,nullzero" json:"instagram_id,omitempty"`
	PasswordHash string     `bun:"password_hash,nullzero" json:"-"`
	Username     string     `bun:"username" json:"username,omitempty"`
	FullName     string     `bun:"full_name" json:"full_name,omitempty"`
	Picture      string     `bun:"picture" json:"picture,omitempty"`
	AccessToken  string     `bun:"access_token" json:"access_token,omitempty"`
	CreatedAt    *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt    *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// HasLocalCredential reports whether the record can answer a password login.
func (u *User) HasLocalCredential() bool {
	return u != nil && u.Email != "" && u.PasswordHash != ""
}

// HasProviderIdentity reports whether a provider profile is attached.
func (u *User) HasProviderIdentity() bool {
	return u != nil && u.InstagramID != ""
}

// AttachProfile copies the provider identity and profile fields onto the
// record. Used by the link flow and by provider-only account creation.
func (u *User) AttachProfile(accessToken string, profile *ProviderProfile) *User {
	if u == nil || profile == nil {
		return u
	}
	u.InstagramID = profile.ID
	u.Username = profile.Username
	u.FullName = profile.FullName
	u.Picture = profile.Picture
	u.AccessToken = accessToken
	return u
}

// AbsorbCredentials moves the donor's local credential onto the record. The
// donor itself is deleted by the caller once the absorber is persisted.
func (u *User) AbsorbCredentials(donor *User) *User {
	if u == nil || donor == nil {
		return u
	}
	u.Email = donor.Email
	u.PasswordHash = donor.PasswordHash
	return u
}

// NormalizeEmail lowercases and trims an email identifier so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	record.Email = NormalizeEmail(record.Email)
}
