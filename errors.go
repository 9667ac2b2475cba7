package photoauth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeEmailTaken       = "auth_email_taken"
	TextCodeIncorrectEmail   = "auth_incorrect_email"
	TextCodeIncorrectPass    = "auth_incorrect_password"
	TextCodeMissingToken     = "auth_missing_token"
	TextCodeInvalidToken     = "auth_invalid_token"
	TextCodeTokenExpired     = "auth_token_expired"
	TextCodeUserNotFound     = "auth_user_not_found"
	TextCodeProviderExchange = "auth_provider_exchange_failed"
	TextCodeStorageConflict  = "auth_storage_conflict"
)

// ErrEmailTaken is returned when a signup collides with an existing email,
// either on the pre-check or on the storage layer's unique constraint.
var ErrEmailTaken = errors.New("Email is already taken", errors.CategoryValidation).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeConflict)

// ErrIncorrectEmail is returned on login when no user owns the email.
var ErrIncorrectEmail = errors.New("Incorrect email", errors.CategoryAuth).
	WithTextCode(TextCodeIncorrectEmail).
	WithCode(errors.CodeUnauthorized)

// ErrIncorrectPassword is returned on login when the digest does not verify.
var ErrIncorrectPassword = errors.New("Incorrect password", errors.CategoryAuth).
	WithTextCode(TextCodeIncorrectPass).
	WithCode(errors.CodeUnauthorized)

// ErrMissingToken is returned when the Authorization header is absent or the
// scheme is not a bearer token.
var ErrMissingToken = errors.New("You did not provide a JSON Web Token in the Authorization header", errors.CategoryBadInput).
	WithTextCode(TextCodeMissingToken).
	WithCode(errors.CodeBadRequest)

// ErrInvalidToken is returned when a token fails signature or structural
// verification.
var ErrInvalidToken = errors.New("Invalid session token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a structurally valid token is past its
// expiration.
var ErrTokenExpired = errors.New("Token has expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrUserNotFound is returned when a token's subject no longer resolves to a
// user record.
var ErrUserNotFound = errors.New("User no longer exists", errors.CategoryBadInput).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeBadRequest)

// ErrProviderExchangeFailed is returned when the provider's code exchange
// fails for any reason. The provider's raw error body stays in the logs.
var ErrProviderExchangeFailed = errors.New("Provider code exchange failed", errors.CategoryOperation).
	WithTextCode(TextCodeProviderExchange)

// ErrStorageConflict is returned when a write loses a uniqueness race that no
// more specific domain error covers.
var ErrStorageConflict = errors.New("Conflicting record already exists", errors.CategoryValidation).
	WithTextCode(TextCodeStorageConflict).
	WithCode(errors.CodeConflict)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the normalized bcrypt mismatch error.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// IsUniqueConstraintError reports whether err is a storage-level uniqueness
// violation. Both the sqlite and postgres drivers only expose this through
// the error text.
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
