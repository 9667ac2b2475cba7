// Package photoauth issues and verifies signed session tokens for users that
// authenticate with a local email/password credential or through the photo
// provider's OAuth2 code exchange, and knows how to attach a provider identity
// to an existing local account.
//
// The interesting part is the account resolution flow around the provider
// exchange: an anonymous exchange either logs in the user that already owns
// the provider identity or creates a provider-only account, while an exchange
// carrying a session token links the profile onto the acting user or, when the
// identity already belongs to someone else, merges both records into one.
// Both merge writes share a single transaction, with the donor removed first
// so the absorbing record can take over its unique email; a failure rolls the
// donor back untouched.
//
// Tokens are HS256 JWTs minted by TokenService. Decoding only proves the
// signature; expiry is enforced by SessionVerifier on every request so the
// check is never cached. Storage goes through the Users repository, which
// leans on the database's unique constraints for email and provider id rather
// than application-level locking.
package photoauth
