package photoauth

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// AccountResolver is the decision engine behind signup, login and the
// provider code exchange. Every operation either completes fully or fails
// with a single domain error; nothing is retried and no partial state is
// written on a provider failure.
type AccountResolver struct {
	repo     RepositoryManager
	tokens   TokenService
	provider ProviderClient
	verifier *SessionVerifier
	logger   Logger
}

var _ AccountAuthenticator = (*AccountResolver)(nil)

// NewAccountResolver wires the resolver to its collaborators.
func NewAccountResolver(repo RepositoryManager, tokens TokenService, provider ProviderClient) *AccountResolver {
	return &AccountResolver{
		repo:     repo,
		tokens:   tokens,
		provider: provider,
		verifier: NewSessionVerifier(tokens, repo.Users()),
		logger:   defLogger{},
	}
}

func (r *AccountResolver) WithLogger(logger Logger) *AccountResolver {
	if logger != nil {
		r.logger = logger
		r.verifier = r.verifier.WithLogger(logger)
	}
	return r
}

// Verifier returns the session gate built on the same codec and store, for
// use by protected-route middleware.
func (r *AccountResolver) Verifier() *SessionVerifier {
	return r.verifier
}

// Signup creates a local-credential account. The email pre-check and the
// insert are not atomic; the storage unique constraint is the real safety
// net and a conflicting insert also surfaces as ErrEmailTaken.
func (r *AccountResolver) Signup(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)

	if _, err := r.repo.Users().GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check email availability")
	}

	// hashing failure aborts before anything is persisted
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	created, err := r.repo.Users().Create(ctx, &User{
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if IsUniqueConstraintError(err) {
			return nil, ErrEmailTaken
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to persist new user")
	}

	return r.mint(created)
}

// Login verifies a local credential and mints a session token. The two
// failure cases stay field-scoped so clients can point at the right input.
func (r *AccountResolver) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := r.repo.Users().GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIncorrectEmail
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrIncorrectPassword
	}

	return r.mint(user)
}

// ExchangeCode trades the authorization code with the provider and resolves
// the resulting identity to an account. With no session header this is an
// anonymous entry (login-or-create); with one it is a link or, when the
// provider identity already belongs to someone else, a merge.
func (r *AccountResolver) ExchangeCode(ctx context.Context, code, authorizationHeader string) (*AuthResult, error) {
	grant, err := r.provider.ExchangeCode(ctx, code)
	if err != nil {
		r.logger.Error("provider code exchange failed", "error", err)
		return nil, ErrProviderExchangeFailed
	}

	if strings.TrimSpace(authorizationHeader) == "" {
		return r.exchangeAnonymous(ctx, grant)
	}

	return r.exchangeAuthenticated(ctx, grant, authorizationHeader)
}

func (r *AccountResolver) exchangeAnonymous(ctx context.Context, grant *ProviderGrant) (*AuthResult, error) {
	existing, err := r.repo.Users().GetByProviderID(ctx, grant.Profile.ID)
	if err == nil {
		// returning user, no mutation
		return r.mint(existing)
	}
	if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up provider identity")
	}

	created, err := r.repo.Users().Create(ctx, (&User{}).AttachProfile(grant.AccessToken, &grant.Profile))
	if err != nil {
		if IsUniqueConstraintError(err) {
			// lost a first-login race on the same provider identity
			return nil, ErrStorageConflict
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to persist provider user")
	}

	return r.mint(created)
}

func (r *AccountResolver) exchangeAuthenticated(ctx context.Context, grant *ProviderGrant, authorizationHeader string) (*AuthResult, error) {
	// Full verification, expiry included. The original flow skipped the
	// expiry check on this branch; an expired session must not be enough
	// to rewire account identity, so it is enforced here too.
	acting, err := r.verifier.Verify(ctx, authorizationHeader)
	if err != nil {
		return nil, err
	}

	existing, err := r.repo.Users().GetByProviderID(ctx, grant.Profile.ID)
	switch {
	case err == nil && existing.ID == acting.ID:
		// already linked to this very account, refresh the profile fields
		return r.linkProfile(ctx, acting, grant)
	case err == nil:
		return r.mergeAccounts(ctx, existing, acting)
	case errors.IsNotFound(err):
		return r.linkProfile(ctx, acting, grant)
	default:
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up provider identity")
	}
}

func (r *AccountResolver) linkProfile(ctx context.Context, acting *User, grant *ProviderGrant) (*AuthResult, error) {
	acting.AttachProfile(grant.AccessToken, &grant.Profile)

	updated, err := r.repo.Users().Update(ctx, acting)
	if err != nil {
		if IsUniqueConstraintError(err) {
			return nil, ErrStorageConflict
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to link provider profile")
	}

	return r.mint(updated)
}

// mergeAccounts folds the acting local account (donor) into the account that
// already owns the provider identity (absorber). Both writes run in one
// transaction so a failure leaves the donor untouched; inside it the donor
// goes first, otherwise its row would still hold the email the absorber is
// about to take and the unique constraint would reject the update.
func (r *AccountResolver) mergeAccounts(ctx context.Context, absorber, donor *User) (*AuthResult, error) {
	absorber.AbsorbCredentials(donor)

	var merged *User
	err := r.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := r.repo.Users().DeleteTx(ctx, tx, donor); err != nil {
			return err
		}

		var err error
		merged, err = r.repo.Users().UpdateTx(ctx, tx, absorber)
		return err
	})
	if err != nil {
		if IsUniqueConstraintError(err) {
			return nil, ErrStorageConflict
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to merge accounts")
	}

	r.logger.Info("merged local account into provider account",
		"absorber", absorber.ID.String(), "donor", donor.ID.String())

	return r.mint(merged)
}

func (r *AccountResolver) mint(user *User) (*AuthResult, error) {
	token, err := r.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}
