package photoauth

import "context"

// ProviderProfile is the normalized slice of the provider's user object the
// resolver cares about.
type ProviderProfile struct {
	ID       string
	Username string
	FullName string
	Picture  string
}

// ProviderGrant is the outcome of a successful authorization code exchange.
type ProviderGrant struct {
	AccessToken string
	Profile     ProviderProfile
}

// ProviderClient exchanges an authorization code with the remote OAuth
// provider. Implementations live under provider/.
type ProviderClient interface {
	ExchangeCode(ctx context.Context, code string) (*ProviderGrant, error)
}
