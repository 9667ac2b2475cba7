// Package instagram implements the photo provider's legacy authorization
// code exchange: a single form POST that returns the access token together
// with the owning user's profile.
package instagram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-photoauth"
)

const defaultTokenURL = "https://api.instagram.com/oauth/access_token"

// Config holds the provider OAuth configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	TokenURL string

	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client implements photoauth.ProviderClient.
type Client struct {
	config     Config
	httpClient *http.Client
}

var _ photoauth.ProviderClient = (*Client)(nil)

// New creates a provider client. The HTTP client always carries a bounded
// timeout so a hung provider cannot stall the exchange indefinitely.
func New(cfg Config) *Client {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		config:     cfg,
		httpClient: client,
	}
}

// ExchangeCode implements photoauth.ProviderClient.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*photoauth.ProviderGrant, error) {
	data := url.Values{
		"client_id":     {c.config.ClientID},
		"client_secret": {c.config.ClientSecret},
		"redirect_uri":  {c.config.RedirectURI},
		"code":          {code},
		"grant_type":    {"authorization_code"},
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, providerError("exchange", resp.StatusCode, "invalid_response", "failed to decode token response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, providerError("exchange", resp.StatusCode, tokenResp.ErrorType, tokenResp.ErrorMessage, nil)
	}
	if tokenResp.ErrorType != "" {
		return nil, providerError("exchange", resp.StatusCode, tokenResp.ErrorType, tokenResp.ErrorMessage, nil)
	}
	if tokenResp.AccessToken == "" {
		return nil, providerError("exchange", resp.StatusCode, "missing_access_token", "missing access token", nil)
	}
	if tokenResp.User.ID == "" {
		return nil, providerError("exchange", resp.StatusCode, "missing_profile", "missing user profile", nil)
	}

	return &photoauth.ProviderGrant{
		AccessToken: tokenResp.AccessToken,
		Profile:     tokenResp.User.profile(),
	}, nil
}

type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	User         profilePart `json:"user"`
	Code         int         `json:"code"`
	ErrorType    string      `json:"error_type"`
	ErrorMessage string      `json:"error_message"`
}

type profilePart struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
}

func (p profilePart) profile() photoauth.ProviderProfile {
	return photoauth.ProviderProfile{
		ID:       p.ID,
		Username: p.Username,
		FullName: p.FullName,
		Picture:  p.ProfilePicture,
	}
}

func providerError(operation string, status int, code, description string, err error) *ProviderError {
	return &ProviderError{
		Operation:   operation,
		Status:      status,
		Code:        code,
		Description: description,
		Err:         err,
	}
}
