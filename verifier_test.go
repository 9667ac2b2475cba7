package photoauth_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-photoauth"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerifyMissingToken(t *testing.T) {
	ts := newTestTokenService(time.Hour)
	verifier := photoauth.NewSessionVerifier(ts, new(MockUsers))

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"no scheme", "justatoken"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"scheme only", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(context.Background(), tt.header)
			assert.Equal(t, photoauth.ErrMissingToken, err)
		})
	}
}

func TestVerifyInvalidToken(t *testing.T) {
	ts := newTestTokenService(time.Hour)
	verifier := photoauth.NewSessionVerifier(ts, new(MockUsers))

	_, err := verifier.Verify(context.Background(), "Bearer not-a-real-token")
	assert.Equal(t, photoauth.ErrInvalidToken, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	token, err := signExpiredToken(ts, uuid.New())
	require.NoError(t, err)

	// decode alone still succeeds
	_, err = ts.Decode(token)
	require.NoError(t, err)

	verifier := photoauth.NewSessionVerifier(ts, new(MockUsers))
	_, err = verifier.Verify(context.Background(), "Bearer "+token)
	assert.Equal(t, photoauth.ErrTokenExpired, err)
}

func TestVerifyUnknownSubject(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	userID := uuid.New()
	token, err := ts.Generate(&photoauth.User{ID: userID})
	require.NoError(t, err)

	users := new(MockUsers)
	users.On("GetByID", mock.Anything, userID).
		Return(nil, repository.NewRecordNotFound()).Once()

	verifier := photoauth.NewSessionVerifier(ts, users)
	_, err = verifier.Verify(context.Background(), "Bearer "+token)
	assert.Equal(t, photoauth.ErrUserNotFound, err)

	users.AssertExpectations(t)
}

func TestVerifySuccess(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	user := &photoauth.User{ID: uuid.New(), Email: "ada@example.com"}
	token, err := ts.Generate(user)
	require.NoError(t, err)

	users := new(MockUsers)
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	verifier := photoauth.NewSessionVerifier(ts, users)
	resolved, err := verifier.Verify(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, "ada@example.com", resolved.Email)

	users.AssertExpectations(t)
}

func TestTokenFromHeader(t *testing.T) {
	raw, err := photoauth.TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", raw)

	// scheme matching is case-insensitive
	raw, err = photoauth.TokenFromHeader("bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", raw)

	_, err = photoauth.TokenFromHeader("Bearer a b")
	assert.Equal(t, photoauth.ErrMissingToken, err)
}
