package photoauth_test

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-photoauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockUsers implements photoauth.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByID(ctx context.Context, id uuid.UUID) (*photoauth.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*photoauth.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*photoauth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*photoauth.User)
	return user, args.Error(1)
}

func (m *MockUsers) GetByProviderID(ctx context.Context, providerID string) (*photoauth.User, error) {
	args := m.Called(ctx, providerID)
	user, _ := args.Get(0).(*photoauth.User)
	return user, args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, record *photoauth.User) (*photoauth.User, error) {
	args := m.Called(ctx, record)
	user, _ := args.Get(0).(*photoauth.User)
	return user, args.Error(1)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *photoauth.User) (*photoauth.User, error) {
	args := m.Called(ctx, tx, record)
	user, _ := args.Get(0).(*photoauth.User)
	return user, args.Error(1)
}

func (m *MockUsers) Update(ctx context.Context, record *photoauth.User) (*photoauth.User, error) {
	args := m.Called(ctx, record)
	user, _ := args.Get(0).(*photoauth.User)
	return user, args.Error(1)
}

func (m *MockUsers) UpdateTx(ctx context.Context, tx bun.IDB, record *photoauth.User) (*photoauth.User, error) {
	args := m.Called(ctx, tx, record)
	user, _ := args.Get(0).(*photoauth.User)
	return user, args.Error(1)
}

func (m *MockUsers) Delete(ctx context.Context, record *photoauth.User) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockUsers) DeleteTx(ctx context.Context, tx bun.IDB, record *photoauth.User) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

// MockRepositoryManager implements photoauth.RepositoryManager. RunInTx runs
// the callback with a zero transaction so merge ordering can be observed
// through the MockUsers expectations.
type MockRepositoryManager struct {
	users *MockUsers
}

func NewMockRepositoryManager(users *MockUsers) *MockRepositoryManager {
	return &MockRepositoryManager{users: users}
}

func (m *MockRepositoryManager) Users() photoauth.Users { return m.users }

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Validate() error { return nil }

func (m *MockRepositoryManager) MustValidate() {}

// MockProviderClient implements photoauth.ProviderClient
type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) ExchangeCode(ctx context.Context, code string) (*photoauth.ProviderGrant, error) {
	args := m.Called(ctx, code)
	grant, _ := args.Get(0).(*photoauth.ProviderGrant)
	return grant, args.Error(1)
}

// MockAccounts implements photoauth.AccountAuthenticator
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Signup(ctx context.Context, email, password string) (*photoauth.AuthResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*photoauth.AuthResult)
	return result, args.Error(1)
}

func (m *MockAccounts) Login(ctx context.Context, email, password string) (*photoauth.AuthResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*photoauth.AuthResult)
	return result, args.Error(1)
}

func (m *MockAccounts) ExchangeCode(ctx context.Context, code, authorizationHeader string) (*photoauth.AuthResult, error) {
	args := m.Called(ctx, code, authorizationHeader)
	result, _ := args.Get(0).(*photoauth.AuthResult)
	return result, args.Error(1)
}
