package remote

import (
	"context"

	"github.com/spec-kit/account-console/internal/domain"
)

// MockClient is a func-field implementation of AccountsAPI for tests.
type MockClient struct {
	ListAccountsFunc func(ctx context.Context) ([]domain.Account, error)
	SetActiveFunc    func(ctx context.Context, id domain.AccountID, active bool) error
}

func (m *MockClient) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	if m.ListAccountsFunc == nil {
		return nil, nil
	}
	return m.ListAccountsFunc(ctx)
}

func (m *MockClient) SetActive(ctx context.Context, id domain.AccountID, active bool) error {
	if m.SetActiveFunc == nil {
		return nil
	}
	return m.SetActiveFunc(ctx, id, active)
}
