package dto

import (
	"time"

	"github.com/spec-kit/account-console/internal/domain"
)

// AccountResponse is the JSON view of one account.
type AccountResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	Name      string `json:"name"`
	Status    string `json:"status"`
}

// ToggleAuditResponse is one journal entry for a remote active-flag update.
type ToggleAuditResponse struct {
	ID              string    `json:"id"`
	AccountID       string    `json:"account_id"`
	RequestedActive bool      `json:"requested_active"`
	Outcome         string    `json:"outcome"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewAccountResponse maps a domain account.
func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		IsActive:  account.IsActive,
		Name:      account.DisplayName(),
		Status:    account.StatusText(),
	}
}

// NewAccountResponses maps a slice, keeping order. Never returns nil.
func NewAccountResponses(accounts []domain.Account) []AccountResponse {
	items := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, NewAccountResponse(account))
	}
	return items
}

// NewToggleAuditResponses maps journal entries.
func NewToggleAuditResponses(entries []domain.ToggleAudit) []ToggleAuditResponse {
	items := make([]ToggleAuditResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ToggleAuditResponse{
			ID:              e.ID,
			AccountID:       e.AccountID.String(),
			RequestedActive: e.RequestedActive,
			Outcome:         string(e.Outcome),
			Error:           e.Error,
			CreatedAt:       e.CreatedAt,
		})
	}
	return items
}
