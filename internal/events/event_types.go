package events

import (
	"time"

	"github.com/spec-kit/account-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountsLoaded        EventType = "accounts_loaded"
	EventAccountToggled        EventType = "account_toggled"
	EventAccountPatchCompleted EventType = "account_patch_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string           `json:"id"`
	Type      EventType        `json:"type"`
	AccountID domain.AccountID `json:"account_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Payload   interface{}      `json:"payload"`
}

// AccountsLoadedPayload payload.
type AccountsLoadedPayload struct {
	Count   int  `json:"count"`
	Dropped int  `json:"dropped"`
	Stale   bool `json:"stale"`
}

// AccountToggledPayload payload.
type AccountToggledPayload struct {
	OldActive bool `json:"old_active"`
	NewActive bool `json:"new_active"`
}

// AccountPatchCompletedPayload payload.
type AccountPatchCompletedPayload struct {
	RequestedActive bool                `json:"requested_active"`
	Outcome         domain.PatchOutcome `json:"outcome"`
	Error           string              `json:"error,omitempty"`
}
