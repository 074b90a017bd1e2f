package domain

import "time"

// PatchOutcome records how a remote active-flag update ended.
type PatchOutcome string

const (
	PatchSucceeded PatchOutcome = "succeeded"
	PatchFailed    PatchOutcome = "failed"
)

// ToggleAudit is one journal entry for a remote PATCH attempt.
type ToggleAudit struct {
	ID              string
	AccountID       AccountID
	RequestedActive bool
	Outcome         PatchOutcome
	Error           string
	CreatedAt       time.Time
}
