package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// AccountID is the opaque identifier the remote service assigns to an account.
// The remote API has served both UUID strings and integers, so it decodes from either.
type AccountID string

// UnmarshalJSON accepts a JSON string or number.
func (id *AccountID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = AccountID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("account id: %w", err)
	}
	*id = AccountID(n.String())
	return nil
}

func (id AccountID) String() string {
	return string(id)
}

// Status texts shown in the table.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Row classes; exactly one applies to a rendered row.
const (
	RowClassConfirmed = "success"
	RowClassPending   = "warning"
)

// Account is one record of the remote account listing. Missing or null text
// fields decode to empty strings.
type Account struct {
	ID        AccountID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
}

// DisplayName joins first and last name with a single space.
func (a Account) DisplayName() string {
	return a.FirstName + " " + a.LastName
}

// StatusText reports "active" or "inactive".
func (a Account) StatusText() string {
	if a.IsActive {
		return StatusActive
	}
	return StatusInactive
}

// RowClass reports the visual state class for the account's row.
func (a Account) RowClass() string {
	if a.IsActive {
		return RowClassConfirmed
	}
	return RowClassPending
}

// AccountSnapshot is the last good collection kept in the snapshot cache.
type AccountSnapshot struct {
	Accounts  []Account `json:"accounts"`
	FetchedAt time.Time `json:"fetched_at"`
}
