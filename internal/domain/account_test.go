package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountDecodesRemotePayload(t *testing.T) {
	payload := `[
		{"id": 1, "first_name": "Ann", "last_name": "Lee", "email": "a@x.com", "is_active": true},
		{"id": "6f1c2a4e-0b1d-11ee-be56-0242ac120002", "first_name": null, "last_name": "Stone", "is_active": false},
		{"id": null, "email": "ghost@x.com", "is_active": null}
	]`

	var accounts []Account
	require.NoError(t, json.Unmarshal([]byte(payload), &accounts))
	require.Len(t, accounts, 3)

	assert.Equal(t, AccountID("1"), accounts[0].ID)
	assert.Equal(t, "Ann Lee", accounts[0].DisplayName())

	assert.Equal(t, AccountID("6f1c2a4e-0b1d-11ee-be56-0242ac120002"), accounts[1].ID)
	assert.Equal(t, "", accounts[1].FirstName)
	assert.Equal(t, "", accounts[1].Email)

	assert.Equal(t, AccountID(""), accounts[2].ID)
	assert.False(t, accounts[2].IsActive)
}

func TestAccountIDRejectsObjects(t *testing.T) {
	var id AccountID
	assert.Error(t, json.Unmarshal([]byte(`{"nested": 1}`), &id))
}

func TestStatusAndRowClassFollowActiveFlag(t *testing.T) {
	active := Account{IsActive: true}
	inactive := Account{}

	assert.Equal(t, StatusActive, active.StatusText())
	assert.Equal(t, RowClassConfirmed, active.RowClass())
	assert.Equal(t, StatusInactive, inactive.StatusText())
	assert.Equal(t, RowClassPending, inactive.RowClass())
}
