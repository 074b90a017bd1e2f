package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-console/internal/domain"
)

func sampleAccounts() []domain.Account {
	return []domain.Account{
		{ID: "1", FirstName: "Ann", LastName: "Lee", Email: "a@x.com", IsActive: true},
		{ID: "2", FirstName: "Bo", LastName: "Park", Email: "bo@x.com"},
		{ID: "3", FirstName: "Cy", LastName: "Ng", Email: "cy@x.com", IsActive: true},
	}
}

func TestReplaceKeepsOrderAndDropsDuplicates(t *testing.T) {
	s := NewAccountStore()
	input := append(sampleAccounts(), domain.Account{ID: "2", FirstName: "Dup"})

	dropped := s.Replace(input)

	assert.Equal(t, 1, dropped)
	got := s.Snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, []domain.AccountID{"1", "2", "3"}, []domain.AccountID{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "Bo", got[1].FirstName)
	assert.False(t, s.LoadedAt().IsZero())
}

func TestReplaceIsWholesale(t *testing.T) {
	s := NewAccountStore()
	s.Replace(sampleAccounts())
	s.Replace([]domain.Account{{ID: "9"}})

	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("1")
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewAccountStore()
	s.Replace(sampleAccounts())

	snap := s.Snapshot()
	snap[0].IsActive = false

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.True(t, got.IsActive)
}

func TestToggleTwiceRestoresFlag(t *testing.T) {
	s := NewAccountStore()
	s.Replace(sampleAccounts())
	before, _ := s.Get("2")

	toggled, ok := s.Toggle("2")
	require.True(t, ok)
	assert.Equal(t, !before.IsActive, toggled.IsActive)

	restored, ok := s.Toggle("2")
	require.True(t, ok)
	assert.Equal(t, before, restored)

	_, ok = s.Toggle("missing")
	assert.False(t, ok)
}

func TestToggleIsSafeUnderConcurrency(t *testing.T) {
	s := NewAccountStore()
	s.Replace(sampleAccounts())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle("1")
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	got, _ := s.Get("1")
	assert.True(t, got.IsActive, "an even number of toggles restores the flag")
}
