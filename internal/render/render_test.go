package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-console/internal/domain"

	. "maragu.dev/gomponents"
)

func renderString(t *testing.T, n Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestAccountsTableSingleActiveAccount(t *testing.T) {
	accounts := []domain.Account{{ID: "1", FirstName: "Ann", LastName: "Lee", Email: "a@x.com", IsActive: true}}

	out := renderString(t, AccountsTable(accounts))

	assert.Contains(t, out, `<table id="AccountsTable"`)
	assert.Equal(t, 1, strings.Count(out, `<tr id="row-`))
	assert.Contains(t, out, `<tr id="row-1" class="success">`)
	assert.Contains(t, out, `<td>Ann Lee</td>`)
	assert.Contains(t, out, `<td>a@x.com</td>`)
	assert.Contains(t, out, `<td id="status_cell-1">active</td>`)
	assert.Contains(t, out, `data-account-id="1"`)
}

func TestAccountsTableHeaderOnlyWhenEmpty(t *testing.T) {
	out := renderString(t, AccountsTable(nil))

	assert.Contains(t, out, `<th>Name</th><th>Email</th><th>Status</th><th></th>`)
	assert.Contains(t, out, `<tbody></tbody>`)
	assert.NotContains(t, out, `<tr id="row-`)
}

func TestAccountsTableKeepsInputOrder(t *testing.T) {
	accounts := []domain.Account{
		{ID: "c", FirstName: "Cy"},
		{ID: "a", FirstName: "Al", IsActive: true},
		{ID: "b", FirstName: "Bo"},
	}

	out := renderString(t, AccountsTable(accounts))

	assert.Equal(t, 3, strings.Count(out, `<tr id="row-`))
	c := strings.Index(out, `id="row-c"`)
	a := strings.Index(out, `id="row-a"`)
	b := strings.Index(out, `id="row-b"`)
	assert.True(t, c < a && a < b, "rows out of order: %d %d %d", c, a, b)
}

func TestAccountsTableDoesNotMutateInput(t *testing.T) {
	accounts := []domain.Account{{ID: "1", IsActive: true}}
	before := append([]domain.Account(nil), accounts...)

	_ = renderString(t, AccountsTable(accounts))

	assert.Equal(t, before, accounts)
}

func TestAccountRowInactive(t *testing.T) {
	out := renderString(t, AccountRow(domain.Account{ID: "7", FirstName: "Bo", LastName: "Park"}))

	assert.Contains(t, out, `class="warning"`)
	assert.Contains(t, out, `>inactive</td>`)
	assert.Contains(t, out, `title="Activate"`)
}

func TestAccountRowEscapesUntrustedText(t *testing.T) {
	account := domain.Account{
		ID:        `1"><script>alert(1)</script>`,
		FirstName: "<b>Ann</b>",
		Email:     "a@x.com",
	}

	out := renderString(t, AccountRow(account))

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>Ann</b>")
	assert.Contains(t, out, "&lt;b&gt;Ann&lt;/b&gt;")
	assert.Contains(t, out, `data-on:click="@post(&#39;/accounts/&#39; + encodeURIComponent(el.dataset.accountId) + &#39;/toggle&#39;)"`)
}

func TestPageWrapsTableAndSearchBar(t *testing.T) {
	out := renderString(t, Page(PageView{
		Accounts: []domain.Account{{ID: "1", FirstName: "Ann", LastName: "Lee", IsActive: true}},
	}))

	assert.True(t, strings.HasPrefix(strings.ToLower(out), "<!doctype html>"))
	assert.Contains(t, out, `<main id="content" class="container"`)
	assert.Contains(t, out, `id="SearchBar"`)
	assert.Contains(t, out, `id="AccountsTable"`)
	assert.NotContains(t, out, `role="alert"`)
	assert.Contains(t, out, `<div id="Notice"></div>`)
	assert.Contains(t, out, `data-on:click="@post(&#39;/accounts/refresh&#39;)"`)
}

func TestPageShowsNotices(t *testing.T) {
	out := renderString(t, Page(PageView{Notice: "accounts are unavailable"}))
	assert.Contains(t, out, "accounts are unavailable")
	assert.Contains(t, out, `<tbody></tbody>`)

	loaded := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	out = renderString(t, Page(PageView{Notice: "upstream down", Stale: true, LoadedAt: loaded}))
	assert.Contains(t, out, "Showing cached accounts from 2026-10-01T12:00:00Z: upstream down")
}

func TestNoticeStaleWithoutMessage(t *testing.T) {
	out := renderString(t, Notice(PageView{Stale: true}))
	assert.Equal(t, `<div id="Notice" class="alert alert-warning" role="alert">Showing cached accounts</div>`, out)
}
