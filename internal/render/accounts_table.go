// Package render builds the account console HTML with gomponents. Every
// function here is pure: it reads the accounts it is given and returns nodes.
package render

import (
	"github.com/spec-kit/account-console/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// DOM identifiers the page markup and Datastar patches rely on.
const (
	ContainerID = "content"
	TableID     = "AccountsTable"
	SearchBarID = "SearchBar"
	NoticeID    = "Notice"
)

// toggleExpr posts to the toggle route for the clicked row. The id travels as
// the button's data-account-id attribute, never as script text.
const toggleExpr = "@post('/accounts/' + encodeURIComponent(el.dataset.accountId) + '/toggle')"

// RowID is the element id of an account's row.
func RowID(id domain.AccountID) string {
	return "row-" + id.String()
}

// StatusCellID is the element id of an account's status cell.
func StatusCellID(id domain.AccountID) string {
	return "status_cell-" + id.String()
}

// AccountsTable renders the header and one body row per account, in order.
func AccountsTable(accounts []domain.Account) Node {
	rows := make([]Node, 0, len(accounts))
	for _, account := range accounts {
		rows = append(rows, AccountRow(account))
	}

	return Table(
		ID(TableID),
		Class("table table-striped table-hover"),
		THead(
			Tr(
				Th(Text("Name")),
				Th(Text("Email")),
				Th(Text("Status")),
				Th(Text("")),
			),
		),
		TBody(Group(rows)),
	)
}

// AccountRow renders a single row, used for the initial table and for
// in-place replacement after a toggle.
func AccountRow(account domain.Account) Node {
	return Tr(
		ID(RowID(account.ID)),
		Class(account.RowClass()),
		Td(Text(account.DisplayName())),
		Td(Text(account.Email)),
		Td(ID(StatusCellID(account.ID)), Text(account.StatusText())),
		Td(
			Class("actions"),
			A(Class("material-icons"), Title("Edit"), Text("build")),
			Button(
				Type("button"),
				Class("material-icons"),
				Title(toggleTitle(account)),
				Data("account-id", account.ID.String()),
				Attr("data-on:click", toggleExpr),
				Text("delete"),
			),
		),
	)
}

func toggleTitle(account domain.Account) string {
	if account.IsActive {
		return "Deactivate"
	}
	return "Activate"
}
