package render

import (
	"time"

	"github.com/spec-kit/account-console/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"

// searchExpr asks for a re-rendered table; Datastar sends the q signal along.
const (
	searchExpr  = "@get('/accounts/table')"
	refreshExpr = "@post('/accounts/refresh')"
)

// PageView is everything the accounts page shows.
type PageView struct {
	Title    string
	Accounts []domain.Account
	Query    string
	// Notice is shown above the table when loading failed.
	Notice   string
	Stale    bool
	LoadedAt time.Time
}

// Page renders the full accounts page.
func Page(view PageView) Node {
	title := view.Title
	if title == "" {
		title = "Accounts"
	}

	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(title)),
				Link(Rel("icon"), Href("data:,")),
				Link(Rel("stylesheet"), Href("https://fonts.googleapis.com/icon?family=Material+Icons")),
				Script(Type("module"), Src(datastarScript)),
			),
			Body(
				Main(
					ID(ContainerID),
					Class("container"),
					data.Signals(map[string]any{"q": view.Query}),
					H1(Text(title)),
					Notice(view),
					SearchBar(),
					AccountsTable(view.Accounts),
				),
			),
		),
	)
}

// SearchBar renders the search input bound to the q signal.
func SearchBar() Node {
	return Div(
		Class("form-group"),
		Label(For(SearchBarID), Text("Search")),
		Input(
			ID(SearchBarID),
			Type("search"),
			Class("form-control"),
			Placeholder("Search by name, email or status"),
			AutoComplete("off"),
			data.Bind("q"),
			Attr("data-on:input__debounce.250ms", searchExpr),
		),
		Button(
			Type("button"),
			Class("btn btn-default"),
			Attr("data-on:click", refreshExpr),
			Text("Refresh"),
		),
	)
}

// Notice renders the alert slot above the table. The slot is always present
// so a fragment response can clear or fill it by id.
func Notice(view PageView) Node {
	message := noticeText(view)
	if message == "" {
		return Div(ID(NoticeID))
	}
	return Div(ID(NoticeID), Class("alert alert-warning"), Attr("role", "alert"), Text(message))
}

func noticeText(view PageView) string {
	if !view.Stale {
		return view.Notice
	}
	message := "Showing cached accounts"
	if !view.LoadedAt.IsZero() {
		message += " from " + view.LoadedAt.UTC().Format(time.RFC3339)
	}
	if view.Notice != "" {
		message += ": " + view.Notice
	}
	return message
}
