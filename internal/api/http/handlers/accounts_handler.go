package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	g "maragu.dev/gomponents"

	"github.com/spec-kit/account-console/internal/domain"
	"github.com/spec-kit/account-console/internal/render"
	"github.com/spec-kit/account-console/internal/service"
)

const unavailableNotice = "Accounts could not be loaded from the account service."

// datastarParam is the query parameter Datastar uses to send signals on GET.
const datastarParam = "datastar"

// AccountsHandler serves the HTML page and the fragments Datastar patches in.
type AccountsHandler struct {
	service *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{service: accountService}
}

// Index GET /. Every page load refetches the listing.
func (h *AccountsHandler) Index(c *fiber.Ctx) error {
	view := h.load(c)
	view.Query = strings.TrimSpace(c.Query("q"))
	if view.Query != "" {
		view.Accounts = h.service.Search(view.Query)
	}
	return writeHTML(c, render.Page(view))
}

// Table GET /accounts/table.
func (h *AccountsHandler) Table(c *fiber.Ctx) error {
	return writeHTML(c, render.AccountsTable(h.service.Search(searchQuery(c))))
}

// Refresh POST /accounts/refresh re-fetches and returns the notice slot and table.
func (h *AccountsHandler) Refresh(c *fiber.Ctx) error {
	view := h.load(c)
	return writeHTML(c, g.Group([]g.Node{render.Notice(view), render.AccountsTable(view.Accounts)}))
}

// Toggle POST /accounts/:id/toggle returns the re-rendered row.
func (h *AccountsHandler) Toggle(c *fiber.Ctx) error {
	updated, err := h.service.ToggleActive(c.UserContext(), accountID(c))
	if err != nil {
		return err
	}
	return writeHTML(c, render.AccountRow(updated))
}

// load runs a fetch and turns its failure into a notice instead of an error
// page.
func (h *AccountsHandler) load(c *fiber.Ctx) render.PageView {
	result, err := h.service.Load(c.UserContext())
	view := render.PageView{Accounts: h.service.Accounts()}
	if err != nil {
		view.Notice = unavailableNotice
		view.Stale = result.Stale
		view.LoadedAt = result.FetchedAt
	}
	return view
}

// searchQuery reads q from the query string, falling back to the Datastar
// signals payload.
func searchQuery(c *fiber.Ctx) string {
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		return q
	}
	raw := c.Query(datastarParam)
	if raw == "" {
		return ""
	}
	var signals struct {
		Q string `json:"q"`
	}
	if err := c.App().Config().JSONDecoder([]byte(raw), &signals); err != nil {
		return ""
	}
	return strings.TrimSpace(signals.Q)
}

// accountID copies the :id param out of the request buffer; the toggle
// outlives the handler through the background PATCH.
func accountID(c *fiber.Ctx) domain.AccountID {
	return domain.AccountID(utils.CopyString(c.Params("id")))
}

func writeHTML(c *fiber.Ctx, node g.Node) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return node.Render(c.Response().BodyWriter())
}
