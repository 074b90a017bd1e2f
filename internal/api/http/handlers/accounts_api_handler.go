package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-console/internal/api/dto"
	"github.com/spec-kit/account-console/internal/service"
	apperrors "github.com/spec-kit/account-console/pkg/util"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

// AccountsAPIHandler exposes the loaded accounts as JSON.
type AccountsAPIHandler struct {
	accounts *service.AccountService
	audit    *service.AuditService
}

// NewAccountsAPIHandler constructs handler.
func NewAccountsAPIHandler(accountService *service.AccountService, auditService *service.AuditService) *AccountsAPIHandler {
	return &AccountsAPIHandler{accounts: accountService, audit: auditService}
}

// List GET /api/accounts.
func (h *AccountsAPIHandler) List(c *fiber.Ctx) error {
	accounts := h.accounts.Search(searchQuery(c))
	return c.JSON(fiber.Map{"data": dto.NewAccountResponses(accounts)})
}

// Toggle POST /api/accounts/:id/toggle.
func (h *AccountsAPIHandler) Toggle(c *fiber.Ctx) error {
	updated, err := h.accounts.ToggleActive(c.UserContext(), accountID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(updated)})
}

// Audit GET /api/accounts/:id/audit.
func (h *AccountsAPIHandler) Audit(c *fiber.Ctx) error {
	id := accountID(c)
	if _, err := h.accounts.Account(id); err != nil {
		return err
	}
	limit := c.QueryInt("limit", defaultAuditLimit)
	if limit < 1 || limit > maxAuditLimit {
		return apperrors.NewValidationError("limit must be between 1 and 100", map[string]any{"limit": limit})
	}
	entries, err := h.audit.History(c.UserContext(), id, limit)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewToggleAuditResponses(entries)})
}
