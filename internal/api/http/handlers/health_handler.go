package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-console/internal/persistence"
	"github.com/spec-kit/account-console/internal/remote"
)

const readyTimeout = 2 * time.Second

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	remote      remote.AccountsAPI
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance. Postgres and Redis may be
// nil; they are then reported as disabled.
func NewHealthHandler(serviceName, version string, accounts remote.AccountsAPI, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, remote: accounts, postgres: postgres, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness by checking the account service and the stores.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true
	check := func(name string, ping func(context.Context) error) {
		if err := ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
			return
		}
		depStatus[name] = "ok"
	}

	check("accounts_api", func(ctx context.Context) error {
		_, err := h.remote.ListAccounts(ctx)
		return err
	})
	if h.postgres.Enabled() {
		check("postgres", h.postgres.Ping)
	} else {
		depStatus["postgres"] = "disabled"
	}
	if h.redis != nil {
		check("redis", h.redis.Ping)
	} else {
		depStatus["redis"] = "disabled"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
