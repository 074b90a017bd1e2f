package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-console/internal/domain"
)

const (
	listPath   = "/web-api/accounts/"
	bodyLimit  = 256
	jsonFormat = "json"
)

// AccountsAPI is the subset of the remote account service the console uses.
type AccountsAPI interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	SetActive(ctx context.Context, id domain.AccountID, active bool) error
}

// StatusError reports a non-2xx answer from the remote service.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote: %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("remote: %s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}

type activePatch struct {
	IsActive bool `json:"is_active"`
}

// Client talks to the account service over HTTP using fiber's fasthttp agent.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient validates baseURL and returns a client. timeout caps every call;
// a context deadline that is sooner wins.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("remote: invalid base url %q", baseURL)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}, nil
}

// ListAccounts fetches the full ordered account listing.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	timeout, err := c.budget(ctx)
	if err != nil {
		return nil, err
	}

	agent := fiber.Get(c.baseURL + listPath + "?format=" + jsonFormat)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if timeout > 0 {
		agent.Timeout(timeout)
	}
	if err := agent.Parse(); err != nil {
		return nil, fmt.Errorf("remote: list accounts: %w", err)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("remote: list accounts: %w", errors.Join(errs...))
	}
	if status < 200 || status > 299 {
		return nil, &StatusError{Op: "list accounts", Status: status, Body: snippet(body)}
	}

	var accounts []domain.Account
	if err := json.Unmarshal(body, &accounts); err != nil {
		return nil, fmt.Errorf("remote: list accounts: decode: %w", err)
	}
	return accounts, nil
}

// SetActive sends a partial update of one account's active flag. The response
// body is not consumed.
func (c *Client) SetActive(ctx context.Context, id domain.AccountID, active bool) error {
	if id == "" {
		return errors.New("remote: set active: empty account id")
	}
	timeout, err := c.budget(ctx)
	if err != nil {
		return err
	}

	agent := fiber.Patch(c.baseURL + listPath + url.PathEscape(id.String()) + "/")
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.JSON(activePatch{IsActive: active})
	if timeout > 0 {
		agent.Timeout(timeout)
	}
	if err := agent.Parse(); err != nil {
		return fmt.Errorf("remote: set active: %w", err)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("remote: set active: %w", errors.Join(errs...))
	}
	if status < 200 || status > 299 {
		return &StatusError{Op: "set active", Status: status, Body: snippet(body)}
	}
	return nil
}

// budget picks the tighter of the client timeout and the context deadline.
func (c *Client) budget(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return 0, context.DeadlineExceeded
		}
		if timeout <= 0 || left < timeout {
			timeout = left
		}
	}
	return timeout, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= bodyLimit {
		return s
	}
	s = s[:bodyLimit]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
