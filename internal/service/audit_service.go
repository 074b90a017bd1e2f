package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/account-console/internal/domain"
	"github.com/spec-kit/account-console/internal/events"
	"github.com/spec-kit/account-console/internal/repository"
)

// AuditService records account events. With a nil repository entries are
// only logged.
type AuditService struct {
	dispatcher events.Dispatcher
	repo       repository.ToggleAuditRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, repo repository.ToggleAuditRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		repo:       repo,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventAccountsLoaded, a.handleAccountsLoaded)
	a.dispatcher.Subscribe(events.EventAccountToggled, a.handleAccountToggled)
	a.dispatcher.Subscribe(events.EventAccountPatchCompleted, a.handlePatchCompleted)
}

// History returns the most recent journal entries for one account, newest first.
func (a *AuditService) History(ctx context.Context, id domain.AccountID, limit int) ([]domain.ToggleAudit, error) {
	if a.repo == nil {
		return []domain.ToggleAudit{}, nil
	}
	return a.repo.ListByAccount(ctx, id, limit)
}

func (a *AuditService) handleAccountsLoaded(ctx context.Context, event events.Event) error {
	a.logger.Info("AccountsLoaded", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleAccountToggled(ctx context.Context, event events.Event) error {
	a.logger.Info("AccountToggled", zap.String("account_id", event.AccountID.String()), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handlePatchCompleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AccountPatchCompletedPayload)
	if !ok {
		return fmt.Errorf("audit: unexpected payload %T", event.Payload)
	}
	a.logger.Info("AccountPatchCompleted",
		zap.String("account_id", event.AccountID.String()),
		zap.String("outcome", string(payload.Outcome)))

	if a.repo == nil {
		return nil
	}
	entry := &domain.ToggleAudit{
		AccountID:       event.AccountID,
		RequestedActive: payload.RequestedActive,
		Outcome:         payload.Outcome,
		Error:           payload.Error,
	}
	if err := a.repo.Record(ctx, entry); err != nil {
		return fmt.Errorf("audit: record toggle for %s: %w", event.AccountID, err)
	}
	return nil
}
