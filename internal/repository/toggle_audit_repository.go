package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/account-console/internal/domain"
)

// ToggleAuditRepository journals remote active-flag updates.
type ToggleAuditRepository interface {
	Record(ctx context.Context, entry *domain.ToggleAudit) error
	ListByAccount(ctx context.Context, accountID domain.AccountID, limit int) ([]domain.ToggleAudit, error)
}

type toggleAuditRepository struct {
	pool *pgxpool.Pool
}

// NewToggleAuditRepository returns a Postgres-backed implementation.
func NewToggleAuditRepository(pool *pgxpool.Pool) ToggleAuditRepository {
	return &toggleAuditRepository{pool: pool}
}

func (r *toggleAuditRepository) Record(ctx context.Context, entry *domain.ToggleAudit) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO account_toggle_audit (id, account_id, requested_active, outcome, error)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		entry.ID,
		string(entry.AccountID),
		entry.RequestedActive,
		string(entry.Outcome),
		entry.Error,
	).Scan(&entry.CreatedAt)
}

func (r *toggleAuditRepository) ListByAccount(ctx context.Context, accountID domain.AccountID, limit int) ([]domain.ToggleAudit, error) {
	if limit <= 0 {
		limit = 20
	}

	const query = `
        SELECT id, account_id, requested_active, outcome, error, created_at
        FROM account_toggle_audit
        WHERE account_id=$1
        ORDER BY created_at DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, string(accountID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ToggleAudit
	for rows.Next() {
		var (
			entry     domain.ToggleAudit
			id        uuid.UUID
			accountID string
			outcome   string
		)
		if err := rows.Scan(&id, &accountID, &entry.RequestedActive, &outcome, &entry.Error, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.ID = id.String()
		entry.AccountID = domain.AccountID(accountID)
		entry.Outcome = domain.PatchOutcome(outcome)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
