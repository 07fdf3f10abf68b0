package postgres

import (
	"context"
	"fmt"

	"campus-access-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository over the
// append-only transactions table.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a ledger entry within the debit transaction. The row id and
// timestamp are assigned by the database and written back to t.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (identity_id, service_type, amount)
		VALUES ($1, $2, $3) RETURNING id, timestamp`

	err := tx.QueryRow(ctx, query, t.IdentityID, t.Service, t.Amount).Scan(&t.ID, &t.Timestamp)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// CreateAudit appends a zero-amount entry for a granted free service. No
// balance changes, so it runs directly on the pool.
func (r *TransactionRepo) CreateAudit(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (identity_id, service_type, amount)
		VALUES ($1, $2, $3) RETURNING id, timestamp`

	err := r.pool.QueryRow(ctx, query, t.IdentityID, t.Service, t.Amount).Scan(&t.ID, &t.Timestamp)
	if err != nil {
		return fmt.Errorf("insert audit transaction: %w", err)
	}
	return nil
}

// ListRecent fetches the most recent entries joined with identity names.
func (r *TransactionRepo) ListRecent(ctx context.Context, limit int) ([]domain.TransactionWithName, error) {
	query := `SELECT t.id, t.identity_id, t.service_type, t.amount, t.timestamp, i.name
		FROM transactions t
		JOIN identities i ON t.identity_id = i.id
		ORDER BY t.timestamp DESC, t.id DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.TransactionWithName
	for rows.Next() {
		t := domain.TransactionWithName{}
		err := rows.Scan(&t.ID, &t.IdentityID, &t.Service, &t.Amount, &t.Timestamp, &t.IdentityName)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}

// DeleteAll clears the ledger within the demo-reset transaction.
func (r *TransactionRepo) DeleteAll(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("delete transactions: %w", err)
	}
	return nil
}
