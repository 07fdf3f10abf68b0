package postgres

import (
	"context"
	"errors"
	"fmt"

	"campus-access-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository. It is the sole writer of
// identity balances.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// DebitBalance applies the conditional decrement inside the caller's
// transaction. The precondition and the decrement are one statement: two
// concurrent debits can never both pass when their sum exceeds the balance.
// A zero-row result (pgx.ErrNoRows on the RETURNING scan) means the
// precondition failed and maps to domain.ErrInsufficientBalance.
func (r *WalletRepo) DebitBalance(ctx context.Context, tx pgx.Tx, identityID, amount int64) (int64, error) {
	query := `UPDATE identities
		SET wallet_balance = wallet_balance - $1
		WHERE id = $2 AND wallet_balance >= $1
		RETURNING wallet_balance`

	var newBalance int64
	err := tx.QueryRow(ctx, query, amount, identityID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientBalance
		}
		return 0, fmt.Errorf("debit balance: %w", err)
	}
	return newBalance, nil
}

// Balance reads the current balance for an identity.
func (r *WalletRepo) Balance(ctx context.Context, identityID int64) (int64, error) {
	query := `SELECT wallet_balance FROM identities WHERE id = $1`

	var balance int64
	err := r.pool.QueryRow(ctx, query, identityID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("identity not found: %d", identityID)
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

// ResetBalance restores a seeded balance within the demo-reset transaction.
func (r *WalletRepo) ResetBalance(ctx context.Context, tx pgx.Tx, cardUID string, balance int64) error {
	query := `UPDATE identities SET wallet_balance = $1 WHERE card_uid = $2`

	tag, err := tx.Exec(ctx, query, balance, cardUID)
	if err != nil {
		return fmt.Errorf("reset balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("identity not found: %s", cardUID)
	}
	return nil
}
