package postgres

import (
	"context"
	"errors"
	"fmt"

	"campus-access-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// IdentityRepo implements ports.IdentityRepository.
type IdentityRepo struct {
	pool Pool
}

// NewIdentityRepo creates a new IdentityRepo.
func NewIdentityRepo(pool Pool) *IdentityRepo {
	return &IdentityRepo{pool: pool}
}

// GetByCardUID fetches an identity by its card identifier.
// Returns nil, nil when no identity matches.
func (r *IdentityRepo) GetByCardUID(ctx context.Context, cardUID string) (*domain.Identity, error) {
	query := `SELECT id, name, roll_no, card_uid, wallet_balance, status
		FROM identities WHERE card_uid = $1`

	i := &domain.Identity{}
	err := r.pool.QueryRow(ctx, query, cardUID).Scan(
		&i.ID, &i.Name, &i.RollNo, &i.CardUID, &i.WalletBalance, &i.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity by card uid: %w", err)
	}
	return i, nil
}

// List fetches all identities ordered by id.
func (r *IdentityRepo) List(ctx context.Context) ([]domain.Identity, error) {
	query := `SELECT id, name, roll_no, card_uid, wallet_balance, status
		FROM identities ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer rows.Close()

	var identities []domain.Identity
	for rows.Next() {
		i := domain.Identity{}
		err := rows.Scan(&i.ID, &i.Name, &i.RollNo, &i.CardUID, &i.WalletBalance, &i.Status)
		if err != nil {
			return nil, fmt.Errorf("scan identity row: %w", err)
		}
		identities = append(identities, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate identity rows: %w", err)
	}
	return identities, nil
}
