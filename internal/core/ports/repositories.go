package ports

import (
	"context"

	"campus-access-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

// IdentityRepository defines read access to the identity store.
type IdentityRepository interface {
	// GetByCardUID returns nil, nil when no identity matches: an unknown
	// card is an expected outcome, not an error.
	GetByCardUID(ctx context.Context, cardUID string) (*domain.Identity, error)
	List(ctx context.Context) ([]domain.Identity, error)
}

// PolicyRepository defines read access to the policy table.
type PolicyRepository interface {
	// GetByService matches case-insensitively and returns nil, nil when the
	// service has no policy.
	GetByService(ctx context.Context, service string) (*domain.Policy, error)
	List(ctx context.Context) ([]domain.Policy, error)
}

// WalletRepository owns identity balances. Methods accepting pgx.Tx run
// inside the tap's transaction so the balance change and the ledger record
// commit as one unit.
type WalletRepository interface {
	// DebitBalance applies the conditional decrement and returns the new
	// balance. It returns domain.ErrInsufficientBalance when the balance
	// precondition fails (zero rows affected), distinguishable from any
	// infrastructure fault.
	DebitBalance(ctx context.Context, tx pgx.Tx, identityID, amount int64) (int64, error)
	// Balance is a plain authoritative read of the current balance.
	Balance(ctx context.Context, identityID int64) (int64, error)
	// ResetBalance restores a seeded balance during the demo reset.
	ResetBalance(ctx context.Context, tx pgx.Tx, cardUID string, balance int64) error
}

// TransactionRepository owns the append-only ledger.
type TransactionRepository interface {
	// Create appends a ledger entry within the debit transaction.
	Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	// CreateAudit appends a zero-amount entry for a granted free service.
	// No balance changes, so no transactional pairing is required.
	CreateAudit(ctx context.Context, t *domain.Transaction) error
	ListRecent(ctx context.Context, limit int) ([]domain.TransactionWithName, error)
	// DeleteAll clears the ledger; used only by the administrative reset.
	DeleteAll(ctx context.Context, tx pgx.Tx) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
