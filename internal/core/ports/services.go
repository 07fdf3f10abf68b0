package ports

import (
	"context"

	"campus-access-gateway/internal/core/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

// TapRequest correlates a physical card identifier with a requested service.
type TapRequest struct {
	CardUID string
	Service string
}

// TapService orchestrates one tap-authorization transaction.
type TapService interface {
	// ProcessTap returns an error only for infrastructure faults. Unknown
	// cards, denials, and race-lost debits are success=false results.
	ProcessTap(ctx context.Context, req TapRequest) (*domain.TapResult, error)
}

// PolicyService resolves policies, degrading to a fixed default set when the
// backing store is unreachable.
type PolicyService interface {
	// Lookup returns nil, nil for an unknown service.
	Lookup(ctx context.Context, service string) (*domain.Policy, error)
	List(ctx context.Context) ([]domain.Policy, error)
}

// ReportingService serves the read-side endpoints.
type ReportingService interface {
	ListIdentities(ctx context.Context) ([]domain.Identity, error)
	GetIdentity(ctx context.Context, cardUID string) (*domain.Identity, error)
	ListTransactions(ctx context.Context, limit int) ([]domain.TransactionWithName, error)
}

// AdminService covers administrative operations outside the tap path.
type AdminService interface {
	// ResetDemo restores seeded balances and clears the ledger atomically.
	ResetDemo(ctx context.Context) error
}
