package service

import (
	"context"
	"fmt"

	"campus-access-gateway/internal/core/domain"
	"campus-access-gateway/internal/core/ports"
	"campus-access-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	defaultTransactionLimit = 100
	maxTransactionLimit     = 500
)

// ReportingServiceImpl implements ports.ReportingService: the read-only
// endpoints over identities and the ledger.
type ReportingServiceImpl struct {
	identityRepo ports.IdentityRepository
	txRepo       ports.TransactionRepository
	log          zerolog.Logger
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(identityRepo ports.IdentityRepository, txRepo ports.TransactionRepository, log zerolog.Logger) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		identityRepo: identityRepo,
		txRepo:       txRepo,
		log:          log,
	}
}

// ListIdentities returns all enrolled identities.
func (s *ReportingServiceImpl) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	identities, err := s.identityRepo.List(ctx)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("list identities: %w", err))
	}
	return identities, nil
}

// GetIdentity returns a single identity by card UID.
func (s *ReportingServiceImpl) GetIdentity(ctx context.Context, cardUID string) (*domain.Identity, error) {
	if cardUID == "" {
		return nil, apperror.Validation("card_uid is required")
	}
	identity, err := s.identityRepo.GetByCardUID(ctx, cardUID)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("get identity: %w", err))
	}
	if identity == nil {
		return nil, apperror.ErrNotFound("identity")
	}
	return identity, nil
}

// ListTransactions returns the most recent ledger entries, newest first.
// A non-positive limit selects the default; oversized limits are clamped.
func (s *ReportingServiceImpl) ListTransactions(ctx context.Context, limit int) ([]domain.TransactionWithName, error) {
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	if limit > maxTransactionLimit {
		limit = maxTransactionLimit
	}
	txns, err := s.txRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}
