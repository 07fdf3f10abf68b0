package service

import (
	"context"
	"fmt"

	"campus-access-gateway/internal/core/domain"
	"campus-access-gateway/internal/core/ports"
	"campus-access-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// AdminServiceImpl implements ports.AdminService.
type AdminServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewAdminService creates a new AdminServiceImpl.
func NewAdminService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *AdminServiceImpl {
	return &AdminServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		transactor: transactor,
		log:        log,
	}
}

// ResetDemo restores every seeded balance and clears the ledger in one
// transaction. A concurrent tap either lands entirely before the reset or
// entirely after it; no partial state is observable.
func (s *AdminServiceImpl) ResetDemo(ctx context.Context) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	for _, d := range domain.DemoIdentities() {
		if err := s.walletRepo.ResetBalance(ctx, dbTx, d.CardUID, d.Balance); err != nil {
			return apperror.InternalError(fmt.Errorf("reset balance %s: %w", d.CardUID, err))
		}
	}

	if err := s.txRepo.DeleteAll(ctx, dbTx); err != nil {
		return apperror.InternalError(fmt.Errorf("clear ledger: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Msg("demo state reset")
	return nil
}
