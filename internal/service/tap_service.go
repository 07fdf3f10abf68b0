package service

import (
	"context"
	"errors"
	"fmt"

	"campus-access-gateway/internal/core/domain"
	"campus-access-gateway/internal/core/ports"
	"campus-access-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// TapServiceImpl implements ports.TapService: identity lookup, permission
// evaluation, then for paid services a conditional debit paired with exactly
// one ledger entry in a single database transaction.
type TapServiceImpl struct {
	identityRepo ports.IdentityRepository
	policySvc    ports.PolicyService
	walletRepo   ports.WalletRepository
	txRepo       ports.TransactionRepository
	transactor   ports.DBTransactor
	log          zerolog.Logger
}

// NewTapService creates a new TapServiceImpl.
func NewTapService(
	identityRepo ports.IdentityRepository,
	policySvc ports.PolicyService,
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *TapServiceImpl {
	return &TapServiceImpl{
		identityRepo: identityRepo,
		policySvc:    policySvc,
		walletRepo:   walletRepo,
		txRepo:       txRepo,
		transactor:   transactor,
		log:          log,
	}
}

// ProcessTap authorizes one tap. Negative outcomes (unknown card, denial,
// race-lost debit) return success=false results with a nil error; a non-nil
// error always means an infrastructure fault.
func (s *TapServiceImpl) ProcessTap(ctx context.Context, req ports.TapRequest) (*domain.TapResult, error) {
	if req.CardUID == "" {
		return nil, apperror.Validation("card_uid is required")
	}
	if req.Service == "" {
		return nil, apperror.Validation("service is required")
	}

	identity, err := s.identityRepo.GetByCardUID(ctx, req.CardUID)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("identity lookup: %w", err))
	}
	if identity == nil {
		s.log.Info().Str("card_uid", req.CardUID).Msg("tap rejected: unknown card")
		return &domain.TapResult{
			Success: false,
			Student: "Unknown",
			Service: domain.DisplayService(req.Service),
			Action:  domain.ActionInvalidCard,
		}, nil
	}

	policy, err := s.policySvc.Lookup(ctx, req.Service)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable(fmt.Errorf("policy lookup: %w", err))
	}

	decision := domain.Evaluate(identity, req.Service, policy)
	if !decision.Allowed {
		s.log.Info().
			Str("card_uid", req.CardUID).
			Str("service", req.Service).
			Str("action", decision.Action).
			Msg("tap denied")
		return s.deniedResult(identity, req.Service, decision.Action), nil
	}

	if decision.RequiresPayment {
		return s.processPaidTap(ctx, identity, req.Service, decision.Cost)
	}
	return s.processFreeTap(ctx, identity, req.Service)
}

// processPaidTap runs the debit and the ledger append as one transaction.
// The evaluator's balance check was only advisory; the conditional debit is
// the real gate, and losing it to a concurrent tap is a denial, not a fault.
func (s *TapServiceImpl) processPaidTap(ctx context.Context, identity *domain.Identity, service string, cost int64) (*domain.TapResult, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	newBalance, err := s.walletRepo.DebitBalance(ctx, dbTx, identity.ID, cost)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			s.log.Info().
				Str("card_uid", identity.CardUID).
				Str("service", service).
				Int64("cost", cost).
				Msg("tap denied: debit lost to concurrent balance change")
			return s.deniedResult(identity, service, domain.ActionTransactionFailed), nil
		}
		return nil, apperror.InternalError(fmt.Errorf("debit balance: %w", err))
	}

	txn := &domain.Transaction{
		IdentityID: identity.ID,
		Service:    domain.NormalizeService(service),
		Amount:     cost,
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("record transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("card_uid", identity.CardUID).
		Str("service", service).
		Int64("amount", cost).
		Int64("balance", newBalance).
		Msg("tap approved with payment")

	return &domain.TapResult{
		Success:          true,
		Student:          identity.Name,
		Service:          domain.DisplayService(service),
		Action:           domain.ActionPaymentApproved,
		BalanceRemaining: newBalance,
		AmountDeducted:   &cost,
	}, nil
}

// processFreeTap records the zero-amount ledger entry and reports the
// current balance untouched.
func (s *TapServiceImpl) processFreeTap(ctx context.Context, identity *domain.Identity, service string) (*domain.TapResult, error) {
	txn := &domain.Transaction{
		IdentityID: identity.ID,
		Service:    domain.NormalizeService(service),
		Amount:     0,
	}
	if err := s.txRepo.CreateAudit(ctx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("record transaction: %w", err))
	}

	s.log.Info().
		Str("card_uid", identity.CardUID).
		Str("service", service).
		Msg("tap granted")

	return &domain.TapResult{
		Success:          true,
		Student:          identity.Name,
		Service:          domain.DisplayService(service),
		Action:           domain.ActionAccessGranted,
		BalanceRemaining: identity.WalletBalance,
	}, nil
}

// deniedResult reports the balance the denial was decided against; for a
// race-lost debit a fresher read would not change the answer the terminal
// shows.
func (s *TapServiceImpl) deniedResult(identity *domain.Identity, service, action string) *domain.TapResult {
	return &domain.TapResult{
		Success:          false,
		Student:          identity.Name,
		Service:          domain.DisplayService(service),
		Action:           action,
		BalanceRemaining: identity.WalletBalance,
	}
}
