package service

import (
	"context"

	"campus-access-gateway/internal/core/domain"
	"campus-access-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// PolicyServiceImpl implements ports.PolicyService. It reads policies from
// the store and substitutes the injected fallback set only when the store
// errors. A service that is genuinely absent from a healthy store stays
// absent; the fallback covers outages, not gaps.
type PolicyServiceImpl struct {
	repo     ports.PolicyRepository
	fallback domain.PolicySet
	log      zerolog.Logger
}

// NewPolicyService creates a new PolicyServiceImpl.
func NewPolicyService(repo ports.PolicyRepository, fallback domain.PolicySet, log zerolog.Logger) *PolicyServiceImpl {
	return &PolicyServiceImpl{
		repo:     repo,
		fallback: fallback,
		log:      log,
	}
}

// Lookup resolves the policy for a service name. Returns nil, nil when the
// service is unknown.
func (s *PolicyServiceImpl) Lookup(ctx context.Context, service string) (*domain.Policy, error) {
	policy, err := s.repo.GetByService(ctx, service)
	if err != nil {
		s.log.Warn().Err(err).Str("service", service).
			Msg("policy store unreachable, using fallback policy set")
		return s.fallback.Lookup(service), nil
	}
	return policy, nil
}

// List returns all policies, falling back to the default set on store errors.
func (s *PolicyServiceImpl) List(ctx context.Context) ([]domain.Policy, error) {
	policies, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("policy store unreachable, listing fallback policy set")
		out := make([]domain.Policy, len(s.fallback))
		copy(out, s.fallback)
		return out, nil
	}
	return policies, nil
}
