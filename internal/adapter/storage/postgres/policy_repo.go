package postgres

import (
	"context"
	"errors"
	"fmt"

	"campus-access-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// PolicyRepo implements ports.PolicyRepository.
type PolicyRepo struct {
	pool Pool
}

// NewPolicyRepo creates a new PolicyRepo.
func NewPolicyRepo(pool Pool) *PolicyRepo {
	return &PolicyRepo{pool: pool}
}

// GetByService fetches the policy for a service name, case-insensitively.
// Returns nil, nil when the service has no policy.
func (r *PolicyRepo) GetByService(ctx context.Context, service string) (*domain.Policy, error) {
	query := `SELECT service_type, cost, requires_payment
		FROM policies WHERE service_type = $1`

	p := &domain.Policy{}
	err := r.pool.QueryRow(ctx, query, domain.NormalizeService(service)).Scan(
		&p.Service, &p.Cost, &p.RequiresPayment,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get policy by service: %w", err)
	}
	return p, nil
}

// List fetches all policies ordered by service name.
func (r *PolicyRepo) List(ctx context.Context) ([]domain.Policy, error) {
	query := `SELECT service_type, cost, requires_payment
		FROM policies ORDER BY service_type`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var policies []domain.Policy
	for rows.Next() {
		p := domain.Policy{}
		if err := rows.Scan(&p.Service, &p.Cost, &p.RequiresPayment); err != nil {
			return nil, fmt.Errorf("scan policy row: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate policy rows: %w", err)
	}
	return policies, nil
}
