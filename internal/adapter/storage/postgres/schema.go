package postgres

import (
	"context"
	"fmt"

	"campus-access-gateway/internal/core/domain"

	"github.com/rs/zerolog"
)

// EnsureSchema creates the gateway tables if they do not exist.
// Balances and costs are stored in paise (BIGINT), never negative.
func EnsureSchema(ctx context.Context, pool Pool, log zerolog.Logger) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS identities (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			roll_no VARCHAR(50) UNIQUE NOT NULL,
			card_uid VARCHAR(50) UNIQUE NOT NULL,
			wallet_balance BIGINT NOT NULL DEFAULT 0 CHECK (wallet_balance >= 0),
			status VARCHAR(20) NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS policies (
			service_type VARCHAR(50) PRIMARY KEY,
			cost BIGINT NOT NULL CHECK (cost >= 0),
			requires_payment BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			identity_id BIGINT NOT NULL REFERENCES identities(id),
			service_type VARCHAR(50) NOT NULL,
			amount BIGINT NOT NULL CHECK (amount >= 0),
			timestamp TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	log.Info().Msg("database schema ensured")
	return nil
}

// SeedDemoData inserts the demo identities and default policies when the
// identities table is empty. Idempotent across restarts.
func SeedDemoData(ctx context.Context, pool Pool, log zerolog.Logger) error {
	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM identities`).Scan(&count); err != nil {
		return fmt.Errorf("count identities: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, d := range domain.DemoIdentities() {
		_, err := pool.Exec(ctx,
			`INSERT INTO identities (name, roll_no, card_uid, wallet_balance)
			VALUES ($1, $2, $3, $4) ON CONFLICT (card_uid) DO NOTHING`,
			d.Name, d.RollNo, d.CardUID, d.Balance,
		)
		if err != nil {
			return fmt.Errorf("seed identity %s: %w", d.CardUID, err)
		}
	}

	for _, p := range domain.DefaultPolicySet() {
		_, err := pool.Exec(ctx,
			`INSERT INTO policies (service_type, cost, requires_payment)
			VALUES ($1, $2, $3) ON CONFLICT (service_type) DO NOTHING`,
			p.Service, p.Cost, p.RequiresPayment,
		)
		if err != nil {
			return fmt.Errorf("seed policy %s: %w", p.Service, err)
		}
	}

	log.Info().Msg("demo data seeded")
	return nil
}
