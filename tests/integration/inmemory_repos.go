package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campus-access-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// campusStore is a mutex-guarded substitute for the PostgreSQL storage
// layer. One lock covers identities and the ledger so the conditional
// debit check-and-decrement is as atomic here as the single UPDATE is in
// the real store.
type campusStore struct {
	mu         sync.RWMutex
	identities map[string]*domain.Identity // by card UID
	policies   map[string]*domain.Policy
	ledger     []domain.Transaction
	nextTxID   int64
	policyErr  error // when set, policy reads fail (simulated outage)
}

func newCampusStore() *campusStore {
	s := &campusStore{
		identities: make(map[string]*domain.Identity),
		policies:   make(map[string]*domain.Policy),
		nextTxID:   1,
	}
	for i, d := range domain.DemoIdentities() {
		s.identities[d.CardUID] = &domain.Identity{
			ID:            int64(i + 1),
			Name:          d.Name,
			RollNo:        d.RollNo,
			CardUID:       d.CardUID,
			WalletBalance: d.Balance,
			Status:        domain.IdentityStatusActive,
		}
	}
	for _, p := range domain.DefaultPolicySet() {
		policy := p
		s.policies[p.Service] = &policy
	}
	return s
}

func (s *campusStore) byID(id int64) *domain.Identity {
	for _, identity := range s.identities {
		if identity.ID == id {
			return identity
		}
	}
	return nil
}

// --- Identity repo ---

type inMemoryIdentityRepo struct{ store *campusStore }

func (r *inMemoryIdentityRepo) GetByCardUID(ctx context.Context, cardUID string) (*domain.Identity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	identity, ok := r.store.identities[cardUID]
	if !ok {
		return nil, nil
	}
	copied := *identity
	return &copied, nil
}

func (r *inMemoryIdentityRepo) List(ctx context.Context) ([]domain.Identity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]domain.Identity, 0, len(r.store.identities))
	for _, identity := range r.store.identities {
		out = append(out, *identity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Policy repo ---

type inMemoryPolicyRepo struct{ store *campusStore }

func (r *inMemoryPolicyRepo) GetByService(ctx context.Context, service string) (*domain.Policy, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if r.store.policyErr != nil {
		return nil, r.store.policyErr
	}
	policy, ok := r.store.policies[domain.NormalizeService(service)]
	if !ok {
		return nil, nil
	}
	copied := *policy
	return &copied, nil
}

func (r *inMemoryPolicyRepo) List(ctx context.Context) ([]domain.Policy, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if r.store.policyErr != nil {
		return nil, r.store.policyErr
	}
	out := make([]domain.Policy, 0, len(r.store.policies))
	for _, policy := range r.store.policies {
		out = append(out, *policy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Service < out[j].Service })
	return out, nil
}

// --- Wallet repo ---

type inMemoryWalletRepo struct{ store *campusStore }

func (r *inMemoryWalletRepo) DebitBalance(ctx context.Context, tx pgx.Tx, identityID, amount int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	identity := r.store.byID(identityID)
	if identity == nil {
		return 0, fmt.Errorf("identity not found: %d", identityID)
	}
	if identity.WalletBalance < amount {
		return 0, domain.ErrInsufficientBalance
	}
	identity.WalletBalance -= amount
	return identity.WalletBalance, nil
}

func (r *inMemoryWalletRepo) Balance(ctx context.Context, identityID int64) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	identity := r.store.byID(identityID)
	if identity == nil {
		return 0, fmt.Errorf("identity not found: %d", identityID)
	}
	return identity.WalletBalance, nil
}

func (r *inMemoryWalletRepo) ResetBalance(ctx context.Context, tx pgx.Tx, cardUID string, balance int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	identity, ok := r.store.identities[cardUID]
	if !ok {
		return fmt.Errorf("identity not found: %s", cardUID)
	}
	identity.WalletBalance = balance
	return nil
}

// --- Transaction repo ---

type inMemoryTransactionRepo struct{ store *campusStore }

func (r *inMemoryTransactionRepo) append(t *domain.Transaction) {
	t.ID = r.store.nextTxID
	r.store.nextTxID++
	t.Timestamp = time.Now().UTC()
	r.store.ledger = append(r.store.ledger, *t)
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.append(t)
	return nil
}

func (r *inMemoryTransactionRepo) CreateAudit(ctx context.Context, t *domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.append(t)
	return nil
}

func (r *inMemoryTransactionRepo) ListRecent(ctx context.Context, limit int) ([]domain.TransactionWithName, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]domain.TransactionWithName, 0, len(r.store.ledger))
	for i := len(r.store.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		entry := r.store.ledger[i]
		name := ""
		if identity := r.store.byID(entry.IdentityID); identity != nil {
			name = identity.Name
		}
		out = append(out, domain.TransactionWithName{Transaction: entry, IdentityName: name})
	}
	return out, nil
}

func (r *inMemoryTransactionRepo) DeleteAll(ctx context.Context, tx pgx.Tx) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.ledger = nil
	return nil
}

// --- Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
