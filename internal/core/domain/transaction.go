package domain

import "time"

// Transaction is one append-only ledger entry. Amount is in paise; a zero
// amount records an audit entry for a granted free service. Rows are never
// updated and only deleted by the administrative demo reset.
type Transaction struct {
	ID         int64     `json:"id"`
	IdentityID int64     `json:"identity_id"`
	Service    string    `json:"service"`
	Amount     int64     `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// TransactionWithName is a ledger entry joined with the identity display name
// for the recent-transaction feed.
type TransactionWithName struct {
	Transaction
	IdentityName string `json:"identity_name"`
}
