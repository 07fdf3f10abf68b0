package domain

// IdentityStatus represents the state of a campus identity.
type IdentityStatus string

const (
	IdentityStatusActive   IdentityStatus = "active"
	IdentityStatusInactive IdentityStatus = "inactive"
)

// Identity represents a campus member keyed by a unique card identifier.
// WalletBalance is in paise (minor units) and is never negative.
type Identity struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	RollNo        string         `json:"roll_no"`
	CardUID       string         `json:"card_uid"`
	WalletBalance int64          `json:"wallet_balance"`
	Status        IdentityStatus `json:"status"`
}

// IsActive returns true if the identity may use campus services.
func (i *Identity) IsActive() bool {
	return i.Status == IdentityStatusActive
}

// DemoIdentity describes one seeded demo identity and its starting balance.
type DemoIdentity struct {
	Name    string
	RollNo  string
	CardUID string
	Balance int64 // paise
}

// DemoIdentities returns the demo seed set. The same data is used by the
// administrative reset to restore known starting balances.
func DemoIdentities() []DemoIdentity {
	return []DemoIdentity{
		{Name: "Yasharth Singh", RollNo: "ROLL001", CardUID: "RFID_001", Balance: 50000},
		{Name: "Mohammad Ali", RollNo: "ROLL002", CardUID: "RFID_002", Balance: 30000},
		{Name: "Vaibhav Katariya", RollNo: "ROLL003", CardUID: "RFID_003", Balance: 20000},
		{Name: "Saniya Khan", RollNo: "ROLL004", CardUID: "RFID_004", Balance: 40000},
	}
}
