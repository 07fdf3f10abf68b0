package dto

// TapRequest is the request body for a card tap.
type TapRequest struct {
	CardUID string `json:"card_uid" binding:"required,max=50"`
	Service string `json:"service" binding:"required,max=50"`
}

// TapResponse is the response body for a tap outcome. Amounts are rupees
// with two decimals; the success flag distinguishes granted taps from
// denials, which share this shape.
type TapResponse struct {
	Success          bool     `json:"success"`
	Student          string   `json:"student"`
	Service          string   `json:"service"`
	Action           string   `json:"action"`
	BalanceRemaining float64  `json:"balance_remaining"`
	AmountDeducted   *float64 `json:"amount_deducted,omitempty"`
}

// IdentityResponse is the response body for identity queries.
type IdentityResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	RollNo        string  `json:"roll_no"`
	CardUID       string  `json:"card_uid"`
	WalletBalance float64 `json:"wallet_balance"`
	Status        string  `json:"status"`
}

// TransactionResponse is one ledger entry in transaction listings.
type TransactionResponse struct {
	ID        int64   `json:"id"`
	Student   string  `json:"student"`
	Service   string  `json:"service"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp"`
}

// PolicyResponse is one policy in policy listings.
type PolicyResponse struct {
	Service         string  `json:"service"`
	Cost            float64 `json:"cost"`
	RequiresPayment bool    `json:"requires_payment"`
}
