package domain

import "fmt"

// User-facing action strings for tap outcomes.
const (
	ActionAccessGranted       = "Access Granted"
	ActionPaymentApproved     = "Payment Approved"
	ActionInactive            = "Student account is not active"
	ActionInsufficientBalance = "Insufficient Balance"
	ActionTransactionFailed   = "Transaction Failed"
	ActionInvalidCard         = "Invalid Card - Identity Not Found"
)

// UnknownServiceAction formats the denial string for an unrecognized service.
func UnknownServiceAction(service string) string {
	return fmt.Sprintf("Unknown service: %s", service)
}

// Decision is the outcome of the permission evaluator.
type Decision struct {
	Allowed         bool
	Action          string
	RequiresPayment bool
	Cost            int64 // paise, meaningful only when RequiresPayment
}

// Evaluate combines identity status, policy, and balance into a Decision.
// Pure and deterministic. The check order is significant: status before
// policy presence before balance, because each produces a distinct
// user-facing reason.
//
// policy == nil means the requested service is unknown. The evaluator's
// balance check is a pre-check only; the ledger's conditional debit is the
// true gate.
func Evaluate(identity *Identity, service string, policy *Policy) Decision {
	if !identity.IsActive() {
		return Decision{Action: ActionInactive}
	}
	if policy == nil {
		return Decision{Action: UnknownServiceAction(service)}
	}
	if policy.RequiresPayment {
		if identity.WalletBalance < policy.Cost {
			return Decision{Action: ActionInsufficientBalance}
		}
		return Decision{
			Allowed:         true,
			Action:          ActionPaymentApproved,
			RequiresPayment: true,
			Cost:            policy.Cost,
		}
	}
	return Decision{Allowed: true, Action: ActionAccessGranted}
}

// TapResult is the terminal outcome of one tap. A success=false result is a
// first-class answer describing a negative outcome, not a fault.
type TapResult struct {
	Success          bool
	Student          string
	Service          string // display-formatted
	Action           string
	BalanceRemaining int64  // paise
	AmountDeducted   *int64 // paise; nil for free services and denials
}
