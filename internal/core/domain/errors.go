package domain

import "errors"

// ErrInsufficientBalance is returned by the conditional debit when the
// balance precondition does not hold at the moment of application. It is the
// only signal that distinguishes a race-lost debit from an infrastructure
// fault, so callers must preserve it with errors.Is.
var ErrInsufficientBalance = errors.New("insufficient balance")
