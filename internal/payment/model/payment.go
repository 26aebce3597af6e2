// Package model defines domain models for payment status checks.
package model

// Status describes how far a payment to an address has progressed on chain.
type Status string

var (
	// StatusPending means no transaction has been observed or the ledger was unreachable.
	StatusPending Status = "pending"
	// StatusDetected means a transaction exists but has fewer than the required confirmations.
	StatusDetected Status = "detected"
	// StatusConfirmed means a mined transaction reached the required confirmations.
	StatusConfirmed Status = "confirmed"
)

// CheckRequest identifies the address to inspect.
type CheckRequest struct {
	Address  string
	OrderRef string
}

// CheckResult is built fresh for every check and never stored.
type CheckResult struct {
	Status        Status  `json:"status"`
	Confirmations uint64  `json:"confirmations"`
	TxID          *string `json:"txid"`
	Message       string  `json:"message"`
	Error         string  `json:"error,omitempty"`
}

// HasTx reports whether the result references a transaction.
func (r CheckResult) HasTx() bool {
	return r.TxID != nil && *r.TxID != ""
}
