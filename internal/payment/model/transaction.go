package model

// LedgerTransaction is a transaction referencing a watched address as reported by the ledger provider.
type LedgerTransaction struct {
	TxID string
	// BlockHeight is zero when the provider did not report the containing block.
	BlockHeight uint64
}

// Mined reports whether the transaction carries a block height.
func (t LedgerTransaction) Mined() bool {
	return t.BlockHeight > 0
}
