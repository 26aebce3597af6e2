package classifier

// confirmationThreshold is the number of confirmations at which a payment counts as confirmed.
const confirmationThreshold uint64 = 2

// assumedConfirmations is reported for a mined transaction whose confirmation count could not be computed.
const assumedConfirmations uint64 = 1

const (
	msgUnavailable    = "Unable to fetch blockchain data"
	msgNoTransactions = "No transactions found for this address"
	msgInMempool      = "Transaction found in mempool, awaiting confirmations"
	msgConfirmed      = "Payment confirmed with %d confirmations"
	msgDetected       = "Payment detected, %d confirmation(s) so far"
	msgUnknownDepth   = "Transaction confirmed but unable to determine exact confirmations"

	errLedgerUnavailable = "Blockchain API unavailable"
)

const (
	degradedLedgerUnavailable = "ledger_unavailable"
	degradedTipUnavailable    = "tip_unavailable"
	degradedNoBlockHeight     = "block_height_missing"
	degradedTipBehind         = "tip_behind_block"
	degradedUnexpected        = "unexpected"
)
