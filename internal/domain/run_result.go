package domain

// CategoryOutcome records where one payment-term category ended up after a
// run: the batch id if a header was persisted, the final lifecycle state, and
// the error that stopped the chain, if any.
type CategoryOutcome struct {
	Category Category
	BatchID  int64
	State    BatchState
	TxnCount int
	Err      string `json:",omitempty"`
}

// RunResult contains the outcome of a full reconciliation run. It is the
// run's only output object; nothing about the run is kept in shared state.
type RunResult struct {
	TotalTxnsProcessed int
	MatchedTxns        int
	UnmatchedTxns      []Transaction
	Outcomes           []CategoryOutcome
	RawExportPath      string
	UnmatchedExport    string
}
