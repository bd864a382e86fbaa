package domain

// BatchState tracks how far a category progressed through the posting
// lifecycle. A category that fails mid-chain keeps the last state it reached.
type BatchState string

const (
	StateCreated              BatchState = "CREATED"
	StateTransactionsInserted BatchState = "TRANSACTIONS_INSERTED"
	StateVerified             BatchState = "VERIFIED"
	StatePosted               BatchState = "POSTED"
	StateReported             BatchState = "REPORTED"
	StateNotified             BatchState = "NOTIFIED"
)
