package domain

// Contractual payment terms. The batch run only knows this closed set;
// transactions carrying any other term are excluded from batching.
const (
	TermStrict31Days = "10% STRICTLY 31 DAYS"
	TermSevenDayOnly = "7 DAY ONLY ACC."
	TermCashOnly     = "CASH ONLY (NOTES)"
)

// Category pairs a payment term with the label used on batch reports and
// email subjects.
type Category struct {
	Term  string
	Label string
}

// Categories returns the batchable payment-term categories in processing order.
func Categories() []Category {
	return []Category{
		{Term: TermStrict31Days, Label: "30-DAY"},
		{Term: TermSevenDayOnly, Label: "7-DAY"},
		{Term: TermCashOnly, Label: "CASH ONLY (NOTES)"},
	}
}
