package recon

import (
	"github.com/kagisom/bankrecon/internal/domain"
	"github.com/kagisom/bankrecon/internal/extract"
)

// Resolver joins incoming bank transactions to customer payment-term records
// via the identifier extracted from their free-text fields.
type Resolver struct {
	extractor *extract.Extractor
	terms     map[string]string
}

// NewResolver creates a Resolver over a customer set loaded once per run.
func NewResolver(extractor *extract.Extractor, customers []domain.Customer) *Resolver {
	terms := make(map[string]string, len(customers))
	for _, c := range customers {
		terms[c.ID] = c.PaymentTerms
	}

	return &Resolver{
		extractor: extractor,
		terms:     terms,
	}
}

// Resolve annotates each transaction with its customer identifier and payment
// term. Once an identifier resolves, it replaces the transaction's reference
// field; the original free text survives only in the raw export. Transactions
// with no identifier, or an identifier with no customer record, go to the
// unmatched set.
func (r *Resolver) Resolve(txns []domain.Transaction) (matched, unmatched []domain.Transaction) {
	for _, txn := range txns {
		id, ok := r.extractor.FromTransaction(txn)
		if !ok {
			unmatched = append(unmatched, txn)
			continue
		}

		txn.CustomerID = id
		txn.Reference = id

		term, ok := r.terms[id]
		if !ok {
			unmatched = append(unmatched, txn)
			continue
		}

		txn.PaymentTerms = term
		matched = append(matched, txn)
	}

	return matched, unmatched
}
