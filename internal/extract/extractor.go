package extract

import "github.com/kagisom/bankrecon/internal/domain"

// Extractor resolves a customer identifier from the free-text fields of a
// bank transaction by trying an ordered list of rules and taking the first
// success.
type Extractor struct {
	rules []Rule
}

// NewExtractor creates an Extractor with the given rules. With no rules it
// falls back to the default cascade.
func NewExtractor(rules ...Rule) *Extractor {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	return &Extractor{rules: rules}
}

// FromText runs the rule cascade over a single text field.
func (e *Extractor) FromText(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, rule := range e.rules {
		if id, ok := rule.Extract(text); ok {
			return id, true
		}
	}

	return "", false
}

// FromTransaction tries the remittance info first and falls back to the
// reference field. A transaction is unidentified only when both fields fail
// every rule.
func (e *Extractor) FromTransaction(txn domain.Transaction) (string, bool) {
	if id, ok := e.FromText(txn.RemittanceInfo); ok {
		return id, true
	}

	return e.FromText(txn.Reference)
}
