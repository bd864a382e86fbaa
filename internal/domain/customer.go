package domain

// Customer is read-only reference data owned by the CRM database: a canonical
// customer identifier and the contractual payment term attached to it.
type Customer struct {
	ID           string
	PaymentTerms string
}
