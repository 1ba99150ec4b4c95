package models

// Transaction kind constants
const (
	TransactionDebt    = "debt"    // increases the counterparty's balance
	TransactionPayment = "payment" // decreases the counterparty's balance
)

// Transaction is one debt or payment event against a counterparty.
// Transactions are immutable once stored; they are only ever removed by the
// cascade when their counterparty is deleted.
type Transaction struct {
	ID             string  `json:"id"`
	CounterpartyID string  `json:"-"`
	Amount         float64 `json:"amount"`
	Kind           string  `json:"kind"`
	Date           int64   `json:"date"` // caller-chosen, epoch ms
	Note           *string `json:"note,omitempty"`
	CreatedAt      int64   `json:"createdAt"` // server-assigned, epoch ms
}

// Signed returns the transaction's contribution to the running balance.
func (t *Transaction) Signed() float64 {
	if t.Kind == TransactionPayment {
		return -t.Amount
	}
	return t.Amount
}

// ValidTransactionKind reports whether k is one of the two transaction kinds.
func ValidTransactionKind(k string) bool {
	return k == TransactionDebt || k == TransactionPayment
}
