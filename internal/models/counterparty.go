package models

import "time"

// Kind distinguishes the two counterparty classes: suppliers the business
// owes money to, and clients that owe money to the business.
type Kind string

const (
	KindSupplier Kind = "supplier"
	KindClient   Kind = "client"
)

// Counterparty is a supplier or client with a running debt balance.
// TotalDebt is derived: it always equals the signed sum of the counterparty's
// transactions and is only ever written by a recompute.
type Counterparty struct {
	ID        string  `json:"id"`
	Kind      Kind    `json:"-"`
	Name      string  `json:"name"`
	TotalDebt float64 `json:"totalDebt"`
	Phone     *string `json:"phone,omitempty"`

	// Client-only billing cycle fields. NextDueDate is derived from DueDay:
	// the next date whose day-of-month equals DueDay, as "YYYY-MM-DD".
	DueDay      *int    `json:"dueDay,omitempty"`
	NextDueDate *string `json:"nextDueDate,omitempty"`

	// Epoch milliseconds
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`

	Transactions []Transaction `json:"transactions"`
}

// Overdue reports whether the counterparty carries debt past its due date.
func (c *Counterparty) Overdue(now time.Time) bool {
	if c.NextDueDate == nil || c.TotalDebt <= 0 {
		return false
	}
	due, err := time.ParseInLocation("2006-01-02", *c.NextDueDate, now.Location())
	if err != nil {
		return false
	}
	// Due through the end of the due date
	return now.After(due.AddDate(0, 0, 1))
}
