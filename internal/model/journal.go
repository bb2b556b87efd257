package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalItem is one side-movement inside a journal entry.
// Exactly one of Debit/Credit is expected to be non-zero.
type JournalItem struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// JournalEntry is an immutable, atomically created set of journal items.
// There is no edit or delete operation; the entry log is the authoritative
// history. Date is the field of record for any period-based computation —
// never insertion order.
type JournalEntry struct {
	ID          string
	Date        time.Time
	Description string
	Items       []JournalItem
}

// TotalDebit sums the debit side of all items.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all items.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Credit)
	}
	return total
}

// Balanced reports whether total debits equal total credits.
func (e JournalEntry) Balanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}
