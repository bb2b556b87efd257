package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests whether an account ID exists in the chart of accounts.
type AccountChecker interface {
	Exists(id string) bool
}

// ValidateEntry enforces the entry invariants before an entry is accepted:
//
//  1. The entry balances: sum(debits) == sum(credits).
//  2. The entry has at least one item.
//  3. Every item references a known account.
//  4. Amounts are non-negative and each item moves at least one side.
//  5. Amounts have no more than 2 decimal places.
func ValidateEntry(entry model.JournalEntry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	if !entry.Balanced() {
		errs = append(errs, ValidationError{
			Invariant:   1,
			EntryID:     entry.ID,
			Description: fmt.Sprintf("debits (%s) != credits (%s)", entry.TotalDebit().StringFixed(2), entry.TotalCredit().StringFixed(2)),
		})
	}

	if len(entry.Items) == 0 {
		errs = append(errs, ValidationError{
			Invariant:   2,
			EntryID:     entry.ID,
			Description: "entry has no items",
		})
	}

	two := decimal.NewFromInt(100)
	for i, item := range entry.Items {
		if !accounts.Exists(item.AccountID) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     entry.ID,
				Description: fmt.Sprintf("item %d: unknown account %q", i, item.AccountID),
			})
		}

		if item.Debit.IsNegative() || item.Credit.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     entry.ID,
				Description: fmt.Sprintf("item %d: negative amount", i),
			})
		}
		if item.Debit.IsZero() && item.Credit.IsZero() {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     entry.ID,
				Description: fmt.Sprintf("item %d: neither debit nor credit", i),
			})
		}

		if !item.Debit.Mul(two).Equal(item.Debit.Mul(two).Floor()) {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     entry.ID,
				Description: fmt.Sprintf("item %d: debit %s has more than 2 decimal places", i, item.Debit),
			})
		}
		if !item.Credit.Mul(two).Equal(item.Credit.Mul(two).Floor()) {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     entry.ID,
				Description: fmt.Sprintf("item %d: credit %s has more than 2 decimal places", i, item.Credit),
			})
		}
	}

	return errs
}
