// Package ledger holds the book state: the chart of accounts, the
// append-only journal entry log, the inventory, and the app settings.
// All mutation flows through Post; persistence is the caller's explicit
// concern, never a side effect of posting.
package ledger

import (
	"errors"
	"fmt"

	"github.com/tallybook-dev/tallybook/internal/accounts"
	"github.com/tallybook-dev/tallybook/internal/inventory"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// ErrUnbalancedEntry is returned by Post when an entry's debits do not
// equal its credits.
var ErrUnbalancedEntry = errors.New("entry debits do not equal credits")

// Ledger is the single-writer book state. Operations are synchronous and
// validate fully before mutating; there is no rollback.
type Ledger struct {
	Accounts  *accounts.Service
	Inventory *inventory.Service
	Settings  model.Settings

	entries []model.JournalEntry
}

// New creates a Ledger over the given chart and inventory.
func New(accts *accounts.Service, inv *inventory.Service) *Ledger {
	return &Ledger{Accounts: accts, Inventory: inv}
}

// Post applies a balanced journal entry: every item moves its account's
// running balance by the normal-side rule, then the entry is appended to
// the log. Unbalanced entries are rejected before any mutation. Items
// referencing unknown accounts are skipped for balance purposes but the
// entry is still recorded in full.
func (l *Ledger) Post(entry model.JournalEntry) error {
	if !entry.Balanced() {
		return fmt.Errorf("entry %s: %w", entry.ID, ErrUnbalancedEntry)
	}
	l.apply(entry)
	return nil
}

// PostUnchecked applies an entry without the balance check. It exists
// for replaying historical entries recorded before the balance invariant
// was enforced; new entries go through Post.
func (l *Ledger) PostUnchecked(entry model.JournalEntry) {
	l.apply(entry)
}

func (l *Ledger) apply(entry model.JournalEntry) {
	for _, item := range entry.Items {
		l.Accounts.ApplyDelta(item)
	}
	l.entries = append(l.entries, entry)
}

// Entries returns the entry log most-recent-first, for display. Callers
// doing period arithmetic must go by each entry's date, not this order.
func (l *Ledger) Entries() []model.JournalEntry {
	out := make([]model.JournalEntry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// SetEntries replaces the entry log, oldest first. Used when loading a
// snapshot; balances come from the snapshot's account records, so the
// entries are not re-applied.
func (l *Ledger) SetEntries(entries []model.JournalEntry) {
	l.entries = make([]model.JournalEntry, len(entries))
	copy(l.entries, entries)
}

// EntryCount returns the number of recorded entries.
func (l *Ledger) EntryCount() int {
	return len(l.entries)
}
