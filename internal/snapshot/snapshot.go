// Package snapshot serializes the whole book state to and from the JSON
// backup format. Export is a pure serialization of in-memory state;
// Import validates the snapshot before building anything, so a bad file
// never disturbs the caller's current state.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/accounts"
	"github.com/tallybook-dev/tallybook/internal/inventory"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// ErrInvalidSnapshot is returned when a snapshot is unparsable or is
// missing the required accounts or entries fields.
var ErrInvalidSnapshot = errors.New("not a valid backup snapshot")

const dateFormat = "2006-01-02"

type accountJSON struct {
	ID      string            `json:"id"`
	Code    string            `json:"code"`
	Name    string            `json:"name"`
	Type    model.AccountType `json:"type"`
	Balance decimal.Decimal   `json:"balance"`
}

type itemJSON struct {
	AccountID string          `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

type entryJSON struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Items       []itemJSON `json:"items"`
}

type inventoryJSON struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Category  string          `json:"category"`
}

type settingsJSON struct {
	Language    string `json:"language"`
	Theme       string `json:"theme"`
	Currency    string `json:"currency"`
	CompanyName string `json:"companyName"`
}

type snapshotJSON struct {
	Accounts  []accountJSON   `json:"accounts"`
	Entries   []entryJSON     `json:"entries"`
	Inventory []inventoryJSON `json:"inventory"`
	Settings  settingsJSON    `json:"settings"`
	Timestamp string          `json:"timestamp"`
}

// Export writes the ledger as a JSON snapshot. Entries are written
// most-recent-first, matching the display order of the entry log.
func Export(w io.Writer, l *ledger.Ledger, timestamp time.Time) error {
	snap := snapshotJSON{
		Accounts:  []accountJSON{},
		Entries:   []entryJSON{},
		Inventory: []inventoryJSON{},
		Settings: settingsJSON{
			Language:    l.Settings.Language,
			Theme:       l.Settings.Theme,
			Currency:    l.Settings.Currency,
			CompanyName: l.Settings.CompanyName,
		},
		Timestamp: timestamp.UTC().Format(time.RFC3339),
	}

	for _, a := range l.Accounts.All() {
		snap.Accounts = append(snap.Accounts, accountJSON{
			ID: a.ID, Code: a.Code, Name: a.Name, Type: a.Type, Balance: a.Balance,
		})
	}
	for _, e := range l.Entries() {
		entry := entryJSON{
			ID:          e.ID,
			Date:        e.Date.Format(dateFormat),
			Description: e.Description,
		}
		for _, item := range e.Items {
			entry.Items = append(entry.Items, itemJSON{
				AccountID: item.AccountID, Debit: item.Debit, Credit: item.Credit,
			})
		}
		snap.Entries = append(snap.Entries, entry)
	}
	for _, it := range l.Inventory.All() {
		snap.Inventory = append(snap.Inventory, inventoryJSON{
			ID: it.ID, Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Category: it.Category,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// Import parses and validates a snapshot and builds a fresh ledger from
// it. The accounts and entries fields must both be present; on any
// failure nothing is returned and the caller's state is untouched.
func Import(r io.Reader) (*ledger.Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var probe struct {
		Accounts json.RawMessage `json:"accounts"`
		Entries  json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if probe.Accounts == nil || probe.Entries == nil {
		return nil, fmt.Errorf("%w: accounts and entries are required", ErrInvalidSnapshot)
	}

	var snap snapshotJSON
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	accts := make([]model.Account, 0, len(snap.Accounts))
	for _, a := range snap.Accounts {
		accts = append(accts, model.Account{
			ID: a.ID, Code: a.Code, Name: a.Name, Type: a.Type, Balance: a.Balance,
		})
	}

	// Wire order is most-recent-first; the internal log is oldest-first.
	entries := make([]model.JournalEntry, 0, len(snap.Entries))
	for i := len(snap.Entries) - 1; i >= 0; i-- {
		e := snap.Entries[i]
		date, err := time.Parse(dateFormat, e.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %s: bad date %q", ErrInvalidSnapshot, e.ID, e.Date)
		}
		entry := model.JournalEntry{ID: e.ID, Date: date, Description: e.Description}
		for _, item := range e.Items {
			entry.Items = append(entry.Items, model.JournalItem{
				AccountID: item.AccountID, Debit: item.Debit, Credit: item.Credit,
			})
		}
		entries = append(entries, entry)
	}

	items := make([]model.InventoryItem, 0, len(snap.Inventory))
	for _, it := range snap.Inventory {
		items = append(items, model.InventoryItem{
			ID: it.ID, Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Category: it.Category,
		})
	}

	l := ledger.New(accounts.NewService(accts), inventory.NewService(items))
	l.SetEntries(entries)
	l.Settings = model.Settings{
		Language:    snap.Settings.Language,
		Theme:       snap.Settings.Theme,
		Currency:    snap.Settings.Currency,
		CompanyName: snap.Settings.CompanyName,
	}
	return l, nil
}
