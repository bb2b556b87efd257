// Package transaction builds and applies sale and purchase transactions.
// A transaction is composed and validated in full before anything is
// mutated: the journal entries, the inventory movement, and the stock
// sufficiency check all happen up front, then Apply commits the whole
// set at once.
package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/id"
	"github.com/tallybook-dev/tallybook/internal/inventory"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// Kind selects the transaction flow.
type Kind string

const (
	KindSale     Kind = "sale"
	KindPurchase Kind = "purchase"
)

// Validation errors returned by Compose. No state is mutated when any of
// these is returned.
var (
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	ErrNonPositiveTotal    = errors.New("transaction total must be positive")
	ErrInsufficientStock   = errors.New("requested quantity exceeds available stock")
	ErrNegativePrice       = errors.New("unit price must not be negative")
)

// Roles maps the account roles a transaction needs to concrete account
// IDs. Resolved once at setup from configuration; transaction intent is
// never inferred from stored text or hardcoded identifiers.
type Roles struct {
	Revenue        string
	CostOfSales    string
	InventoryAsset string
}

// Request describes a sale or purchase to compose.
type Request struct {
	Kind              Kind
	ItemID            string
	Quantity          decimal.Decimal
	UnitPrice         decimal.Decimal
	ClearingAccountID string
	Description       string
	Date              time.Time
}

// Transaction is a fully validated set of journal entries plus the
// inventory movement they imply. Apply commits it as one operation.
type Transaction struct {
	Entries []model.JournalEntry
	Delta   inventory.Delta
}

// Composer builds transactions against a ledger using a fixed role
// mapping.
type Composer struct {
	ledger *ledger.Ledger
	roles  Roles
}

// NewComposer creates a Composer. The roles must reference accounts that
// exist in the ledger's chart.
func NewComposer(l *ledger.Ledger, roles Roles) *Composer {
	return &Composer{ledger: l, roles: roles}
}

// Compose validates the request and builds the transaction. For a sale
// it produces a revenue entry (debit clearing, credit revenue) and a
// cost-recognition entry (debit cost of sales, credit inventory asset)
// valued at the item's stored average cost read before any decrement.
// For a purchase it produces one entry (debit inventory asset, credit
// clearing) and an incoming priced stock movement.
func (c *Composer) Compose(req Request) (Transaction, error) {
	if !req.Quantity.IsPositive() {
		return Transaction{}, ErrNonPositiveQuantity
	}
	if req.UnitPrice.IsNegative() {
		return Transaction{}, ErrNegativePrice
	}
	total := req.Quantity.Mul(req.UnitPrice)
	if !total.IsPositive() {
		return Transaction{}, ErrNonPositiveTotal
	}

	item, ok := c.ledger.Inventory.Get(req.ItemID)
	if !ok {
		return Transaction{}, fmt.Errorf("unknown inventory item %q", req.ItemID)
	}
	if !c.ledger.Accounts.Exists(req.ClearingAccountID) {
		return Transaction{}, fmt.Errorf("unknown clearing account %q", req.ClearingAccountID)
	}
	for _, roleID := range []string{c.roles.Revenue, c.roles.CostOfSales, c.roles.InventoryAsset} {
		if !c.ledger.Accounts.Exists(roleID) {
			return Transaction{}, fmt.Errorf("role account %q not in chart", roleID)
		}
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	switch req.Kind {
	case KindSale:
		return c.composeSale(req, item, total, date)
	case KindPurchase:
		return c.composePurchase(req, item, total, date)
	default:
		return Transaction{}, fmt.Errorf("unknown transaction kind %q", req.Kind)
	}
}

func (c *Composer) composeSale(req Request, item model.InventoryItem, total decimal.Decimal, date time.Time) (Transaction, error) {
	if req.Quantity.GreaterThan(item.Quantity) {
		return Transaction{}, fmt.Errorf("item %q: %w", item.Name, ErrInsufficientStock)
	}

	description := req.Description
	if description == "" {
		description = "Sale - " + item.Name
	}

	revenue := model.JournalEntry{
		ID:          id.New("TRX"),
		Date:        date,
		Description: description,
		Items: []model.JournalItem{
			{AccountID: req.ClearingAccountID, Debit: total},
			{AccountID: c.roles.Revenue, Credit: total},
		},
	}

	// Cost basis comes from the stored average cost, read here before
	// the quantity decrement. The sale price never enters the cost side.
	costAmount := req.Quantity.Mul(item.UnitPrice)
	cost := model.JournalEntry{
		ID:          id.New("COG"),
		Date:        date,
		Description: "Cost of sale - " + item.Name,
		Items: []model.JournalItem{
			{AccountID: c.roles.CostOfSales, Debit: costAmount},
			{AccountID: c.roles.InventoryAsset, Credit: costAmount},
		},
	}

	return Transaction{
		Entries: []model.JournalEntry{revenue, cost},
		Delta:   inventory.Delta{ItemID: item.ID, Qty: req.Quantity.Neg()},
	}, nil
}

func (c *Composer) composePurchase(req Request, item model.InventoryItem, total decimal.Decimal, date time.Time) (Transaction, error) {
	description := req.Description
	if description == "" {
		description = "Purchase - " + item.Name
	}

	entry := model.JournalEntry{
		ID:          id.New("TRX"),
		Date:        date,
		Description: description,
		Items: []model.JournalItem{
			{AccountID: c.roles.InventoryAsset, Debit: total},
			{AccountID: req.ClearingAccountID, Credit: total},
		},
	}

	return Transaction{
		Entries: []model.JournalEntry{entry},
		Delta: inventory.Delta{
			ItemID:    item.ID,
			Qty:       req.Quantity,
			UnitPrice: req.UnitPrice,
			Priced:    true,
		},
	}, nil
}

// Apply commits a composed transaction: posts every entry, then applies
// the stock movement. Compose has already validated everything, so a
// failure here means the transaction was not built by Compose against
// this ledger.
func (c *Composer) Apply(tx Transaction) error {
	for _, entry := range tx.Entries {
		if err := c.ledger.Post(entry); err != nil {
			return fmt.Errorf("posting entry %s: %w", entry.ID, err)
		}
	}
	if _, err := c.ledger.Inventory.ApplyDelta(tx.Delta); err != nil {
		return fmt.Errorf("applying stock movement: %w", err)
	}
	return nil
}
