package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/snapshot"
	"github.com/tallybook-dev/tallybook/internal/transaction"
)

const (
	configFile = "book.yaml"
	bookFile   = "book.json"
)

// openBook loads the config and the ledger from a book directory.
func openBook(dir string) (*config.Config, *ledger.Ledger, error) {
	cfg, err := config.Load(filepath.Join(dir, configFile))
	if err != nil {
		return nil, nil, fmt.Errorf("not a tallybook directory (run 'tallybook init'): %w", err)
	}

	f, err := os.Open(filepath.Join(dir, bookFile))
	if err != nil {
		return nil, nil, fmt.Errorf("opening book: %w", err)
	}
	defer f.Close()

	l, err := snapshot.Import(f)
	if err != nil {
		return nil, nil, fmt.Errorf("loading book: %w", err)
	}
	return cfg, l, nil
}

// saveBook writes the ledger back to the book file. Called by commands
// after a mutation has fully succeeded; the engine itself never
// persists as a side effect.
func saveBook(dir string, l *ledger.Ledger) error {
	var buf bytes.Buffer
	if err := snapshot.Export(&buf, l, time.Now()); err != nil {
		return fmt.Errorf("serializing book: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, bookFile), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing book: %w", err)
	}
	return nil
}

// resolveRoles maps the configured role account codes to account IDs.
func resolveRoles(cfg *config.Config, l *ledger.Ledger) (transaction.Roles, error) {
	var roles transaction.Roles
	for _, r := range []struct {
		code string
		dst  *string
		name string
	}{
		{cfg.Roles.Revenue, &roles.Revenue, "revenue_account"},
		{cfg.Roles.CostOfSales, &roles.CostOfSales, "cost_of_sales_account"},
		{cfg.Roles.InventoryAsset, &roles.InventoryAsset, "inventory_account"},
	} {
		acct, ok := l.Accounts.ByCode(r.code)
		if !ok {
			return transaction.Roles{}, fmt.Errorf("%s: no account with code %q in chart", r.name, r.code)
		}
		*r.dst = acct.ID
	}
	return roles, nil
}
