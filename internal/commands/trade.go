package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/currency"
	"github.com/tallybook-dev/tallybook/internal/transaction"
)

func newSellCommand() *cobra.Command {
	return newTradeCommand(transaction.KindSale, "sell", "Record a sale from inventory")
}

func newBuyCommand() *cobra.Command {
	return newTradeCommand(transaction.KindPurchase, "buy", "Record an inventory purchase")
}

func newTradeCommand(kind transaction.Kind, use, short string) *cobra.Command {
	var bookDir string
	var itemID string
	var qtyStr string
	var priceStr string
	var clearingCode string
	var description string
	var dateStr string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := openBook(bookDir)
			if err != nil {
				return err
			}

			roles, err := resolveRoles(cfg, l)
			if err != nil {
				return err
			}

			qty, err := decimal.NewFromString(qtyStr)
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", qtyStr, err)
			}
			price, err := decimal.NewFromString(priceStr)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", priceStr, err)
			}

			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			clearing, ok := l.Accounts.ByCode(clearingCode)
			if !ok {
				return fmt.Errorf("no account with code %q in chart", clearingCode)
			}

			composer := transaction.NewComposer(l, roles)
			tx, err := composer.Compose(transaction.Request{
				Kind:              kind,
				ItemID:            itemID,
				Quantity:          qty,
				UnitPrice:         price,
				ClearingAccountID: clearing.ID,
				Description:       description,
				Date:              date,
			})
			if err != nil {
				return err
			}
			if err := composer.Apply(tx); err != nil {
				return err
			}
			if err := saveBook(bookDir, l); err != nil {
				return err
			}

			total := qty.Mul(price)
			for _, entry := range tx.Entries {
				fmt.Printf("Posted entry %s (%s)\n", entry.ID, entry.Description)
			}
			fmt.Printf("Total: %s\n", currency.Format(total, cfg.Business.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")
	cmd.Flags().StringVar(&itemID, "item", "", "inventory item ID (required)")
	_ = cmd.MarkFlagRequired("item")
	cmd.Flags().StringVar(&qtyStr, "qty", "", "quantity (required)")
	_ = cmd.MarkFlagRequired("qty")
	cmd.Flags().StringVar(&priceStr, "price", "", "unit price (required)")
	_ = cmd.MarkFlagRequired("price")
	cmd.Flags().StringVar(&clearingCode, "account", "1101", "clearing account code (cash/bank)")
	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringVar(&dateStr, "date", "", "date (YYYY-MM-DD, default today)")

	return cmd
}
