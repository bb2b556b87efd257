package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/currency"
	"github.com/tallybook-dev/tallybook/internal/id"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func newInventoryCommand() *cobra.Command {
	inventoryCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory operations",
	}
	inventoryCmd.AddCommand(newInventoryAddCommand())
	inventoryCmd.AddCommand(newInventoryListCommand())
	return inventoryCmd
}

func newInventoryAddCommand() *cobra.Command {
	var bookDir string
	var name string
	var qtyStr string
	var priceStr string
	var category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new inventory item",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := openBook(bookDir)
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

			item := model.InventoryItem{
				ID:        id.New("ITM"),
				Name:      name,
				Quantity:  qty,
				UnitPrice: price,
				Category:  category,
			}
			if err := l.Inventory.Add(item); err != nil {
				return err
			}
			if err := saveBook(bookDir, l); err != nil {
				return err
			}

			fmt.Printf("Added item %s (%s)\n", item.ID, item.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")
	cmd.Flags().StringVar(&name, "name", "", "item name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&qtyStr, "qty", "0", "opening quantity")
	cmd.Flags().StringVar(&priceStr, "price", "0", "opening unit cost")
	cmd.Flags().StringVar(&category, "category", "general", "item category")

	return cmd
}

func newInventoryListCommand() *cobra.Command {
	var bookDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory items with quantities and average cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := openBook(bookDir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tQTY\tAVG COST\tVALUE")
			for _, it := range l.Inventory.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					it.ID, it.Name, it.Category, it.Quantity.String(),
					currency.Format(it.UnitPrice, cfg.Business.Currency),
					currency.Format(it.Value(), cfg.Business.Currency))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")

	return cmd
}
