package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/currency"
	"github.com/tallybook-dev/tallybook/internal/reports"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Financial statements",
	}
	reportCmd.AddCommand(newReportIncomeCommand())
	reportCmd.AddCommand(newReportBalanceCommand())
	reportCmd.AddCommand(newReportInventoryCommand())
	return reportCmd
}

func newReportIncomeCommand() *cobra.Command {
	var bookDir string
	var from, to, compareFrom, compareTo string

	cmd := &cobra.Command{
		Use:   "income",
		Short: "Income statement, optionally compared against a previous period",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := openBook(bookDir)
			if err != nil {
				return err
			}
			roles, err := resolveRoles(cfg, l)
			if err != nil {
				return err
			}

			period, err := parsePeriod(from, to)
			if err != nil {
				return err
			}
			var compare *reports.Period
			if compareFrom != "" || compareTo != "" {
				p, err := parsePeriod(compareFrom, compareTo)
				if err != nil {
					return err
				}
				compare = &p
			}

			engine := reports.NewEngine(l, roles.CostOfSales)
			stmt := engine.IncomeStatement(period, compare)

			code := cfg.Business.Currency
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

			writeLine := func(label string, f reports.Figure) {
				if stmt.Compared {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f%%\n", label,
						currency.Format(f.Current, code), currency.Format(f.Previous, code),
						currency.Format(f.Diff, code), f.Percent)
					return
				}
				fmt.Fprintf(w, "%s\t%s\n", label, currency.Format(f.Current, code))
			}

			if stmt.Compared {
				fmt.Fprintln(w, "\tCURRENT\tPREVIOUS\tDIFF\tCHANGE")
			}
			fmt.Fprintln(w, "Income")
			for _, line := range stmt.Income {
				writeLine("  "+line.Account.Name, line.Figure)
			}
			writeLine("Total income", stmt.TotalIncome)
			for _, line := range stmt.CostOfSales {
				writeLine("  "+line.Account.Name, line.Figure)
			}
			writeLine("Gross profit", stmt.GrossProfit)
			fmt.Fprintln(w, "Expenses")
			for _, line := range stmt.Expenses {
				writeLine("  "+line.Account.Name, line.Figure)
			}
			writeLine("Total expenses", stmt.TotalExpenses)
			writeLine("Net profit", stmt.NetProfit)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")
	cmd.Flags().StringVar(&from, "from", "", "period start (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "period end (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&compareFrom, "compare-from", "", "comparison period start")
	cmd.Flags().StringVar(&compareTo, "compare-to", "", "comparison period end")

	return cmd
}

func newReportBalanceCommand() *cobra.Command {
	var bookDir string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Balance sheet from current balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := openBook(bookDir)
			if err != nil {
				return err
			}

			engine := reports.NewEngine(l, "")
			bs := engine.BalanceSheet()
			code := cfg.Business.Currency

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "Assets")
			for _, a := range bs.Assets {
				fmt.Fprintf(w, "  %s\t%s\n", a.Name, currency.Format(a.Balance, code))
			}
			fmt.Fprintf(w, "Total assets\t%s\n", currency.Format(bs.TotalAssets, code))
			fmt.Fprintln(w, "Liabilities")
			for _, a := range bs.Liabilities {
				fmt.Fprintf(w, "  %s\t%s\n", a.Name, currency.Format(a.Balance, code))
			}
			fmt.Fprintf(w, "Total liabilities\t%s\n", currency.Format(bs.TotalLiabilities, code))
			fmt.Fprintln(w, "Equity")
			for _, a := range bs.Equity {
				fmt.Fprintf(w, "  %s\t%s\n", a.Name, currency.Format(a.Balance, code))
			}
			fmt.Fprintf(w, "Total equity\t%s\n", currency.Format(bs.TotalEquity, code))
			fmt.Fprintf(w, "Liabilities + equity\t%s\n", currency.Format(bs.TotalLiabilities.Add(bs.TotalEquity), code))
			if err := w.Flush(); err != nil {
				return err
			}

			if bs.Balanced {
				fmt.Println("Balanced: assets equal liabilities plus equity.")
			} else {
				fmt.Println("NOT BALANCED: review the journal entries.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")

	return cmd
}

func newReportInventoryCommand() *cobra.Command {
	var bookDir string
	var category string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory valuation at moving-average cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := openBook(bookDir)
			if err != nil {
				return err
			}

			engine := reports.NewEngine(l, "")
			report := engine.InventoryValuation(category)
			code := cfg.Business.Currency

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tQTY\tAVG COST\tVALUE")
			for _, line := range report.Lines {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					line.Item.Name, line.Item.Category, line.Item.Quantity.String(),
					currency.Format(line.Item.UnitPrice, code), currency.Format(line.Value, code))
			}
			fmt.Fprintf(w, "Total\t\t\t\t%s\n", currency.Format(report.Total, code))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")
	cmd.Flags().StringVar(&category, "category", "", "filter by category (default all)")

	return cmd
}

func parsePeriod(from, to string) (reports.Period, error) {
	var p reports.Period
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return reports.Period{}, fmt.Errorf("invalid start date %q", from)
		}
		p.Start = &t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return reports.Period{}, fmt.Errorf("invalid end date %q", to)
		}
		p.End = &t
	}
	return p, nil
}
