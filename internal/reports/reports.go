// Package reports derives the financial statement view-models from the
// recorded history and current balances. The income statement replays
// date-ranged entries; the balance sheet is a point-in-time view over
// live cumulative balances.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/accounts"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// balanceTolerance is the numeric slack allowed when checking the
// Assets = Liabilities + Equity identity.
var balanceTolerance = decimal.NewFromFloat(0.01)

// Period is an inclusive date range. A nil bound leaves that side open.
type Period struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls within the period, inclusive on both
// ends.
func (p Period) Contains(t time.Time) bool {
	if p.Start != nil && t.Before(*p.Start) {
		return false
	}
	if p.End != nil && t.After(*p.End) {
		return false
	}
	return true
}

// Figure is a reported amount with its comparison-period counterpart.
// Percent is diff relative to the absolute previous value, or zero when
// there is no previous value to compare against.
type Figure struct {
	Current  decimal.Decimal
	Previous decimal.Decimal
	Diff     decimal.Decimal
	Percent  float64
}

func change(current, previous decimal.Decimal) Figure {
	diff := current.Sub(previous)
	var percent float64
	if !previous.IsZero() {
		percent = diff.Div(previous.Abs()).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return Figure{Current: current, Previous: previous, Diff: diff, Percent: percent}
}

// Line is one account row in the income statement.
type Line struct {
	Account model.Account
	Figure
}

// IncomeStatement partitions income and expense activity over a period,
// with cost of sales broken out of the expenses for the gross profit
// line.
type IncomeStatement struct {
	Income      []Line
	CostOfSales []Line
	Expenses    []Line

	TotalIncome      Figure
	TotalCostOfSales Figure
	GrossProfit      Figure
	TotalExpenses    Figure
	NetProfit        Figure

	Compared bool
}

// BalanceSheet sums live cumulative balances by type and checks the
// accounting identity within tolerance.
type BalanceSheet struct {
	Assets      []model.Account
	Liabilities []model.Account
	Equity      []model.Account

	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
	Balanced         bool
}

// InventoryLine is one valued inventory row.
type InventoryLine struct {
	Item  model.InventoryItem
	Value decimal.Decimal
}

// InventoryReport values the stock on hand, optionally narrowed to one
// category.
type InventoryReport struct {
	Category string
	Lines    []InventoryLine
	Total    decimal.Decimal
}

// Engine computes reports over a ledger. The cost-of-sales account is
// identified by its configured role ID, never by matching account text.
type Engine struct {
	ledger        *ledger.Ledger
	costOfSalesID string
}

// NewEngine creates an Engine.
func NewEngine(l *ledger.Ledger, costOfSalesAccountID string) *Engine {
	return &Engine{ledger: l, costOfSalesID: costOfSalesAccountID}
}

// RangedBalance sums, over entries dated within the period, each item's
// contribution to the given normal side for the account.
func (e *Engine) RangedBalance(accountID string, side model.NormalSide, p Period) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range e.ledger.Entries() {
		if !p.Contains(entry.Date) {
			continue
		}
		for _, item := range entry.Items {
			if item.AccountID != accountID {
				continue
			}
			total = total.Add(accounts.Contribution(side, item))
		}
	}
	return total
}

// IncomeStatement computes the period's income statement. When compare
// is non-nil the same computation runs for the comparison period and
// every line and total carries diff and percent.
func (e *Engine) IncomeStatement(p Period, compare *Period) IncomeStatement {
	stmt := IncomeStatement{Compared: compare != nil}

	line := func(acct model.Account) Line {
		side := acct.Type.NormalSide()
		current := e.RangedBalance(acct.ID, side, p)
		previous := decimal.Zero
		if compare != nil {
			previous = e.RangedBalance(acct.ID, side, *compare)
		}
		return Line{Account: acct, Figure: change(current, previous)}
	}

	for _, acct := range e.ledger.Accounts.ByType(model.AccountTypeIncome) {
		stmt.Income = append(stmt.Income, line(acct))
	}
	for _, acct := range e.ledger.Accounts.ByType(model.AccountTypeExpense) {
		if acct.ID == e.costOfSalesID {
			stmt.CostOfSales = append(stmt.CostOfSales, line(acct))
		} else {
			stmt.Expenses = append(stmt.Expenses, line(acct))
		}
	}

	sum := func(lines []Line) (cur, prev decimal.Decimal) {
		cur, prev = decimal.Zero, decimal.Zero
		for _, l := range lines {
			cur = cur.Add(l.Current)
			prev = prev.Add(l.Previous)
		}
		return cur, prev
	}

	incomeCur, incomePrev := sum(stmt.Income)
	cogsCur, cogsPrev := sum(stmt.CostOfSales)
	expCur, expPrev := sum(stmt.Expenses)

	stmt.TotalIncome = change(incomeCur, incomePrev)
	stmt.TotalCostOfSales = change(cogsCur, cogsPrev)
	stmt.GrossProfit = change(incomeCur.Sub(cogsCur), incomePrev.Sub(cogsPrev))
	stmt.TotalExpenses = change(expCur, expPrev)
	stmt.NetProfit = change(
		incomeCur.Sub(cogsCur).Sub(expCur),
		incomePrev.Sub(cogsPrev).Sub(expPrev),
	)
	return stmt
}

// BalanceSheet reads the current cumulative balances by account type.
// Repeated calls with no intervening postings return identical totals.
func (e *Engine) BalanceSheet() BalanceSheet {
	bs := BalanceSheet{
		Assets:      e.ledger.Accounts.ByType(model.AccountTypeAsset),
		Liabilities: e.ledger.Accounts.ByType(model.AccountTypeLiability),
		Equity:      e.ledger.Accounts.ByType(model.AccountTypeEquity),
	}

	total := func(accts []model.Account) decimal.Decimal {
		t := decimal.Zero
		for _, a := range accts {
			t = t.Add(a.Balance)
		}
		return t
	}

	bs.TotalAssets = total(bs.Assets)
	bs.TotalLiabilities = total(bs.Liabilities)
	bs.TotalEquity = total(bs.Equity)
	bs.Balanced = bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity)).Abs().LessThan(balanceTolerance)
	return bs
}

// InventoryValuation values each item at quantity times average cost.
// An empty category includes everything; the total covers the selected
// items.
func (e *Engine) InventoryValuation(category string) InventoryReport {
	report := InventoryReport{Category: category}
	for _, item := range e.ledger.Inventory.All() {
		if category != "" && item.Category != category {
			continue
		}
		value := item.Value()
		report.Lines = append(report.Lines, InventoryLine{Item: item, Value: value})
		report.Total = report.Total.Add(value)
	}
	return report
}
