package accounts

import "github.com/tallybook-dev/tallybook/internal/model"

// DefaultChart returns the seed chart of accounts for a new book.
// Codes follow the usual small-business scheme: 11xx liquid assets,
// 12xx stock, 2xxx liabilities, 3xxx equity, 4xxx income, 5xxx expenses
// with 5202 reserved for cost of goods sold.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: "1", Code: "1101", Name: "Cash", Type: model.AccountTypeAsset},
		{ID: "2", Code: "1102", Name: "Bank", Type: model.AccountTypeAsset},
		{ID: "3", Code: "1201", Name: "Inventory", Type: model.AccountTypeAsset},
		{ID: "4", Code: "1301", Name: "Accounts Receivable", Type: model.AccountTypeAsset},
		{ID: "5", Code: "1401", Name: "Equipment", Type: model.AccountTypeAsset},
		{ID: "6", Code: "2101", Name: "Accounts Payable", Type: model.AccountTypeLiability},
		{ID: "7", Code: "2201", Name: "Loans Payable", Type: model.AccountTypeLiability},
		{ID: "8", Code: "3101", Name: "Owner's Capital", Type: model.AccountTypeEquity},
		{ID: "9", Code: "4101", Name: "Sales Revenue", Type: model.AccountTypeIncome},
		{ID: "10", Code: "4201", Name: "Other Income", Type: model.AccountTypeIncome},
		{ID: "11", Code: "5101", Name: "Rent Expense", Type: model.AccountTypeExpense},
		{ID: "12", Code: "5102", Name: "Salaries Expense", Type: model.AccountTypeExpense},
		{ID: "13", Code: "5103", Name: "Utilities Expense", Type: model.AccountTypeExpense},
		{ID: "14", Code: "5202", Name: "Cost of Goods Sold", Type: model.AccountTypeExpense},
	}
}
