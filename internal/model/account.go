package model

import "github.com/shopspring/decimal"

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// NormalSide is the side on which an account type carries a positive balance.
type NormalSide string

const (
	NormalDebit  NormalSide = "debit"
	NormalCredit NormalSide = "credit"
)

// NormalSide returns the normal balance side for the account type.
// Assets and expenses are debit-normal; everything else is credit-normal.
func (t AccountType) NormalSide() NormalSide {
	if t == AccountTypeAsset || t == AccountTypeExpense {
		return NormalDebit
	}
	return NormalCredit
}

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// Account is one row in the chart of accounts. Balance is a running signed
// total in normal-side units: positive means more of the expected side.
// Accounts are created once from the seed chart and never deleted; only
// posting mutates the balance.
type Account struct {
	ID      string
	Code    string
	Name    string
	Type    AccountType
	Balance decimal.Decimal
}
