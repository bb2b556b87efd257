package accounts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testChart() []model.Account {
	return []model.Account{
		{ID: "1", Code: "1101", Name: "Cash", Type: model.AccountTypeAsset, Balance: dec("1000")},
		{ID: "9", Code: "4101", Name: "Sales Revenue", Type: model.AccountTypeIncome},
		{ID: "6", Code: "2101", Name: "Accounts Payable", Type: model.AccountTypeLiability},
	}
}

func TestApplyDelta_DebitNormal(t *testing.T) {
	svc := NewService(testChart())

	balance, ok := svc.ApplyDelta(model.JournalItem{AccountID: "1", Debit: dec("200")})
	require.True(t, ok)
	assert.True(t, balance.Equal(dec("1200")), "got %s", balance)

	balance, ok = svc.ApplyDelta(model.JournalItem{AccountID: "1", Credit: dec("300")})
	require.True(t, ok)
	assert.True(t, balance.Equal(dec("900")))
}

func TestApplyDelta_CreditNormal(t *testing.T) {
	svc := NewService(testChart())

	balance, ok := svc.ApplyDelta(model.JournalItem{AccountID: "9", Credit: dec("200")})
	require.True(t, ok)
	assert.True(t, balance.Equal(dec("200")))

	// A debit against a credit-normal account moves it down.
	balance, ok = svc.ApplyDelta(model.JournalItem{AccountID: "9", Debit: dec("50")})
	require.True(t, ok)
	assert.True(t, balance.Equal(dec("150")))
}

func TestApplyDelta_UnknownAccount(t *testing.T) {
	svc := NewService(testChart())

	_, ok := svc.ApplyDelta(model.JournalItem{AccountID: "404", Debit: dec("200")})
	assert.False(t, ok)

	// Nothing moved.
	cash, _ := svc.Get("1")
	assert.True(t, cash.Balance.Equal(dec("1000")))
}

func TestApplyDelta_CumulativeSum(t *testing.T) {
	svc := NewService(testChart())
	for i := 0; i < 5; i++ {
		svc.ApplyDelta(model.JournalItem{AccountID: "6", Credit: dec("10")})
	}
	payable, _ := svc.Get("6")
	assert.True(t, payable.Balance.Equal(dec("50")))
}

func TestContribution(t *testing.T) {
	item := model.JournalItem{Debit: dec("30"), Credit: dec("10")}
	assert.True(t, Contribution(model.NormalDebit, item).Equal(dec("20")))
	assert.True(t, Contribution(model.NormalCredit, item).Equal(dec("-20")))
}

func TestByCode(t *testing.T) {
	svc := NewService(testChart())

	acct, ok := svc.ByCode("4101")
	require.True(t, ok)
	assert.Equal(t, "Sales Revenue", acct.Name)

	_, ok = svc.ByCode("9999")
	assert.False(t, ok)
}

func TestByType(t *testing.T) {
	svc := NewService(testChart())
	assets := svc.ByType(model.AccountTypeAsset)
	require.Len(t, assets, 1)
	assert.Equal(t, "Cash", assets[0].Name)
}

func TestSearch(t *testing.T) {
	svc := NewService(testChart())

	assert.Len(t, svc.Search(""), 3)
	assert.Len(t, svc.Search("cash"), 1)
	assert.Len(t, svc.Search("41"), 1)
	assert.Len(t, svc.Search("liability"), 1)
	assert.Empty(t, svc.Search("nothing"))
}

func TestAllReturnsCopy(t *testing.T) {
	svc := NewService(testChart())
	all := svc.All()
	all[0].Balance = dec("9999")

	cash, _ := svc.Get("1")
	assert.True(t, cash.Balance.Equal(dec("1000")), "mutating the copy must not touch the service")
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart()
	svc := NewService(chart)

	ids := make(map[string]bool)
	codes := make(map[string]bool)
	for _, a := range chart {
		require.True(t, a.Type.Valid(), "account %s has invalid type", a.Code)
		require.False(t, ids[a.ID], "duplicate ID %s", a.ID)
		require.False(t, codes[a.Code], "duplicate code %s", a.Code)
		ids[a.ID] = true
		codes[a.Code] = true
		assert.True(t, a.Balance.IsZero())
	}

	// The default role accounts must exist in the seed chart.
	for _, code := range []string{"4101", "5202", "1201"} {
		_, ok := svc.ByCode(code)
		assert.True(t, ok, "missing role account %s", code)
	}
}
