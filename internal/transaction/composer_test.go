package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/accounts"
	"github.com/tallybook-dev/tallybook/internal/inventory"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testRoles = Roles{Revenue: "9", CostOfSales: "14", InventoryAsset: "3"}

func testComposer() (*Composer, *ledger.Ledger) {
	l := ledger.New(
		accounts.NewService([]model.Account{
			{ID: "1", Code: "1101", Name: "Cash", Type: model.AccountTypeAsset, Balance: dec("1000")},
			{ID: "3", Code: "1201", Name: "Inventory", Type: model.AccountTypeAsset, Balance: dec("500")},
			{ID: "9", Code: "4101", Name: "Sales Revenue", Type: model.AccountTypeIncome},
			{ID: "14", Code: "5202", Name: "Cost of Goods Sold", Type: model.AccountTypeExpense},
		}),
		inventory.NewService([]model.InventoryItem{
			{ID: "w1", Name: "Widget", Quantity: dec("10"), UnitPrice: dec("50"), Category: "hardware"},
		}),
	)
	return NewComposer(l, testRoles), l
}

func saleRequest() Request {
	return Request{
		Kind:              KindSale,
		ItemID:            "w1",
		Quantity:          dec("2"),
		UnitPrice:         dec("100"),
		ClearingAccountID: "1",
		Date:              time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCompose_Sale(t *testing.T) {
	c, _ := testComposer()

	tx, err := c.Compose(saleRequest())
	require.NoError(t, err)
	require.Len(t, tx.Entries, 2)

	revenue := tx.Entries[0]
	require.Len(t, revenue.Items, 2)
	assert.Equal(t, "1", revenue.Items[0].AccountID)
	assert.True(t, revenue.Items[0].Debit.Equal(dec("200")))
	assert.Equal(t, "9", revenue.Items[1].AccountID)
	assert.True(t, revenue.Items[1].Credit.Equal(dec("200")))

	// Cost entry is valued at the stored average cost, not the sale price.
	cost := tx.Entries[1]
	require.Len(t, cost.Items, 2)
	assert.Equal(t, "14", cost.Items[0].AccountID)
	assert.True(t, cost.Items[0].Debit.Equal(dec("100")))
	assert.Equal(t, "3", cost.Items[1].AccountID)
	assert.True(t, cost.Items[1].Credit.Equal(dec("100")))

	assert.True(t, tx.Delta.Qty.Equal(dec("-2")))
	assert.False(t, tx.Delta.Priced, "outgoing stock never carries a price")
}

func TestApply_Sale(t *testing.T) {
	c, l := testComposer()

	tx, err := c.Compose(saleRequest())
	require.NoError(t, err)
	require.NoError(t, c.Apply(tx))

	cash, _ := l.Accounts.Get("1")
	revenue, _ := l.Accounts.Get("9")
	cogs, _ := l.Accounts.Get("14")
	invAsset, _ := l.Accounts.Get("3")
	assert.True(t, cash.Balance.Equal(dec("1200")))
	assert.True(t, revenue.Balance.Equal(dec("200")))
	assert.True(t, cogs.Balance.Equal(dec("100")))
	assert.True(t, invAsset.Balance.Equal(dec("400")))

	item, _ := l.Inventory.Get("w1")
	assert.True(t, item.Quantity.Equal(dec("8")))
	assert.True(t, item.UnitPrice.Equal(dec("50")), "sale leaves the average cost unchanged")

	assert.Equal(t, 2, l.EntryCount())
}

func TestCompose_Purchase(t *testing.T) {
	c, l := testComposer()

	tx, err := c.Compose(Request{
		Kind:              KindPurchase,
		ItemID:            "w1",
		Quantity:          dec("10"),
		UnitPrice:         dec("20"),
		ClearingAccountID: "1",
	})
	require.NoError(t, err)
	require.Len(t, tx.Entries, 1)

	entry := tx.Entries[0]
	assert.Equal(t, "3", entry.Items[0].AccountID)
	assert.True(t, entry.Items[0].Debit.Equal(dec("200")))
	assert.Equal(t, "1", entry.Items[1].AccountID)
	assert.True(t, entry.Items[1].Credit.Equal(dec("200")))

	require.True(t, tx.Delta.Priced)
	assert.True(t, tx.Delta.Qty.Equal(dec("10")))
	assert.True(t, tx.Delta.UnitPrice.Equal(dec("20")))

	require.NoError(t, c.Apply(tx))
	item, _ := l.Inventory.Get("w1")
	assert.True(t, item.Quantity.Equal(dec("20")))
	// (10*50 + 10*20) / 20 = 35
	assert.True(t, item.UnitPrice.Equal(dec("35")), "got %s", item.UnitPrice)
}

func TestCompose_RejectsNonPositiveQuantity(t *testing.T) {
	c, l := testComposer()

	req := saleRequest()
	req.Quantity = dec("0")
	_, err := c.Compose(req)
	require.ErrorIs(t, err, ErrNonPositiveQuantity)

	req.Quantity = dec("-3")
	_, err = c.Compose(req)
	require.ErrorIs(t, err, ErrNonPositiveQuantity)

	assert.Zero(t, l.EntryCount(), "rejection must not mutate")
}

func TestCompose_RejectsZeroTotal(t *testing.T) {
	c, _ := testComposer()

	req := saleRequest()
	req.UnitPrice = dec("0")
	_, err := c.Compose(req)
	require.ErrorIs(t, err, ErrNonPositiveTotal)
}

func TestCompose_RejectsNegativePrice(t *testing.T) {
	c, _ := testComposer()

	req := saleRequest()
	req.UnitPrice = dec("-5")
	_, err := c.Compose(req)
	require.ErrorIs(t, err, ErrNegativePrice)
}

func TestCompose_RejectsInsufficientStock(t *testing.T) {
	c, l := testComposer()

	req := saleRequest()
	req.Quantity = dec("11")
	_, err := c.Compose(req)
	require.ErrorIs(t, err, ErrInsufficientStock)

	item, _ := l.Inventory.Get("w1")
	assert.True(t, item.Quantity.Equal(dec("10")))
	assert.Zero(t, l.EntryCount())
}

func TestCompose_PurchaseAllowsAnyQuantity(t *testing.T) {
	c, _ := testComposer()

	// Stock sufficiency only applies to sales.
	_, err := c.Compose(Request{
		Kind:              KindPurchase,
		ItemID:            "w1",
		Quantity:          dec("1000"),
		UnitPrice:         dec("1"),
		ClearingAccountID: "1",
	})
	require.NoError(t, err)
}

func TestCompose_UnknownItem(t *testing.T) {
	c, _ := testComposer()

	req := saleRequest()
	req.ItemID = "nope"
	_, err := c.Compose(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown inventory item")
}

func TestCompose_UnknownClearingAccount(t *testing.T) {
	c, _ := testComposer()

	req := saleRequest()
	req.ClearingAccountID = "404"
	_, err := c.Compose(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown clearing account")
}

func TestCompose_MissingRoleAccount(t *testing.T) {
	l := ledger.New(
		accounts.NewService([]model.Account{
			{ID: "1", Code: "1101", Name: "Cash", Type: model.AccountTypeAsset},
		}),
		inventory.NewService([]model.InventoryItem{
			{ID: "w1", Name: "Widget", Quantity: dec("10"), UnitPrice: dec("50")},
		}),
	)
	c := NewComposer(l, testRoles)

	req := saleRequest()
	_, err := c.Compose(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in chart")
}

func TestCompose_DefaultDescriptions(t *testing.T) {
	c, _ := testComposer()

	tx, err := c.Compose(saleRequest())
	require.NoError(t, err)
	assert.Equal(t, "Sale - Widget", tx.Entries[0].Description)
	assert.Equal(t, "Cost of sale - Widget", tx.Entries[1].Description)

	tx, err = c.Compose(Request{
		Kind: KindPurchase, ItemID: "w1", Quantity: dec("1"),
		UnitPrice: dec("10"), ClearingAccountID: "1", Description: "restock",
	})
	require.NoError(t, err)
	assert.Equal(t, "restock", tx.Entries[0].Description)
}
