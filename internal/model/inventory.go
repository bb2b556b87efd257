package model

import "github.com/shopspring/decimal"

// InventoryItem is a stocked product valued at a moving weighted-average
// unit cost. Quantity never goes negative (outgoing movements clamp at
// zero); UnitPrice is the current average cost, recomputed only on
// incoming stock.
type InventoryItem struct {
	ID        string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Category  string
}

// Value returns quantity times the current average unit cost.
func (i InventoryItem) Value() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
