package supply

import (
	"math"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

// Status is the stock level of an item, derived from its quantity.
type Status string

const (
	StatusInStock    Status = "in-stock"
	StatusLowStock   Status = "low-stock"
	StatusOutOfStock Status = "out-of-stock"
)

// Item is a stocked supply such as a drug, consumable or piece of equipment.
type Item struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
	ReorderLevel int     `json:"reorderLevel"`
	Supplier     string  `json:"supplier"`
	ExpiryDate   string  `json:"expiryDate,omitempty"`
	Status       Status  `json:"status"`
}

func (it *Item) GetID() string   { return it.ID }
func (it *Item) SetID(id string) { it.ID = id }

// Derive sets the status from the quantity on hand. An item at or below its
// reorder level is low on stock.
func (it *Item) Derive() {
	it.Status = StockStatus(it.Quantity, it.ReorderLevel)
}

func (it *Item) Validate() error {
	var c store.Checks
	c.Required("name", it.Name)
	c.Required("category", it.Category)
	c.Required("unit", it.Unit)
	c.NonNegative("quantity", float64(it.Quantity))
	c.NonNegative("unitPrice", it.UnitPrice)
	c.NonNegative("reorderLevel", float64(it.ReorderLevel))
	c.Date("expiryDate", it.ExpiryDate, false)
	return c.Err()
}

// Value is the stock value of the item.
func (it Item) Value() float64 {
	return float64(it.Quantity) * it.UnitPrice
}

// StockStatus classifies a quantity against a reorder level.
func StockStatus(quantity, reorderLevel int) Status {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= reorderLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Stats counts items by stock level and sums their value.
type Stats struct {
	InStock    int     `json:"inStock"`
	LowStock   int     `json:"lowStock"`
	OutOfStock int     `json:"outOfStock"`
	Total      int     `json:"total"`
	TotalValue float64 `json:"totalValue"`
}

// Summarize computes Stats over items.
func Summarize(items []Item) Stats {
	s := Stats{Total: len(items)}
	var value float64
	for _, it := range items {
		switch it.Status {
		case StatusInStock:
			s.InStock++
		case StatusLowStock:
			s.LowStock++
		case StatusOutOfStock:
			s.OutOfStock++
		}
		value += it.Value()
	}
	s.TotalValue = math.Round(value*100) / 100
	return s
}
