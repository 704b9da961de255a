package billing

import (
	"fmt"
	"math"
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

// Status is the payment state of an invoice.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusPartial   Status = "partial"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

var statuses = []string{
	string(StatusPending), string(StatusPaid), string(StatusPartial), string(StatusOverdue), string(StatusCancelled),
}

// DefaultTerm is how long a patient has to pay when no due date is given.
const DefaultTerm = 30 * 24 * time.Hour

// Item is one billed line. It belongs to its invoice and has no id.
type Item struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Amount is quantity times unit price.
func (it Item) Amount() float64 { return it.Quantity * it.UnitPrice }

// Invoice bills a patient for a list of items.
type Invoice struct {
	ID            string  `json:"id"`
	PatientID     string  `json:"patientId"`
	Date          string  `json:"date"`
	DueDate       string  `json:"dueDate"`
	Items         []Item  `json:"items"`
	TotalAmount   float64 `json:"totalAmount"`
	PaidAmount    float64 `json:"paidAmount"`
	Status        Status  `json:"status"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
}

func (inv *Invoice) GetID() string   { return inv.ID }
func (inv *Invoice) SetID(id string) { inv.ID = id }

// Defaults dates a new invoice today, due after DefaultTerm, and totals its
// items when no total is given.
func (inv *Invoice) Defaults(now time.Time) {
	if inv.Status == "" {
		inv.Status = StatusPending
	}
	if inv.Date == "" {
		inv.Date = now.Format(store.DateLayout)
	}
	if inv.DueDate == "" {
		if d, err := time.Parse(store.DateLayout, inv.Date); err == nil {
			inv.DueDate = d.Add(DefaultTerm).Format(store.DateLayout)
		}
	}
	if inv.TotalAmount == 0 {
		inv.TotalAmount = inv.ItemsTotal()
	}
	if inv.Items == nil {
		inv.Items = []Item{}
	}
}

func (inv *Invoice) Validate() error {
	var c store.Checks
	c.Required("patientId", inv.PatientID)
	c.Date("date", inv.Date, true)
	c.Date("dueDate", inv.DueDate, true)
	c.NotBefore("dueDate", inv.DueDate, inv.Date)
	c.Check(len(inv.Items) > 0, "items", "must not be empty")
	for i, it := range inv.Items {
		field := fmt.Sprintf("items[%d]", i)
		c.Required(field+".description", it.Description)
		c.Positive(field+".quantity", it.Quantity)
		c.NonNegative(field+".unitPrice", it.UnitPrice)
	}
	c.Check(Cents(inv.TotalAmount) == Cents(inv.ItemsTotal()), "totalAmount",
		"must equal the sum of items (%.2f), got %.2f", inv.ItemsTotal(), inv.TotalAmount)
	c.NonNegative("paidAmount", inv.PaidAmount)
	c.Check(Cents(inv.PaidAmount) <= Cents(inv.TotalAmount), "paidAmount", "must not exceed totalAmount")
	c.OneOf("status", string(inv.Status), statuses...)
	if inv.Status == StatusPaid {
		c.Check(Cents(inv.PaidAmount) == Cents(inv.TotalAmount), "status", "paid invoices must be paid in full")
	}
	return c.Err()
}

func (inv *Invoice) Clone() Invoice {
	out := *inv
	out.Items = append([]Item(nil), inv.Items...)
	return out
}

// ItemsTotal sums the item amounts.
func (inv Invoice) ItemsTotal() float64 {
	var sum float64
	for _, it := range inv.Items {
		sum += it.Amount()
	}
	return float64(Cents(sum)) / 100
}

// Balance is what is still owed.
func (inv Invoice) Balance() float64 {
	return float64(Cents(inv.TotalAmount)-Cents(inv.PaidAmount)) / 100
}

// Open reports whether the invoice still expects payment.
func (inv Invoice) Open() bool {
	switch inv.Status {
	case StatusPending, StatusPartial, StatusOverdue:
		return true
	}
	return false
}

// Cents rounds an amount to whole cents.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// Stats sums invoiced, collected and outstanding money. Cancelled invoices
// are counted by status only.
type Stats struct {
	Invoiced    float64        `json:"invoiced"`
	Collected   float64        `json:"collected"`
	Outstanding float64        `json:"outstanding"`
	ByStatus    map[Status]int `json:"byStatus"`
	Total       int            `json:"total"`
}

// Summarize computes Stats over invoices.
func Summarize(invoices []Invoice) Stats {
	s := Stats{ByStatus: make(map[Status]int, len(statuses)), Total: len(invoices)}
	var invoiced, collected int64
	for _, inv := range invoices {
		s.ByStatus[inv.Status]++
		if inv.Status == StatusCancelled {
			continue
		}
		invoiced += Cents(inv.TotalAmount)
		collected += Cents(inv.PaidAmount)
	}
	s.Invoiced = float64(invoiced) / 100
	s.Collected = float64(collected) / 100
	s.Outstanding = float64(invoiced-collected) / 100
	return s
}
