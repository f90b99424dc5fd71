// Package invoice serves the demonstration invoice ledger behind an
// injectable store so tests and future real storage can swap it out.
package invoice

import "errors"

var ErrNotFound = errors.New("invoice not found")

type LineItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

type Invoice struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Date        string     `json:"date"`
	DueDate     string     `json:"dueDate"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	ClientName  string     `json:"clientName"`
	ClientEmail string     `json:"clientEmail"`
	Description string     `json:"description"`
	Items       []LineItem `json:"items"`
	Format      string     `json:"format"`
}

// Filter narrows a listing; Search matches code, client name, or
// description case-insensitively.
type Filter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// Patch for partial updates; Items replaces the whole list and
// recalculates the amount.
type Patch struct {
	ClientName  *string
	ClientEmail *string
	Description *string
	Items       []LineItem
	DueDate     *string
	Status      *string
}

type Stats struct {
	TotalInvoices   int     `json:"totalInvoices"`
	PaidInvoices    int     `json:"paidInvoices"`
	PendingInvoices int     `json:"pendingInvoices"`
	OverdueInvoices int     `json:"overdueInvoices"`
	DraftInvoices   int     `json:"draftInvoices"`
	TotalAmount     float64 `json:"totalAmount"`
	PaidAmount      float64 `json:"paidAmount"`
	PendingAmount   float64 `json:"pendingAmount"`
}

type Store interface {
	List(f Filter) ([]Invoice, int)
	Get(id string) (Invoice, error)
	Create(inv Invoice) Invoice
	Update(id string, p Patch) (Invoice, error)
	Delete(id string) error
	Stats() Stats
}

// TotalAmount sums quantity x rate over the line items.
func TotalAmount(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Quantity * it.Rate
	}
	return sum
}
