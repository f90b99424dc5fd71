package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps invoices in process memory. Unlike the demo arrays it
// replaces, it is safe under concurrent request handlers.
type MemoryStore struct {
	mu       sync.Mutex
	invoices []Invoice
	nextID   int
}

// NewMemoryStore seeds the store with the stock demonstration invoices.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{invoices: seedInvoices(), nextID: 6}
}

// NewEmptyStore returns a store with no seed data, for tests.
func NewEmptyStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) List(f Filter) ([]Invoice, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]Invoice, 0, len(s.invoices))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, inv := range s.invoices {
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(inv.Code), search) &&
			!strings.Contains(strings.ToLower(inv.ClientName), search) &&
			!strings.Contains(strings.ToLower(inv.Description), search) {
			continue
		}
		filtered = append(filtered, inv)
	}

	total := len(filtered)
	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= total {
		return []Invoice{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return append([]Invoice(nil), filtered[start:end]...), total
}

func (s *MemoryStore) Get(id string) (Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return Invoice{}, ErrNotFound
}

func (s *MemoryStore) Create(inv Invoice) Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	inv.ID = strconv.Itoa(s.nextID)
	s.nextID++
	inv.Code = fmt.Sprintf("#INV-%d", now.UnixMilli())
	inv.Date = now.Format("2006-01-02")
	if inv.DueDate == "" {
		inv.DueDate = now.AddDate(0, 0, 30).Format("2006-01-02")
	}
	inv.Amount = TotalAmount(inv.Items)
	inv.Status = "draft"
	inv.Format = "PDF"

	// newest first, like the listing order
	s.invoices = append([]Invoice{inv}, s.invoices...)
	return inv
}

func (s *MemoryStore) Update(id string, p Patch) (Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices {
		if s.invoices[i].ID != id {
			continue
		}
		inv := &s.invoices[i]
		if p.ClientName != nil && *p.ClientName != "" {
			inv.ClientName = *p.ClientName
		}
		if p.ClientEmail != nil && *p.ClientEmail != "" {
			inv.ClientEmail = *p.ClientEmail
		}
		if p.Description != nil {
			inv.Description = *p.Description
		}
		if p.Items != nil {
			inv.Items = p.Items
			inv.Amount = TotalAmount(p.Items)
		}
		if p.DueDate != nil && *p.DueDate != "" {
			inv.DueDate = *p.DueDate
		}
		if p.Status != nil && *p.Status != "" {
			inv.Status = *p.Status
		}
		return *inv, nil
	}
	return Invoice{}, ErrNotFound
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices {
		if s.invoices[i].ID == id {
			s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	st.TotalInvoices = len(s.invoices)
	for _, inv := range s.invoices {
		st.TotalAmount += inv.Amount
		switch inv.Status {
		case "paid":
			st.PaidInvoices++
			st.PaidAmount += inv.Amount
		case "pending":
			st.PendingInvoices++
			st.PendingAmount += inv.Amount
		case "overdue":
			st.OverdueInvoices++
			st.PendingAmount += inv.Amount
		case "draft":
			st.DraftInvoices++
		}
	}
	return st
}

func seedInvoices() []Invoice {
	return []Invoice{
		{
			ID: "1", Code: "#MS-415646", Date: "2024-03-01", DueDate: "2024-03-31",
			Amount: 180, Status: "paid",
			ClientName: "Acme Corporation", ClientEmail: "billing@acme.com",
			Description: "Web development services",
			Items: []LineItem{
				{Name: "Frontend Development", Quantity: 20, Rate: 50, Amount: 1000},
				{Name: "Backend Development", Quantity: 15, Rate: 60, Amount: 900},
			},
			Format: "PDF",
		},
		{
			ID: "2", Code: "#RV-126749", Date: "2024-02-10", DueDate: "2024-03-10",
			Amount: 250, Status: "paid",
			ClientName: "Tech Solutions Inc", ClientEmail: "accounts@techsolutions.com",
			Description: "Consulting services",
			Items: []LineItem{
				{Name: "Technical Consultation", Quantity: 5, Rate: 100, Amount: 500},
			},
			Format: "PDF",
		},
		{
			ID: "3", Code: "#FB-212562", Date: "2024-04-05", DueDate: "2024-05-05",
			Amount: 560, Status: "pending",
			ClientName: "Digital Marketing Co", ClientEmail: "finance@digitalmarketing.com",
			Description: "Website redesign project",
			Items: []LineItem{
				{Name: "UI/UX Design", Quantity: 8, Rate: 75, Amount: 600},
				{Name: "Development", Quantity: 12, Rate: 65, Amount: 780},
			},
			Format: "PDF",
		},
		{
			ID: "4", Code: "#QW-103578", Date: "2024-06-25", DueDate: "2024-07-25",
			Amount: 120, Status: "overdue",
			ClientName: "Startup Ventures", ClientEmail: "billing@startupventures.com",
			Description: "Mobile app development",
			Items: []LineItem{
				{Name: "App Development", Quantity: 2, Rate: 200, Amount: 400},
			},
			Format: "PDF",
		},
		{
			ID: "5", Code: "#AR-803481", Date: "2024-03-01", DueDate: "2024-04-01",
			Amount: 300, Status: "draft",
			ClientName: "Enterprise Solutions", ClientEmail: "payments@enterprise.com",
			Description: "System integration services",
			Items: []LineItem{
				{Name: "Integration Services", Quantity: 6, Rate: 80, Amount: 480},
			},
			Format: "PDF",
		},
	}
}
