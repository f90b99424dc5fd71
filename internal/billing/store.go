package billing

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps billing data in memory, seeded with demo records.
type MemoryStore struct {
	mu      sync.Mutex
	info    []Info
	methods []PaymentMethod
	history []Payment
	nextID  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		info: []Info{
			{ID: "1", Name: "Oliver Liam", Company: "Viking Burrito", Email: "oliver@burrito.com", Number: "FRB1235476", Address: "123 Main St, New York, NY 10001", Phone: "+1 (555) 123-4567", IsDefault: true},
			{ID: "2", Name: "Lucas Harper", Company: "Stone Tech Zone", Email: "lucas@stone-tech.com", Number: "FRB1235477", Address: "456 Tech Ave, San Francisco, CA 94105", Phone: "+1 (555) 987-6543"},
			{ID: "3", Name: "Ethan James", Company: "Fiber Notion", Email: "ethan@fiber.com", Number: "FRB1235478", Address: "789 Innovation Blvd, Austin, TX 73301", Phone: "+1 (555) 456-7890"},
		},
		methods: []PaymentMethod{
			{ID: "1", Type: "credit_card", Brand: "mastercard", Last4: "XXXX", CardNumber: "7812 2139 0823 XXXX", ExpiryMonth: "05", ExpiryYear: "24", CVV: "09X", HolderName: "Argon x Chakra", IsDefault: true, IsActive: true},
			{ID: "2", Type: "credit_card", Brand: "visa", Last4: "XXXX", CardNumber: "4532 1234 5678 XXXX", ExpiryMonth: "12", ExpiryYear: "25", CVV: "123", HolderName: "John Doe", IsActive: true},
		},
		history: []Payment{
			{ID: "1", Type: "income", Source: "Salary", Company: "Belong Interactive", Amount: 2000, Date: "2024-03-15", Status: "completed", Method: "bank_transfer"},
			{ID: "2", Type: "income", Source: "Paypal", Company: "Freelance Payment", Amount: 455, Date: "2024-03-10", Status: "completed", Method: "paypal"},
			{ID: "3", Type: "expense", Source: "Netflix Subscription", Company: "Netflix", Amount: -15.99, Date: "2024-03-01", Status: "completed", Method: "credit_card"},
		},
		nextID: 4,
	}
}

// NewEmptyStore returns a store with no seed data.
func NewEmptyStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) allocID() string {
	id := strconv.Itoa(s.nextID)
	s.nextID++
	return id
}

func (s *MemoryStore) ListInfo() []Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Info, len(s.info))
	copy(out, s.info)
	return out
}

func (s *MemoryStore) CreateInfo(info Info) Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info.IsDefault {
		for i := range s.info {
			s.info[i].IsDefault = false
		}
	}
	info.ID = s.allocID()
	info.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	s.info = append(s.info, info)
	return info
}

func (s *MemoryStore) UpdateInfo(id string, patch InfoPatch) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.info {
		if s.info[i].ID != id {
			continue
		}
		if patch.IsDefault != nil && *patch.IsDefault {
			for j := range s.info {
				s.info[j].IsDefault = false
			}
		}
		cur := s.info[i]
		if patch.Name != "" {
			cur.Name = patch.Name
		}
		if patch.Email != "" {
			cur.Email = patch.Email
		}
		if patch.Company != nil {
			cur.Company = *patch.Company
		}
		if patch.Number != nil {
			cur.Number = *patch.Number
		}
		if patch.Address != nil {
			cur.Address = *patch.Address
		}
		if patch.Phone != nil {
			cur.Phone = *patch.Phone
		}
		if patch.IsDefault != nil {
			cur.IsDefault = *patch.IsDefault
		}
		cur.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		s.info[i] = cur
		return cur, nil
	}
	return Info{}, ErrNotFound
}

func (s *MemoryStore) DeleteInfo(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.info {
		if s.info[i].ID == id {
			s.info = append(s.info[:i], s.info[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListPaymentMethods() []PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PaymentMethod, len(s.methods))
	copy(out, s.methods)
	return out
}

func (s *MemoryStore) CreatePaymentMethod(m PaymentMethod) PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.IsDefault {
		for i := range s.methods {
			s.methods[i].IsDefault = false
		}
	}
	m.ID = s.allocID()
	m.Last4 = lastFour(m.CardNumber)
	m.CardNumber = MaskCardNumber(m.CardNumber)
	m.CVV = "XXX"
	m.IsActive = true
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	s.methods = append(s.methods, m)
	return m
}

func (s *MemoryStore) DeletePaymentMethod(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.methods {
		if s.methods[i].ID == id {
			s.methods = append(s.methods[:i], s.methods[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListHistory(paymentType string, page, limit int) ([]Payment, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := make([]Payment, 0, len(s.history))
	for _, p := range s.history {
		if paymentType != "" && p.Type != paymentType {
			continue
		}
		filtered = append(filtered, p)
	}
	total := len(filtered)
	start := (page - 1) * limit
	if start >= total {
		return []Payment{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return filtered[start:end], total
}

func (s *MemoryStore) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := Summary{
		TotalPaymentMethods: len(s.methods),
		ActiveBillingInfo:   len(s.info),
	}
	for _, p := range s.history {
		switch p.Type {
		case "income":
			sum.TotalIncome += p.Amount
		case "expense":
			if p.Amount < 0 {
				sum.TotalExpenses -= p.Amount
			} else {
				sum.TotalExpenses += p.Amount
			}
		}
	}
	sum.NetAmount = sum.TotalIncome - sum.TotalExpenses
	for i := range s.methods {
		if s.methods[i].IsDefault {
			m := s.methods[i]
			sum.DefaultPaymentMethod = &m
			break
		}
	}
	for i := range s.info {
		if s.info[i].IsDefault {
			info := s.info[i]
			sum.DefaultBillingInfo = &info
			break
		}
	}
	return sum
}

// MaskCardNumber replaces every digit except the last four with X,
// keeping any spacing intact.
func MaskCardNumber(number string) string {
	digits := 0
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	var b strings.Builder
	seen := 0
	for _, r := range number {
		if r >= '0' && r <= '9' {
			seen++
			if digits-seen >= 4 {
				b.WriteByte('X')
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lastFour(number string) string {
	var digits []rune
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}
