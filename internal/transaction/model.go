package transaction

import (
	"context"
	"errors"
	"math"
	"time"
)

var ErrNotFound = errors.New("transaction not found")

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

var paymentMethods = map[string]bool{"cash": true, "card": true, "upi": true, "bank": true}
var statuses = map[string]bool{StatusCompleted: true, StatusPending: true, StatusCancelled: true}

func ValidType(t string) bool          { return t == TypeIncome || t == TypeExpense }
func ValidPaymentMethod(m string) bool { return paymentMethods[m] }
func ValidStatus(s string) bool        { return statuses[s] }

// Transaction is a single money movement. Amount is stored exactly as given;
// only the derived formatted view flips the sign for expenses.
type Transaction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Category      string    `json:"category"`
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	Attachment    *string   `json:"attachment"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FormattedAmount is negative for expenses and positive for income.
func (t Transaction) FormattedAmount() float64 {
	if t.Type == TypeExpense {
		return -math.Abs(t.Amount)
	}
	return math.Abs(t.Amount)
}

// View is the serialized transaction including derived fields.
type View struct {
	Transaction
	FormattedAmount float64 `json:"formattedAmount"`
}

func (t Transaction) View() View {
	return View{Transaction: t, FormattedAmount: t.FormattedAmount()}
}

// Filter narrows a listing. Category matches case-insensitively on any
// substring.
type Filter struct {
	Type     string
	Status   string
	Category string
	Page     int
	Limit    int
}

// Pagination is the listing metadata block.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

func NewPagination(page, limit, totalItems int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: limit,
	}
}

// Stats aggregates completed income and expenses plus pending and total
// counts for one user.
type Stats struct {
	TotalIncome         float64 `json:"totalIncome"`
	TotalExpenses       float64 `json:"totalExpenses"`
	PendingTransactions int     `json:"pendingTransactions"`
	TotalTransactions   int     `json:"totalTransactions"`
	Balance             float64 `json:"balance"`
}

// Patch carries the optional fields of a partial update; nil means the field
// keeps its stored value.
type Patch struct {
	Type          *string
	Amount        *float64
	Currency      *string
	Category      *string
	Date          *time.Time
	PaymentMethod *string
	Notes         *string
	Status        *string
	Attachment    *string
}

// Store is the persistence contract for transactions.
type Store interface {
	List(ctx context.Context, userID string, f Filter) ([]Transaction, int, error)
	Get(ctx context.Context, userID, id string) (Transaction, error)
	Create(ctx context.Context, t Transaction) (Transaction, error)
	Update(ctx context.Context, userID, id string, p Patch) (Transaction, error)
	Delete(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string) (Stats, error)
}
