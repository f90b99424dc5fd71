package billing

import "errors"

var ErrNotFound = errors.New("not found")

// Info is a saved billing contact. The demo dataset ships a handful of
// entries so the billing screens have something to render.
type Info struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Number    string `json:"number"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
	UserID    string `json:"userId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// InfoPatch carries the updatable fields of a billing contact. Name and
// email fall back to the stored value when blank, the rest only when the
// field is absent from the request.
type InfoPatch struct {
	Name      string  `json:"name"`
	Company   *string `json:"company"`
	Email     string  `json:"email"`
	Number    *string `json:"number"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	IsDefault *bool   `json:"isDefault"`
}

// PaymentMethod is a stored card. Card numbers are masked before they are
// kept and the CVV is never stored.
type PaymentMethod struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Brand       string `json:"brand"`
	Last4       string `json:"last4"`
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
	HolderName  string `json:"holderName"`
	IsDefault   bool   `json:"isDefault"`
	IsActive    bool   `json:"isActive"`
	UserID      string `json:"userId,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Payment is one entry in the payment history feed. Expenses carry a
// negative amount.
type Payment struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Source  string  `json:"source"`
	Company string  `json:"company"`
	Amount  float64 `json:"amount"`
	Date    string  `json:"date"`
	Status  string  `json:"status"`
	Method  string  `json:"method"`
}

// Summary aggregates the billing data for the summary endpoint.
type Summary struct {
	TotalIncome          float64        `json:"totalIncome"`
	TotalExpenses        float64        `json:"totalExpenses"`
	NetAmount            float64        `json:"netAmount"`
	TotalPaymentMethods  int            `json:"totalPaymentMethods"`
	ActiveBillingInfo    int            `json:"activeBillingInfo"`
	DefaultPaymentMethod *PaymentMethod `json:"defaultPaymentMethod"`
	DefaultBillingInfo   *Info          `json:"defaultBillingInfo"`
}

// Store is the billing data surface the handlers depend on.
type Store interface {
	ListInfo() []Info
	CreateInfo(info Info) Info
	UpdateInfo(id string, patch InfoPatch) (Info, error)
	DeleteInfo(id string) error

	ListPaymentMethods() []PaymentMethod
	CreatePaymentMethod(m PaymentMethod) PaymentMethod
	DeletePaymentMethod(id string) error

	ListHistory(paymentType string, page, limit int) ([]Payment, int)
	Summary() Summary
}
