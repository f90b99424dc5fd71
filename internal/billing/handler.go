package billing

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/moneytrack/moneytrack-backend/internal/envelope"
	"github.com/moneytrack/moneytrack-backend/internal/transaction"
)

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) ListInfo(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"billingInfo": h.Store.ListInfo()})
}

type infoRequest struct {
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Number    string `json:"number"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
}

func (h *Handler) CreateInfo(c *fiber.Ctx) error {
	var req infoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" || req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide name and email")
	}

	info := h.Store.CreateInfo(Info{
		Name:      req.Name,
		Company:   req.Company,
		Email:     req.Email,
		Number:    req.Number,
		Address:   req.Address,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	})
	return envelope.Created(c, "Billing information added successfully", fiber.Map{"billingInfo": info})
}

func (h *Handler) UpdateInfo(c *fiber.Ctx) error {
	var patch InfoPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	info, err := h.Store.UpdateInfo(c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Billing information not found")
		}
		return err
	}
	return envelope.MessageData(c, "Billing information updated successfully", fiber.Map{"billingInfo": info})
}

func (h *Handler) DeleteInfo(c *fiber.Ctx) error {
	if err := h.Store.DeleteInfo(c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Billing information not found")
		}
		return err
	}
	return envelope.Message(c, "Billing information deleted successfully")
}

func (h *Handler) ListPaymentMethods(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"paymentMethods": h.Store.ListPaymentMethods()})
}

type paymentMethodRequest struct {
	Type        string `json:"type"`
	Brand       string `json:"brand"`
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
	HolderName  string `json:"holderName"`
	IsDefault   bool   `json:"isDefault"`
}

func (h *Handler) CreatePaymentMethod(c *fiber.Ctx) error {
	var req paymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Type == "" || req.CardNumber == "" || req.ExpiryMonth == "" || req.ExpiryYear == "" || req.CVV == "" || req.HolderName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide all required payment method details")
	}

	brand := req.Brand
	if brand == "" {
		brand = "unknown"
	}
	method := h.Store.CreatePaymentMethod(PaymentMethod{
		Type:        req.Type,
		Brand:       brand,
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		HolderName:  req.HolderName,
		IsDefault:   req.IsDefault,
	})
	return envelope.Created(c, "Payment method added successfully", fiber.Map{"paymentMethod": method})
}

func (h *Handler) DeletePaymentMethod(c *fiber.Ctx) error {
	if err := h.Store.DeletePaymentMethod(c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Payment method not found")
		}
		return err
	}
	return envelope.Message(c, "Payment method deleted successfully")
}

func (h *Handler) History(c *fiber.Ctx) error {
	page := positiveQueryInt(c, "page", 1)
	limit := positiveQueryInt(c, "limit", 10)

	history, total := h.Store.ListHistory(c.Query("type"), page, limit)
	return envelope.OK(c, fiber.Map{
		"paymentHistory": history,
		"pagination":     transaction.NewPagination(page, limit, total),
	})
}

func (h *Handler) Summary(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"summary": h.Store.Summary()})
}

func positiveQueryInt(c *fiber.Ctx, key string, fallback int) int {
	v := c.QueryInt(key, fallback)
	if v < 1 {
		return fallback
	}
	return v
}
