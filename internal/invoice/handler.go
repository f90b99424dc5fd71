package invoice

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/moneytrack/moneytrack-backend/internal/envelope"
)

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) List(c *fiber.Ctx) error {
	f := Filter{
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}

	invoices, total := h.Store.List(f)
	totalPages := 0
	if f.Limit > 0 {
		totalPages = (total + f.Limit - 1) / f.Limit
	}

	return envelope.OK(c, fiber.Map{
		"invoices": invoices,
		"pagination": fiber.Map{
			"currentPage":  f.Page,
			"totalPages":   totalPages,
			"totalItems":   total,
			"itemsPerPage": f.Limit,
		},
	})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	inv, err := h.Store.Get(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
	}
	return envelope.OK(c, fiber.Map{"invoice": inv})
}

type createInvoiceRequest struct {
	ClientName  string     `json:"clientName"`
	ClientEmail string     `json:"clientEmail"`
	Description string     `json:"description"`
	Items       []LineItem `json:"items"`
	DueDate     string     `json:"dueDate"`
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var body createInvoiceRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if strings.TrimSpace(body.ClientName) == "" || strings.TrimSpace(body.ClientEmail) == "" || len(body.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide client name, email, and at least one item")
	}

	inv := h.Store.Create(Invoice{
		ClientName:  body.ClientName,
		ClientEmail: body.ClientEmail,
		Description: body.Description,
		Items:       body.Items,
		DueDate:     body.DueDate,
	})

	return envelope.Created(c, "Invoice created successfully", fiber.Map{"invoice": inv})
}

type updateInvoiceRequest struct {
	ClientName  *string    `json:"clientName"`
	ClientEmail *string    `json:"clientEmail"`
	Description *string    `json:"description"`
	Items       []LineItem `json:"items"`
	DueDate     *string    `json:"dueDate"`
	Status      *string    `json:"status"`
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var body updateInvoiceRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	inv, err := h.Store.Update(c.Params("id"), Patch{
		ClientName:  body.ClientName,
		ClientEmail: body.ClientEmail,
		Description: body.Description,
		Items:       body.Items,
		DueDate:     body.DueDate,
		Status:      body.Status,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while updating invoice")
	}

	return envelope.MessageData(c, "Invoice updated successfully", fiber.Map{"invoice": inv})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.Store.Delete(c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
	}
	return envelope.Message(c, "Invoice deleted successfully")
}

func (h *Handler) Stats(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"summary": h.Store.Stats()})
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
