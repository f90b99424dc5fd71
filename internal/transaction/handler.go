package transaction

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/moneytrack/moneytrack-backend/internal/envelope"
	"github.com/moneytrack/moneytrack-backend/internal/upload"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Handler struct {
	Store   Store
	Uploads upload.Store
}

func NewHandler(store Store, uploads upload.Store) *Handler {
	return &Handler{Store: store, Uploads: uploads}
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	f := Filter{
		Type:     strings.TrimSpace(c.Query("type")),
		Status:   strings.TrimSpace(c.Query("status")),
		Category: strings.TrimSpace(c.Query("category")),
		Page:     positiveQueryInt(c, "page", defaultPage),
		Limit:    positiveQueryInt(c, "limit", defaultLimit),
	}

	items, total, err := h.Store.List(c.UserContext(), userID, f)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while fetching transactions")
	}

	views := make([]View, 0, len(items))
	for _, t := range items {
		views = append(views, t.View())
	}

	return envelope.OK(c, fiber.Map{
		"transactions": views,
		"pagination":   NewPagination(f.Page, f.Limit, total),
	})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
	}

	t, err := h.Store.Get(c.UserContext(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while fetching transaction")
	}

	return envelope.OK(c, fiber.Map{"transaction": t.View()})
}

type createRequest struct {
	Type          string   `json:"type" form:"type"`
	Amount        *float64 `json:"amount" form:"amount"`
	Currency      string   `json:"currency" form:"currency"`
	Category      string   `json:"category" form:"category"`
	Date          string   `json:"date" form:"date"`
	PaymentMethod string   `json:"paymentMethod" form:"paymentMethod"`
	Notes         *string  `json:"notes" form:"notes"`
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	var body createRequest
	if err := c.BodyParser(&body); err != nil {
		// Non-numeric amounts land here: rejected, never coerced.
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	body.Type = strings.ToLower(strings.TrimSpace(body.Type))
	body.Category = strings.TrimSpace(body.Category)
	if body.Type == "" || body.Amount == nil || *body.Amount == 0 || body.Category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide type, amount, and category")
	}
	if !ValidType(body.Type) {
		return fiber.NewError(fiber.StatusBadRequest, "Type must be income or expense")
	}
	if *body.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
	}

	t := Transaction{
		UserID:        userID,
		Type:          body.Type,
		Amount:        *body.Amount,
		Currency:      "USD",
		Category:      body.Category,
		Date:          time.Now(),
		PaymentMethod: "cash",
		Status:        StatusCompleted,
	}

	if cur := strings.ToUpper(strings.TrimSpace(body.Currency)); cur != "" {
		t.Currency = cur
	}
	if body.Date != "" {
		parsed, err := parseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date format")
		}
		t.Date = parsed
	}
	if pm := strings.ToLower(strings.TrimSpace(body.PaymentMethod)); pm != "" {
		if !ValidPaymentMethod(pm) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid payment method")
		}
		t.PaymentMethod = pm
	}
	if body.Notes != nil {
		t.Notes = *body.Notes
	}

	path, err := h.saveAttachment(c)
	if err != nil {
		return err
	}
	t.Attachment = path

	saved, err := h.Store.Create(c.UserContext(), t)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while creating transaction")
	}

	return envelope.Created(c, "Transaction created successfully", fiber.Map{"transaction": saved.View()})
}

type updateRequest struct {
	Type          *string  `json:"type" form:"type"`
	Amount        *float64 `json:"amount" form:"amount"`
	Currency      *string  `json:"currency" form:"currency"`
	Category      *string  `json:"category" form:"category"`
	Date          *string  `json:"date" form:"date"`
	PaymentMethod *string  `json:"paymentMethod" form:"paymentMethod"`
	Notes         *string  `json:"notes" form:"notes"`
	Status        *string  `json:"status" form:"status"`
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
	}

	var body updateRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	p := Patch{
		Amount: body.Amount,
		Notes:  body.Notes,
	}

	if body.Type != nil {
		typ := strings.ToLower(strings.TrimSpace(*body.Type))
		if !ValidType(typ) {
			return fiber.NewError(fiber.StatusBadRequest, "Type must be income or expense")
		}
		p.Type = &typ
	}
	if body.Amount != nil && *body.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
	}
	if body.Currency != nil {
		cur := strings.ToUpper(strings.TrimSpace(*body.Currency))
		p.Currency = &cur
	}
	if body.Category != nil {
		cat := strings.TrimSpace(*body.Category)
		if cat == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category cannot be empty")
		}
		p.Category = &cat
	}
	if body.Date != nil && *body.Date != "" {
		parsed, err := parseDate(*body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date format")
		}
		p.Date = &parsed
	}
	if body.PaymentMethod != nil {
		pm := strings.ToLower(strings.TrimSpace(*body.PaymentMethod))
		if !ValidPaymentMethod(pm) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid payment method")
		}
		p.PaymentMethod = &pm
	}
	if body.Status != nil {
		st := strings.ToLower(strings.TrimSpace(*body.Status))
		if !ValidStatus(st) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
		}
		p.Status = &st
	}

	path, err := h.saveAttachment(c)
	if err != nil {
		return err
	}
	p.Attachment = path

	updated, err := h.Store.Update(c.UserContext(), userID, id, p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while updating transaction")
	}

	return envelope.MessageData(c, "Transaction updated successfully", fiber.Map{"transaction": updated.View()})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
	}

	if err := h.Store.Delete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while deleting transaction")
	}

	return envelope.Message(c, "Transaction deleted successfully")
}

func (h *Handler) Stats(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	s, err := h.Store.Stats(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while fetching transaction statistics")
	}

	return envelope.OK(c, fiber.Map{"summary": s})
}

// saveAttachment stores an optional multipart attachment and returns its
// public path, or nil when none was sent.
func (h *Handler) saveAttachment(c *fiber.Ctx) (*string, error) {
	file, err := c.FormFile("attachment")
	if err != nil || file == nil {
		return nil, nil
	}

	if err := upload.Validate(file.Filename, file.Header.Get("Content-Type"), file.Size, 0); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	data, err := readMultipartFile(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to read attachment")
	}

	path, err := h.Uploads.Save("transactions", file.Filename, data)
	if err != nil {
		if errors.Is(err, upload.ErrTooLarge) || errors.Is(err, upload.ErrBadFileType) {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to store attachment")
	}
	return &path, nil
}

func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// positiveQueryInt falls back to def on non-numeric or non-positive values
// instead of rejecting the request.
func positiveQueryInt(c *fiber.Ctx, key string, def int) int {
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

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func currentUserID(c *fiber.Ctx) string {
	if s, ok := c.Locals("user_id").(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
