package goal

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/moneytrack/moneytrack-backend/internal/envelope"
)

type Handler struct {
	Store Store

	// now is swappable for tests.
	now func() time.Time
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store, now: time.Now}
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	goals, err := h.Store.List(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch savings goals")
	}

	now := h.now()
	views := make([]View, 0, len(goals))
	for _, g := range goals {
		views = append(views, g.View(now))
	}

	return envelope.OK(c, fiber.Map{
		"savingsGoals": views,
		"count":        len(views),
	})
}

func (h *Handler) Stats(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	goals, err := h.Store.List(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch savings goals statistics")
	}

	return envelope.OK(c, fiber.Map{"stats": StatsFromGoals(goals, h.now())})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Savings goal not found")
	}

	g, err := h.Store.Get(c.UserContext(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Savings goal not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch savings goal")
	}

	return envelope.OK(c, fiber.Map{"savingsGoal": g.View(h.now())})
}

type createGoalRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	TargetAmount *float64 `json:"targetAmount"`
	Deadline     string   `json:"deadline"`
	Category     string   `json:"category"`
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	var body createGoalRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" || body.TargetAmount == nil || strings.TrimSpace(body.Deadline) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Title, target amount, and deadline are required")
	}
	if *body.TargetAmount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Target amount must be greater than 0")
	}

	deadline, err := parseDeadline(body.Deadline)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid deadline format")
	}
	now := h.now()
	if !deadline.After(now) {
		return fiber.NewError(fiber.StatusBadRequest, "Deadline must be in the future")
	}

	category := strings.ToLower(strings.TrimSpace(body.Category))
	if category == "" {
		category = "other"
	}
	if !ValidCategory(category) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid category")
	}

	g := Goal{
		UserID:       userID,
		Title:        body.Title,
		Description:  strings.TrimSpace(body.Description),
		TargetAmount: *body.TargetAmount,
		Deadline:     deadline,
		Category:     category,
		Status:       StatusActive,
	}

	saved, err := h.Store.Create(c.UserContext(), g)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create savings goal")
	}

	return envelope.Created(c, "Savings goal created successfully", fiber.Map{"savingsGoal": saved.View(now)})
}

type updateGoalRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	TargetAmount *float64 `json:"targetAmount"`
	Deadline     *string  `json:"deadline"`
	Category     *string  `json:"category"`
	Status       *string  `json:"status"`
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Savings goal not found")
	}

	var body updateGoalRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	p := Patch{Description: body.Description}

	if body.Title != nil {
		title := strings.TrimSpace(*body.Title)
		if title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Title cannot be empty")
		}
		p.Title = &title
	}
	if body.TargetAmount != nil {
		if *body.TargetAmount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Target amount must be greater than 0")
		}
		p.TargetAmount = body.TargetAmount
	}
	if body.Deadline != nil && *body.Deadline != "" {
		deadline, err := parseDeadline(*body.Deadline)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid deadline format")
		}
		if !deadline.After(h.now()) {
			return fiber.NewError(fiber.StatusBadRequest, "Deadline must be in the future")
		}
		p.Deadline = &deadline
	}
	if body.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*body.Category))
		if !ValidCategory(category) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid category")
		}
		p.Category = &category
	}
	if body.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*body.Status))
		if !ValidStatus(status) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
		}
		p.Status = &status
	}

	updated, err := h.Store.Update(c.UserContext(), userID, id, p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Savings goal not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update savings goal")
	}

	return envelope.OK(c, fiber.Map{"savingsGoal": updated.View(h.now())})
}

type addSavingsRequest struct {
	Amount *float64 `json:"amount"`
}

func (h *Handler) AddSavings(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Savings goal not found")
	}

	var body addSavingsRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
	}
	if body.Amount == nil || *body.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
	}

	updated, err := h.Store.AddSavings(c.UserContext(), userID, id, *body.Amount)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Savings goal not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add savings")
	}

	return envelope.OK(c, fiber.Map{"savingsGoal": updated.View(h.now())})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Savings goal not found")
	}

	if err := h.Store.SoftDelete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Savings goal not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete savings goal")
	}

	return envelope.Message(c, "Savings goal deleted successfully")
}

func parseDeadline(s string) (time.Time, error) {
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
