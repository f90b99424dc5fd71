package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/moneytrack/moneytrack-backend/internal/envelope"
	"github.com/moneytrack/moneytrack-backend/internal/user"
)

const minPasswordLength = 6

type Handler struct {
	Users  user.Store
	Tokens Tokens
}

func NewHandler(users user.Store, tokens Tokens) *Handler {
	return &Handler{Users: users, Tokens: tokens}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide name, email, and password")
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	if body.Name == "" || body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide name, email, and password")
	}
	if len(body.Password) < minPasswordLength {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 6 characters long")
	}

	ctx := c.UserContext()

	if _, err := h.Users.FindByEmail(ctx, body.Email); err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "User with this email already exists")
	} else if !errors.Is(err, user.ErrNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "Server error during registration")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Server error during registration")
	}

	u, err := h.Users.Create(ctx, body.Name, body.Email, string(hashed))
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return fiber.NewError(fiber.StatusBadRequest, "User with this email already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Server error during registration")
	}

	token, err := h.Tokens.Sign(u)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Server error during registration")
	}

	return envelope.Created(c, "User registered successfully", fiber.Map{
		"user": fiber.Map{
			"id":        u.ID,
			"name":      u.Name,
			"email":     u.Email,
			"avatar":    u.Avatar,
			"createdAt": u.CreatedAt,
		},
		"token": token,
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide email and password")
	}
	if strings.TrimSpace(body.Email) == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide email and password")
	}

	ctx := c.UserContext()

	// Unknown email and wrong password share one error so callers cannot
	// probe which addresses are registered.
	u, err := h.Users.FindByEmail(ctx, body.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Server error during login")
	}

	if !u.IsActive {
		return fiber.NewError(fiber.StatusUnauthorized, "Account is deactivated. Please contact support.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	if err := h.Users.TouchLastLogin(ctx, u.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Server error during login")
	}

	token, err := h.Tokens.Sign(u)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Server error during login")
	}

	return envelope.MessageData(c, "Login successful", fiber.Map{
		"user": fiber.Map{
			"id":          u.ID,
			"name":        u.Name,
			"email":       u.Email,
			"avatar":      u.Avatar,
			"lastLogin":   u.LastLogin,
			"preferences": u.Preferences,
		},
		"token": token,
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	u, ok := CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}
	return envelope.OK(c, fiber.Map{
		"user": fiber.Map{
			"id":          u.ID,
			"name":        u.Name,
			"email":       u.Email,
			"avatar":      u.Avatar,
			"preferences": u.Preferences,
			"createdAt":   u.CreatedAt,
		},
	})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	return envelope.Message(c, "Logout successful")
}

// LogoutAll cannot invalidate stateless tokens; it records the event on the
// account like the rest of the login bookkeeping.
func (h *Handler) LogoutAll(c *fiber.Ctx) error {
	if id := UserID(c); id != "" {
		if err := h.Users.TouchLastLogin(c.UserContext(), id); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Server error during logout")
		}
	}
	return envelope.Message(c, "Successfully logged out from all devices")
}
