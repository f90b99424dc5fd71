package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/moneytrack/moneytrack-backend/internal/user"
)

const (
	localUser   = "user"
	localUserID = "user_id"
)

// Required gates a route behind a valid bearer token for an active user.
// Every failure is a 401; the message distinguishes expired tokens.
func Required(tokens Tokens, users user.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, "Token expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		// Re-resolve the user so a deactivation after token issue still locks
		// the account out.
		u, err := users.FindByID(c.UserContext(), claims.Subject)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Server error during authentication")
		}
		if !u.IsActive {
			return fiber.NewError(fiber.StatusUnauthorized, "Account is deactivated")
		}

		c.Locals(localUser, u)
		c.Locals(localUserID, u.ID)
		return c.Next()
	}
}

// Optional resolves the user when a valid token is present but never fails
// the request.
func Optional(tokens Tokens, users user.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return c.Next()
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			return c.Next()
		}
		u, err := users.FindByID(c.UserContext(), claims.Subject)
		if err != nil || !u.IsActive {
			return c.Next()
		}
		c.Locals(localUser, u)
		c.Locals(localUserID, u.ID)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by Required/Optional.
func CurrentUser(c *fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(localUser).(user.User)
	return u, ok
}

// UserID returns the authenticated user id or "".
func UserID(c *fiber.Ctx) string {
	if s, ok := c.Locals(localUserID).(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
