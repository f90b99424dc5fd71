package user

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/moneytrack/moneytrack-backend/internal/envelope"
	"github.com/moneytrack/moneytrack-backend/internal/upload"
)

type Handler struct {
	Users   Store
	Uploads upload.Store
}

func NewHandler(users Store, uploads upload.Store) *Handler {
	return &Handler{Users: users, Uploads: uploads}
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	id := currentUserID(c)
	if id == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	u, err := h.Users.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while fetching profile")
	}

	return envelope.OK(c, fiber.Map{"user": u.Profile()})
}

type updateProfileRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	Avatar         *string `json:"avatar"`
	ProfilePicture *string `json:"profilePicture"`
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	id := currentUserID(c)
	if id == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	var body updateProfileRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
	}

	ctx := c.UserContext()

	u, err := h.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while updating profile")
	}

	patch := ProfilePatch{
		Phone:   body.Phone,
		Address: body.Address,
		Avatar:  body.Avatar,
	}
	if body.Name != nil {
		trimmed := strings.TrimSpace(*body.Name)
		patch.Name = &trimmed
	}

	// A data-URI profilePicture replaces the stored image.
	if body.ProfilePicture != nil && strings.HasPrefix(*body.ProfilePicture, "data:image/") {
		data, ext, err := upload.ParseDataURI(*body.ProfilePicture)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to process profile picture")
		}
		path, err := h.Uploads.Save("profiles", "profile-"+id+ext, data)
		if err != nil {
			if errors.Is(err, upload.ErrTooLarge) || errors.Is(err, upload.ErrBadFileType) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to upload profile picture")
		}
		if u.AvatarPath != "" {
			_ = h.Uploads.Delete(u.AvatarPath)
		}
		patch.Avatar = &path
		patch.AvatarPath = &path
	}

	updated, err := h.Users.UpdateProfile(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while updating profile")
	}

	return envelope.MessageData(c, "Profile updated successfully", fiber.Map{"user": updated.Profile()})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	id := currentUserID(c)
	if id == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
	}

	var body changePasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Current password and new password are required")
	}
	if body.CurrentPassword == "" || body.NewPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Current password and new password are required")
	}
	if len(body.NewPassword) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "New password must be at least 6 characters long")
	}

	ctx := c.UserContext()

	u, err := h.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while changing password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.CurrentPassword)); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while changing password")
	}

	if err := h.Users.UpdatePassword(ctx, id, string(hashed)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Server error while changing password")
	}

	return envelope.Message(c, "Password changed successfully")
}

// Settings endpoints preserve the original demo contract: defaults merged
// with whatever sections the client supplies.

func defaultSettings() fiber.Map {
	return fiber.Map{
		"notifications": fiber.Map{"email": true, "push": false, "sms": true},
		"privacy":       fiber.Map{"profileVisible": true, "dataSharing": false},
		"security":      fiber.Map{"twoFactorEnabled": false, "loginAlerts": true},
		"preferences": fiber.Map{
			"theme":      "light",
			"language":   "en",
			"currency":   "USD",
			"dateFormat": "MM/DD/YYYY",
		},
	}
}

func (h *Handler) GetSettings(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"settings": defaultSettings()})
}

type updateSettingsRequest struct {
	Notifications map[string]any `json:"notifications"`
	Privacy       map[string]any `json:"privacy"`
	Security      map[string]any `json:"security"`
	Preferences   map[string]any `json:"preferences"`
}

func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	var body updateSettingsRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	settings := defaultSettings()
	if body.Notifications != nil {
		settings["notifications"] = body.Notifications
	}
	if body.Privacy != nil {
		settings["privacy"] = body.Privacy
	}
	if body.Security != nil {
		settings["security"] = body.Security
	}
	if body.Preferences != nil {
		settings["preferences"] = body.Preferences
	}
	settings["updatedAt"] = time.Now()

	return envelope.MessageData(c, "Settings updated successfully", fiber.Map{"settings": settings})
}

func currentUserID(c *fiber.Ctx) string {
	if s, ok := c.Locals("user_id").(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
