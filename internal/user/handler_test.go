package user

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/moneytrack/moneytrack-backend/internal/envelope"
	"github.com/moneytrack/moneytrack-backend/internal/upload"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

type memStore struct {
	user User
}

func (s *memStore) Create(_ context.Context, name, email, passwordHash string) (User, error) {
	return User{}, errors.New("not implemented")
}

func (s *memStore) FindByEmail(_ context.Context, email string) (User, error) {
	if strings.EqualFold(email, s.user.Email) {
		return s.user, nil
	}
	return User{}, ErrNotFound
}

func (s *memStore) FindByID(_ context.Context, id string) (User, error) {
	if id == s.user.ID {
		return s.user, nil
	}
	return User{}, ErrNotFound
}

func (s *memStore) UpdateProfile(_ context.Context, id string, patch ProfilePatch) (User, error) {
	if id != s.user.ID {
		return User{}, ErrNotFound
	}
	if patch.Name != nil {
		s.user.Name = *patch.Name
	}
	if patch.Phone != nil {
		s.user.Phone = *patch.Phone
	}
	if patch.Address != nil {
		s.user.Address = *patch.Address
	}
	if patch.Avatar != nil {
		s.user.Avatar = *patch.Avatar
	}
	if patch.AvatarPath != nil {
		s.user.AvatarPath = *patch.AvatarPath
	}
	return s.user, nil
}

func (s *memStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if id != s.user.ID {
		return ErrNotFound
	}
	s.user.PasswordHash = passwordHash
	return nil
}

func (s *memStore) TouchLastLogin(_ context.Context, id string) error {
	now := time.Now()
	s.user.LastLogin = &now
	return nil
}

func newApp(t *testing.T, store Store) *fiber.App {
	t.Helper()
	h := NewHandler(store, upload.NewDiskStore(t.TempDir(), 5<<20))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Server error"
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}
			return envelope.Error(c, code, message)
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", testUserID)
		return c.Next()
	})
	app.Get("/api/users/profile", h.GetProfile)
	app.Put("/api/users/profile", h.UpdateProfile)
	app.Put("/api/users/change-password", h.ChangePassword)
	app.Get("/api/users/settings", h.GetSettings)
	app.Put("/api/users/settings", h.UpdateSettings)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp, out
}

func testUser(t *testing.T) User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	return User{
		ID:           testUserID,
		Name:         "Dana",
		Email:        "dana@example.com",
		PasswordHash: string(hashed),
		Avatar:       "/uploads/profiles/old.png",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
}

func TestGetProfile(t *testing.T) {
	store := &memStore{user: testUser(t)}
	app := newApp(t, store)

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/profile", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	u := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "Dana", u["name"])
	// profilePicture mirrors avatar.
	assert.Equal(t, u["avatar"], u["profilePicture"])
	assert.NotContains(t, u, "passwordHash")
}

func TestUpdateProfile(t *testing.T) {
	store := &memStore{user: testUser(t)}
	app := newApp(t, store)

	resp, body := doJSON(t, app, http.MethodPut, "/api/users/profile", fiber.Map{
		"name":  "  Dana Updated  ",
		"phone": "+1 555 0000",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Profile updated successfully", body["message"])

	u := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "Dana Updated", u["name"])
	assert.Equal(t, "+1 555 0000", u["phone"])
}

func TestUpdateProfileEmptyName(t *testing.T) {
	store := &memStore{user: testUser(t)}
	app := newApp(t, store)

	resp, body := doJSON(t, app, http.MethodPut, "/api/users/profile", fiber.Map{"name": "   "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Name cannot be empty", body["message"])
}

func TestUpdateProfilePicture(t *testing.T) {
	store := &memStore{user: testUser(t)}
	app := newApp(t, store)

	// 1x1 transparent PNG
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	resp, body := doJSON(t, app, http.MethodPut, "/api/users/profile", fiber.Map{"profilePicture": uri})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	u := body["data"].(map[string]any)["user"].(map[string]any)
	avatar := u["avatar"].(string)
	assert.True(t, strings.HasPrefix(avatar, "/uploads/profiles/"))
	assert.True(t, strings.HasSuffix(avatar, ".png"))
}

func TestChangePassword(t *testing.T) {
	store := &memStore{user: testUser(t)}
	app := newApp(t, store)

	resp, body := doJSON(t, app, http.MethodPut, "/api/users/change-password", fiber.Map{
		"currentPassword": "secret123",
		"newPassword":     "newsecret456",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Password changed successfully", body["message"])
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.user.PasswordHash), []byte("newsecret456")))
}

func TestChangePasswordRejections(t *testing.T) {
	store := &memStore{user: testUser(t)}
	app := newApp(t, store)

	resp, body := doJSON(t, app, http.MethodPut, "/api/users/change-password", fiber.Map{
		"currentPassword": "wrong",
		"newPassword":     "newsecret456",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Current password is incorrect", body["message"])

	resp, body = doJSON(t, app, http.MethodPut, "/api/users/change-password", fiber.Map{
		"currentPassword": "secret123",
		"newPassword":     "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "New password must be at least 6 characters long", body["message"])
}

func TestSettings(t *testing.T) {
	store := &memStore{user: testUser(t)}
	app := newApp(t, store)

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/settings", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	settings := body["data"].(map[string]any)["settings"].(map[string]any)
	prefs := settings["preferences"].(map[string]any)
	assert.Equal(t, "light", prefs["theme"])

	resp, body = doJSON(t, app, http.MethodPut, "/api/users/settings", fiber.Map{
		"preferences": fiber.Map{"theme": "dark"},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Settings updated successfully", body["message"])

	settings = body["data"].(map[string]any)["settings"].(map[string]any)
	assert.Equal(t, "dark", settings["preferences"].(map[string]any)["theme"])
	// Untouched sections keep their defaults.
	notifications := settings["notifications"].(map[string]any)
	assert.Equal(t, true, notifications["email"])
	assert.NotEmpty(t, settings["updatedAt"])
}
