package goal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneytrack/moneytrack-backend/internal/envelope"
)

// fakeStore mirrors the repository's soft-delete semantics: deleted goals
// disappear from every read path.
type fakeStore struct {
	goals []Goal
}

func (s *fakeStore) List(_ context.Context, userID string) ([]Goal, error) {
	var out []Goal
	for i := len(s.goals) - 1; i >= 0; i-- {
		g := s.goals[i]
		if g.UserID == userID && g.IsActive {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, userID, id string) (Goal, error) {
	for _, g := range s.goals {
		if g.ID == id && g.UserID == userID && g.IsActive {
			return g, nil
		}
	}
	return Goal{}, ErrNotFound
}

func (s *fakeStore) Create(_ context.Context, g Goal) (Goal, error) {
	g.ID = uuid.NewString()
	g.IsActive = true
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	s.goals = append(s.goals, g)
	return g, nil
}

func (s *fakeStore) Update(_ context.Context, userID, id string, p Patch) (Goal, error) {
	for i, g := range s.goals {
		if g.ID != id || g.UserID != userID || !g.IsActive {
			continue
		}
		if p.Title != nil {
			g.Title = *p.Title
		}
		if p.Description != nil {
			g.Description = *p.Description
		}
		if p.TargetAmount != nil {
			g.TargetAmount = *p.TargetAmount
		}
		if p.Deadline != nil {
			g.Deadline = *p.Deadline
		}
		if p.Category != nil {
			g.Category = *p.Category
		}
		if p.Status != nil {
			g.Status = *p.Status
		}
		g.UpdatedAt = time.Now()
		s.goals[i] = g
		return g, nil
	}
	return Goal{}, ErrNotFound
}

func (s *fakeStore) AddSavings(_ context.Context, userID, id string, amount float64) (Goal, error) {
	for i, g := range s.goals {
		if g.ID != id || g.UserID != userID || !g.IsActive {
			continue
		}
		g.CurrentAmount += amount
		if g.CurrentAmount >= g.TargetAmount {
			g.Status = StatusCompleted
		}
		g.UpdatedAt = time.Now()
		s.goals[i] = g
		return g, nil
	}
	return Goal{}, ErrNotFound
}

func (s *fakeStore) SoftDelete(_ context.Context, userID, id string) error {
	for i, g := range s.goals {
		if g.ID == id && g.UserID == userID && g.IsActive {
			s.goals[i].IsActive = false
			return nil
		}
	}
	return ErrNotFound
}

const testUserID = "11111111-1111-1111-1111-111111111111"

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newApp(store Store) *fiber.App {
	h := NewHandler(store)
	h.now = func() time.Time { return testNow }

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
	app.Get("/api/savings-goals/stats/summary", h.Stats)
	app.Get("/api/savings-goals", h.List)
	app.Post("/api/savings-goals", h.Create)
	app.Get("/api/savings-goals/:id", h.Get)
	app.Put("/api/savings-goals/:id", h.Update)
	app.Post("/api/savings-goals/:id/add-savings", h.AddSavings)
	app.Delete("/api/savings-goals/:id", h.Delete)
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

func seedGoal(store *fakeStore, target, current float64) Goal {
	g, _ := store.Create(context.Background(), Goal{
		UserID:        testUserID,
		Title:         "Trip",
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      testNow.Add(90 * 24 * time.Hour),
		Category:      "vacation",
		Status:        StatusActive,
	})
	return g
}

func TestCreateGoal(t *testing.T) {
	store := &fakeStore{}
	app := newApp(store)

	resp, body := doJSON(t, app, http.MethodPost, "/api/savings-goals", fiber.Map{
		"title":        "Trip",
		"targetAmount": 1200,
		"deadline":     testNow.Add(90 * 24 * time.Hour).Format("2006-01-02"),
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Savings goal created successfully", body["message"])

	g := body["data"].(map[string]any)["savingsGoal"].(map[string]any)
	assert.Equal(t, "other", g["category"])
	assert.Equal(t, "active", g["status"])
	assert.EqualValues(t, 3, g["monthsRemaining"])
	assert.EqualValues(t, 400, g["monthlyTarget"])
	assert.EqualValues(t, 0, g["progressPercentage"])
	assert.EqualValues(t, 90, g["daysRemaining"])
}

func TestCreateGoalValidation(t *testing.T) {
	app := newApp(&fakeStore{})
	future := testNow.Add(30 * 24 * time.Hour).Format("2006-01-02")

	tests := []struct {
		name    string
		body    fiber.Map
		message string
	}{
		{"missing fields", fiber.Map{"title": "Trip"}, "Title, target amount, and deadline are required"},
		{"zero target", fiber.Map{"title": "Trip", "targetAmount": 0, "deadline": future}, "Target amount must be greater than 0"},
		{"past deadline", fiber.Map{"title": "Trip", "targetAmount": 100, "deadline": "2020-01-01"}, "Deadline must be in the future"},
		{"bad deadline", fiber.Map{"title": "Trip", "targetAmount": 100, "deadline": "soon"}, "Invalid deadline format"},
		{"bad category", fiber.Map{"title": "Trip", "targetAmount": 100, "deadline": future, "category": "yacht"}, "Invalid category"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, "/api/savings-goals", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestListGoals(t *testing.T) {
	store := &fakeStore{}
	seedGoal(store, 1200, 300)
	seedGoal(store, 500, 0)
	app := newApp(store)

	resp, body := doJSON(t, app, http.MethodGet, "/api/savings-goals", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Len(t, data["savingsGoals"], 2)
	assert.EqualValues(t, 2, data["count"])
}

func TestAddSavings(t *testing.T) {
	store := &fakeStore{}
	g := seedGoal(store, 1200, 0)
	app := newApp(store)

	resp, body := doJSON(t, app, http.MethodPost, "/api/savings-goals/"+g.ID+"/add-savings", fiber.Map{"amount": 500})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	view := body["data"].(map[string]any)["savingsGoal"].(map[string]any)
	assert.EqualValues(t, 500, view["currentAmount"])
	assert.Equal(t, "active", view["status"])

	// Reaching the target flips the goal to completed.
	resp, body = doJSON(t, app, http.MethodPost, "/api/savings-goals/"+g.ID+"/add-savings", fiber.Map{"amount": 700})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	view = body["data"].(map[string]any)["savingsGoal"].(map[string]any)
	assert.EqualValues(t, 1200, view["currentAmount"])
	assert.Equal(t, "completed", view["status"])
	assert.EqualValues(t, 100, view["progressPercentage"])
}

func TestAddSavingsValidation(t *testing.T) {
	store := &fakeStore{}
	g := seedGoal(store, 1200, 0)
	app := newApp(store)

	resp, body := doJSON(t, app, http.MethodPost, "/api/savings-goals/"+g.ID+"/add-savings", fiber.Map{"amount": -5})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Amount must be greater than 0", body["message"])
}

func TestUpdateGoalDeadlineValidation(t *testing.T) {
	store := &fakeStore{}
	g := seedGoal(store, 1200, 0)
	app := newApp(store)

	resp, body := doJSON(t, app, http.MethodPut, "/api/savings-goals/"+g.ID, fiber.Map{"deadline": "2020-01-01"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Deadline must be in the future", body["message"])
}

func TestDeleteGoalHidesIt(t *testing.T) {
	store := &fakeStore{}
	g := seedGoal(store, 1200, 0)
	app := newApp(store)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/savings-goals/"+g.ID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Savings goal deleted successfully", body["message"])

	// Soft-deleted goals are indistinguishable from missing ones.
	resp, body = doJSON(t, app, http.MethodGet, "/api/savings-goals/"+g.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Savings goal not found", body["message"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/savings-goals", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["data"].(map[string]any)["count"])
}

func TestGoalNotFound(t *testing.T) {
	app := newApp(&fakeStore{})

	resp, body := doJSON(t, app, http.MethodGet, "/api/savings-goals/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Savings goal not found", body["message"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/savings-goals/"+uuid.NewString(), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Savings goal not found", body["message"])
}

func TestGoalStats(t *testing.T) {
	store := &fakeStore{}
	seedGoal(store, 1000, 250)
	completed := seedGoal(store, 400, 0)
	_, err := store.AddSavings(context.Background(), testUserID, completed.ID, 400)
	require.NoError(t, err)
	app := newApp(store)

	resp, body := doJSON(t, app, http.MethodGet, "/api/savings-goals/stats/summary", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := body["data"].(map[string]any)["stats"].(map[string]any)
	assert.EqualValues(t, 2, stats["totalGoals"])
	assert.EqualValues(t, 1, stats["activeGoals"])
	assert.EqualValues(t, 1, stats["completedGoals"])
	assert.EqualValues(t, 1400, stats["totalTargetAmount"])
	assert.EqualValues(t, 650, stats["totalCurrentAmount"])
	assert.InDelta(t, 62.5, stats["averageProgress"].(float64), 0.01)
}
