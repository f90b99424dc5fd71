package goal

import (
	"context"
	"errors"
	"math"
	"time"
)

var ErrNotFound = errors.New("savings goal not found")

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
	StatusCancelled = "cancelled"
)

var categories = map[string]bool{
	"emergency": true, "vacation": true, "house": true, "car": true,
	"education": true, "retirement": true, "other": true,
}
var statuses = map[string]bool{
	StatusActive: true, StatusCompleted: true, StatusPaused: true, StatusCancelled: true,
}

func ValidCategory(c string) bool { return categories[c] }
func ValidStatus(s string) bool   { return statuses[s] }

// Goal is a target-amount-by-deadline objective. The derived pace and
// progress figures are never stored; they are computed from these fields at
// read time.
type Goal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Deadline      time.Time `json:"deadline"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

const (
	day   = 24 * time.Hour
	month = 30 * day
)

// MonthsRemaining is the number of 30-day months until the deadline, never
// below one so a past deadline still demands the full remainder this month.
func (g Goal) MonthsRemaining(now time.Time) int {
	m := int(math.Ceil(float64(g.Deadline.Sub(now)) / float64(month)))
	if m < 1 {
		return 1
	}
	return m
}

// DaysRemaining is the number of days until the deadline, floored at zero.
func (g Goal) DaysRemaining(now time.Time) int {
	d := int(math.Ceil(float64(g.Deadline.Sub(now)) / float64(day)))
	if d < 0 {
		return 0
	}
	return d
}

// MonthlyTarget is the amount still needed per remaining month.
func (g Goal) MonthlyTarget(now time.Time) float64 {
	return math.Max(0, (g.TargetAmount-g.CurrentAmount)/float64(g.MonthsRemaining(now)))
}

// ProgressPercentage is how far along the goal is, capped at 100.
func (g Goal) ProgressPercentage() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return math.Min(100, g.CurrentAmount/g.TargetAmount*100)
}

// View is the serialized goal including all derived fields.
type View struct {
	Goal
	MonthlyTarget      float64 `json:"monthlyTarget"`
	ProgressPercentage float64 `json:"progressPercentage"`
	DaysRemaining      int     `json:"daysRemaining"`
	MonthsRemaining    int     `json:"monthsRemaining"`
}

func (g Goal) View(now time.Time) View {
	return View{
		Goal:               g,
		MonthlyTarget:      g.MonthlyTarget(now),
		ProgressPercentage: g.ProgressPercentage(),
		DaysRemaining:      g.DaysRemaining(now),
		MonthsRemaining:    g.MonthsRemaining(now),
	}
}

// Stats summarizes a user's active (not soft-deleted) goals.
type Stats struct {
	TotalGoals         int     `json:"totalGoals"`
	ActiveGoals        int     `json:"activeGoals"`
	CompletedGoals     int     `json:"completedGoals"`
	TotalTargetAmount  float64 `json:"totalTargetAmount"`
	TotalCurrentAmount float64 `json:"totalCurrentAmount"`
	TotalMonthlyTarget float64 `json:"totalMonthlyTarget"`
	AverageProgress    float64 `json:"averageProgress"`
}

// StatsFromGoals reduces the listed goals the same way the list endpoint
// serves them: monthly targets only over goals whose status is active, mean
// progress over everything listed.
func StatsFromGoals(goals []Goal, now time.Time) Stats {
	var s Stats
	s.TotalGoals = len(goals)

	var progressSum float64
	for _, g := range goals {
		switch g.Status {
		case StatusActive:
			s.ActiveGoals++
			s.TotalMonthlyTarget += g.MonthlyTarget(now)
		case StatusCompleted:
			s.CompletedGoals++
		}
		s.TotalTargetAmount += g.TargetAmount
		s.TotalCurrentAmount += g.CurrentAmount
		progressSum += g.ProgressPercentage()
	}
	if len(goals) > 0 {
		s.AverageProgress = progressSum / float64(len(goals))
	}
	return s
}

// Patch carries the optional fields of a partial update.
type Patch struct {
	Title        *string
	Description  *string
	TargetAmount *float64
	Deadline     *time.Time
	Category     *string
	Status       *string
}

// Store is the persistence contract for savings goals. AddSavings must apply
// the increment and the completion transition atomically.
type Store interface {
	List(ctx context.Context, userID string) ([]Goal, error)
	Get(ctx context.Context, userID, id string) (Goal, error)
	Create(ctx context.Context, g Goal) (Goal, error)
	Update(ctx context.Context, userID, id string, p Patch) (Goal, error)
	AddSavings(ctx context.Context, userID, id string, amount float64) (Goal, error)
	SoftDelete(ctx context.Context, userID, id string) error
}
