package user

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

// User is a persisted user record. PasswordHash never leaves the server.
type User struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Avatar       string         `json:"avatar"`
	AvatarPath   string         `json:"-"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	Preferences  map[string]any `json:"preferences"`
	IsActive     bool           `json:"isActive"`
	LastLogin    *time.Time     `json:"lastLogin,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Profile is the full profile view served by GET /api/users/profile.
// ProfilePicture mirrors Avatar for frontend compatibility.
type Profile struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Avatar         string         `json:"avatar"`
	ProfilePicture string         `json:"profilePicture"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	JoinDate       time.Time      `json:"joinDate"`
	LastLogin      *time.Time     `json:"lastLogin,omitempty"`
	Preferences    map[string]any `json:"preferences"`
	IsActive       bool           `json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Avatar:         u.Avatar,
		ProfilePicture: u.Avatar,
		Phone:          u.Phone,
		Address:        u.Address,
		JoinDate:       u.CreatedAt,
		LastLogin:      u.LastLogin,
		Preferences:    u.Preferences,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// ProfilePatch carries the optional profile fields of a PUT; nil means the
// field was not supplied.
type ProfilePatch struct {
	Name       *string
	Phone      *string
	Address    *string
	Avatar     *string
	AvatarPath *string
}

// Store is the persistence contract the auth and user handlers depend on.
type Store interface {
	Create(ctx context.Context, name, email, passwordHash string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	TouchLastLogin(ctx context.Context, id string) error
}
