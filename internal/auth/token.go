package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/moneytrack/moneytrack-backend/internal/user"
)

// Claims carried by a session token. Subject holds the user id.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokens(secret string, ttl time.Duration) Tokens {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return Tokens{Secret: []byte(secret), TTL: ttl}
}

func (t Tokens) Sign(u user.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: u.Email,
		Name:  u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

func (t Tokens) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
