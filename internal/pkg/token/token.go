package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskflow/internal/domain"
)

type Config struct {
	Secret string
	TTL    time.Duration
}

// Manager signs and verifies the bearer tokens that carry an actor identity.
// The secret is injected at construction; there is no package-level state.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(cfg *Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(cfg.Secret), ttl: ttl}, nil
}

type claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue creates a signed token embedding the actor's id and role.
func (m *Manager) Issue(actor domain.Actor) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", actor.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns the actor it identifies.
func (m *Manager) Verify(tokenString string) (domain.Actor, error) {
	var c claims
	t, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid {
		return domain.Actor{}, domain.ErrInvalidCredentials
	}

	var id int64
	if _, err := fmt.Sscanf(c.Subject, "%d", &id); err != nil {
		return domain.Actor{}, domain.ErrInvalidCredentials
	}
	if !c.Role.Valid() {
		return domain.Actor{}, domain.ErrInvalidCredentials
	}

	return domain.Actor{ID: id, Role: c.Role}, nil
}
