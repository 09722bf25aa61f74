// Package scope issues and verifies the HS256 access tokens that carry a caller's
// tenant and role, and moves the resulting model.Scope through request contexts.
package scope

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"alert-srv/internal/model"

	"github.com/golang-jwt/jwt"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingTenant = errors.New("token has no tenant")
)

// Payload is the claim set of an access token.
type Payload struct {
	jwt.StandardClaims
	UserID   string `json:"sub"`
	TenantID string `json:"tenant_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Scope is the caller identity the rest of the service works with.
func (p Payload) Scope() model.Scope {
	userID := p.UserID
	if userID == "" {
		userID = p.Subject
	}
	return model.Scope{
		UserID:   userID,
		TenantID: p.TenantID,
		Username: p.Username,
		Role:     p.Role,
	}
}

// Manager is safe for concurrent use.
type Manager interface {
	Verify(token string) (Payload, error)
	CreateToken(payload Payload) (string, error)
}

type hmacManager struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

// New panics on an empty secret; config validation rejects it earlier.
func New(secret string) Manager {
	if secret == "" {
		panic("scope: empty secret")
	}
	return &hmacManager{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}
}

func (m *hmacManager) Verify(token string) (Payload, error) {
	if token == "" {
		return Payload{}, fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	var p Payload
	parsed, err := m.parser.ParseWithClaims(token, &p, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Payload{}, ErrInvalidToken
	}
	if p.TenantID == "" {
		return Payload{}, ErrMissingTenant
	}
	return p, nil
}

func (m *hmacManager) CreateToken(p Payload) (string, error) {
	now := time.Now()
	p.StandardClaims = jwt.StandardClaims{
		Id:        fmt.Sprintf("%d", now.UnixNano()),
		IssuedAt:  now.Unix(),
		NotBefore: now.Unix(),
		ExpiresAt: now.Add(m.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, p).SignedString(m.secret)
}

// BearerToken extracts the token from an Authorization header value.
// It returns "" when the scheme is not Bearer.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
