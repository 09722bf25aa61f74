package scope

import (
	"context"
	"testing"

	"alert-srv/internal/model"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestCreateAndVerify(t *testing.T) {
	m := New(testSecret)

	token, err := m.CreateToken(Payload{UserID: "u1", TenantID: "t1", Username: "alice", Role: model.RoleAdmin})
	require.NoError(t, err)

	payload, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, model.Scope{UserID: "u1", TenantID: "t1", Username: "alice", Role: model.RoleAdmin}, payload.Scope())
	assert.NotZero(t, payload.ExpiresAt)
}

func TestVerifyRejects(t *testing.T) {
	m := New(testSecret)

	foreign, err := New("another-secret-another-secret-000").CreateToken(Payload{UserID: "u1", TenantID: "t1"})
	require.NoError(t, err)

	noTenant, err := m.CreateToken(Payload{UserID: "u1"})
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Payload{UserID: "u1", TenantID: "t1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Payload{UserID: "u1", TenantID: "t1"}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrInvalidToken},
		{"garbage", "not-a-jwt", ErrInvalidToken},
		{"wrong secret", foreign, ErrInvalidToken},
		{"alg none", unsigned, ErrInvalidToken},
		{"other hmac alg", hs512, ErrInvalidToken},
		{"no tenant", noTenant, ErrMissingTenant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPayloadScopeFallsBackToSubject(t *testing.T) {
	p := Payload{TenantID: "t"}
	p.Subject = "from-std-claims"
	assert.Equal(t, "from-std-claims", p.Scope().UserID)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BearerToken(tt.header), tt.header)
	}
}

func TestScopeContext(t *testing.T) {
	ctx := context.Background()
	_, ok := GetScopeFromContext(ctx)
	assert.False(t, ok)

	ctx = SetScopeToContext(ctx, model.Scope{UserID: "u", TenantID: "t"})
	sc, ok := GetScopeFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "t", sc.TenantID)
}

func TestNewPanicsOnEmptySecret(t *testing.T) {
	assert.Panics(t, func() { New("") })
}
