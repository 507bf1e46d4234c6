package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims models.SessionClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func sessionClaims(subject string, role models.UserRole, expires time.Time) models.SessionClaims {
	return models.SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "auth.example.com",
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
}

func TestValidateTokenReturnsIdentity(t *testing.T) {
	svc := NewAuthService(AuthConfig{Secret: "secret", Issuer: "auth.example.com"})
	token := signToken(t, "secret", jwt.SigningMethodHS256, sessionClaims("user_t", models.RoleTeacher, time.Now().Add(time.Hour)))

	identity, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, &models.Identity{UserID: "user_t", Role: models.RoleTeacher}, identity)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewAuthService(AuthConfig{Secret: "secret", Issuer: "auth.example.com"})
	future := time.Now().Add(time.Hour)

	cases := map[string]string{
		"wrong secret":   signToken(t, "other", jwt.SigningMethodHS256, sessionClaims("user_t", models.RoleTeacher, future)),
		"wrong method":   signToken(t, "secret", jwt.SigningMethodHS512, sessionClaims("user_t", models.RoleTeacher, future)),
		"expired":        signToken(t, "secret", jwt.SigningMethodHS256, sessionClaims("user_t", models.RoleTeacher, time.Now().Add(-time.Hour))),
		"unknown role":   signToken(t, "secret", jwt.SigningMethodHS256, sessionClaims("user_t", "parent", future)),
		"missing sub":    signToken(t, "secret", jwt.SigningMethodHS256, sessionClaims("", models.RoleAdmin, future)),
		"garbage string": "not-a-token",
	}
	for name, token := range cases {
		_, err := svc.ValidateToken(token)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized, name)
	}
}

func TestValidateTokenIssuerMismatch(t *testing.T) {
	svc := NewAuthService(AuthConfig{Secret: "secret", Issuer: "other-issuer"})
	token := signToken(t, "secret", jwt.SigningMethodHS256, sessionClaims("user_t", models.RoleTeacher, time.Now().Add(time.Hour)))

	_, err := svc.ValidateToken(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
