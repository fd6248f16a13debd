//go:build e2e

package helper

import (
	"testing"
	"time"

	"dental-clinic-api/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token the way the external identity provider would, so
// e2e requests pass the validation-only middleware.
func IssueToken(t *testing.T, secret string, userID uuid.UUID, role user.Role) string {
	t.Helper()

	claims := testClaims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err, "failed to sign test token")
	return token
}
