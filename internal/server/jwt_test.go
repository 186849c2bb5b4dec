package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/config"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters!!",
		ExpirationHours: 1,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := testJWTService()
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTService_EmptyToken(t *testing.T) {
	_, err := testJWTService().ValidateToken("")
	assert.Error(t, err)
}

func TestJWTService_MalformedToken(t *testing.T) {
	_, err := testJWTService().ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := testJWTService().GenerateToken(uuid.New())
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{
		Secret:          "a-completely-different-secret-here!!",
		ExpirationHours: 1,
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := testJWTService()
	userID := uuid.New()

	// Hand-build an already expired token with the same secret.
	past := time.Now().Add(-2 * time.Hour)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(past),
			NotBefore: jwt.NewNumericDate(past),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-at-least-32-characters!!"))
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_RejectsUnexpectedSigningMethod(t *testing.T) {
	// alg=none style token must be rejected even if otherwise well formed.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testJWTService().ValidateToken(signed)
	assert.Error(t, err)
}
