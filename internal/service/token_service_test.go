package service

import (
	"testing"
	"time"

	"fulfillment-ledger/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-key-for-unit-tests"

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, 24*time.Hour, "test-issuer")
	subject := uuid.New()

	for _, role := range []string{ports.RoleMerchant, ports.RoleOperator, ports.RoleAdmin} {
		tokenStr, expiresAt, err := svc.Generate(subject, role)
		require.NoError(t, err)
		assert.NotEmpty(t, tokenStr)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := svc.Validate(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, subject, claims.Subject)
		assert.Equal(t, role, claims.Role)
	}
}

func TestJWTTokenService_ExpiredToken(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, -1*time.Hour, "test-issuer")

	tokenStr, _, err := svc.Generate(uuid.New(), ports.RoleMerchant)
	require.NoError(t, err)

	_, err = svc.Validate(tokenStr)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTTokenService_InvalidSignature(t *testing.T) {
	svc1 := NewJWTTokenService("secret-1", 24*time.Hour, "issuer")
	svc2 := NewJWTTokenService("secret-2", 24*time.Hour, "issuer")

	tokenStr, _, err := svc1.Generate(uuid.New(), ports.RoleMerchant)
	require.NoError(t, err)

	_, err = svc2.Validate(tokenStr)
	assert.Error(t, err, "token signed with different secret should fail")
}

func TestJWTTokenService_WrongIssuer(t *testing.T) {
	tokenStr, _, err := NewJWTTokenService(testJWTSecret, time.Hour, "other").Generate(uuid.New(), ports.RoleAdmin)
	require.NoError(t, err)

	_, err = NewJWTTokenService(testJWTSecret, time.Hour, "fulfillment-ledger").Validate(tokenStr)
	assert.Error(t, err)
}

func TestJWTTokenService_UnknownRole(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, time.Hour, "issuer")
	tokenStr, _, err := svc.Generate(uuid.New(), "superuser")
	require.NoError(t, err)

	_, err = svc.Validate(tokenStr)
	assert.ErrorIs(t, err, errUnknownRole)
}

func TestJWTTokenService_RejectsNoneAlgorithm(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, time.Hour, "issuer")
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.NewString(), "role": ports.RoleAdmin, "iss": "issuer",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenStr, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(tokenStr)
	assert.Error(t, err)
}

func TestJWTTokenService_InvalidTokenString(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, 24*time.Hour, "issuer")

	_, err := svc.Validate("not.a.valid.jwt")
	assert.Error(t, err)
	_, err = svc.Validate("")
	assert.Error(t, err)
}

func TestJWTTokenService_RequiresExpiry(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, time.Hour, "issuer")
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(), "role": ports.RoleAdmin, "iss": "issuer",
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = svc.Validate(tokenStr)
	assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
}

func TestJWTTokenService_RejectsOtherHMACSizes(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, time.Hour, "issuer")
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": uuid.NewString(), "role": ports.RoleAdmin, "iss": "issuer",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = svc.Validate(tokenStr)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}
