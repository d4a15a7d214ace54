package services

import (
	"testing"

	"elder-guardian-service/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(42, RoleGuardian)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestExtractClaims(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(42, RoleElderly)
	require.NoError(t, err)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, RoleElderly, claims.Role)
	assert.Equal(t, "elder-guardian-service", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService(testConfig())
	other := NewJWTService(&config.Config{JWTSecretKey: "different-secret"})

	token, err := svc.GenerateToken(1, RoleAdmin)
	require.NoError(t, err)

	_, err = other.ExtractClaims(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService(testConfig())

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
