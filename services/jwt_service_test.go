package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper-http-service/models"
)

func TestJWTService_GenerateAndExtract(t *testing.T) {
	svc := NewJWTService(testConfig())

	societyID := uint(7)
	token, err := svc.GenerateToken(42, models.RoleGuard, &societyID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleGuard, claims.Role)
	require.NotNil(t, claims.SocietyID)
	assert.Equal(t, societyID, *claims.SocietyID)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(42, models.RoleAdmin, nil)
	require.NoError(t, err)

	_, err = svc.ExtractClaims(token + "x")
	assert.Error(t, err)

	other := NewJWTService(testConfig())
	other.(*JWTService).secretKey = "different-secret"
	_, err = other.ExtractClaims(token)
	assert.Error(t, err)
}
