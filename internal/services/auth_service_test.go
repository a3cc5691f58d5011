package services_test

import (
	"fmt"
	"testing"
	"time"

	"crm/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newTestAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	hash, err := services.HashSecret("s3cret")
	require.NoError(t, err)
	return services.NewAuthService("crm-jobs", hash, testJWTSecret, time.Hour)
}

func TestHashSecret(t *testing.T) {
	hash, err := services.HashSecret("s3cret")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestAuthService_IssueToken(t *testing.T) {
	authService := newTestAuthService(t)

	// Test successful issue
	token, err := authService.IssueToken("crm-jobs", "s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "crm-jobs", claims["sub"])

	// Test invalid credentials (wrong secret)
	_, err = authService.IssueToken("crm-jobs", "wrong")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	// Test invalid credentials (unknown client)
	_, err = authService.IssueToken("someone-else", "s3cret")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthService_IssueToken_NoSecretConfigured(t *testing.T) {
	authService := services.NewAuthService("crm-jobs", "", testJWTSecret, time.Hour)
	_, err := authService.IssueToken("crm-jobs", "")
	assert.Error(t, err)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newTestAuthService(t)

	issued, err := authService.IssueToken("crm-jobs", "s3cret")
	require.NoError(t, err)

	// Test valid token
	claims, err := authService.ValidateToken(issued)
	assert.NoError(t, err)
	assert.Equal(t, "crm-jobs", claims["sub"])

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "crm-jobs",
		"exp": jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test token signed with another secret
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "crm-jobs"})
	foreignString, _ := foreign.SignedString([]byte("other"))
	_, err = authService.ValidateToken(foreignString)
	assert.Error(t, err)
}
