package middlewares

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminJWTRoundTrip(t *testing.T) {
	token, err := GenerateAdminJWT("ops@example.com", "test-secret", 60)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateAdminJWT(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims["sub"])
}

func TestAdminJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAdminJWT("ops@example.com", "test-secret", 60)
	assert.NoError(t, err)

	_, err = ValidateAdminJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestAdminJWTRejectsExpired(t *testing.T) {
	token, err := GenerateAdminJWT("ops@example.com", "test-secret", -1)
	assert.NoError(t, err)

	_, err = ValidateAdminJWT(token, "test-secret")
	assert.Error(t, err)
}

func TestAdminJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateAdminJWT("not.a.token", "test-secret")
	assert.Error(t, err)
}
