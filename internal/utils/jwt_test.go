package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cloud-drive/internal/config"
)

func testJWTConfig(secret string) *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: secret, Expiration: "1h"}}
}

func TestGenerateAndParseToken(t *testing.T) {
	cfg := testJWTConfig("test-secret")

	token, err := GenerateToken("user-42", cfg)
	require.NoError(t, err)

	userID, err := ParseToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-42", testJWTConfig("secret-a"))
	require.NoError(t, err)

	_, err = ParseToken(token, testJWTConfig("secret-b"))
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testJWTConfig("secret"))
	assert.Error(t, err)
}
