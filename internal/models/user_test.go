package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PasswordRoundTrip(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("correct horse battery"))

	assert.True(t, u.CheckPassword("correct horse battery"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.NotContains(t, u.PasswordHash, "correct horse battery")
}

func TestUser_IsAdmin(t *testing.T) {
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}
