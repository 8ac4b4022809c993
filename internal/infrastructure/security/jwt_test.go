package security

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("admin", "secret-key", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := ValidateSessionToken(token, "secret-key")
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("admin", "secret-key", time.Hour)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "other-key")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := GenerateSessionToken("admin", "secret-key", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "secret-key")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionToken_Garbage(t *testing.T) {
	_, err := ValidateSessionToken("not.a.token", "secret-key")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateULID_UniqueAndSortable(t *testing.T) {
	first := GenerateULID()
	second := GenerateULID()
	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
}

func TestGenerateSecureKey_HexLength(t *testing.T) {
	key, err := GenerateSecureKey(64)
	require.NoError(t, err)
	assert.Len(t, key, 64)
}

func TestGenerateSecureToken_URLSafe(t *testing.T) {
	token, err := GenerateSecureToken(32)
	require.NoError(t, err)
	raw, err := base64.URLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}
