package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgavazzi/hydromate/internal/auth"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.NewToken(testSecret, 42, "demo1@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := auth.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "demo1@example.com", claims.Email)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := auth.NewToken(testSecret, 42, "demo1@example.com", time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := auth.NewToken(testSecret, 42, "demo1@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := auth.ParseToken(testSecret, "not.a.token")
	assert.Error(t, err)
}
