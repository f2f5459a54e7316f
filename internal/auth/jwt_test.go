package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken(42, secret, time.Hour, time.Now())
	require.NoError(t, err)

	id, err := IdentityIDFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(42, secret, time.Hour, time.Now())
	require.NoError(t, err)

	_, err = IdentityIDFromToken(token, []byte("other-secret"))
	require.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	token, err := GenerateToken(42, secret, time.Hour, issued)
	require.NoError(t, err)

	_, err = IdentityIDFromToken(token, secret)
	require.Error(t, err)
}

func TestToken_Garbage(t *testing.T) {
	_, err := IdentityIDFromToken("not.a.token", secret)
	require.Error(t, err)
}
