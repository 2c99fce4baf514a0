package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRememberToken_Roundtrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := RememberToken(secret, "ming@campus.edu", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := RedeemRememberToken(secret, token)
	require.NoError(t, err)
	require.Equal(t, "ming@campus.edu", email)
}

func TestRedeemRememberToken_WrongSecret(t *testing.T) {
	token, err := RememberToken([]byte("secret-a"), "ming@campus.edu", time.Hour)
	require.NoError(t, err)

	_, err = RedeemRememberToken([]byte("secret-b"), token)
	require.Error(t, err)
}

func TestRedeemRememberToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := RememberToken(secret, "ming@campus.edu", -time.Minute)
	require.NoError(t, err)

	_, err = RedeemRememberToken(secret, token)
	require.Error(t, err)
}

func TestRedeemRememberToken_Garbage(t *testing.T) {
	_, err := RedeemRememberToken([]byte("test-secret"), "not.a.token")
	require.Error(t, err)
}
