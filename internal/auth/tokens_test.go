package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	"github.com/pagekeep/pagekeep-server/internal/domain"
)

const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

var testUser = &domain.User{
	ID:    "user-V1StGXR8_Z5jdHi6BmyT1",
	Email: "reader@example.com",
}

func TestNewTokenService_KeyValidation(t *testing.T) {
	_, err := auth.NewTokenService("too-short", time.Hour)
	require.Error(t, err)

	_, err = auth.NewTokenService(strings64("zz"), time.Hour)
	require.Error(t, err)

	_, err = auth.NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)
}

// strings64 repeats a two-char chunk out to 64 characters.
func strings64(chunk string) string {
	out := ""
	for len(out) < 64 {
		out += chunk
	}
	return out
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := auth.NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, testUser.ID, claims.UserID)
	require.Equal(t, testUser.ID, claims.Subject)
	require.Equal(t, testUser.Email, claims.Email)
	require.NotEmpty(t, claims.TokenID)
	require.True(t, claims.Expiration.After(time.Now()))
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc, err := auth.NewTokenService(testKeyHex, -time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(testUser)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	require.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	svc, err := auth.NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	for _, bad := range []string{"", "garbage", "v4.local.AAAA"} {
		_, err := svc.VerifyAccessToken(bad)
		require.ErrorIs(t, err, auth.ErrTokenInvalid, "token %q", bad)
	}
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	signer, err := auth.NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	verifier, err := auth.NewTokenService(strings64("ab"), time.Hour)
	require.NoError(t, err)

	token, err := signer.GenerateAccessToken(testUser)
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(token)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
}
