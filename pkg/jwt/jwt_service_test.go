package jwt

import (
	"strings"
	"testing"
	"time"

	"recipe-catalog/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *jwtService {
	return NewJWTService("test-secret", "recipe-catalog-test", time.Minute).(*jwtService)
}

func TestGenerateAndResolveUserToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateTokenUser(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestGetUserIDByToken_Expired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateTokenUser(7, "bob")
	require.NoError(t, err)

	_, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestGetUserIDByToken_TamperedSignature(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateTokenUser(7, "bob")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.GetUserIDByToken(tampered)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_WrongSecret(t *testing.T) {
	other := NewJWTService("other-secret", "recipe-catalog-test", time.Minute)
	token, err := other.GenerateTokenUser(1, "mallory")
	require.NoError(t, err)

	_, err = newTestService().GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_WrongIssuer(t *testing.T) {
	other := NewJWTService("test-secret", "someone-else", time.Minute)
	token, err := other.GenerateTokenUser(1, "mallory")
	require.NoError(t, err)

	_, err = newTestService().GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_Malformed(t *testing.T) {
	_, err := newTestService().GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyEmailTokenIsNotAnAccessToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateTokenVerifyEmail(3, "carol@example.com", time.Hour)
	require.NoError(t, err)

	_, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	id, email, err := svc.ValidateTokenVerifyEmail(token)
	require.NoError(t, err)
	assert.Equal(t, 3, id)
	assert.Equal(t, "carol@example.com", email)
}

func TestAccessTokenIsNotAVerifyEmailToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateTokenUser(3, "carol")
	require.NoError(t, err)

	_, _, err = svc.ValidateTokenVerifyEmail(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
