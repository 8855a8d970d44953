package token

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc, err := NewService("test_secret", time.Hour)
	require.NoError(t, err)

	tok, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	svc, err := NewService("test_secret", time.Hour)
	require.NoError(t, err)

	tok, err := svc.Issue(7)
	require.NoError(t, err)

	// Flip a character in the signature segment
	tampered := tok[:len(tok)-2] + "xx"
	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	t.Parallel()

	svc, err := NewService("test_secret", time.Hour)
	require.NoError(t, err)

	// Correctly signed with the right secret but the wrong HMAC variant;
	// only HS256 is accepted.
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(12, 10),
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).
		SignedString([]byte("test_secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	issuing, err := NewService("secret_one", time.Hour)
	require.NoError(t, err)
	verifying, err := NewService("secret_two", time.Hour)
	require.NoError(t, err)

	tok, err := issuing.Issue(1)
	require.NoError(t, err)

	_, err = verifying.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	svc, err := NewService("test_secret", -time.Minute)
	require.NoError(t, err)
	// Negative TTL falls back to the default, so build an expired service directly.
	svc.ttl = -time.Minute

	tok, err := svc.Issue(9)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc, err := NewService("test_secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewServiceRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewService("", time.Hour)
	assert.Error(t, err)
}
