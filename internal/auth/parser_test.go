package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseValidToken(t *testing.T) {
	parser := NewParser(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "user-1",
		"name": "Budi Santoso",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	principal, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", principal.UserID)
	assert.Equal(t, "Budi Santoso", principal.FullName)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	parser := NewParser(testSecret)
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	parser := NewParser(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	parser := NewParser(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"name": "No Subject",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, err := parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	parser := NewParser(testSecret)
	_, err := parser.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
