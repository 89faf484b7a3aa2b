package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1"})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestDecodeJWT(t *testing.T) {
	secret := []byte("test-secret")

	claims, err := DecodeJWT(signToken(t, secret), secret)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["id"])
}

func TestDecodeJWTWrongSecret(t *testing.T) {
	_, err := DecodeJWT(signToken(t, []byte("test-secret")), []byte("other-secret"))

	assert.Error(t, err)
}

func TestDecodeJWTGarbage(t *testing.T) {
	_, err := DecodeJWT("not-a-token", []byte("test-secret"))

	assert.Error(t, err)
}
