package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func TestCreateAndParseToken(t *testing.T) {
	token, err := CreateToken("maria", "notebook", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.UniqueName)
	assert.Equal(t, "notebook", claims.Device)
	assert.Equal(t, "maria", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestParseTokenRejects(t *testing.T) {
	expired, err := CreateToken("maria", "", secret, -time.Minute)
	require.NoError(t, err)

	other, err := CreateToken("maria", "", []byte("another secret"), time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: Issuer}).SignedString(secret)
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"other secret": other,
		"no expiry":    noExpiry,
		"wrong issuer": wrongIssuer,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(token, secret)
			assert.Error(t, err)
		})
	}
}

func TestCreateTokenRequiresSecret(t *testing.T) {
	_, err := CreateToken("maria", "", nil, time.Hour)
	assert.Error(t, err)
}
