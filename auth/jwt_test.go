package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Generate("ada@example.com")
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	// Tokens carry no expiry; they outlive everything but a secret rotation.
	assert.Nil(t, claims.ExpiresAt)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-one").Generate("ada@example.com")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-two").Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewTokenIssuer("test-secret").Validate("not.a.token")
	assert.Error(t, err)
}
