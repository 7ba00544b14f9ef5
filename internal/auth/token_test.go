package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	userID := uuid.New()

	token, err := issuer.GenerateToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := issuer.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "broad-forum-client", claims.Issuer)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	token, err := issuer.GenerateToken(uuid.New())
	assert.NoError(t, err)

	other := NewTokenIssuer("different-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	_, err := issuer.ValidateToken("not-a-token")
	assert.Error(t, err)
}
