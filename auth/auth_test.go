package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/middleware"
	"tripmate/models"
)

func TestSignAccessTokenRoundTrip(t *testing.T) {
	member := &models.Member{
		UserID:   "u1234567890",
		Username: "wanderer",
		Role:     []string{"user"},
	}
	token, err := signAccessToken(member)
	require.NoError(t, err)

	claims, err := middleware.ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u1234567890", claims.UserID)
	assert.Equal(t, "wanderer", claims.Username)
	assert.Equal(t, []string{"user"}, claims.Role)
}

func TestGenerateRefreshToken(t *testing.T) {
	a, err := generateRefreshToken()
	require.NoError(t, err)
	b, err := generateRefreshToken()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestHashTokenStable(t *testing.T) {
	assert.Equal(t, hashToken("abc"), hashToken("abc"))
	assert.NotEqual(t, hashToken("abc"), hashToken("abd"))
	assert.Len(t, hashToken("abc"), 64)
}
