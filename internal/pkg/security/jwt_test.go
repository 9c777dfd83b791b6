package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, []string{"USER", "ADMIN"}, "pro")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, []string{"USER", "ADMIN"}, claims.Roles)
	assert.Equal(t, "pro", claims.Tier)
	assert.Equal(t, "Huntboard", claims.Issuer)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)

	token, err := GenerateToken(1, nil, "free")
	require.NoError(t, err)
	_, err = ValidateToken(token + "tampered")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(1, nil, "free")
	require.NoError(t, err)

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	_, err = ExtractSignature("malformed-token")
	assert.Error(t, err)
}
