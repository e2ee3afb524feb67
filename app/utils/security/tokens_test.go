package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	other, err := GenerateToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	_, err = GenerateToken(8)
	assert.Error(t, err)
}

func TestSignAndVerifyToken(t *testing.T) {
	const secret = "0123456789abcdef0123456789abcdef"

	token, err := GenerateToken(32)
	require.NoError(t, err)

	signed := SignToken(token, secret)
	assert.True(t, strings.HasPrefix(signed, token+"."))

	got, ok := VerifySignedToken(signed, secret)
	require.True(t, ok)
	assert.Equal(t, token, got)
}

func TestVerifySignedToken_Rejections(t *testing.T) {
	const secret = "0123456789abcdef0123456789abcdef"
	signed := SignToken("sometoken", secret)

	tests := []struct {
		name  string
		value string
	}{
		{"tampered token", "other" + signed},
		{"tampered signature", signed[:len(signed)-2] + "zz"},
		{"wrong secret", SignToken("sometoken", "another-secret-another-secret!!")},
		{"no separator", "justonetoken"},
		{"empty value", ""},
		{"trailing separator", "token."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := tt.value
			if tt.name == "wrong secret" {
				_, ok := VerifySignedToken(value, "a-different-secret-entirely-0000")
				assert.False(t, ok)
				return
			}
			_, ok := VerifySignedToken(value, secret)
			assert.False(t, ok)
		})
	}
}

func TestConstantTimeEquals(t *testing.T) {
	assert.True(t, ConstantTimeEquals("state-abc", "state-abc"))
	assert.False(t, ConstantTimeEquals("state-abc", "state-abd"))
	assert.False(t, ConstantTimeEquals("state-abc", ""))
}
