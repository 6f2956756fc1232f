package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredential_Encode(t *testing.T) {
	cred := NewCredential("alice", "s3cret")

	// base64("alice:s3cret")
	assert.Equal(t, "YWxpY2U6czNjcmV0", cred.Encode())
}

func TestCredential_EncodeWithoutPassword(t *testing.T) {
	cred := Credential{Username: "alice"}

	assert.Equal(t, "YWxpY2U6", cred.Encode())
	assert.Equal(t, "", cred.PasswordOrEmpty())
}

func TestParseCredential_RoundTrip(t *testing.T) {
	original := NewCredential("bob", "pa:ss word")

	parsed, err := ParseCredential(original.Encode())

	require.NoError(t, err)
	assert.Equal(t, "bob", parsed.Username)
	require.NotNil(t, parsed.Password)
	assert.Equal(t, "pa:ss word", *parsed.Password)
}

func TestParseCredential_NoColon(t *testing.T) {
	parsed, err := ParseCredential("YWxpY2U=") // base64("alice")

	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.Username)
	assert.Nil(t, parsed.Password)
}

func TestParseCredential_Invalid(t *testing.T) {
	_, err := ParseCredential("not base64!")

	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestParseCredential_TrimsWhitespace(t *testing.T) {
	parsed, err := ParseCredential("  YWxpY2U6czNjcmV0\n")

	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.Username)
	assert.Equal(t, "s3cret", parsed.PasswordOrEmpty())
}
