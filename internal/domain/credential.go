package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Credential is a username with an optional password for HTTP Basic auth.
type Credential struct {
	Password *string
	Username string
}

// NewCredential returns a credential with a password set.
func NewCredential(username, password string) Credential {
	return Credential{Username: username, Password: &password}
}

// PasswordOrEmpty returns the password, or "" when none is set.
func (c Credential) PasswordOrEmpty() string {
	if c.Password == nil {
		return ""
	}
	return *c.Password
}

// Encode returns the Basic scheme token: base64 of "username:password".
// This is the form persisted in the configuration store.
func (c Credential) Encode() string {
	text := c.Username + ":"
	if c.Password != nil {
		text += *c.Password
	}
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// ParseCredential decodes a Basic scheme token produced by Encode.
// A token without a colon yields a credential without a password.
func ParseCredential(token string) (Credential, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	username, password, found := strings.Cut(string(raw), ":")
	if !found {
		return Credential{Username: username}, nil
	}
	return NewCredential(username, password), nil
}
