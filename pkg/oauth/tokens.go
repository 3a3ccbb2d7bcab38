package oauth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Default token prefixes. Downstream validation is prefix-based, so every
// issued value must start with the prefix of its kind.
const (
	DefaultAuthCodePrefix     = "mock_auth_code_"
	DefaultAccessTokenPrefix  = "mock_access_token_"
	DefaultRefreshTokenPrefix = "mock_refresh_token_"
)

// fixedSuffix is appended to every prefix in TokenModeFixed.
const fixedSuffix = "1234567890"

// TokenMode selects how the opaque suffix of a token is produced.
type TokenMode string

const (
	// TokenModeFixed issues the same value for every request of a kind.
	TokenModeFixed TokenMode = "fixed"
	// TokenModeUnique appends a random UUID to each issued value.
	TokenModeUnique TokenMode = "unique"
)

// ParseTokenMode parses a token mode string. The empty string is TokenModeFixed.
func ParseTokenMode(s string) (TokenMode, error) {
	switch strings.ToLower(s) {
	case "", string(TokenModeFixed):
		return TokenModeFixed, nil
	case string(TokenModeUnique):
		return TokenModeUnique, nil
	default:
		return "", fmt.Errorf("unknown token mode %q (valid: fixed, unique)", s)
	}
}

// Prefixes groups the three grant-type-specific token prefixes.
type Prefixes struct {
	AuthCode     string
	AccessToken  string
	RefreshToken string
}

// DefaultPrefixes returns the documented prefixes.
func DefaultPrefixes() Prefixes {
	return Prefixes{
		AuthCode:     DefaultAuthCodePrefix,
		AccessToken:  DefaultAccessTokenPrefix,
		RefreshToken: DefaultRefreshTokenPrefix,
	}
}

// ErrPrefixCollision is returned when one prefix would accept tokens of another kind.
var ErrPrefixCollision = errors.New("token prefixes collide")

// Validate checks that every prefix is set and that no prefix is a prefix of
// another, which would let a token of one kind validate as another.
func (p Prefixes) Validate() error {
	named := []struct{ name, value string }{
		{"auth code", p.AuthCode},
		{"access token", p.AccessToken},
		{"refresh token", p.RefreshToken},
	}
	for _, n := range named {
		if n.value == "" {
			return fmt.Errorf("%s prefix is empty", n.name)
		}
	}
	for i := range named {
		for j := range named {
			if i != j && strings.HasPrefix(named[i].value, named[j].value) {
				return fmt.Errorf("%w: %s prefix %q starts with %s prefix %q",
					ErrPrefixCollision, named[i].name, named[i].value, named[j].name, named[j].value)
			}
		}
	}
	return nil
}

// TokenFactory produces opaque authorization codes, access tokens and
// refresh tokens. It has no state beyond its configuration and is safe for
// concurrent use.
type TokenFactory struct {
	prefixes Prefixes
	mode     TokenMode
}

// NewTokenFactory creates a factory. Zero-valued prefixes fall back to the defaults.
func NewTokenFactory(prefixes Prefixes, mode TokenMode) (*TokenFactory, error) {
	def := DefaultPrefixes()
	if prefixes.AuthCode == "" {
		prefixes.AuthCode = def.AuthCode
	}
	if prefixes.AccessToken == "" {
		prefixes.AccessToken = def.AccessToken
	}
	if prefixes.RefreshToken == "" {
		prefixes.RefreshToken = def.RefreshToken
	}
	if err := prefixes.Validate(); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = TokenModeFixed
	}
	if _, err := ParseTokenMode(string(mode)); err != nil {
		return nil, err
	}
	return &TokenFactory{prefixes: prefixes, mode: mode}, nil
}

// Prefixes returns the prefixes this factory issues with.
func (f *TokenFactory) Prefixes() Prefixes {
	return f.prefixes
}

// IssueCode returns a new authorization code.
func (f *TokenFactory) IssueCode() string {
	return f.issue(f.prefixes.AuthCode)
}

// IssueAccessToken returns a new access token.
func (f *TokenFactory) IssueAccessToken() string {
	return f.issue(f.prefixes.AccessToken)
}

// IssueRefreshToken returns a new refresh token.
func (f *TokenFactory) IssueRefreshToken() string {
	return f.issue(f.prefixes.RefreshToken)
}

func (f *TokenFactory) issue(prefix string) string {
	if f.mode == TokenModeUnique {
		return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return prefix + fixedSuffix
}
