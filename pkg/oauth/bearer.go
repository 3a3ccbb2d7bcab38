package oauth

import "strings"

const bearerScheme = "Bearer "

// ValidateToken reports whether presented is non-empty and starts with
// prefix. Tokens are stateless: there is no signature, expiry or revocation check.
func ValidateToken(presented, prefix string) bool {
	return presented != "" && strings.HasPrefix(presented, prefix)
}

// BearerToken extracts the credential from an Authorization header value.
// The scheme must be exactly "Bearer " as the mocked providers expect.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerScheme) {
		return "", false
	}
	return header[len(bearerScheme):], true
}
