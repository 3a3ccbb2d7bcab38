package oauth

import (
	"fmt"
	"strings"
)

// Provider keys accepted by the ENABLE setting.
const (
	ProviderGoogle = "google"
	ProviderLINE   = "line"
)

// Issuers written into ID tokens.
const (
	GoogleIssuer = "https://accounts.google.com"
	LINEIssuer   = "https://access.line.me"
)

// Default scopes answered when the token request carries none.
const (
	GoogleDefaultScope = "openid email profile"
	LINEDefaultScope   = "profile openid email"
)

// lineIDTokenEmail is always present in LINE ID tokens even though the LINE
// profile record has no email field.
const lineIDTokenEmail = "test@example.com"

// Identity is the provider-neutral view of a user that ID-token claims are
// drawn from.
type Identity struct {
	Subject    string
	Email      string
	Name       string
	GivenName  string
	FamilyName string
	Picture    string
	Locale     string
}

// UserRecord is a mock user as returned by a profile endpoint.
type UserRecord interface {
	Identity() Identity
}

// GoogleUser mirrors the Google userinfo response.
type GoogleUser struct {
	Sub           string `json:"sub" yaml:"sub"`
	Email         string `json:"email" yaml:"email"`
	EmailVerified bool   `json:"email_verified" yaml:"email_verified"`
	Name          string `json:"name" yaml:"name"`
	GivenName     string `json:"given_name" yaml:"given_name"`
	FamilyName    string `json:"family_name" yaml:"family_name"`
	Picture       string `json:"picture" yaml:"picture"`
	Locale        string `json:"locale" yaml:"locale"`
}

// Identity implements UserRecord.
func (u GoogleUser) Identity() Identity {
	return Identity{
		Subject:    u.Sub,
		Email:      u.Email,
		Name:       u.Name,
		GivenName:  u.GivenName,
		FamilyName: u.FamilyName,
		Picture:    u.Picture,
		Locale:     u.Locale,
	}
}

// LINEUser mirrors the LINE profile response.
type LINEUser struct {
	UserID        string `json:"userId" yaml:"userId"`
	DisplayName   string `json:"displayName" yaml:"displayName"`
	PictureURL    string `json:"pictureUrl,omitempty" yaml:"pictureUrl"`
	StatusMessage string `json:"statusMessage,omitempty" yaml:"statusMessage"`
}

// Identity implements UserRecord.
func (u LINEUser) Identity() Identity {
	return Identity{
		Subject: u.UserID,
		Email:   lineIDTokenEmail,
		Name:    u.DisplayName,
		Picture: u.PictureURL,
	}
}

// DefaultGoogleUser returns the documented Google mock user.
func DefaultGoogleUser() GoogleUser {
	return GoogleUser{
		Sub:           "1234567890123456789012",
		Email:         "test@example.com",
		EmailVerified: true,
		Name:          "Yamada Taro",
		GivenName:     "Taro",
		FamilyName:    "Yamada",
		Picture:       "https://example.com/image.png",
		Locale:        "ja",
	}
}

// DefaultLINEUser returns the documented LINE mock user.
func DefaultLINEUser() LINEUser {
	return LINEUser{
		UserID:        "U12345678901234567890123456789012",
		DisplayName:   "Yamada Taro",
		PictureURL:    "https://example.com/image.png",
		StatusMessage: "Hello, LINE!",
	}
}

// IDTokenPolicy decides when the authorization_code grant returns an ID token.
type IDTokenPolicy int

const (
	// IDTokenWithOpenIDScope issues an ID token only when the scope holds "openid".
	IDTokenWithOpenIDScope IDTokenPolicy = iota
	// IDTokenAlways issues an ID token on every code exchange.
	IDTokenAlways
)

// Profile is the immutable description of one emulated identity provider.
type Profile struct {
	key          string
	displayName  string
	issuer       string
	defaultScope string
	bindsNonce   bool
	idToken      IDTokenPolicy
	claims       []claimField
	user         UserRecord
}

// GoogleProfile returns the Google-like profile serving user.
func GoogleProfile(user GoogleUser) *Profile {
	return &Profile{
		key:          ProviderGoogle,
		displayName:  "Google",
		issuer:       GoogleIssuer,
		defaultScope: GoogleDefaultScope,
		bindsNonce:   false,
		idToken:      IDTokenWithOpenIDScope,
		claims:       googleClaims,
		user:         user,
	}
}

// LINEProfile returns the LINE-like profile serving user.
func LINEProfile(user LINEUser) *Profile {
	return &Profile{
		key:          ProviderLINE,
		displayName:  "LINE",
		issuer:       LINEIssuer,
		defaultScope: LINEDefaultScope,
		bindsNonce:   true,
		idToken:      IDTokenAlways,
		claims:       lineClaims,
		user:         user,
	}
}

// WithUser returns a copy of the profile serving a different user.
func (p *Profile) WithUser(user UserRecord) *Profile {
	cp := *p
	cp.user = user
	return &cp
}

// Key returns the ENABLE key of the profile ("google" or "line").
func (p *Profile) Key() string { return p.key }

// DisplayName returns the human-readable provider name.
func (p *Profile) DisplayName() string { return p.displayName }

// Issuer returns the iss claim value.
func (p *Profile) Issuer() string { return p.issuer }

// DefaultScope returns the scope answered when a request carries none.
func (p *Profile) DefaultScope() string { return p.defaultScope }

// BindsNonce reports whether authorization nonces are carried into ID tokens.
func (p *Profile) BindsNonce() bool { return p.bindsNonce }

// User returns the mock user record.
func (p *Profile) User() UserRecord { return p.user }

// ClaimNames returns the exact ID-token claim keys of the profile, in order.
func (p *Profile) ClaimNames() []string {
	names := make([]string, len(p.claims))
	for i, c := range p.claims {
		names[i] = c.name
	}
	return names
}

// IssuesIDToken reports whether a code exchange with the given scope returns an ID token.
func (p *Profile) IssuesIDToken(scope string) bool {
	if p.idToken == IDTokenAlways {
		return true
	}
	return HasScope(scope, "openid")
}

// HasScope reports whether the space-separated scope list contains want.
func HasScope(scope, want string) bool {
	for _, s := range strings.Fields(scope) {
		if s == want {
			return true
		}
	}
	return false
}

// NewProfile returns the profile for a provider key serving user. The user
// must be a GoogleUser for "google" and a LINEUser for "line".
func NewProfile(key string, user UserRecord) (*Profile, error) {
	switch key {
	case ProviderGoogle:
		u, ok := user.(GoogleUser)
		if !ok {
			return nil, fmt.Errorf("google profile needs a GoogleUser, got %T", user)
		}
		return GoogleProfile(u), nil
	case ProviderLINE:
		u, ok := user.(LINEUser)
		if !ok {
			return nil, fmt.Errorf("line profile needs a LINEUser, got %T", user)
		}
		return LINEProfile(u), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", key)
	}
}
