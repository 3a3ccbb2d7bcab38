package oauth

// TokenRequest is the decoded body of a token endpoint request. It accepts
// both JSON and form-encoded bodies.
type TokenRequest struct {
	GrantType    string `json:"grant_type"`
	Code         string `json:"code"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// Grant is one of AuthorizationCodeGrant, RefreshTokenGrant or UnsupportedGrant.
type Grant interface {
	GrantType() string
	isGrant()
}

// AuthorizationCodeGrant exchanges an authorization code for tokens.
type AuthorizationCodeGrant struct {
	Code        string
	ClientID    string
	RedirectURI string
	// Scope overrides the profile default scope when set.
	Scope string
}

// RefreshTokenGrant trades a refresh token for a new access token.
type RefreshTokenGrant struct {
	RefreshToken string
}

// UnsupportedGrant carries any grant_type the provider does not implement.
type UnsupportedGrant struct {
	Type string
}

func (AuthorizationCodeGrant) GrantType() string { return GrantTypeAuthorizationCode }
func (RefreshTokenGrant) GrantType() string      { return GrantTypeRefreshToken }
func (g UnsupportedGrant) GrantType() string     { return g.Type }

func (AuthorizationCodeGrant) isGrant() {}
func (RefreshTokenGrant) isGrant()      {}
func (UnsupportedGrant) isGrant()       {}

// Grant selects the grant payload named by GrantType.
func (r TokenRequest) Grant() Grant {
	switch r.GrantType {
	case GrantTypeAuthorizationCode:
		return AuthorizationCodeGrant{
			Code:        r.Code,
			ClientID:    r.ClientID,
			RedirectURI: r.RedirectURI,
			Scope:       r.Scope,
		}
	case GrantTypeRefreshToken:
		return RefreshTokenGrant{RefreshToken: r.RefreshToken}
	default:
		return UnsupportedGrant{Type: r.GrantType}
	}
}
