package oauth

// TokenResponse represents an OAuth token response
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope"`
	IDToken      string `json:"id_token,omitempty"`
}

// ErrorResponse represents an OAuth error response
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// AuthorizeRequest holds the query parameters of an authorization request.
// Empty strings mean the parameter was absent.
type AuthorizeRequest struct {
	ClientID    string
	RedirectURI string
	Scope       string
	State       string
	Nonce       string
}

// AuthorizeResult is the outcome of an authorization request.
type AuthorizeResult struct {
	Code  string
	State string
	Nonce string

	// RedirectURL is set when the request carried a redirect_uri.
	RedirectURL string
}

// authorizeBody is the JSON body returned when no redirect_uri was given.
type authorizeBody struct {
	Code    string  `json:"code"`
	State   *string `json:"state"`
	Message string  `json:"message"`
}

// nonceAuthorizeBody is authorizeBody for profiles that bind nonces; the
// nonce is echoed, as null when absent.
type nonceAuthorizeBody struct {
	Code    string  `json:"code"`
	State   *string `json:"state"`
	Nonce   *string `json:"nonce"`
	Message string  `json:"message"`
}

// Standard OAuth error codes
const (
	ErrInvalidRequest       = "invalid_request"
	ErrInvalidGrant         = "invalid_grant"
	ErrUnsupportedGrantType = "unsupported_grant_type"
	ErrUnauthorized         = "unauthorized"
)

// Grant types
const (
	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypeRefreshToken      = "refresh_token"
)

// TokenTypeBearer is the only token_type this provider issues.
const TokenTypeBearer = "Bearer"

// AuthorizeMessage is echoed in JSON authorization responses.
const AuthorizeMessage = "Mock authorization successful"
