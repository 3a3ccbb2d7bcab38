package oauth

import "net/http"

// Error is an OAuth protocol error detected by the provider. It carries the
// HTTP status the boundary should answer with.
type Error struct {
	Code        string
	Description string
	Status      int
}

func (e *Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}

// Response converts the error into its wire representation.
func (e *Error) Response() ErrorResponse {
	return ErrorResponse{Error: e.Code, ErrorDescription: e.Description}
}

// Error descriptions surfaced to clients.
const (
	DescInvalidAuthCode     = "Invalid authorization code"
	DescInvalidRefreshToken = "Invalid refresh token"
	DescUnsupportedGrant    = "Unsupported grant type"
	DescMissingAuthHeader   = "Missing or invalid authorization header"
	DescInvalidAccessToken  = "Invalid access token"
	DescInvalidRedirectURI  = "Invalid redirect_uri"
)

func invalidGrant(desc string) *Error {
	return &Error{Code: ErrInvalidGrant, Description: desc, Status: http.StatusBadRequest}
}

func unsupportedGrantType() *Error {
	return &Error{Code: ErrUnsupportedGrantType, Description: DescUnsupportedGrant, Status: http.StatusBadRequest}
}

func unauthorized(desc string) *Error {
	return &Error{Code: ErrUnauthorized, Description: desc, Status: http.StatusUnauthorized}
}

func invalidRequest(desc string) *Error {
	return &Error{Code: ErrInvalidRequest, Description: desc, Status: http.StatusBadRequest}
}
