package server

import (
	"net/http"

	"github.com/getmockd/oauth-mock/pkg/httputil"
	"github.com/getmockd/oauth-mock/pkg/oauth"
)

// healthTimestamp is reported by every health check so responses are
// byte-for-byte reproducible.
const healthTimestamp = "2024-01-01T00:00:00.000Z"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// InfoResponse is the body of GET /.
type InfoResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// DiscoveryDocument is the OpenID Connect discovery document.
type DiscoveryDocument struct {
	Issuer                           string   `json:"issuer"`
	AuthorizationEndpoint            string   `json:"authorization_endpoint"`
	TokenEndpoint                    string   `json:"token_endpoint"`
	UserInfoEndpoint                 string   `json:"userinfo_endpoint"`
	ResponseTypesSupported           []string `json:"response_types_supported"`
	SubjectTypesSupported            []string `json:"subject_types_supported"`
	IDTokenSigningAlgValuesSupported []string `json:"id_token_signing_alg_values_supported"`
	ScopesSupported                  []string `json:"scopes_supported"`
	GrantTypesSupported              []string `json:"grant_types_supported"`
	ClaimsSupported                  []string `json:"claims_supported"`
}

func handleHealth(provider *oauth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteOK(w, HealthResponse{
			Status:    "healthy",
			Service:   ServiceName(provider.Profile()),
			Timestamp: healthTimestamp,
		})
	}
}

func handleInfo(provider *oauth.Provider, routes Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteOK(w, InfoResponse{
			Message:   ServiceName(provider.Profile()),
			Endpoints: endpointList(routes),
		})
	}
}

// handleDiscovery serves endpoint URLs relative to the host the client used.
// The issuer stays the real provider's so ID tokens validate against it.
func handleDiscovery(provider *oauth.Provider, routes Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := provider.Profile()
		base := baseURL(r)

		httputil.WriteOK(w, DiscoveryDocument{
			Issuer:                           profile.Issuer(),
			AuthorizationEndpoint:            base + routes.Authorize,
			TokenEndpoint:                    base + routes.Token,
			UserInfoEndpoint:                 base + routes.UserInfo,
			ResponseTypesSupported:           []string{"code"},
			SubjectTypesSupported:            []string{"public"},
			IDTokenSigningAlgValuesSupported: []string{"HS256"},
			ScopesSupported:                  []string{"openid", "email", "profile"},
			GrantTypesSupported:              []string{oauth.GrantTypeAuthorizationCode, oauth.GrantTypeRefreshToken},
			ClaimsSupported:                  profile.ClaimNames(),
		})
	}
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
