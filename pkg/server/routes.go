package server

import "github.com/getmockd/oauth-mock/pkg/oauth"

// Routes holds the OAuth endpoint paths of one provider.
type Routes struct {
	Authorize string
	Token     string
	UserInfo  string
}

// Common paths shared by every provider router.
const (
	PathHealth    = "/health"
	PathInfo      = "/"
	PathDiscovery = "/.well-known/openid-configuration"
	PathMetrics   = "/metrics"
)

var providerRoutes = map[string]Routes{
	oauth.ProviderGoogle: {
		Authorize: "/o/oauth2/v2/auth",
		Token:     "/token",
		UserInfo:  "/oauth2/v2/userinfo",
	},
	oauth.ProviderLINE: {
		Authorize: "/oauth2/v2.1/authorize",
		Token:     "/oauth2/v2.1/token",
		UserInfo:  "/v2/profile",
	},
}

// RoutesFor returns the endpoint paths for a provider key.
func RoutesFor(provider string) (Routes, bool) {
	r, ok := providerRoutes[provider]
	return r, ok
}

// ServiceName is the display name used by health and info responses.
func ServiceName(p *oauth.Profile) string {
	return p.DisplayName() + " OAuth Mock Server"
}

// endpointList describes the routes served for the info endpoint.
func endpointList(routes Routes) []string {
	return []string{
		"GET " + routes.Authorize + " - Authorization endpoint",
		"POST " + routes.Token + " - Token endpoint",
		"GET " + routes.UserInfo + " - User info endpoint",
		"GET " + PathHealth + " - Health check",
		"GET " + PathInfo + " - This endpoint",
	}
}
