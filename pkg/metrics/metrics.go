package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oauthmock"

// Metrics holds the Prometheus collectors for the providers.
type Metrics struct {
	registry *prometheus.Registry

	Authorizations   *prometheus.CounterVec
	TokenGrants      *prometheus.CounterVec
	UserInfoRequests *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Authorizations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorizations_total",
			Help:      "Total number of authorization codes issued",
		}, []string{"provider"}),
		TokenGrants: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_grants_total",
			Help:      "Total number of token endpoint requests by grant type and outcome",
		}, []string{"provider", "grant_type", "outcome"}),
		UserInfoRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "userinfo_requests_total",
			Help:      "Total number of user profile requests by outcome",
		}, []string{"provider", "outcome"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAuthorize records an issued authorization code.
func (m *Metrics) ObserveAuthorize(provider string) {
	m.Authorizations.WithLabelValues(provider).Inc()
}

// ObserveGrant records a token endpoint outcome.
func (m *Metrics) ObserveGrant(provider, grantType, outcome string) {
	switch grantType {
	case "authorization_code", "refresh_token":
	default:
		grantType = "unsupported"
	}
	m.TokenGrants.WithLabelValues(provider, grantType, outcome).Inc()
}

// ObserveUserInfo records a profile endpoint outcome.
func (m *Metrics) ObserveUserInfo(provider, outcome string) {
	m.UserInfoRequests.WithLabelValues(provider, outcome).Inc()
}
