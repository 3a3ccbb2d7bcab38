// Package metrics exposes Prometheus counters for the mock providers.
//
// Metrics:
//   - oauthmock_authorizations_total: codes issued (labels: provider)
//   - oauthmock_token_grants_total: token endpoint outcomes (labels: provider, grant_type, outcome)
//   - oauthmock_userinfo_requests_total: profile endpoint outcomes (labels: provider, outcome)
//
// Outcome is "ok" or the OAuth error code returned to the client. Grant
// types other than authorization_code and refresh_token are reported as
// "unsupported" to keep label cardinality bounded.
package metrics
