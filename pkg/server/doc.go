// Package server exposes mock OAuth providers over HTTP.
//
// Each enabled provider gets its own chi router and listener. The router
// mounts the provider's OAuth endpoints at the paths the real provider uses,
// plus health, info, discovery and metrics endpoints, and answers every
// unknown route with 503 service_unavailable.
package server
