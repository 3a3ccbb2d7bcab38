package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/getmockd/oauth-mock/pkg/httputil"
	"github.com/getmockd/oauth-mock/pkg/oauth"
)

var (
	corsAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsAllowHeaders = []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"}
)

// CORS allows every origin and answers preflight requests with 200.
func CORS(next http.Handler) http.Handler {
	methods := strings.Join(corsAllowMethods, ", ")
	headers := strings.Join(corsAllowHeaders, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.Header().Set("Access-Control-Allow-Headers", headers)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Recoverer turns a panic in a handler into a 500 internal_server_error
// response and logs the stack.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				logger.Error("panic serving request",
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
					"panic", fmt.Sprint(rvr),
					"stack", string(debug.Stack()),
				)
				httputil.WriteInternalError(w, "internal_server_error", "An internal server error occurred")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// notEnabled answers routes this provider does not serve.
func notEnabled(profile *oauth.Profile) http.HandlerFunc {
	msg := fmt.Sprintf("%s OAuth provider is not enabled. Please set ENABLE=%s environment variable.",
		profile.DisplayName(), profile.Key())
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteServiceUnavailable(w, "service_unavailable", msg)
	}
}
