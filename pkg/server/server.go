package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/getmockd/oauth-mock/pkg/logging"
	"github.com/getmockd/oauth-mock/pkg/metrics"
	"github.com/getmockd/oauth-mock/pkg/oauth"
)

// ShutdownTimeout bounds graceful shutdown of a provider server.
const ShutdownTimeout = 5 * time.Second

// Options configures a provider server.
type Options struct {
	Host string
	Port int

	Logger *slog.Logger
	// Metrics, when set, is served at /metrics.
	Metrics        *metrics.Metrics
	RequestLogging bool
}

// Server serves one mock provider on its own listener.
type Server struct {
	provider   *oauth.Provider
	routes     Routes
	logger     *slog.Logger
	httpServer *http.Server
}

// New creates a server for provider. Routes are chosen from the provider's
// profile key.
func New(provider *oauth.Provider, opts Options) (*Server, error) {
	if provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	key := provider.Profile().Key()
	routes, ok := RoutesFor(key)
	if !ok {
		return nil, fmt.Errorf("no routes for provider %q", key)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	s := &Server{
		provider: provider,
		routes:   routes,
		logger:   opts.Logger.With("provider", key),
	}
	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		Handler:           s.newRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) newRouter(opts Options) http.Handler {
	profile := s.provider.Profile()
	h := oauth.NewHandler(s.provider)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.RequestLogging {
		r.Use(logging.RequestLogger(s.logger))
	}
	r.Use(Recoverer(s.logger))
	r.Use(CORS)

	r.Get(s.routes.Authorize, h.HandleAuthorize)
	r.Post(s.routes.Token, h.HandleToken)
	r.Get(s.routes.UserInfo, h.HandleUserInfo)

	r.Get(PathHealth, handleHealth(s.provider))
	r.Get(PathInfo, handleInfo(s.provider, s.routes))
	r.Get(PathDiscovery, handleDiscovery(s.provider, s.routes))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, PathMetrics, opts.Metrics.Handler())
	}

	r.NotFound(notEnabled(profile))
	r.MethodNotAllowed(notEnabled(profile))
	return r
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Provider returns the provider being served.
func (s *Server) Provider() *oauth.Provider {
	return s.provider
}

// Routes returns the OAuth endpoint paths.
func (s *Server) Routes() Routes {
	return s.routes
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
// within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logStartup(ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown %s server: %w", s.provider.Profile().Key(), err)
	}
	return nil
}

func (s *Server) logStartup(addr net.Addr) {
	port := s.httpServer.Addr
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
	} else if _, p, err := net.SplitHostPort(port); err == nil {
		port = p
	}
	base := "http://localhost:" + port

	s.logger.Info(ServiceName(s.provider.Profile())+" started",
		"addr", addr.String(),
		"authorize", base+s.routes.Authorize,
		"token", base+s.routes.Token,
		"userinfo", base+s.routes.UserInfo,
		"health", base+PathHealth,
	)
}

// Run serves all servers until ctx is cancelled or one of them fails. A
// failure stops the others.
func Run(ctx context.Context, servers ...*Server) error {
	if len(servers) == 0 {
		return errors.New("no servers to run")
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			return s.ListenAndServe(ctx)
		})
	}
	return g.Wait()
}
