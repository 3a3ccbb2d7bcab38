package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/getmockd/oauth-mock/pkg/config"
	"github.com/getmockd/oauth-mock/pkg/logging"
	"github.com/getmockd/oauth-mock/pkg/metrics"
	"github.com/getmockd/oauth-mock/pkg/oauth"
	"github.com/getmockd/oauth-mock/pkg/server"
)

type serveFlags struct {
	enable     string
	host       string
	googlePort int
	linePort   int
	tokenMode  string
	watch      bool
}

func newServeCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the enabled mock providers",
		Long: `Start one HTTP server per enabled provider.

Providers are selected with ENABLE (or --enable), e.g. ENABLE=google,line.
The Google profile listens on GOOGLE_PORT (3001) and the LINE profile on
LINE_PORT (3002). SIGINT or SIGTERM shuts all servers down gracefully.`,
		Example: `  ENABLE=google oauth-mock serve
  oauth-mock serve --enable google,line --token-mode unique`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			f.apply(cmd.Flags(), cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&f.enable, "enable", "", "Comma-separated providers to start (google, line)")
	cmd.Flags().StringVar(&f.host, "host", "", "Bind host (default from HOST or 0.0.0.0)")
	cmd.Flags().IntVar(&f.googlePort, "google-port", 0, "Google provider port (default from GOOGLE_PORT or 3001)")
	cmd.Flags().IntVar(&f.linePort, "line-port", 0, "LINE provider port (default from LINE_PORT or 3002)")
	cmd.Flags().StringVar(&f.tokenMode, "token-mode", "", "Token suffix mode: fixed or unique")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Reload user override files when they change")
	return cmd
}

// apply overrides cfg with the flags that were set explicitly.
func (f *serveFlags) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("enable") {
		cfg.Enable = f.enable
	}
	if flags.Changed("host") {
		cfg.Host = f.host
	}
	if flags.Changed("google-port") {
		cfg.GooglePort = f.googlePort
	}
	if flags.Changed("line-port") {
		cfg.LINEPort = f.linePort
	}
	if flags.Changed("token-mode") {
		cfg.TokenMode = f.tokenMode
	}
	if flags.Changed("watch") {
		cfg.WatchUserFiles = f.watch
	}
}

// buildServers creates one server per enabled provider. The returned map
// links each user override file to the provider serving it.
func buildServers(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) ([]*server.Server, map[string]*oauth.Provider, error) {
	providers, err := cfg.Providers()
	if err != nil {
		return nil, nil, err
	}
	mode, err := oauth.ParseTokenMode(cfg.TokenMode)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := oauth.NewTokenFactory(cfg.Prefixes(), mode)
	if err != nil {
		return nil, nil, err
	}

	var observer oauth.Observer
	if m != nil {
		observer = m
	}

	var servers []*server.Server
	byFile := make(map[string]*oauth.Provider)
	for _, key := range providers {
		user, err := config.LoadUser(key, cfg.UserFile(key))
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s user: %w", key, err)
		}
		profile, err := oauth.NewProfile(key, user)
		if err != nil {
			return nil, nil, err
		}
		provider, err := oauth.NewProvider(profile, oauth.Options{
			Tokens:    tokens,
			ExpiresIn: cfg.TokenExpiry,
			Logger:    logger,
			Observer:  observer,
		})
		if err != nil {
			return nil, nil, err
		}
		srv, err := server.New(provider, server.Options{
			Host:           cfg.Host,
			Port:           cfg.Port(key),
			Logger:         logger,
			Metrics:        m,
			RequestLogging: cfg.RequestLogging,
		})
		if err != nil {
			return nil, nil, err
		}
		servers = append(servers, srv)
		if path := cfg.UserFile(key); path != "" {
			byFile[path] = provider
		}
	}
	return servers, byFile, nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: os.Stderr,
	})

	var m *metrics.Metrics
	if cfg.Metrics {
		m = metrics.New()
	}

	servers, byFile, err := buildServers(cfg, logger, m)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, servers...)
	})
	if cfg.WatchUserFiles && len(byFile) > 0 {
		g.Go(func() error {
			watchUsers(ctx, logger, byFile)
			return nil
		})
	}
	return g.Wait()
}

// watchUsers reloads a provider's user whenever its override file changes.
// A file that fails to parse leaves the current user in place.
func watchUsers(ctx context.Context, logger *slog.Logger, byFile map[string]*oauth.Provider) {
	paths := make([]string, 0, len(byFile))
	for path := range byFile {
		paths = append(paths, path)
	}

	err := config.WatchFiles(ctx, logger, paths, func(path string) {
		provider := byFile[path]
		user, err := config.LoadUser(provider.Profile().Key(), path)
		if err != nil {
			logger.Warn("keeping previous user", "path", path, "error", err)
			return
		}
		provider.SetUser(user)
	})
	if err != nil {
		logger.Warn("user file watching disabled", "error", err)
	}
}
