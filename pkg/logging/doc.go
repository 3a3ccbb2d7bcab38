// Package logging provides structured logging configuration for oauth-mock.
//
// This package wraps log/slog so the server, the CLI and both emulated
// providers log the same way. The level comes from LOG_LEVEL and the output
// format from LOG_FORMAT.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel(cfg.LogLevel),
//	    Format: logging.ParseFormat(cfg.LogFormat),
//	})
//
//	logger.Info("provider listening", "provider", "google", "addr", addr)
//
// Components accept a *slog.Logger in their constructor or options. If no
// logger is provided, they use logging.Nop().
//
// RequestLogger is chi-compatible middleware that writes one line per HTTP
// request; it is installed when ENABLE_REQUEST_LOGGING is true.
package logging
