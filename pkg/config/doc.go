// Package config loads oauth-mock settings.
//
// Server settings come from environment variables (an optional .env file in
// the working directory is read first):
//
//	HOST, GOOGLE_PORT, LINE_PORT, ENABLE=google,line
//	TOKEN_EXPIRY, TOKEN_PREFIX, REFRESH_TOKEN_PREFIX, AUTH_CODE_PREFIX, TOKEN_MODE
//	GOOGLE_USER_FILE, LINE_USER_FILE, WATCH_USER_FILES
//	LOG_LEVEL, LOG_FORMAT, ENABLE_REQUEST_LOGGING, ENABLE_METRICS
//
// The mock users served by each provider can be overridden with a JSON or
// YAML file. Keys present in the file replace the documented defaults; keys
// that are absent keep them:
//
//	{"email": "alice@example.com", "name": "Alice"}
//
// With WATCH_USER_FILES=true the files are watched and reloaded on change.
package config
