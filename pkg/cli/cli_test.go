package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/getmockd/oauth-mock/pkg/config"
	"github.com/getmockd/oauth-mock/pkg/logging"
	"github.com/getmockd/oauth-mock/pkg/metrics"
	"github.com/getmockd/oauth-mock/pkg/oauth"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, _, err := execute(t, "version")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "oauth-mock "))
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "version", "--json")
		require.NoError(t, err)

		var v VersionOutput
		require.NoError(t, json.Unmarshal([]byte(out), &v))
		assert.NotEmpty(t, v.Go)
		assert.NotEmpty(t, v.OS)
	})
}

func TestTokenIssue(t *testing.T) {
	t.Run("line token carries nonce and client", func(t *testing.T) {
		out, _, err := execute(t, "token", "issue", "--provider", "line", "--client-id", "cli-client", "--nonce", "abc")
		require.NoError(t, err)

		claims, err := oauth.ParseIDToken(strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, "cli-client", claims["aud"])
		assert.Equal(t, "abc", claims["nonce"])
		assert.Equal(t, oauth.LINEIssuer, claims["iss"])
	})

	t.Run("matches the token the provider issues", func(t *testing.T) {
		out, _, err := execute(t, "token", "issue", "--provider", "google")
		require.NoError(t, err)

		want, err := oauth.IssueIDToken(oauth.GoogleProfile(oauth.DefaultGoogleUser()), "", "")
		require.NoError(t, err)
		assert.Equal(t, want, strings.TrimSpace(out))
	})

	t.Run("google warns about nonce", func(t *testing.T) {
		_, errOut, err := execute(t, "token", "issue", "--provider", "google", "--nonce", "abc")
		require.NoError(t, err)
		assert.Contains(t, errOut, "--nonce is ignored")
	})

	t.Run("user file overrides claims", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "google.yaml")
		require.NoError(t, os.WriteFile(path, []byte("email: yaml@example.com\n"), 0o600))

		out, _, err := execute(t, "token", "issue", "--user-file", path)
		require.NoError(t, err)

		claims, err := oauth.ParseIDToken(strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, "yaml@example.com", claims["email"])
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, _, err := execute(t, "token", "issue", "--provider", "github")
		assert.ErrorIs(t, err, config.ErrUnknownProvider)
	})
}

func TestTokenDecode(t *testing.T) {
	token, err := oauth.IssueIDToken(oauth.LINEProfile(oauth.DefaultLINEUser()), "c1", "n1")
	require.NoError(t, err)

	out, _, err := execute(t, "token", "decode", token)
	require.NoError(t, err)
	assert.Equal(t, "c1", gjson.Get(out, "aud").String())
	assert.Equal(t, "n1", gjson.Get(out, "nonce").String())

	_, _, err = execute(t, "token", "decode", "not.a.jwt")
	assert.Error(t, err)

	_, _, err = execute(t, "token", "decode")
	assert.Error(t, err)
}

func TestServeFlagsApply(t *testing.T) {
	cmd := newServeCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--enable", "line", "--line-port", "4002", "--watch"}))

	cfg, err := config.LoadFrom(map[string]string{"ENABLE": "google", "GOOGLE_PORT": "5001"})
	require.NoError(t, err)

	var f serveFlags
	f.enable, _ = cmd.Flags().GetString("enable")
	f.linePort, _ = cmd.Flags().GetInt("line-port")
	f.watch, _ = cmd.Flags().GetBool("watch")
	f.apply(cmd.Flags(), cfg)

	assert.Equal(t, "line", cfg.Enable)
	assert.Equal(t, 4002, cfg.LINEPort)
	assert.True(t, cfg.WatchUserFiles)
	// Unset flags keep the environment values.
	assert.Equal(t, 5001, cfg.GooglePort)
	assert.Equal(t, "0.0.0.0", cfg.Host)
}

func TestBuildServers(t *testing.T) {
	dir := t.TempDir()
	lineFile := filepath.Join(dir, "line.json")
	require.NoError(t, os.WriteFile(lineFile, []byte(`{"displayName": "Hanako"}`), 0o600))

	cfg, err := config.LoadFrom(map[string]string{
		"ENABLE":           "google,line",
		"TOKEN_MODE":       "unique",
		"GOOGLE_USER_FILE": filepath.Join(dir, "missing.json"),
		"LINE_USER_FILE":   lineFile,
	})
	require.NoError(t, err)

	servers, byFile, err := buildServers(cfg, logging.Nop(), metrics.New())
	require.NoError(t, err)
	require.Len(t, servers, 2)

	assert.Equal(t, "0.0.0.0:3001", servers[0].Addr())
	assert.Equal(t, "0.0.0.0:3002", servers[1].Addr())
	assert.Len(t, byFile, 2)

	line := servers[1].Provider()
	assert.Equal(t, oauth.ProviderLINE, line.Profile().Key())
	assert.Equal(t, "Hanako", line.Profile().User().Identity().Name)
	assert.NotEqual(t, line.Tokens().IssueAccessToken(), line.Tokens().IssueAccessToken())
}

func TestBuildServers_MalformedUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "google.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))

	cfg, err := config.LoadFrom(map[string]string{"ENABLE": "google", "GOOGLE_USER_FILE": path})
	require.NoError(t, err)

	_, _, err = buildServers(cfg, logging.Nop(), nil)
	assert.ErrorIs(t, err, config.ErrInvalidJSON)
}
