package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/oauth-mock/pkg/oauth"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadGoogleUser(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		user, err := LoadGoogleUser(filepath.Join(t.TempDir(), "google.json"))
		require.NoError(t, err)
		assert.Equal(t, oauth.DefaultGoogleUser(), user)
	})

	t.Run("empty path yields defaults", func(t *testing.T) {
		user, err := LoadGoogleUser("")
		require.NoError(t, err)
		assert.Equal(t, oauth.DefaultGoogleUser(), user)
	})

	t.Run("JSON keys override defaults", func(t *testing.T) {
		path := writeFile(t, "google.json", `{"email": "alice@example.com", "email_verified": false, "name": "Alice"}`)

		user, err := LoadGoogleUser(path)
		require.NoError(t, err)

		want := oauth.DefaultGoogleUser()
		want.Email = "alice@example.com"
		want.EmailVerified = false
		want.Name = "Alice"
		assert.Equal(t, want, user)
	})

	t.Run("YAML keys override defaults", func(t *testing.T) {
		path := writeFile(t, "google.yaml", "sub: \"42\"\nlocale: en\n")

		user, err := LoadGoogleUser(path)
		require.NoError(t, err)
		assert.Equal(t, "42", user.Sub)
		assert.Equal(t, "en", user.Locale)
		assert.Equal(t, "Yamada Taro", user.Name)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeFile(t, "google.json", `{"email": `)
		_, err := LoadGoogleUser(path)
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		path := writeFile(t, "google.yml", "sub: [unclosed\n")
		_, err := LoadGoogleUser(path)
		assert.ErrorIs(t, err, ErrInvalidYAML)
	})
}

func TestLoadLINEUser(t *testing.T) {
	path := writeFile(t, "line.json", `{"displayName": "Hanako", "statusMessage": ""}`)

	user, err := LoadLINEUser(path)
	require.NoError(t, err)

	assert.Equal(t, "U12345678901234567890123456789012", user.UserID)
	assert.Equal(t, "Hanako", user.DisplayName)
	assert.Equal(t, "https://example.com/image.png", user.PictureURL)
	assert.Empty(t, user.StatusMessage)
}

func TestLoadUser(t *testing.T) {
	user, err := LoadUser(oauth.ProviderLINE, "")
	require.NoError(t, err)
	assert.Equal(t, oauth.DefaultLINEUser(), user)

	_, err = LoadUser("github", "")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
