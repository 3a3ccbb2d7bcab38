package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name      string
		presented string
		prefix    string
		want      bool
	}{
		{"matching prefix", "mock_access_token_1234567890", DefaultAccessTokenPrefix, true},
		{"prefix only", "mock_access_token_", DefaultAccessTokenPrefix, true},
		{"arbitrary suffix", "mock_access_token_anything", DefaultAccessTokenPrefix, true},
		{"wrong kind", "mock_refresh_token_1234567890", DefaultAccessTokenPrefix, false},
		{"empty", "", DefaultAccessTokenPrefix, false},
		{"case differs", "MOCK_access_token_1", DefaultAccessTokenPrefix, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateToken(tt.presented, tt.prefix))
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header    string
		wantToken string
		wantOK    bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer ", "", true},
		{"bearer abc", "", false},
		{"Basic abc", "", false},
		{"Bearerabc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := BearerToken(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
