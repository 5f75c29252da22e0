package config

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		want     Config
		wantRest []string
		wantErr  bool
	}{
		{
			name:     "flags win over env",
			args:     []string{"-a", "http://api:9000/api", "-t", "/tmp/flag-token", "login"},
			env:      map[string]string{EnvAPI: "http://env/api", EnvTokenFile: "/tmp/env-token"},
			want:     Config{APIURL: "http://api:9000/api", TokenFile: "/tmp/flag-token", Timeout: 10 * time.Second},
			wantRest: []string{"login"},
		},
		{
			name:     "env fallback",
			args:     []string{"me"},
			env:      map[string]string{EnvAPI: "http://env/api", EnvTokenFile: "/tmp/env-token"},
			want:     Config{APIURL: "http://env/api", TokenFile: "/tmp/env-token", Timeout: 10 * time.Second},
			wantRest: []string{"me"},
		},
		{
			name:     "custom timeout",
			args:     []string{"-timeout", "3s", "-t", "/tmp/t", "stats"},
			want:     Config{APIURL: DefaultAPIURL, TokenFile: "/tmp/t", Timeout: 3 * time.Second},
			wantRest: []string{"stats"},
		},
		{
			name:    "bad flag",
			args:    []string{"-timeout", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, rest, err := Load(tt.args, envMap(tt.env), io.Discard)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestLoad_DefaultTokenPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, _, err := Load(nil, envMap(nil), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Contains(t, cfg.TokenFile, "primetrade")
}
