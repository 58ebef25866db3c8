package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"passwordPolicy": map[string]any{
			"minLength": 8,
		},
		"session": map[string]any{
			"cookieName":    "podium.sid",
			"sweepInterval": "10m",
		},
		"secretKey": map[string]any{
			"session": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PASSWORDPOLICY_MINLENGTH", want: "passwordPolicy.minLength"},
		{envKey: "SESSION_COOKIENAME", want: "session.cookieName"},
		{envKey: "SESSION_SWEEPINTERVAL", want: "session.sweepInterval"},
		{envKey: "SECRETKEY_SESSION", want: "secretKey.session"},
		{envKey: "SESSION__TTL", want: "session.ttl"},
		{envKey: "AUTH_HASHER", want: "auth.hasher"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "cookiename", normalizeToken("cookie-Name"))
	assert.Equal(t, "sweepinterval2", normalizeToken("Sweep_Interval 2"))
	assert.Empty(t, normalizeToken("--"))
}
