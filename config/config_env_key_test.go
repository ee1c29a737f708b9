package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"host":    "localhost",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"media": map[string]any{
			"bucketUrl": "",
		},
	}

	tests := []struct {
		name   string
		rawKey string
		want   string
	}{
		{
			name:   "aligns casing with existing yaml keys",
			rawKey: "POSTGRES_SSLMODE",
			want:   "postgres.sslMode",
		},
		{
			name:   "matches camel case parent segment",
			rawKey: "SECRETKEY_ACCESS",
			want:   "secretKey.access",
		},
		{
			name:   "matches nested media keys",
			rawKey: "MEDIA_BUCKETURL",
			want:   "media.bucketUrl",
		},
		{
			name:   "unknown segments fall back to lowercase",
			rawKey: "HTTP_PORT",
			want:   "http.port",
		},
		{
			name:   "skips empty segments",
			rawKey: "POSTGRES__HOST",
			want:   "postgres.host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.rawKey, existing))
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "sslmode", normalizeToken("sslMode"))
	assert.Equal(t, "bucketurl", normalizeToken("bucket_url"))
	assert.Equal(t, "maxuploadsize", normalizeToken("MaxUploadSize"))
}
