package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "SESSION_TTL", "SESSION_SECRET", "BCRYPT_COST", "CORS_ALLOWED_ORIGINS", "MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}

	c := Load()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.Equal(t, DefaultSessionSecret, c.SessionSecret)
	assert.Equal(t, bcrypt.DefaultCost, c.BcryptCost)
	assert.Equal(t, int64(64<<10), c.MaxBodyBytes)
	assert.Nil(t, c.CORSAllowedOrigins)
	assert.False(t, c.TLSEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("BCRYPT_COST", "6")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SESSION_SWEEP_CRON", "")

	c := Load()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 90*time.Minute, c.SessionTTL)
	assert.Equal(t, 6, c.BcryptCost)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSAllowedOrigins)
	assert.Empty(t, c.SessionSweepCron)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	assert.Equal(t, 24*time.Hour, Load().SessionTTL)
}

func TestValidate(t *testing.T) {
	base := Config{Env: "prod", SessionSecret: "s3cret", BcryptCost: bcrypt.DefaultCost, LogFormat: "json"}
	require.NoError(t, base.Validate())

	c := base
	c.SessionSecret = DefaultSessionSecret
	assert.Error(t, c.Validate())

	c = base
	c.Env = "dev"
	c.SessionSecret = DefaultSessionSecret
	assert.NoError(t, c.Validate())

	c = base
	c.TLSCertFile = "cert.pem"
	assert.Error(t, c.Validate())

	c = base
	c.BcryptCost = 99
	assert.Error(t, c.Validate())

	c = base
	c.LogFormat = "xml"
	assert.Error(t, c.Validate())
}
