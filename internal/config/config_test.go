package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.True(t, cfg.TaxRate.Equal(DefaultTaxRate))
	assert.Equal(t, 8, cfg.JWTExpirationHours)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.SMTPEnabled())
	assert.Equal(t, 3*time.Second, cfg.RedisTimeout())
}

func TestConfig_RedisTimeoutAndMailFrom(t *testing.T) {
	t.Setenv("REDIS_TIMEOUT_SECONDS", "7")
	t.Setenv("SMTP_USER", "relay@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.RedisTimeout())
	assert.Equal(t, "relay@example.com", cfg.MailFrom())

	cfg.SMTPFrom = "caixa@example.com"
	assert.Equal(t, "caixa@example.com", cfg.MailFrom())

	assert.Equal(t, 3*time.Second, (&Config{}).RedisTimeout())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:loja.db")
	t.Setenv("TAX_RATE", "0.075")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("REPORT_EMAIL_TO", "owner@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file:loja.db", cfg.DatabaseURL)
	assert.Equal(t, "0.075", cfg.TaxRate.String())
	assert.True(t, cfg.SMTPEnabled())
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Run("negative tax", func(t *testing.T) {
		t.Setenv("TAX_RATE", "-0.1")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("malformed tax", func(t *testing.T) {
		t.Setenv("TAX_RATE", "twelve")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")
		_, err := Load()
		assert.Error(t, err)
	})
}
