package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	content := `PORT=:8080
ENVIRONMENT=development
VERSION=2.1.0
POSTGRES_HOST=db.internal
POSTGRES_PORT=5433
POSTGRES_USER=bloglist
POSTGRES_PASSWORD=secretpass
POSTGRES_DB=bloglist
AUTH_SECRET=config-test-secret
AUTH_TOKEN_TTL=168h
MAIL_HOST=smtp.mailtrap.io
MAIL_PORT=2525
MAIL_USER=mailuser
MAIL_PASSWORD=mailpass
MAIL_SENDER=noreply@example.com
RABBITMQ_HOST=mq.internal
RABBITMQ_PORT=5673
RABBITMQ_USER=mq
RABBITMQ_PASSWORD=mqpass
`

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "2.1.0", cfg.Version)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "5433", cfg.DB.Port)
	assert.Equal(t, "bloglist", cfg.DB.User)
	assert.Equal(t, "secretpass", cfg.DB.Password)
	assert.Equal(t, "bloglist", cfg.DB.Name)

	assert.Equal(t, "config-test-secret", cfg.Auth.Secret)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)

	assert.Equal(t, "smtp.mailtrap.io", cfg.Mail.Host)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, "mailuser", cfg.Mail.User)
	assert.Equal(t, "mailpass", cfg.Mail.Password)
	assert.Equal(t, "noreply@example.com", cfg.Mail.Sender)

	assert.Equal(t, "mq.internal", cfg.RabbitMQ.Host)
	assert.Equal(t, "5673", cfg.RabbitMQ.Port)
	assert.Equal(t, "mq", cfg.RabbitMQ.User)
	assert.Equal(t, "mqpass", cfg.RabbitMQ.Password)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
