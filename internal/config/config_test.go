package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "gaindalf", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.True(t, cfg.S3.UseSSL)
	assert.False(t, cfg.Backup.Enabled)
	assert.Equal(t, "0 0 4 * * *", cfg.Backup.Schedule)
}

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	content := []byte(`
server:
  address: ":9090"
database:
  name: gaindalf_test
jwt:
  secret: file-secret
  expiration: 2h
backup:
  enabled: true
  schedule: "0 30 3 * * *"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "gaindalf_test", cfg.Database.Name)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.True(t, cfg.Backup.Enabled)
	assert.Equal(t, "0 30 3 * * *", cfg.Backup.Schedule)
	// Values absent from the file keep their defaults.
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
}
