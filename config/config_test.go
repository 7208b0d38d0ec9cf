package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"afristay/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "Africa/Kigali", cfg.App.Timezone)
	assert.Equal(t, "RWF", cfg.Booking.DefaultCurrency)
	assert.Equal(t, "afristay.notifications", cfg.Kafka.NotificationTopic)
	assert.Equal(t, 3, cfg.External.MailRelay.MaxAttempts)
	assert.Equal(t, "listing-images", cfg.Storage.ListingImagesBucket)
}

func TestLoad_EnvFileDoesNotOverrideProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT=9090\nBOOKING_DEMO_MODE=true\nKAFKA_BROKERS=k1:9092,k2:9092\n"), 0o600))

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("BOOKING_DEMO_MODE", "")
	t.Setenv("KAFKA_BROKERS", "")
	os.Unsetenv("BOOKING_DEMO_MODE")
	os.Unsetenv("KAFKA_BROKERS")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.True(t, cfg.Booking.DemoMode)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_MalformedEnvironment(t *testing.T) {
	t.Setenv("BOOKING_DEMO_MODE", "sometimes")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
