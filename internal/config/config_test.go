package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	require.NoError(t, Load())

	assert.Equal(t, ":8080", APIAddr())
	assert.Equal(t, "corrosion_rate", ClassificationType())
	assert.Equal(t, "postgres", KeyStore())
	assert.Equal(t, 25, DBMaxOpenConns())
	assert.False(t, UseCloudServices())
	assert.False(t, EventsEnabled())
	assert.Equal(t, "http://localhost:4200", CORSOrigins())
}

func TestEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("KEY_STORE", " Memory ")
	t.Setenv("USE_CLOUD_SERVICES", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test ")
	require.NoError(t, Load())

	assert.Equal(t, "memory", KeyStore())
	assert.True(t, UseCloudServices())
	assert.Equal(t, "http://a.test,http://b.test", CORSOrigins())
}
