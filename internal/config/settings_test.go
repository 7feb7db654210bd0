package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Parallel()

	r := New(nil, []string{""}, WithEnv(noEnv))

	settings, err := LoadSettings(r)
	require.NoError(t, err)

	assert.Empty(t, settings.Token)
	assert.Equal(t, "https://api.telegram.org", settings.APIURL)
	assert.Equal(t, 30*time.Second, settings.PollTimeout)
	assert.Equal(t, 25.0, settings.SendRate)
	assert.Equal(t, 5, settings.SendBurst)
	assert.Equal(t, "info", settings.LogLevel)
	assert.Equal(t, "json", settings.LogFormat)
	assert.Equal(t, 5*time.Second, settings.ShutdownGracePeriod)
	assert.NotEmpty(t, settings.Greeting)
}

func TestLoadSettingsFollowsPrecedence(t *testing.T) {
	t.Parallel()

	path := writeEnvFile(t,
		"token='file-token'",
		"poll_timeout=10s",
		"send_rate=2.5",
	)
	r := New(
		[]string{"--token=cli-token", "--send_burst=9", "--log_level"},
		[]string{path},
		WithEnv(mapEnv(map[string]string{
			"poll_timeout":          "1m",
			"shutdown_grace_period": "\"2s\"",
			"greeting":              "hi",
		})),
	)

	settings, err := LoadSettings(r)
	require.NoError(t, err)

	assert.Equal(t, "cli-token", settings.Token)
	assert.Equal(t, 10*time.Second, settings.PollTimeout)
	assert.Equal(t, 2.5, settings.SendRate)
	assert.Equal(t, 9, settings.SendBurst)
	assert.Equal(t, "info", settings.LogLevel, "presence-only key keeps the default")
	assert.Equal(t, 2*time.Second, settings.ShutdownGracePeriod)
	assert.Equal(t, "hi", settings.Greeting)
}

func TestLoadSettingsRejectsMalformedValues(t *testing.T) {
	t.Parallel()

	r := New([]string{"--poll_timeout=soon"}, []string{""}, WithEnv(noEnv))

	_, err := LoadSettings(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode settings")
}
