package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YunKonstantin/timer-final/internal/models"
)

func TestNewManagerAtCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	m, err := NewManagerAt(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), m.GetConfig())
	assert.Equal(t, path, m.Path())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tick_interval: 10ms")
	assert.Contains(t, string(data), "frequency: 800")
}

func TestNewManagerAtMergesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := `
countdown:
  default:
    minutes: 2
    seconds: 30
sound:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	m, err := NewManagerAt(path)
	require.NoError(t, err)

	cfg := m.GetConfig()
	assert.Equal(t, models.Duration{Minutes: 2, Seconds: 30}, cfg.Countdown.Default)
	assert.Equal(t, time.Second, cfg.Countdown.TickInterval)
	assert.False(t, cfg.Sound.Enabled)
	assert.Equal(t, "Секундомер", cfg.Stopwatch.Title)
}

func TestNewManagerAtRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Syntax", "stopwatch: [oops"},
		{"ZeroTick", "stopwatch:\n  tick_interval: 0s\n"},
		{"DefaultOutOfRange", "countdown:\n  default:\n    seconds: 75\n"},
		{"Gain", "sound:\n  gain: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))

			_, err := NewManagerAt(path)
			assert.Error(t, err)
		})
	}
}

func TestManagerUpdatesPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManagerAt(path)
	require.NoError(t, err)

	require.NoError(t, m.UpdateCountdownDefault(models.Duration{Minutes: 5, Seconds: 99}))
	snd := m.GetConfig().Sound
	snd.File = "/tmp/ding.wav"
	require.NoError(t, m.UpdateSoundConfig(snd))

	reloaded, err := NewManagerAt(path)
	require.NoError(t, err)
	assert.Equal(t, models.Duration{Minutes: 5, Seconds: 59}, reloaded.GetConfig().Countdown.Default)
	assert.Equal(t, "/tmp/ding.wav", reloaded.GetConfig().Sound.File)
}

func TestHistoryPathOverride(t *testing.T) {
	m, err := NewManagerAt(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	m.GetConfig().History.Path = "/var/tmp/h.db"
	p, err := m.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp/h.db", p)
}

func TestValidateSkipsSoundWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sound = SoundConfig{Enabled: false}
	assert.NoError(t, cfg.Validate())

	cfg.Sound.Enabled = true
	assert.Error(t, cfg.Validate())
}
