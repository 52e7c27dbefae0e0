package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/YunKonstantin/timer-final/internal/models"
)

// AppDir is the directory name used under the XDG config and data homes.
const AppDir = "timer-final"

type Config struct {
	App       AppConfig       `yaml:"app"`
	Stopwatch StopwatchConfig `yaml:"stopwatch"`
	Countdown CountdownConfig `yaml:"countdown"`
	Sound     SoundConfig     `yaml:"sound"`
	History   HistoryConfig   `yaml:"history"`
}

type AppConfig struct {
	Name         string `yaml:"name"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

type StopwatchConfig struct {
	Title        string        `yaml:"title"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Initial      time.Duration `yaml:"initial"`
}

type CountdownConfig struct {
	TickInterval time.Duration   `yaml:"tick_interval"`
	Default      models.Duration `yaml:"default"`
}

type SoundConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Frequency  float64       `yaml:"frequency"`
	Gain       float64       `yaml:"gain"`
	FloorGain  float64       `yaml:"floor_gain"`
	Length     time.Duration `yaml:"length"`
	SampleRate int           `yaml:"sample_rate"`
	// Volume is a beep/effects exponent in base 2; 0 leaves the cue unchanged.
	Volume float64 `yaml:"volume"`
	// File optionally replaces the synthesized tone with a WAV file.
	File string `yaml:"file"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "Секундомер и таймер",
			WindowWidth:  480,
			WindowHeight: 560,
		},
		Stopwatch: StopwatchConfig{
			Title:        "Секундомер",
			TickInterval: 10 * time.Millisecond,
		},
		Countdown: CountdownConfig{
			TickInterval: time.Second,
		},
		Sound: SoundConfig{
			Enabled:    true,
			Frequency:  800,
			Gain:       0.3,
			FloorGain:  0.01,
			Length:     time.Second,
			SampleRate: 44100,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// Validate rejects values the engines and the audio player cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Stopwatch.TickInterval <= 0 {
		errs = append(errs, errors.New("stopwatch.tick_interval must be positive"))
	}
	if c.Stopwatch.Initial < 0 {
		errs = append(errs, errors.New("stopwatch.initial must not be negative"))
	}
	if c.Countdown.TickInterval <= 0 {
		errs = append(errs, errors.New("countdown.tick_interval must be positive"))
	}
	if !c.Countdown.Default.Valid() {
		errs = append(errs, fmt.Errorf("countdown.default %+v out of range", c.Countdown.Default))
	}
	if c.Sound.Enabled {
		if c.Sound.Frequency <= 0 {
			errs = append(errs, errors.New("sound.frequency must be positive"))
		}
		if c.Sound.Gain <= 0 || c.Sound.Gain > 1 {
			errs = append(errs, errors.New("sound.gain must be in (0,1]"))
		}
		if c.Sound.FloorGain <= 0 || c.Sound.FloorGain >= c.Sound.Gain {
			errs = append(errs, errors.New("sound.floor_gain must be in (0,gain)"))
		}
		if c.Sound.Length <= 0 {
			errs = append(errs, errors.New("sound.length must be positive"))
		}
		if c.Sound.SampleRate <= 0 {
			errs = append(errs, errors.New("sound.sample_rate must be positive"))
		}
	}
	return errors.Join(errs...)
}

type Manager struct {
	config     *Config
	configPath string
}

// NewManager loads the config from the default XDG location.
func NewManager() (*Manager, error) {
	configPath, err := xdg.ConfigFile(filepath.Join(AppDir, "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return NewManagerAt(configPath)
}

// NewManagerAt loads the config at configPath, writing defaults there if
// the file does not exist yet.
func NewManagerAt(configPath string) (*Manager, error) {
	manager := &Manager{
		configPath: configPath,
	}

	err := manager.loadConfig()
	switch {
	case errors.Is(err, os.ErrNotExist):
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if err := manager.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	// Missing keys keep their defaults.
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse config %s: %w", m.configPath, err)
	}

	m.config = config
	return nil
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	// Make sure the config directory exists.
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// HistoryPath returns the configured database path or the XDG default.
func (m *Manager) HistoryPath() (string, error) {
	if m.config.History.Path != "" {
		return m.config.History.Path, nil
	}
	return xdg.DataFile(filepath.Join(AppDir, "history.db"))
}

// UpdateCountdownDefault remembers the last committed countdown duration.
func (m *Manager) UpdateCountdownDefault(d models.Duration) error {
	m.config.Countdown.Default = d.Clamp()
	return m.SaveConfig()
}

func (m *Manager) UpdateSoundConfig(config SoundConfig) error {
	m.config.Sound = config
	return m.SaveConfig()
}
