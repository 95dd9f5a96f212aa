package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/audio"
	"github.com/ranihwanifactory/watchclock/pkg/message"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config holds the file based configuration of the engine
type Config struct {
	Audio   AudioConfig   `yaml:"audio"`
	Message MessageConfig `yaml:"message"`
}

// AudioConfig configures cue synthesis
type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// MessageConfig configures the external text service
type MessageConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Language       string `yaml:"language"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Audio: AudioConfig{
			SampleRate: audio.DefaultSampleRate,
			Volume:     1.0,
		},
		Message: MessageConfig{
			Endpoint:       message.DefaultEndpoint,
			Model:          message.DefaultModel,
			APIKeyEnv:      message.DefaultAPIKeyEnv,
			TimeoutSeconds: int(message.DefaultTimeout / time.Second),
			Language:       message.DefaultLanguage,
		},
	}
}

// Timeout returns the message request timeout
func (m MessageConfig) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return message.DefaultTimeout
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// Load reads the configuration for appName from the user config directory.
// If the file does not exist, defaults are returned.
func Load(appName string) (Config, error) {
	path, err := Path(appName)
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path. Keys missing from the file keep
// their defaults; on error the defaults are returned with it.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	fileData := Default()
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	applyFileConfig(&cfg, fileData)
	return cfg, nil
}

// Save writes cfg for appName, creating the directory if needed
func Save(appName string, cfg Config) error {
	path, err := Path(appName)
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg to path
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Path returns the config file location for appName
func Path(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

func applyFileConfig(cfg *Config, fileData Config) {
	if fileData.Audio.SampleRate >= 8000 && fileData.Audio.SampleRate <= 192000 {
		cfg.Audio.SampleRate = fileData.Audio.SampleRate
	}
	// Silence is the mute toggle's job; a zero volume keeps the default
	if fileData.Audio.Volume > 0 {
		cfg.Audio.Volume = min(1, fileData.Audio.Volume)
	}

	if fileData.Message.Endpoint != "" {
		cfg.Message.Endpoint = fileData.Message.Endpoint
	}
	if fileData.Message.Model != "" {
		cfg.Message.Model = fileData.Message.Model
	}
	if fileData.Message.APIKeyEnv != "" {
		cfg.Message.APIKeyEnv = fileData.Message.APIKeyEnv
	}
	if fileData.Message.TimeoutSeconds > 0 {
		cfg.Message.TimeoutSeconds = fileData.Message.TimeoutSeconds
	}
	if fileData.Message.Language != "" {
		cfg.Message.Language = fileData.Message.Language
	}
}
