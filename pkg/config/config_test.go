package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, 10*time.Second, cfg.Message.Timeout())
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("message:\n  language: Korean\n  timeout_seconds: 3\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Korean", cfg.Message.Language)
	assert.Equal(t, 3*time.Second, cfg.Message.Timeout())
	assert.Equal(t, Default().Message.Model, cfg.Message.Model)
	assert.Equal(t, Default().Audio, cfg.Audio)
}

func TestLoadFile_ClampsAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audio:\n  sample_rate: 12\n  volume: 4.5\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 44100, cfg.Audio.SampleRate, "implausible sample rate ignored")
	assert.Equal(t, 1.0, cfg.Audio.Volume)
}

func TestLoadFile_InvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audio: [unclosed"), 0o644))

	cfg, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config yaml")
	assert.Equal(t, Default(), cfg)
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Audio.Volume = 0.4
	cfg.Message.Model = "other-model"

	require.NoError(t, SaveFile(path, cfg))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_UsesUserConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	cfg := Default()
	cfg.Message.Language = "Korean"
	require.NoError(t, Save("watchclock-test", cfg))

	path, err := Path("watchclock-test")
	require.NoError(t, err)
	assert.FileExists(t, path)

	loaded, err := Load("watchclock-test")
	require.NoError(t, err)
	assert.Equal(t, "Korean", loaded.Message.Language)
}
