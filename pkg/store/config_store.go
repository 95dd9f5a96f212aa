package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"github.com/ranihwanifactory/watchclock/pkg/models"
)

// AlarmsKey is the preferences key holding the serialized alarm list
const AlarmsKey = "watchclock_alarms"

// ErrCorruptSnapshot is returned when the stored alarm list cannot be decoded
var ErrCorruptSnapshot = errors.New("corrupt alarm snapshot")

// PrefsPersister stores the alarm list as one JSON string in Fyne preferences
type PrefsPersister struct {
	prefs fyne.Preferences
	key   string
}

// NewPrefsPersister creates a persister on the given preferences
func NewPrefsPersister(prefs fyne.Preferences) *PrefsPersister {
	return &PrefsPersister{prefs: prefs, key: AlarmsKey}
}

// Load reads the alarm list; a missing key is an empty list
func (p *PrefsPersister) Load() ([]models.Alarm, error) {
	raw := p.prefs.String(p.key)
	if raw == "" {
		return []models.Alarm{}, nil
	}

	var alarms []models.Alarm
	if err := json.Unmarshal([]byte(raw), &alarms); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	return sanitize(alarms), nil
}

// Save writes the whole alarm list
func (p *PrefsPersister) Save(alarms []models.Alarm) error {
	if alarms == nil {
		alarms = []models.Alarm{}
	}

	data, err := json.Marshal(alarms)
	if err != nil {
		return fmt.Errorf("marshal alarms: %w", err)
	}

	p.prefs.SetString(p.key, string(data))
	return nil
}

// SettingsStore handles user settings persistence using Fyne preferences
type SettingsStore struct {
	app fyne.App
}

// NewSettingsStore creates a new SettingsStore instance
func NewSettingsStore(app fyne.App) *SettingsStore {
	return &SettingsStore{app: app}
}

// Load loads settings from preferences
func (ss *SettingsStore) Load() models.Settings {
	prefs := ss.app.Preferences()
	defaults := models.DefaultSettings()

	return models.Settings{
		AutoStart:       prefs.BoolWithFallback("auto_start", defaults.AutoStart),
		Muted:           prefs.BoolWithFallback("muted", defaults.Muted),
		HoldTimeSeconds: prefs.IntWithFallback("hold_time_seconds", defaults.HoldTimeSeconds),
	}
}

// Save saves settings to preferences
func (ss *SettingsStore) Save(settings models.Settings) {
	prefs := ss.app.Preferences()

	prefs.SetBool("auto_start", settings.AutoStart)
	prefs.SetBool("muted", settings.Muted)
	prefs.SetInt("hold_time_seconds", settings.HoldTimeSeconds)
}
