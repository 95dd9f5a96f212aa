package models

// Settings holds the user-toggled settings kept in app preferences
type Settings struct {
	AutoStart       bool `json:"auto_start"`
	Muted           bool `json:"muted"`
	HoldTimeSeconds int  `json:"hold_time_seconds"` // dismiss button hold time
}

// DefaultSettings returns the settings used on first launch
func DefaultSettings() Settings {
	return Settings{
		AutoStart:       false,
		Muted:           false,
		HoldTimeSeconds: 2,
	}
}

// HoldTime returns the dismiss hold time, falling back to the default
func (s Settings) HoldTime() int {
	if s.HoldTimeSeconds <= 0 {
		return DefaultSettings().HoldTimeSeconds
	}
	return s.HoldTimeSeconds
}
