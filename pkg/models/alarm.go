package models

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultAlarmLabel is used when an alarm is created without a label
const DefaultAlarmLabel = "Alarm"

// ClockLayout is the HH:mm layout alarms are stored and matched in
const ClockLayout = "15:04"

// ErrInvalidAlarmTime is returned for times that are not a valid 24-hour HH:mm
var ErrInvalidAlarmTime = errors.New("invalid alarm time")

// AllWeekdays is the day set every new alarm starts with
var AllWeekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Alarm represents a daily alarm
type Alarm struct {
	ID      string   `json:"id"`      // Random identifier (UUID)
	Time    string   `json:"time"`    // HH:mm, 24-hour
	Label   string   `json:"label"`   // Display label
	Enabled bool     `json:"enabled"` // Disabled alarms never match
	Days    []string `json:"days"`    // Weekday tags, always all seven for now
}

// NewAlarm creates an enabled alarm with a fresh ID
func NewAlarm(clockTime, label string) (Alarm, error) {
	hour, minute, err := ParseClockTime(clockTime)
	if err != nil {
		return Alarm{}, err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultAlarmLabel
	}

	return Alarm{
		ID:      uuid.New().String(),
		Time:    fmt.Sprintf("%02d:%02d", hour, minute),
		Label:   label,
		Enabled: true,
		Days:    slices.Clone(AllWeekdays),
	}, nil
}

// Clone returns a copy that shares no slices with a
func (a Alarm) Clone() Alarm {
	a.Days = slices.Clone(a.Days)
	return a
}

// Valid reports whether the alarm has an ID and a well-formed time
func (a Alarm) Valid() bool {
	if a.ID == "" {
		return false
	}
	_, _, err := ParseClockTime(a.Time)
	return err == nil
}

// ParseClockTime parses a strict HH:mm string
func ParseClockTime(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || !isTwoDigits(parts[0]) || !isTwoDigits(parts[1]) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAlarmTime, s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAlarmTime, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAlarmTime, s)
	}

	return hour, minute, nil
}

func isTwoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

// FormatClockTime formats t as HH:mm
func FormatClockTime(t time.Time) string {
	return t.Format(ClockLayout)
}
