package notify

import (
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/models"
)

// State is the coordinator mode
type State string

const (
	StateIdle    State = "idle"
	StateRinging State = "ringing"
)

// EventType defines the type of coordinator event
type EventType string

const (
	EventRing    EventType = "ring"
	EventMessage EventType = "message"
	EventDismiss EventType = "dismiss"
)

// Event is a coordinator update for observers
type Event struct {
	Type    EventType
	Alarm   models.Alarm
	Message string
	At      time.Time
}

// RingingState describes the alarm currently ringing
type RingingState struct {
	Alarm   models.Alarm
	Message string // empty until the motivation text resolves
	Since   time.Time
}
