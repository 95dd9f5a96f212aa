package store

import (
	"log"
	"sync"

	"github.com/ranihwanifactory/watchclock/pkg/models"
)

// Persister mirrors the alarm collection to durable storage
type Persister interface {
	Load() ([]models.Alarm, error)
	Save(alarms []models.Alarm) error
}

// AlarmStore owns the ordered alarm collection. Every mutation is written
// through to the persister as a full snapshot.
type AlarmStore struct {
	mu        sync.RWMutex
	alarms    []models.Alarm
	persister Persister
}

// NewAlarmStore seeds the store from the persister. A snapshot that
// cannot be read yields an empty collection.
func NewAlarmStore(persister Persister) *AlarmStore {
	as := &AlarmStore{persister: persister}

	if persister != nil {
		alarms, err := persister.Load()
		if err != nil {
			log.Printf("[STORE] Failed to load alarms, starting empty: %v", err)
			alarms = nil
		}
		as.alarms = alarms
	}

	log.Printf("[STORE] Loaded %d alarms", len(as.alarms))
	return as
}

// Add creates a new enabled alarm at the end of the collection
func (as *AlarmStore) Add(clockTime, label string) (models.Alarm, error) {
	alarm, err := models.NewAlarm(clockTime, label)
	if err != nil {
		return models.Alarm{}, err
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	as.alarms = append(as.alarms, alarm)
	as.persistLocked()
	return alarm.Clone(), nil
}

// Toggle flips the enabled flag of an alarm
func (as *AlarmStore) Toggle(id string) (models.Alarm, bool) {
	as.mu.Lock()
	defer as.mu.Unlock()

	for i := range as.alarms {
		if as.alarms[i].ID == id {
			as.alarms[i].Enabled = !as.alarms[i].Enabled
			as.persistLocked()
			return as.alarms[i].Clone(), true
		}
	}
	return models.Alarm{}, false
}

// Delete removes an alarm, keeping the order of the others
func (as *AlarmStore) Delete(id string) bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	for i := range as.alarms {
		if as.alarms[i].ID == id {
			as.alarms = append(as.alarms[:i], as.alarms[i+1:]...)
			as.persistLocked()
			return true
		}
	}
	return false
}

// ReplaceAll swaps the whole collection, e.g. after an import
func (as *AlarmStore) ReplaceAll(alarms []models.Alarm) {
	as.mu.Lock()
	defer as.mu.Unlock()

	as.alarms = sanitize(alarms)
	as.persistLocked()
}

// Get returns an alarm by ID
func (as *AlarmStore) Get(id string) (models.Alarm, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	for _, alarm := range as.alarms {
		if alarm.ID == id {
			return alarm.Clone(), true
		}
	}
	return models.Alarm{}, false
}

// Snapshot returns a copy of the collection in stored order
func (as *AlarmStore) Snapshot() []models.Alarm {
	as.mu.RLock()
	defer as.mu.RUnlock()

	result := make([]models.Alarm, 0, len(as.alarms))
	for _, alarm := range as.alarms {
		result = append(result, alarm.Clone())
	}
	return result
}

// Len returns the number of alarms
func (as *AlarmStore) Len() int {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return len(as.alarms)
}

func (as *AlarmStore) persistLocked() {
	if as.persister == nil {
		return
	}
	if err := as.persister.Save(as.alarms); err != nil {
		log.Printf("[STORE] Failed to save alarms: %v", err)
	}
}

// sanitize drops alarms with a bad time or missing ID and duplicate IDs
func sanitize(alarms []models.Alarm) []models.Alarm {
	seen := make(map[string]bool)
	result := make([]models.Alarm, 0, len(alarms))

	for _, alarm := range alarms {
		if !alarm.Valid() {
			log.Printf("[STORE] Dropping invalid alarm (ID: %q, Time: %q)", alarm.ID, alarm.Time)
			continue
		}
		if seen[alarm.ID] {
			log.Printf("[STORE] Dropping duplicate alarm ID: %s", alarm.ID)
			continue
		}
		seen[alarm.ID] = true
		if alarm.Label == "" {
			alarm.Label = models.DefaultAlarmLabel
		}
		if len(alarm.Days) == 0 {
			alarm.Days = models.AllWeekdays
		}
		result = append(result, alarm.Clone())
	}

	return result
}
