package clock

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/models"
	"github.com/teambition/rrule-go"
)

// Occurrence is the next time an alarm will ring
type Occurrence struct {
	Alarm models.Alarm
	At    time.Time
}

// DailyRule returns the daily recurrence of an alarm anchored at the start
// of the day containing from
func DailyRule(alarm models.Alarm, from time.Time) (*rrule.RRule, error) {
	hour, minute, err := models.ParseClockTime(alarm.Time)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Dtstart:  dayStart,
		Byhour:   []int{hour},
		Byminute: []int{minute},
		Bysecond: []int{0},
	})
	if err != nil {
		return nil, fmt.Errorf("build daily rule for %s: %w", alarm.Time, err)
	}
	return rule, nil
}

// NextOccurrence returns the first ring time at or after now
func NextOccurrence(alarm models.Alarm, now time.Time) (time.Time, error) {
	rule, err := DailyRule(alarm, now)
	if err != nil {
		return time.Time{}, err
	}
	return rule.After(now, true), nil
}

// Upcoming returns the next occurrences of the enabled alarms, soonest first
func Upcoming(alarms []models.Alarm, now time.Time, limit int) []Occurrence {
	result := make([]Occurrence, 0, len(alarms))

	for _, alarm := range alarms {
		if !alarm.Enabled {
			continue
		}
		at, err := NextOccurrence(alarm, now)
		if err != nil {
			log.Printf("[ALARM] Skipping alarm %s: %v", alarm.ID, err)
			continue
		}
		result = append(result, Occurrence{Alarm: alarm, At: at})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].At.Before(result[j].At)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
