package clock

import (
	"time"

	"github.com/ranihwanifactory/watchclock/pkg/models"
)

// Match returns the first enabled alarm, in stored order, set for the
// minute of now. It only matches on second 0 so that a once-per-second
// tick fires each alarm a single time within its minute.
//
// If no tick lands on second 0 (process suspended, tick delayed past the
// second), the alarm is skipped for that day. There is no catch-up.
func Match(now time.Time, alarms []models.Alarm) (models.Alarm, bool) {
	if now.Second() != 0 {
		return models.Alarm{}, false
	}

	current := models.FormatClockTime(now)
	for _, alarm := range alarms {
		if alarm.Enabled && alarm.Time == current {
			return alarm, true
		}
	}
	return models.Alarm{}, false
}
