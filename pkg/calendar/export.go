package calendar

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/emersion/go-ical"
	"github.com/ranihwanifactory/watchclock/pkg/clock"
	"github.com/ranihwanifactory/watchclock/pkg/models"
	"github.com/teambition/rrule-go"
)

const (
	productID = "-//watchclock//alarms//EN"

	statusConfirmed = "CONFIRMED"
	statusCancelled = "CANCELLED"

	// floatingLayout is a local wall-clock time without TZID
	floatingLayout = "20060102T150405"
)

// Export writes alarms as a VCALENDAR. Each alarm becomes a daily VEVENT
// starting at its next occurrence, with a display VALARM at start time.
// Disabled alarms are exported as cancelled events.
func Export(w io.Writer, alarms []models.Alarm, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	exported := 0
	for _, alarm := range alarms {
		next, err := clock.NextOccurrence(alarm, now)
		if err != nil {
			log.Printf("[CALENDAR] Skipping alarm %s on export: %v", alarm.ID, err)
			continue
		}
		cal.Children = append(cal.Children, alarmEvent(alarm, next, now))
		exported++
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	log.Printf("[CALENDAR] Exported %d alarms", exported)
	return nil
}

func alarmEvent(alarm models.Alarm, start, now time.Time) *ical.Component {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, alarm.ID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetText(ical.PropSummary, alarm.Label)

	dtstart := ical.NewProp(ical.PropDateTimeStart)
	dtstart.Value = start.Format(floatingLayout)
	event.Props.Set(dtstart)
	event.Props.SetRecurrenceRule(&rrule.ROption{Freq: rrule.DAILY})

	status := statusConfirmed
	if !alarm.Enabled {
		status = statusCancelled
	}
	event.Props.SetText(ical.PropStatus, status)

	reminder := ical.NewComponent(ical.CompAlarm)
	reminder.Props.SetText(ical.PropAction, "DISPLAY")
	reminder.Props.SetText(ical.PropDescription, alarm.Label)
	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = "PT0M"
	reminder.Props.Set(trigger)
	event.Children = append(event.Children, reminder)

	return event.Component
}
