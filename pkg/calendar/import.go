package calendar

import (
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/ranihwanifactory/watchclock/pkg/models"
	"github.com/teambition/rrule-go"
)

// ErrInvalidCalendar is returned for input that is not iCalendar data
var ErrInvalidCalendar = errors.New("invalid iCalendar data")

var cancelledTitle = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Import reads the VEVENTs of an iCalendar stream as alarms. The start
// time's local hour and minute become the alarm time; cancelled events are
// imported disabled. Events without a start time are skipped.
func Import(r io.Reader) ([]models.Alarm, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	bodyStr := string(body)

	if err := validateICalFormat(bodyStr); err != nil {
		return nil, err
	}

	decoder := ical.NewDecoder(strings.NewReader(bodyStr))
	alarms := []models.Alarm{}
	seenIDs := make(map[string]bool)
	stats := &importStats{}

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: decode calendar: %v", ErrInvalidCalendar, err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			stats.events++

			alarm, ok := parseAlarm(comp, stats)
			if !ok {
				continue
			}
			if seenIDs[alarm.ID] {
				stats.duplicates++
				log.Printf("[CALENDAR] Skipping duplicate UID %s", alarm.ID)
				continue
			}
			seenIDs[alarm.ID] = true
			alarms = append(alarms, alarm)
		}
	}

	stats.logSummary(len(alarms))
	return alarms, nil
}

func parseAlarm(comp *ical.Component, stats *importStats) (models.Alarm, bool) {
	normalizeStartTimezone(comp)

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		stats.missingTime++
		return models.Alarm{}, false
	}
	start, err := parseDateTimeProperty(startProp)
	if err != nil {
		stats.missingTime++
		log.Printf("[CALENDAR] Skipping event: %v", err)
		return models.Alarm{}, false
	}

	label, err := comp.Props.Text(ical.PropSummary)
	if err != nil {
		label = ""
	}
	alarm, err := models.NewAlarm(models.FormatClockTime(start), label)
	if err != nil {
		stats.missingTime++
		return models.Alarm{}, false
	}

	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil && strings.TrimSpace(uidProp.Value) != "" {
		alarm.ID = strings.TrimSpace(uidProp.Value)
	} else {
		alarm.ID = uuid.NewString()
	}

	status := ""
	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil {
		status = strings.ToUpper(statusProp.Value)
	}
	if status == statusCancelled || isCancelledTitle(label) {
		alarm.Enabled = false
		stats.disabled++
	}

	if rule, err := comp.Props.RecurrenceRule(); err != nil {
		log.Printf("[CALENDAR] Ignoring unreadable RRULE on %q: %v", alarm.Label, err)
	} else if rule != nil && rule.Freq != rrule.DAILY {
		stats.notDaily++
		log.Printf("[CALENDAR] %q repeats %v; imported as a daily alarm", alarm.Label, rule.Freq)
	}

	return alarm, true
}

func validateICalFormat(bodyStr string) error {
	upperBody := strings.ToUpper(strings.TrimSpace(bodyStr))
	if strings.HasPrefix(upperBody, "<!DOCTYPE") || strings.HasPrefix(upperBody, "<HTML") {
		return fmt.Errorf("%w: received HTML instead of iCalendar data", ErrInvalidCalendar)
	}

	trimmed := strings.TrimSpace(bodyStr)
	if !strings.HasPrefix(trimmed, "BEGIN:VCALENDAR") {
		preview := trimmed
		if len(preview) > 100 {
			preview = preview[:100]
		}
		return fmt.Errorf("%w: expected BEGIN:VCALENDAR, got: %s", ErrInvalidCalendar, preview)
	}
	return nil
}

func parseDateTimeProperty(prop *ical.Prop) (time.Time, error) {
	if t, err := prop.DateTime(time.Local); err == nil {
		return t.In(time.Local), nil
	}

	formats := []string{
		floatingLayout,
		"20060102T150405Z",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, prop.Value, time.Local); err == nil {
			return t.In(time.Local), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", prop.Value)
}

func isCancelledTitle(title string) bool {
	clean := cancelledTitle.ReplaceAllString(strings.ToLower(title), "")
	return strings.HasPrefix(clean, "canceled") || strings.HasPrefix(clean, "cancelled")
}

type importStats struct {
	events      int
	missingTime int
	duplicates  int
	disabled    int
	notDaily    int
}

func (s *importStats) logSummary(imported int) {
	log.Printf("[CALENDAR] Events: %d, Imported: %d, Skipped: %d missing time, %d duplicates",
		s.events, imported, s.missingTime, s.duplicates)
	if s.disabled > 0 || s.notDaily > 0 {
		log.Printf("[CALENDAR] %d imported disabled, %d converted to daily", s.disabled, s.notDaily)
	}
}
