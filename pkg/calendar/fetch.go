package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ranihwanifactory/watchclock/pkg/models"
)

// maxCalendarSize bounds a downloaded calendar
const maxCalendarSize = 4 << 20

// Fetch downloads an iCalendar file and imports its events as alarms
func Fetch(ctx context.Context, client *http.Client, icalURL string) ([]models.Alarm, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, icalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed with status %d", resp.StatusCode)
	}

	return Import(io.LimitReader(resp.Body, maxCalendarSize))
}
