package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/ranihwanifactory/watchclock/pkg/clock"
)

const trayUpcomingLimit = 5

func (wc *WatchClock) setupSystemTray() {
	wc.updateSystemTrayMenu()
}

func (wc *WatchClock) updateSystemTrayMenu() {
	desk, ok := wc.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	// Upcoming alarms at the top
	now := time.Now()
	upcoming := clock.Upcoming(wc.alarms.Snapshot(), now, trayUpcomingLimit)
	if len(upcoming) > 0 {
		headerItem := fyne.NewMenuItem("Upcoming:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)

		for _, occ := range upcoming {
			item := fyne.NewMenuItem(fmt.Sprintf("  %s  %s - %s",
				dayLabel(occ.At, now), occ.Alarm.Time, truncateString(occ.Alarm.Label, 35)), nil)
			item.Disabled = true
			menuItems = append(menuItems, item)
		}
		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	muteItem := fyne.NewMenuItem("Mute Sounds", func() {
		wc.setMuted(!wc.synth.Muted())
		wc.updateSystemTrayMenu()
	})
	muteItem.Checked = wc.synth.Muted()

	autoStartItem := fyne.NewMenuItem("Start at Login", func() {
		if err := wc.setAutoStart(!wc.prefs.AutoStart); err != nil {
			log.Printf("Error setting autostart: %v", err)
		}
		wc.updateSystemTrayMenu()
	})
	autoStartItem.Checked = wc.prefs.AutoStart

	menuItems = append(menuItems,
		fyne.NewMenuItem("Open", func() {
			wc.mainWindow.Show()
		}),
		muteItem,
		autoStartItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Alarms...", func() {
			wc.mainWindow.Show()
			wc.mainWindow.showExportDialog()
		}),
		fyne.NewMenuItem("Import Alarms...", func() {
			wc.mainWindow.Show()
			wc.mainWindow.showImportDialog()
		}),
	)

	quitItem := fyne.NewMenuItem("Quit", wc.quit)
	quitItem.IsQuit = true
	menuItems = append(menuItems, fyne.NewMenuItemSeparator(), quitItem)

	menu := fyne.NewMenu("Watch Clock", menuItems...)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(theme.HistoryIcon())
}

func dayLabel(at, now time.Time) string {
	if at.YearDay() == now.YearDay() && at.Year() == now.Year() {
		return "Today"
	}
	return "Tomorrow"
}

// truncateString truncates a string to maxLen runes, adding "..." if needed
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
