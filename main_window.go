package main

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/ranihwanifactory/watchclock/pkg/heartbeat"
	"github.com/ranihwanifactory/watchclock/pkg/timer"
)

type MainWindow struct {
	window fyne.Window
	wc     *WatchClock

	// Clock tab
	timeLabel     *widget.Label
	dateLabel     *widget.Label
	greetingLabel *widget.Label
	greetingBtn   *widget.Button

	// Alarms tab
	alarmList   *widget.List
	alarmCount  *widget.Label
	timeEntry   *widget.Entry
	labelEntry  *widget.Entry
	alarmStatus *widget.Label

	// Timer tab
	countdown         *timer.Countdown
	countdownLabel    *widget.Label
	countdownProgress *widget.ProgressBar
	minutesEntry      *widget.Entry
	countdownToggle   *widget.Button

	// Stopwatch tab
	stopwatch       *timer.Stopwatch
	stopwatchLabel  *widget.Label
	stopwatchToggle *widget.Button
	lapList         *widget.List
	lapData         []int64
	stopwatchBeat   *heartbeat.Handle

	// Settings tab
	muteCheck *widget.Check
}

func NewMainWindow(wc *WatchClock) *MainWindow {
	mw := &MainWindow{wc: wc}

	mw.countdown = timer.NewCountdown(wc.scheduler, wc.synth)
	mw.stopwatch = timer.NewStopwatch(wc.scheduler, wc.synth)

	mw.window = wc.app.NewWindow("Watch Clock")
	mw.window.Resize(fyne.NewSize(480, 560))
	mw.buildUI()

	// Closing hides to the tray; Quit tears down
	mw.window.SetCloseIntercept(func() {
		mw.window.Hide()
	})

	return mw
}

func (mw *MainWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Clock", mw.buildClockTab()),
		container.NewTabItem("Alarms", mw.buildAlarmsTab()),
		container.NewTabItem("Timer", mw.buildTimerTab()),
		container.NewTabItem("Stopwatch", mw.buildStopwatchTab()),
		container.NewTabItem("Settings", mw.buildSettingsTab()),
	)
	tabs.OnSelected = func(*container.TabItem) {
		mw.wc.synth.Click()
	}

	mw.window.SetContent(tabs)
}

func (mw *MainWindow) Show() {
	mw.window.Show()
	mw.window.RequestFocus()
}

// SetTime updates the clock tab; called on the Fyne thread every second
func (mw *MainWindow) SetTime(now time.Time) {
	mw.timeLabel.SetText(now.Format("15:04:05"))
	mw.dateLabel.SetText(now.Format("Monday, January 2"))
}

// SetMuted syncs the settings tab after mute changes elsewhere
func (mw *MainWindow) SetMuted(muted bool) {
	mw.muteCheck.SetChecked(muted)
}

// Teardown cancels every heartbeat owned by the window
func (mw *MainWindow) Teardown() {
	mw.countdown.Close()
	mw.stopwatch.Close()
	mw.stopStopwatchDisplay()
}
