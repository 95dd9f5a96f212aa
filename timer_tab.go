package main

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/ranihwanifactory/watchclock/pkg/timer"
)

func (mw *MainWindow) buildTimerTab() fyne.CanvasObject {
	mw.countdownLabel = widget.NewLabel(mw.countdown.Format())
	mw.countdownLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	mw.countdownLabel.SizeName = theme.SizeNameHeadingText
	mw.countdownLabel.Alignment = fyne.TextAlignCenter

	mw.countdownProgress = widget.NewProgressBar()
	mw.countdownProgress.TextFormatter = func() string { return "" }
	mw.countdownProgress.SetValue(mw.countdown.State().Progress())

	mw.minutesEntry = widget.NewEntry()
	mw.minutesEntry.SetText(strconv.Itoa(timer.DefaultCountdownMinutes))
	mw.minutesEntry.OnChanged = func(text string) {
		minutes, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return
		}
		mw.countdown.SetMinutes(minutes)
	}

	mw.countdownToggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		mw.countdown.Toggle()
	})
	mw.countdownToggle.Importance = widget.HighImportance

	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		mw.countdown.Reset()
	})

	// Heartbeat callbacks arrive off the Fyne thread
	mw.countdown.SetOnChange(func(state timer.CountdownState) {
		fyne.Do(func() { mw.renderCountdown(state) })
	})

	minutesRow := container.NewBorder(nil, nil, widget.NewLabel("Minutes (0-999):"), nil, mw.minutesEntry)

	content := container.NewVBox(
		minutesRow,
		widget.NewSeparator(),
		container.NewPadded(mw.countdownLabel),
		mw.countdownProgress,
		container.NewCenter(container.NewHBox(mw.countdownToggle, resetButton)),
	)

	return container.NewPadded(content)
}

func (mw *MainWindow) renderCountdown(state timer.CountdownState) {
	mw.countdownLabel.SetText(timer.FormatRemaining(state.RemainingSeconds))
	mw.countdownProgress.SetValue(state.Progress())

	switch state.Phase() {
	case timer.PhaseConfiguring:
		mw.minutesEntry.Enable()
		mw.countdownToggle.SetText("Start")
		mw.countdownToggle.SetIcon(theme.MediaPlayIcon())
	case timer.PhaseRunning:
		mw.minutesEntry.Disable()
		mw.countdownToggle.SetText("Pause")
		mw.countdownToggle.SetIcon(theme.MediaPauseIcon())
	case timer.PhasePaused:
		mw.minutesEntry.Disable()
		mw.countdownToggle.SetText("Resume")
		mw.countdownToggle.SetIcon(theme.MediaPlayIcon())
	case timer.PhaseCompleted:
		mw.minutesEntry.Disable()
		mw.countdownToggle.SetText("Done")
		mw.countdownToggle.SetIcon(theme.ConfirmIcon())
	}
}
