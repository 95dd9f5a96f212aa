package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/ranihwanifactory/watchclock/pkg/timer"
)

// stopwatchRedraw is how often the running stopwatch display is redrawn
const stopwatchRedraw = 30 * time.Millisecond

func (mw *MainWindow) buildStopwatchTab() fyne.CanvasObject {
	mw.stopwatchLabel = widget.NewLabel(timer.FormatElapsed(0))
	mw.stopwatchLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	mw.stopwatchLabel.SizeName = theme.SizeNameHeadingText
	mw.stopwatchLabel.Alignment = fyne.TextAlignCenter

	mw.stopwatchToggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		mw.wc.synth.Click()
		mw.stopwatch.Toggle()
	})
	mw.stopwatchToggle.Importance = widget.HighImportance

	lapButton := widget.NewButtonWithIcon("Lap", theme.ContentAddIcon(), func() {
		mw.stopwatch.RecordLap()
	})
	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		mw.wc.synth.Click()
		mw.stopwatch.Reset()
	})

	mw.lapList = widget.NewList(
		func() int {
			return len(mw.lapData)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("Lap 00  00:00.00")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(mw.lapData) {
				return
			}
			// Laps are most recent first; number them in recording order
			obj.(*widget.Label).SetText(fmt.Sprintf("Lap %02d  %s", len(mw.lapData)-id, timer.FormatElapsed(mw.lapData[id])))
		},
	)

	mw.stopwatch.SetOnChange(func(state timer.StopwatchState) {
		if state.Running {
			mw.startStopwatchDisplay()
		} else {
			mw.stopStopwatchDisplay()
		}
		fyne.Do(func() { mw.renderStopwatch(state) })
	})

	header := container.NewVBox(
		container.NewPadded(mw.stopwatchLabel),
		container.NewCenter(container.NewHBox(mw.stopwatchToggle, lapButton, resetButton)),
		widget.NewSeparator(),
	)

	return container.NewPadded(container.NewBorder(header, nil, nil, nil, mw.lapList))
}

func (mw *MainWindow) renderStopwatch(state timer.StopwatchState) {
	mw.stopwatchLabel.SetText(timer.FormatElapsed(state.ElapsedMilliseconds))
	mw.lapData = state.Laps
	mw.lapList.Refresh()

	if state.Running {
		mw.stopwatchToggle.SetText("Pause")
		mw.stopwatchToggle.SetIcon(theme.MediaPauseIcon())
	} else {
		mw.stopwatchToggle.SetText("Start")
		mw.stopwatchToggle.SetIcon(theme.MediaPlayIcon())
	}
}

func (mw *MainWindow) startStopwatchDisplay() {
	if mw.stopwatchBeat != nil {
		return
	}
	mw.stopwatchBeat = mw.wc.scheduler.Every(stopwatchRedraw, func() {
		elapsed := mw.stopwatch.State().ElapsedMilliseconds
		fyne.Do(func() { mw.stopwatchLabel.SetText(timer.FormatElapsed(elapsed)) })
	})
}

func (mw *MainWindow) stopStopwatchDisplay() {
	if mw.stopwatchBeat != nil {
		mw.stopwatchBeat.Cancel()
		mw.stopwatchBeat = nil
	}
}
