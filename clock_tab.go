package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

func (mw *MainWindow) buildClockTab() fyne.CanvasObject {
	mw.timeLabel = widget.NewLabel("--:--:--")
	mw.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	mw.timeLabel.SizeName = theme.SizeNameHeadingText
	mw.timeLabel.Alignment = fyne.TextAlignCenter

	mw.dateLabel = widget.NewLabel("")
	mw.dateLabel.Alignment = fyne.TextAlignCenter

	mw.greetingLabel = widget.NewLabel("")
	mw.greetingLabel.Wrapping = fyne.TextWrapWord
	mw.greetingLabel.Alignment = fyne.TextAlignCenter

	mw.greetingBtn = widget.NewButtonWithIcon("New Greeting", theme.ViewRefreshIcon(), func() {
		mw.wc.synth.Click()
		mw.RefreshGreeting()
	})

	content := container.NewVBox(
		container.NewPadded(mw.timeLabel),
		mw.dateLabel,
		widget.NewSeparator(),
		container.NewPadded(mw.greetingLabel),
		container.NewCenter(mw.greetingBtn),
	)

	return container.NewPadded(container.NewCenter(content))
}

// RefreshGreeting asks the text service for a new greeting
func (mw *MainWindow) RefreshGreeting() {
	mw.greetingBtn.Disable()
	mw.greetingLabel.SetText("...")
	mw.wc.greeting(func(text string) {
		mw.greetingLabel.SetText(text)
		mw.greetingBtn.Enable()
	})
}
