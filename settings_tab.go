package main

import (
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/ranihwanifactory/watchclock/pkg/config"
)

var holdTimeOptions = []string{"1 s", "2 s", "3 s", "5 s"}

func (mw *MainWindow) buildSettingsTab() fyne.CanvasObject {
	mw.muteCheck = widget.NewCheck("Mute all sounds", func(checked bool) {
		if checked == mw.wc.synth.Muted() {
			return
		}
		mw.wc.setMuted(checked)
		mw.wc.updateSystemTrayMenu()
	})
	mw.muteCheck.SetChecked(mw.wc.prefs.Muted)

	var autoStartCheck *widget.Check
	autoStartCheck = widget.NewCheck("Start at login", func(checked bool) {
		if checked == mw.wc.prefs.AutoStart {
			return
		}
		if err := mw.wc.setAutoStart(checked); err != nil {
			log.Printf("Error setting autostart: %v", err)
			autoStartCheck.SetChecked(!checked)
			return
		}
		mw.wc.updateSystemTrayMenu()
	})
	autoStartCheck.SetChecked(mw.wc.prefs.AutoStart)

	holdSelect := widget.NewSelect(holdTimeOptions, func(selected string) {
		var seconds int
		if _, err := fmt.Sscanf(selected, "%d s", &seconds); err != nil {
			return
		}
		mw.wc.prefs.HoldTimeSeconds = seconds
		mw.wc.settings.Save(mw.wc.prefs)
	})
	holdSelect.SetSelected(fmt.Sprintf("%d s", mw.wc.prefs.HoldTime()))

	configPath, err := config.Path(appName)
	if err != nil {
		configPath = err.Error()
	}
	configEntry := widget.NewEntry()
	configEntry.SetText(configPath)
	configEntry.Disable()

	openConfigButton := widget.NewButton("Open in File Manager", func() {
		openInFileManager(filepath.Dir(configPath))
	})

	soundHelp := widget.NewLabel("Silences clicks, timer cues and the alarm beep")
	soundHelp.Importance = widget.MediumImportance

	holdHelp := widget.NewLabel("How long to hold the dismiss button")
	holdHelp.Importance = widget.MediumImportance

	configHelp := widget.NewLabel("Sample rate, volume and message service settings")
	configHelp.Wrapping = fyne.TextWrapWord
	configHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(widget.NewLabel("Sound:"), soundHelp),
		mw.muteCheck,

		widget.NewLabel("Startup:"),
		autoStartCheck,

		container.NewVBox(widget.NewLabel("Dismiss:"), holdHelp),
		holdSelect,

		container.NewVBox(widget.NewLabel("Config File:"), configHelp),
		container.NewBorder(nil, container.NewPadded(openConfigButton), nil, nil, configEntry),
	)

	content := container.NewVBox(
		widget.NewLabel("Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func openInFileManager(path string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		log.Printf("Unsupported OS: %s", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Error opening file manager: %v", err)
	}
}
