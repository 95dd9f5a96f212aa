package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/ranihwanifactory/watchclock/pkg/models"
)

func (mw *MainWindow) buildAlarmsTab() fyne.CanvasObject {
	mw.timeEntry = widget.NewEntry()
	mw.timeEntry.SetPlaceHolder("07:00")
	mw.timeEntry.SetText(time.Now().Add(time.Minute).Format(models.ClockLayout))

	mw.labelEntry = widget.NewEntry()
	mw.labelEntry.SetPlaceHolder(models.DefaultAlarmLabel)

	mw.alarmStatus = widget.NewLabel("")
	mw.alarmStatus.Importance = widget.DangerImportance

	addButton := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), mw.addAlarm)
	addButton.Importance = widget.HighImportance

	form := container.NewBorder(nil, nil, nil, addButton,
		container.NewGridWithColumns(2, mw.timeEntry, mw.labelEntry))

	mw.alarmList = widget.NewList(
		func() int {
			return mw.wc.alarms.Len()
		},
		func() fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			label := widget.NewLabel("Template")
			label.Truncation = fyne.TextTruncateEllipsis
			deleteButton := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			deleteButton.Importance = widget.LowImportance
			return container.NewBorder(nil, nil, check, deleteButton, label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			alarms := mw.wc.alarms.Snapshot()
			if id >= len(alarms) {
				return
			}
			alarm := alarms[id]

			row := obj.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			check := row.Objects[1].(*widget.Check)
			deleteButton := row.Objects[2].(*widget.Button)

			label.SetText(fmt.Sprintf("%s  %s", alarm.Time, alarm.Label))
			if alarm.Enabled {
				label.Importance = widget.MediumImportance
			} else {
				label.Importance = widget.LowImportance
			}
			label.Refresh()

			// Clear the handler before syncing state so SetChecked does not toggle
			check.OnChanged = nil
			check.SetChecked(alarm.Enabled)
			check.OnChanged = func(bool) {
				mw.wc.synth.Click()
				mw.wc.alarms.Toggle(alarm.ID)
				mw.refreshAlarms()
			}

			deleteButton.OnTapped = func() {
				mw.wc.synth.Click()
				mw.wc.alarms.Delete(alarm.ID)
				mw.refreshAlarms()
			}
		},
	)

	mw.alarmCount = widget.NewLabel("")
	mw.updateAlarmCount()

	ioRow := container.NewHBox(
		widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), mw.showExportDialog),
		widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), mw.showImportDialog),
		widget.NewButtonWithIcon("From URL", theme.DownloadIcon(), mw.showFetchDialog),
	)

	header := container.NewVBox(
		widget.NewLabel("New Alarm (HH:MM and label)"),
		form,
		mw.alarmStatus,
		widget.NewSeparator(),
	)
	footer := container.NewVBox(widget.NewSeparator(), container.NewBorder(nil, nil, mw.alarmCount, ioRow))

	return container.NewPadded(container.NewBorder(header, footer, nil, nil, mw.alarmList))
}

func (mw *MainWindow) addAlarm() {
	alarm, err := mw.wc.alarms.Add(mw.timeEntry.Text, mw.labelEntry.Text)
	if err != nil {
		mw.alarmStatus.SetText("Enter the time as HH:MM, for example 07:30")
		return
	}

	mw.wc.synth.Success()
	log.Printf("[ALARM] Added %q at %s", alarm.Label, alarm.Time)
	mw.alarmStatus.SetText("")
	mw.labelEntry.SetText("")
	mw.refreshAlarms()
}

// refreshAlarms redraws everything that shows the alarm list
func (mw *MainWindow) refreshAlarms() {
	mw.alarmList.Refresh()
	mw.updateAlarmCount()
	mw.wc.updateSystemTrayMenu()
}

func (mw *MainWindow) updateAlarmCount() {
	alarms := mw.wc.alarms.Snapshot()
	enabled := 0
	for _, alarm := range alarms {
		if alarm.Enabled {
			enabled++
		}
	}
	mw.alarmCount.SetText(fmt.Sprintf("%d alarms, %d on", len(alarms), enabled))
}
