package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/ranihwanifactory/watchclock/pkg/calendar"
	"github.com/ranihwanifactory/watchclock/pkg/models"
)

const fetchTimeout = 30 * time.Second

var icsFilter = storage.NewExtensionFileFilter([]string{".ics"})

func (mw *MainWindow) showExportDialog() {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := calendar.Export(writer, mw.wc.alarms.Snapshot(), time.Now()); err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		log.Printf("[CALENDAR] Exported alarms to %s", writer.URI())
	}, mw.window)
	save.SetFileName("alarms.ics")
	save.SetFilter(icsFilter)
	save.Show()
}

func (mw *MainWindow) showImportDialog() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		alarms, err := calendar.Import(reader)
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		mw.confirmReplace(alarms)
	}, mw.window)
	open.SetFilter(icsFilter)
	open.Show()
}

func (mw *MainWindow) showFetchDialog() {
	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://example.com/alarms.ics")

	items := []*widget.FormItem{
		widget.NewFormItem("Calendar URL", urlEntry),
	}

	dialog.ShowForm("Import from URL", "Fetch", "Cancel", items, func(confirmed bool) {
		icalURL := strings.TrimSpace(urlEntry.Text)
		if !confirmed || icalURL == "" {
			return
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()

			alarms, err := calendar.Fetch(ctx, nil, icalURL)
			fyne.Do(func() {
				if err != nil {
					log.Printf("Error fetching calendar %s: %v", icalURL, err)
					dialog.ShowError(err, mw.window)
					return
				}
				mw.confirmReplace(alarms)
			})
		}()
	}, mw.window)
}

// confirmReplace asks before the imported alarms replace the current list
func (mw *MainWindow) confirmReplace(alarms []models.Alarm) {
	if len(alarms) == 0 {
		dialog.ShowInformation("Import", "The calendar has no events with a start time.", mw.window)
		return
	}

	msg := fmt.Sprintf("Replace your %d alarms with %d imported alarms?", mw.wc.alarms.Len(), len(alarms))
	dialog.ShowConfirm("Import Alarms", msg, func(ok bool) {
		if !ok {
			return
		}
		mw.wc.alarms.ReplaceAll(alarms)
		mw.refreshAlarms()
	}, mw.window)
}
