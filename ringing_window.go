package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/ranihwanifactory/watchclock/pkg/heartbeat"
	"github.com/ranihwanifactory/watchclock/pkg/notify"
	"github.com/ranihwanifactory/watchclock/pkg/platform"
	"github.com/ranihwanifactory/watchclock/pkg/ui/components"
	"golang.design/x/hotkey"
)

const focusCheckInterval = 500 * time.Millisecond

// RingingWindow is the full screen window shown while an alarm rings
type RingingWindow struct {
	window    fyne.Window
	ringing   notify.RingingState
	holdTime  int
	scheduler heartbeat.Scheduler
	onDismiss func()

	messageLabel *widget.Label
	focusBeat    *heartbeat.Handle

	hkMu          sync.Mutex
	dismissHotkey *hotkey.Hotkey
	closed        bool
	closeOnce     sync.Once
	done          chan struct{}
}

// NewRingingWindow builds the window; it must be called on the Fyne thread
func NewRingingWindow(app fyne.App, ringing notify.RingingState, holdTimeSeconds int, scheduler heartbeat.Scheduler, onDismiss func()) *RingingWindow {
	rw := &RingingWindow{
		ringing:   ringing,
		holdTime:  holdTimeSeconds,
		scheduler: scheduler,
		onDismiss: onDismiss,
		done:      make(chan struct{}),
	}

	rw.window = app.NewWindow("Alarm")
	rw.window.SetFullScreen(true)
	rw.buildUI()

	rw.registerDismissHotkey()
	rw.focusBeat = scheduler.Every(focusCheckInterval, rw.keepInFront)

	// Closing the window by other means still dismisses the alarm
	rw.window.SetOnClosed(func() {
		rw.teardown()
		if rw.onDismiss != nil {
			rw.onDismiss()
		}
	})

	return rw
}

func (rw *RingingWindow) buildUI() {
	timeText := canvas.NewText(rw.ringing.Alarm.Time, nil)
	timeText.TextSize = 96
	timeText.TextStyle.Bold = true
	timeText.Alignment = fyne.TextAlignCenter

	title := canvas.NewText(rw.ringing.Alarm.Label, nil)
	title.TextSize = 32
	title.Alignment = fyne.TextAlignCenter

	message := rw.ringing.Message
	if message == "" {
		message = "..."
	}
	rw.messageLabel = widget.NewLabel(message)
	rw.messageLabel.Wrapping = fyne.TextWrapWord
	rw.messageLabel.Alignment = fyne.TextAlignCenter

	dismissButton := components.NewHoldButton(
		fmt.Sprintf("Dismiss (Hold %ds)", rw.holdTime),
		time.Duration(rw.holdTime)*time.Second,
		rw.scheduler,
		func() { fyne.Do(rw.dismiss) },
	)

	hint := widget.NewLabel("or press Ctrl+Shift+D")
	hint.Alignment = fyne.TextAlignCenter
	hint.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewPadded(timeText),
		title,
		widget.NewSeparator(),
		container.NewPadded(rw.messageLabel),
		widget.NewSeparator(),
		container.NewCenter(dismissButton),
		hint,
	)

	rw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

// SetMessage shows the motivation text once it arrives
func (rw *RingingWindow) SetMessage(text string) {
	rw.messageLabel.SetText(text)
}

func (rw *RingingWindow) Show() {
	rw.window.Show()
	rw.window.RequestFocus()
}

// Close hides the window without dismissing again
func (rw *RingingWindow) Close() {
	rw.onDismiss = nil

	rw.hkMu.Lock()
	closed := rw.closed
	rw.hkMu.Unlock()
	if !closed {
		rw.window.Close()
	}
}

func (rw *RingingWindow) dismiss() {
	rw.hkMu.Lock()
	closed := rw.closed
	rw.hkMu.Unlock()
	if closed {
		return
	}
	log.Println("[ALARM] Dismissed from ringing window")
	rw.window.Close()
}

func (rw *RingingWindow) teardown() {
	rw.closeOnce.Do(func() {
		rw.focusBeat.Cancel()
		close(rw.done)

		rw.hkMu.Lock()
		rw.closed = true
		hk := rw.dismissHotkey
		rw.dismissHotkey = nil
		rw.hkMu.Unlock()

		if hk != nil {
			if err := hk.Unregister(); err != nil {
				log.Printf("Failed to unregister dismiss hotkey: %v", err)
			}
		}
	})
}

func (rw *RingingWindow) registerDismissHotkey() {
	go func() {
		hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyD)
		if err := hk.Register(); err != nil {
			log.Printf("Failed to register dismiss hotkey: %v", err)
			return
		}

		rw.hkMu.Lock()
		if rw.closed {
			rw.hkMu.Unlock()
			_ = hk.Unregister()
			return
		}
		rw.dismissHotkey = hk
		rw.hkMu.Unlock()

		select {
		case <-hk.Keydown():
			log.Println("[ALARM] Dismiss hotkey pressed")
			fyne.Do(rw.dismiss)
		case <-rw.done:
		}
	}()
}

// keepInFront runs on the heartbeat goroutine while the window is open
func (rw *RingingWindow) keepInFront() {
	if platform.BringToFront() {
		log.Println("Ringing window not active - bringing to front")
		fyne.Do(func() {
			rw.window.Show()
			rw.window.RequestFocus()
		})
	}
}
