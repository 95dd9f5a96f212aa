package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/ranihwanifactory/watchclock/pkg/audio"
	"github.com/ranihwanifactory/watchclock/pkg/clock"
	"github.com/ranihwanifactory/watchclock/pkg/config"
	"github.com/ranihwanifactory/watchclock/pkg/heartbeat"
	"github.com/ranihwanifactory/watchclock/pkg/message"
	"github.com/ranihwanifactory/watchclock/pkg/models"
	"github.com/ranihwanifactory/watchclock/pkg/notify"
	"github.com/ranihwanifactory/watchclock/pkg/platform"
	"github.com/ranihwanifactory/watchclock/pkg/store"
)

const (
	appID   = "com.ranihwanifactory.watchclock"
	appName = "watchclock"
)

type WatchClock struct {
	app       fyne.App
	config    config.Config
	settings  *store.SettingsStore
	prefs     models.Settings
	scheduler heartbeat.Scheduler

	alarms      *store.AlarmStore
	synth       *audio.Synthesizer
	messages    *message.Service
	coordinator *notify.Coordinator
	tickLoop    *clock.TickLoop

	mainWindow    *MainWindow
	ringingWindow *RingingWindow
	lastTrayMin   string
}

func main() {
	wc := &WatchClock{
		app:       app.NewWithID(appID),
		scheduler: heartbeat.NewTicker(),
	}

	if err := wc.initialize(); err != nil {
		log.Fatal(err)
	}

	wc.run()
}

func (wc *WatchClock) initialize() error {
	cfg, err := config.Load(appName)
	if err != nil {
		log.Printf("Warning: using default config: %v", err)
	}
	wc.config = cfg

	wc.settings = store.NewSettingsStore(wc.app)
	wc.prefs = wc.settings.Load()

	// Sync autostart state with settings on startup
	if err := setupAutostart(wc.prefs.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	wc.alarms = store.NewAlarmStore(store.NewPrefsPersister(wc.app.Preferences()))

	wc.synth = audio.NewSynthesizer(audio.Options{
		SampleRate: wc.config.Audio.SampleRate,
		Volume:     wc.config.Audio.Volume,
		Scheduler:  wc.scheduler,
	})
	wc.synth.SetMuted(wc.prefs.Muted)

	client := message.NewGeminiClient(context.Background(), &http.Client{Timeout: 30 * time.Second},
		wc.config.Message.Endpoint, wc.config.Message.Model, wc.config.Message.APIKeyEnv)
	wc.messages = &message.Service{
		Source:   client,
		Timeout:  wc.config.Message.Timeout(),
		Language: wc.config.Message.Language,
	}

	wc.coordinator = notify.NewCoordinator(notify.Options{
		Sound:     wc.synth,
		Motivator: wc.messages,
	})
	go wc.watchAlarms(wc.coordinator.Subscribe(8))

	wc.tickLoop = clock.NewTickLoop(wc.scheduler, wc.alarms, clock.Handlers{
		OnTick: wc.onTick,
		OnMatch: func(alarm models.Alarm, at time.Time) {
			wc.coordinator.HandleMatch(alarm, at)
		},
	})

	wc.mainWindow = NewMainWindow(wc)
	wc.setupSystemTray()
	wc.tickLoop.Start()

	log.Printf("[ALARM] Loaded %d alarms", wc.alarms.Len())
	return nil
}

func (wc *WatchClock) run() {
	wc.app.Lifecycle().SetOnStarted(func() {
		platform.HideDockIcon()
		wc.mainWindow.Show()
		wc.mainWindow.RefreshGreeting()
	})
	wc.app.Run()
}

// onTick runs on the heartbeat goroutine once per second
func (wc *WatchClock) onTick(now time.Time) {
	minute := now.Format("2006-01-02 15:04")
	trayStale := minute != wc.lastTrayMin
	wc.lastTrayMin = minute

	fyne.Do(func() {
		wc.mainWindow.SetTime(now)
		if trayStale {
			wc.updateSystemTrayMenu()
		}
	})
}

// watchAlarms shows and hides the ringing window as the coordinator changes state
func (wc *WatchClock) watchAlarms(events <-chan notify.Event) {
	for event := range events {
		switch event.Type {
		case notify.EventRing:
			ringing, ok := wc.coordinator.Ringing()
			if !ok {
				continue
			}
			fyne.Do(func() { wc.showRinging(ringing) })
		case notify.EventMessage:
			text := event.Message
			fyne.Do(func() {
				if wc.ringingWindow != nil {
					wc.ringingWindow.SetMessage(text)
				}
			})
		case notify.EventDismiss:
			fyne.Do(wc.closeRinging)
		}
	}
}

func (wc *WatchClock) showRinging(ringing notify.RingingState) {
	wc.closeRinging()
	wc.ringingWindow = NewRingingWindow(wc.app, ringing, wc.prefs.HoldTime(), wc.scheduler, func() {
		wc.coordinator.Dismiss()
	})
	wc.ringingWindow.Show()
}

func (wc *WatchClock) closeRinging() {
	if wc.ringingWindow != nil {
		wc.ringingWindow.Close()
		wc.ringingWindow = nil
	}
}

// greeting fetches a greeting for the current time without blocking the UI
func (wc *WatchClock) greeting(done func(string)) {
	timeOfDay := time.Now().Format("15:04")
	go func() {
		text := wc.messages.Greeting(context.Background(), timeOfDay)
		fyne.Do(func() { done(text) })
	}()
}

func (wc *WatchClock) setMuted(muted bool) {
	wc.synth.SetMuted(muted)
	wc.prefs.Muted = muted
	wc.settings.Save(wc.prefs)
	if wc.mainWindow != nil {
		wc.mainWindow.SetMuted(muted)
	}
	log.Printf("[AUDIO] Muted: %v", muted)
}

func (wc *WatchClock) setAutoStart(enabled bool) error {
	if err := setupAutostart(enabled); err != nil {
		return err
	}
	wc.prefs.AutoStart = enabled
	wc.settings.Save(wc.prefs)
	return nil
}

func (wc *WatchClock) quit() {
	wc.tickLoop.Stop()
	wc.coordinator.Close()
	wc.synth.StopAlarmLoop()
	wc.mainWindow.Teardown()
	wc.app.Quit()
}
