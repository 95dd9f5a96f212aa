package components

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/ranihwanifactory/watchclock/pkg/heartbeat"
)

// holdTick is how often the hold progress advances
const holdTick = 50 * time.Millisecond

// HoldButton is a button that fires only after being held down for HoldTime.
// Releasing or leaving the button early resets the progress.
type HoldButton struct {
	widget.BaseWidget
	Text        string
	HoldTime    time.Duration
	OnCompleted func()

	scheduler heartbeat.Scheduler

	mu       sync.Mutex
	holding  bool
	hovered  bool
	progress float64
	held     time.Duration
	beat     *heartbeat.Handle
	gen      int
}

// NewHoldButton creates a HoldButton. A nil scheduler uses the real clock.
func NewHoldButton(text string, holdTime time.Duration, scheduler heartbeat.Scheduler, onCompleted func()) *HoldButton {
	if scheduler == nil {
		scheduler = heartbeat.NewTicker()
	}
	if holdTime <= 0 {
		holdTime = holdTick
	}
	b := &HoldButton{
		Text:        text,
		HoldTime:    holdTime,
		OnCompleted: onCompleted,
		scheduler:   scheduler,
	}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	progressBar := canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          bg,
		progressBar: progressBar,
	}
}

// Progress returns the hold progress in [0, 1]
func (b *HoldButton) Progress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}

// Tapped implements fyne.Tappable
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

// TappedSecondary implements fyne.SecondaryTappable
func (b *HoldButton) TappedSecondary(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.mu.Lock()
	b.hovered = true
	b.mu.Unlock()
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.mu.Lock()
	b.hovered = false
	b.mu.Unlock()
	b.release()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	b.mu.Lock()
	if b.holding {
		b.mu.Unlock()
		return
	}
	b.holding = true
	b.progress = 0
	b.held = 0
	b.gen++
	gen := b.gen
	b.beat = b.scheduler.Every(holdTick, func() { b.advance(gen) })
	b.mu.Unlock()
	b.refresh()
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.release()
}

func (b *HoldButton) release() {
	b.mu.Lock()
	b.stopLocked()
	b.progress = 0
	b.held = 0
	b.mu.Unlock()
	b.refresh()
}

func (b *HoldButton) stopLocked() {
	b.holding = false
	if b.beat != nil {
		b.beat.Cancel()
		b.beat = nil
	}
}

func (b *HoldButton) advance(gen int) {
	b.mu.Lock()
	if !b.holding || gen != b.gen {
		b.mu.Unlock()
		return
	}

	b.held += holdTick
	b.progress = float64(b.held) / float64(b.HoldTime)
	completed := b.held >= b.HoldTime
	if completed {
		b.progress = 1
		b.stopLocked()
	}
	onCompleted := b.OnCompleted
	b.mu.Unlock()

	b.refresh()
	if completed && onCompleted != nil {
		onCompleted()
	}
}

func (b *HoldButton) refresh() {
	fyne.Do(b.Refresh)
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)
	r.layoutProgress(size)
}

func (r *holdButtonRenderer) layoutProgress(size fyne.Size) {
	progressWidth := size.Width * float32(r.button.Progress())
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))
	r.progressBar.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	minWidth := max(textSize.Width+theme.Padding()*4, 300)
	minHeight := max(textSize.Height+theme.Padding()*2, 80)
	return fyne.NewSize(minWidth, minHeight)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.Color(theme.ColorNameForeground)

	r.button.mu.Lock()
	hovered := r.button.hovered
	r.button.mu.Unlock()
	if hovered {
		r.bg.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.bg.FillColor = theme.Color(theme.ColorNameButton)
	}

	r.layoutProgress(r.bg.Size())

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.Color(theme.ColorNameButton)
}
