package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-nesapu/nesapu/audio"
	"github.com/valerio/go-nesapu/nesapu/debug"
)

const (
	labelWidth = 12
	// maxMix is the largest mixed sample the five channels can produce.
	maxMix = (2*15000 + 1600 + 15000 + 1008) / audio.ChannelCount
)

// channelPeak is the largest absolute output each channel can reach.
var channelPeak = [audio.ChannelCount]int32{15000, 15000, 1600, 15000, 1024}

var channelColors = [audio.ChannelCount]tcell.Color{
	tcell.ColorGreen, tcell.ColorLime, tcell.ColorAqua, tcell.ColorYellow, tcell.ColorFuchsia,
}

// Scope is a terminal level meter: one bar per channel plus the mix.
//
// Key presses are read on their own goroutine but mute toggles are only
// applied in Update, on the goroutine that ticks the APU.
type Scope struct {
	screen  tcell.Screen
	toggles chan audio.Channel
}

// NewScope wraps an initialised screen.
func NewScope(screen tcell.Screen) *Scope {
	return &Scope{
		screen:  screen,
		toggles: make(chan audio.Channel, 16),
	}
}

// NewTerminalScope opens the controlling terminal.
func NewTerminalScope() (*Scope, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	return NewScope(screen), nil
}

// Run calls play with a context that is cancelled when the user quits or
// on SIGINT/SIGTERM, then releases the terminal. A quit is not an error.
func (s *Scope) Run(ctx context.Context, play func(ctx context.Context) error) error {
	defer func() {
		slog.Info("Finishing terminal")
		s.screen.Fini()
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.screen.Clear()

	go s.handleInput(cancel)

	err := play(ctx)
	if errors.Is(err, context.Canceled) {
		slog.Info("Received signal to stop")
		return nil
	}
	return err
}

func (s *Scope) handleInput(quit context.CancelFunc) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		if s.HandleEvent(ev) {
			quit()
			return
		}
	}
}

// HandleEvent processes one terminal event and reports whether the user asked
// to quit. Keys 1-5 queue a mute toggle for the matching channel.
func (s *Scope) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			r := ev.Rune()
			switch {
			case r == 'q':
				return true
			case r >= '1' && r <= '5':
				select {
				case s.toggles <- audio.Channel(r - '1'):
				default:
				}
			}
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return false
}

// Update applies queued mute toggles to p and draws its current state.
func (s *Scope) Update(p audio.Provider) {
drain:
	for {
		select {
		case ch := <-s.toggles:
			p.ToggleChannel(ch)
		default:
			break drain
		}
	}

	s.Draw(debug.ExtractAudioData(p.State()))
}

// Draw renders one frame.
func (s *Scope) Draw(data *debug.AudioData) {
	s.screen.Clear()
	width, _ := s.screen.Size()
	barWidth := max(width-labelWidth-1, 0)

	s.text(0, 0, "NES APU  [q] quit  [1-5] mute", tcell.StyleDefault.Bold(true))

	for i, ch := range data.Channels {
		y := 2 + i
		style := tcell.StyleDefault.Foreground(channelColors[i])
		label := ch.Name
		if ch.Muted {
			style = tcell.StyleDefault.Foreground(tcell.ColorGray)
			label += " M"
		}
		s.text(0, y, label, style)
		s.bar(labelWidth, y, barWidth, abs(ch.Output), channelPeak[i], style)
	}

	mixY := 3 + audio.ChannelCount
	s.text(0, mixY, "Mix", tcell.StyleDefault)
	s.bar(labelWidth, mixY, barWidth, abs(int32(data.LastSample)), maxMix, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	steps := 4
	if data.FiveStep {
		steps = 5
	}
	status := fmt.Sprintf("step %d/%d  frame irq %s  dmc irq %s  sample %d",
		data.FrameStep, steps, onOff(data.FrameIRQ), onOff(data.DMCIRQ), data.LastSample)
	s.text(0, mixY+2, status, tcell.StyleDefault)

	s.screen.Show()
}

func (s *Scope) text(x, y int, str string, style tcell.Style) {
	for i, r := range []rune(str) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// bar draws a horizontal bar of value/peak of width cells.
func (s *Scope) bar(x, y, width int, value, peak int32, style tcell.Style) {
	if peak <= 0 {
		return
	}
	n := int(int64(min(value, peak)) * int64(width) / int64(peak))
	for i := 0; i < n; i++ {
		s.screen.SetContent(x+i, y, '█', nil, style)
	}
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "off"
}
