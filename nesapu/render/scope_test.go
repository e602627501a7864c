package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-nesapu/nesapu/addr"
	"github.com/valerio/go-nesapu/nesapu/audio"
	"github.com/valerio/go-nesapu/nesapu/debug"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	return screen
}

// row returns the text of one screen row with trailing blanks removed.
func row(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		runes := cells[y*width+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func TestScope_Draw(t *testing.T) {
	screen := newTestScreen(t)
	defer screen.Fini()
	scope := NewScope(screen)

	data := &debug.AudioData{FrameStep: 2, DMCIRQ: true, LastSample: -204}
	for _, c := range audio.Channels() {
		data.Channels[c].Name = c.String()
	}
	data.Channels[audio.Pulse1].Output = 15000
	data.Channels[audio.Noise].Output = 7500
	data.Channels[audio.DMC].Muted = true

	scope.Draw(data)

	barWidth := 80 - labelWidth - 1
	assert.True(t, strings.HasPrefix(row(screen, 0), "NES APU"))
	assert.Equal(t, "Pulse 1", strings.TrimSpace(row(screen, 2)[:labelWidth]))
	assert.Equal(t, barWidth, strings.Count(row(screen, 2), "█"), "a full scale output fills the bar")
	assert.Equal(t, 0, strings.Count(row(screen, 3), "█"))
	assert.Equal(t, barWidth/2, strings.Count(row(screen, 5), "█"))
	assert.Equal(t, "DMC M", row(screen, 6))
	assert.Contains(t, row(screen, 10), "step 2/4  frame irq off  dmc irq ON  sample -204")
}

func TestScope_HandleEvent(t *testing.T) {
	screen := newTestScreen(t)
	defer screen.Fini()
	scope := NewScope(screen)

	tests := []struct {
		name string
		ev   tcell.Event
		quit bool
	}{
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), true},
		{"other keys do nothing", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{"resize", tcell.NewEventResize(100, 40), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.quit, scope.HandleEvent(tt.ev))
		})
	}
}

func TestScope_ToggleMutes(t *testing.T) {
	screen := newTestScreen(t)
	defer screen.Fini()
	scope := NewScope(screen)
	apu := audio.New(nil)

	assert.False(t, scope.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone)))
	assert.False(t, scope.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '5', tcell.ModNone)))
	assert.False(t, apu.State().Channels[audio.Pulse1].Muted, "toggles wait for the next update")

	scope.Update(apu)
	state := apu.State()
	assert.True(t, state.Channels[audio.Pulse1].Muted)
	assert.False(t, state.Channels[audio.Pulse2].Muted)
	assert.True(t, state.Channels[audio.DMC].Muted)
	assert.Equal(t, "Pulse 1 M", strings.TrimSpace(row(screen, 2)))
}

func TestScope_UpdateDrawsLiveState(t *testing.T) {
	screen := newTestScreen(t)
	defer screen.Fini()
	scope := NewScope(screen)

	apu := audio.New(nil)
	apu.WriteRegister(addr.Status, 0x01)
	apu.WriteRegister(addr.Pulse1Control, 0xBF)
	apu.WriteRegister(addr.Pulse1TimerLo, 0x10)
	apu.WriteRegister(addr.Pulse1TimerHi, 0x08)
	apu.Tick()
	apu.Tick()

	scope.Update(apu)
	assert.Equal(t, 80-labelWidth-1, strings.Count(row(screen, 2), "█"))
}

func TestScope_RunQuitsOnKey(t *testing.T) {
	screen := newTestScreen(t)
	scope := NewScope(screen)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	err := scope.Run(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.NoError(t, err, "quitting is not an error")
}

func TestScope_RunReturnsPlayError(t *testing.T) {
	screen := newTestScreen(t)
	scope := NewScope(screen)

	err := scope.Run(context.Background(), func(context.Context) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}
