package audio

import "github.com/valerio/go-nesapu/nesapu/bit"

// triangle is the triangle wave channel ($4008-$400B). Its control bit both
// halts the length counter and holds the linear counter reload flag.
type triangle struct {
	enabled bool

	timer  uint16
	reload uint16

	control       bool
	linear        uint8 // 0-127
	linearReload  uint8
	reloadPending bool

	length lengthCounter

	step uint8 // 0-31, index into triangleSequence
	out  int32
}

func (t *triangle) writeLinear(value uint8) {
	t.control = value&0x80 != 0
	t.length.halt = t.control
	t.linearReload = value & 0x7F
}

func (t *triangle) writeTimerLow(value uint8) {
	t.reload = bit.Combine(bit.High(t.reload), value)
}

func (t *triangle) writeTimerHigh(value uint8) {
	t.reload = bit.Combine(value&0x07, bit.Low(t.reload))
	t.length.load(value >> 3)
	t.reloadPending = true
}

// clockLinear runs the linear counter on quarter-frame events.
func (t *triangle) clockLinear() {
	if t.reloadPending {
		t.linear = t.linearReload
	} else if t.linear > 0 {
		t.linear--
	}

	if !t.control {
		t.reloadPending = false
	}
}

func (t *triangle) clock() channelEvent {
	if t.timer > 0 {
		t.timer--
	} else {
		t.timer = t.reload
		if t.linear > 0 && t.length.active() {
			t.step = (t.step + 1) & 0x1F
		}
	}

	if !t.length.active() || t.linear == 0 || t.reload <= triangleMinReload {
		t.out = 0
		return eventNone
	}

	t.out = (int32(triangleSequence[t.step]) - triangleCenter) * triangleAmplitude
	return eventNone
}

func (t *triangle) output() int32 { return t.out }

func (t *triangle) setEnabled(enabled bool) {
	t.enabled = enabled
	if !enabled {
		t.length.counter = 0
	}
}

func (t *triangle) active() bool { return t.length.active() }

func (t *triangle) state() ChannelState {
	return ChannelState{
		Enabled: t.enabled,
		Period:  t.reload,
		Length:  t.length.counter,
		Halted:  t.length.halt,
		Linear:  t.linear,
		Step:    t.step,
		Output:  t.out,
	}
}
