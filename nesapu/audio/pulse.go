package audio

import "github.com/valerio/go-nesapu/nesapu/bit"

// pulse is one of the two square wave channels ($4000-$4007).
type pulse struct {
	enabled bool

	duty     uint8 // 0-3, index into dutyTable
	dutyStep uint8 // 0-7

	timer  uint16
	reload uint16

	env    envelope
	length lengthCounter
	sweep  sweep

	out int32
}

func (p *pulse) writeControl(value uint8) {
	p.duty = bit.ExtractBits(value, 7, 6)
	p.length.halt = value&0x20 != 0
	p.env.write(value)
}

func (p *pulse) writeTimerLow(value uint8) {
	p.reload = bit.Combine(bit.High(p.reload), value)
}

// writeTimerHigh loads the length counter, restarts the envelope and resets
// the duty sequencer.
func (p *pulse) writeTimerHigh(value uint8) {
	p.reload = bit.Combine(value&0x07, bit.Low(p.reload))
	p.length.load(value >> 3)
	p.env.start = true
	p.dutyStep = 0
}

func (p *pulse) clock() channelEvent {
	if p.timer > 0 {
		p.timer--
	} else {
		p.timer = p.reload
		p.dutyStep = (p.dutyStep + 1) & 0x07
	}

	if !p.length.active() || p.reload <= pulseMinReload {
		p.out = 0
		return eventNone
	}

	if dutyTable[p.duty][p.dutyStep] == 1 {
		p.out = int32(p.env.volume()) * pulseAmplitude
	} else {
		p.out = 0
	}
	return eventNone
}

func (p *pulse) output() int32 { return p.out }

func (p *pulse) setEnabled(enabled bool) {
	p.enabled = enabled
	if !enabled {
		p.length.counter = 0
	}
}

func (p *pulse) active() bool { return p.length.active() }

func (p *pulse) state() ChannelState {
	return ChannelState{
		Enabled: p.enabled,
		Period:  p.reload,
		Length:  p.length.counter,
		Halted:  p.length.halt,
		Volume:  p.env.volume(),
		Duty:    p.duty,
		Step:    p.dutyStep,
		Output:  p.out,
	}
}
