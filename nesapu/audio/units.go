package audio

import "github.com/valerio/go-nesapu/nesapu/bit"

// envelope is the volume generator shared by the pulse and noise channels.
// It is clocked on quarter-frame events.
type envelope struct {
	start    bool
	loop     bool
	constant bool
	period   uint8 // constant volume, or divider reload when not constant
	divider  uint8
	decay    uint8
}

// write decodes the loop, constant volume and volume/period bits shared by
// $4000, $4004 and $400C.
func (e *envelope) write(value uint8) {
	e.loop = value&0x20 != 0
	e.constant = value&0x10 != 0
	e.period = value & 0x0F
}

func (e *envelope) clock() {
	if e.start {
		e.start = false
		e.decay = envelopeMax
		e.divider = e.period
		return
	}

	if e.divider > 0 {
		e.divider--
		return
	}

	e.divider = e.period
	if e.decay > 0 {
		e.decay--
	} else if e.loop {
		e.decay = envelopeMax
	}
}

func (e *envelope) volume() uint8 {
	if e.constant {
		return e.period
	}
	return e.decay
}

// lengthCounter silences its channel once it counts down to zero.
// It is clocked on half-frame events and never decrements while halted.
type lengthCounter struct {
	counter uint8
	halt    bool
}

func (l *lengthCounter) load(index uint8) {
	l.counter = LengthTableValue(index)
}

func (l *lengthCounter) clock() {
	if !l.halt && l.counter > 0 {
		l.counter--
	}
}

func (l *lengthCounter) active() bool {
	return l.counter > 0
}

// sweep periodically adjusts a pulse channel's timer reload.
type sweep struct {
	enabled bool
	negate  bool
	period  uint8
	shift   uint8
	divider uint8
	reload  bool
}

func (s *sweep) write(value uint8) {
	s.enabled = value&0x80 != 0
	s.period = bit.ExtractBits(value, 6, 4)
	s.negate = value&0x08 != 0
	s.shift = value & 0x07
	s.reload = true
}

// clock runs the sweep divider and, when it expires, applies the shifted
// change to target. The result wraps at 16 bits: there is no overflow muting.
func (s *sweep) clock(target *uint16) {
	if s.reload {
		s.reload = false
		s.divider = s.period
		return
	}

	if s.divider > 0 {
		s.divider--
		return
	}

	s.divider = s.period
	if !s.enabled || s.shift == 0 {
		return
	}

	change := *target >> s.shift
	if s.negate {
		*target -= change
	} else {
		*target += change
	}
}
