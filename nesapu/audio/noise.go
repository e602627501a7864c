package audio

// noise is the pseudo-random noise channel ($400C-$400F).
type noise struct {
	enabled bool

	timer  uint16
	reload uint16

	// mode selects the feedback tap: bit 1 when false, bit 6 when true
	mode bool
	lfsr uint16 // 15 bits, seeded to 1

	env    envelope
	length lengthCounter

	out int32
}

func (n *noise) writeControl(value uint8) {
	n.length.halt = value&0x20 != 0
	n.env.write(value)
}

func (n *noise) writePeriod(value uint8) {
	n.mode = value&0x80 != 0
	n.reload = noisePeriodTable[value&0x0F]
}

func (n *noise) writeLength(value uint8) {
	n.length.load(value >> 3)
	n.env.start = true
}

// shift clocks the LFSR once.
func (n *noise) shift() {
	tap := uint16(1)
	if n.mode {
		tap = 6
	}
	feedback := (n.lfsr ^ (n.lfsr >> tap)) & 0x01
	n.lfsr = (n.lfsr >> 1) | (feedback << 14)
}

func (n *noise) clock() channelEvent {
	if n.timer > 0 {
		n.timer--
	} else {
		n.timer = n.reload
		n.shift()
	}

	if !n.length.active() || n.lfsr&0x01 != 0 {
		n.out = 0
		return eventNone
	}

	n.out = int32(n.env.volume()) * noiseAmplitude
	return eventNone
}

func (n *noise) output() int32 { return n.out }

func (n *noise) setEnabled(enabled bool) {
	n.enabled = enabled
	if !enabled {
		n.length.counter = 0
	}
}

func (n *noise) active() bool { return n.length.active() }

func (n *noise) state() ChannelState {
	return ChannelState{
		Enabled: n.enabled,
		Period:  n.reload,
		Length:  n.length.counter,
		Halted:  n.length.halt,
		Volume:  n.env.volume(),
		Mode:    n.mode,
		Shift:   n.lfsr,
		Output:  n.out,
	}
}
