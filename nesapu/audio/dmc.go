package audio

// MemoryReader is the host's view of the CPU address space, used by the DMC
// to fetch sample bytes. Reads happen synchronously inside Tick.
type MemoryReader interface {
	Read(address uint16) uint8
}

// MemoryReaderFunc adapts a plain function to MemoryReader.
type MemoryReaderFunc func(address uint16) uint8

func (f MemoryReaderFunc) Read(address uint16) uint8 { return f(address) }

type openBus struct{}

func (openBus) Read(uint16) uint8 { return 0 }

// dmc is the delta modulation channel ($4010-$4013). It plays 1-bit delta
// encoded samples fetched from memory into a 7-bit output level.
type dmc struct {
	mem MemoryReader

	enabled    bool
	irqEnabled bool
	loop       bool

	timer  uint16
	reload uint16

	level uint8 // 0-127

	sampleByte    uint8
	shiftRegister uint8
	bitsRemaining uint8 // 0-8

	sampleAddress  uint16
	sampleLength   uint16
	currentAddress uint16
	bytesRemaining uint16

	out int32
}

func (d *dmc) writeControl(value uint8) {
	d.irqEnabled = value&0x80 != 0
	d.loop = value&0x40 != 0
	d.reload = dmcReload(value & 0x0F)
}

// dmcReload converts a 4-bit rate code to a timer reload value.
func dmcReload(rate uint8) uint16 {
	if rate == 0 {
		return dmcRateZeroReload
	}
	return uint16(rate) * dmcRateScale
}

func (d *dmc) writeLoad(value uint8) {
	d.level = value & 0x7F
}

func (d *dmc) writeAddress(value uint8, base uint16) {
	d.sampleAddress = base | (uint16(value) << 6)
}

func (d *dmc) writeLength(value uint8) {
	d.sampleLength = (uint16(value) << 4) + 1
}

func (d *dmc) restart() {
	d.currentAddress = d.sampleAddress
	d.bytesRemaining = d.sampleLength
}

func (d *dmc) clock() channelEvent {
	ev := eventNone

	if d.timer > 0 {
		d.timer--
	} else {
		d.timer = d.reload
		d.clockOutput()
		if d.bitsRemaining == 0 && d.bytesRemaining > 0 {
			ev = d.fetch()
		}
	}

	d.out = (int32(d.level) - dmcCenter) * dmcAmplitude
	return ev
}

// clockOutput shifts one bit out of the shift register into the output level.
// The level saturates at both ends.
func (d *dmc) clockOutput() {
	if d.bitsRemaining == 0 {
		return
	}

	if d.shiftRegister&0x01 != 0 {
		if d.level <= dmcLevelMax {
			d.level += dmcLevelStep
		}
	} else if d.level >= dmcLevelMin {
		d.level -= dmcLevelStep
	}

	d.shiftRegister >>= 1
	d.bitsRemaining--
}

// fetch reads the next sample byte and handles the end of the sample.
func (d *dmc) fetch() channelEvent {
	d.sampleByte = d.mem.Read(d.currentAddress)
	d.shiftRegister = d.sampleByte
	d.bitsRemaining = 8
	d.currentAddress++
	d.bytesRemaining--

	if d.bytesRemaining > 0 {
		return eventNone
	}

	if d.loop {
		d.restart()
		return eventDMCLoop
	}
	if d.irqEnabled {
		return eventDMCIRQ
	}
	return eventNone
}

func (d *dmc) output() int32 { return d.out }

// setEnabled stops playback when disabled, and starts the sample from the
// beginning when enabled with nothing left to play.
func (d *dmc) setEnabled(enabled bool) {
	d.enabled = enabled
	if !enabled {
		d.bytesRemaining = 0
		return
	}
	if d.bytesRemaining == 0 {
		d.restart()
	}
}

func (d *dmc) active() bool { return d.bytesRemaining > 0 }

func (d *dmc) state() ChannelState {
	return ChannelState{
		Enabled:   d.enabled,
		Period:    d.reload,
		Level:     d.level,
		Shift:     uint16(d.shiftRegister),
		Address:   d.currentAddress,
		Remaining: d.bytesRemaining,
		Loop:      d.loop,
		Output:    d.out,
	}
}
