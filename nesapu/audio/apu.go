package audio

import (
	"log/slog"
)

// APU implements the NES 2A03 Audio Processing Unit.
// Reference: https://www.nesdev.org/wiki/APU
//
// The APU is not safe for concurrent use. Tick, register access and buffer
// draining are expected to run on the host's emulation goroutine; a host that
// drains audio elsewhere must synchronise those calls itself.
type APU struct {
	pulse1   pulse
	pulse2   pulse
	triangle triangle
	noise    noise
	dmc      dmc

	// units indexes the channels above by Channel, for uniform dispatch
	units [ChannelCount]unit
	muted [ChannelCount]bool

	frame frameSequencer

	cycles     uint64 // master ticks since power on or reset
	buffer     SampleBuffer
	lastSample int16

	logger     *slog.Logger
	irqHandler func()
}

// Option configures an APU at construction.
type Option func(*APU)

// WithLogger sets the logger used for state change diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *APU) { a.logger = logger }
}

// WithIRQHandler registers a function called whenever the APU raises the
// frame or DMC interrupt flag. It should be wired to the CPU's IRQ line.
func WithIRQHandler(irq func()) Option {
	return func(a *APU) { a.irqHandler = irq }
}

// New creates an APU in its power-on state. mem is used by the DMC to fetch
// sample bytes; a nil mem reads every address as 0.
func New(mem MemoryReader, opts ...Option) *APU {
	if mem == nil {
		mem = openBus{}
	}

	a := &APU{logger: slog.Default()}
	a.dmc.mem = mem
	a.units = [ChannelCount]unit{&a.pulse1, &a.pulse2, &a.triangle, &a.noise, &a.dmc}
	for _, opt := range opts {
		opt(a)
	}
	a.Reset()
	return a
}

// Reset returns the APU to its power-on state: everything zeroed except the
// noise LFSR. Debug mutes are cleared too.
func (a *APU) Reset() {
	mem := a.dmc.mem

	a.pulse1 = pulse{}
	a.pulse2 = pulse{}
	a.triangle = triangle{}
	a.noise = noise{lfsr: lfsrInitialValue}
	a.dmc = dmc{mem: mem}
	a.muted = [ChannelCount]bool{}

	a.frame = frameSequencer{}
	a.cycles = 0
	a.buffer.Clear()
	a.lastSample = 0

	a.logger.Debug("APU reset")
}

// Tick advances the APU by one master clock cycle. Channel timers run at half
// that rate, the frame sequencer every frameSequencerTicks cycles and a mixed
// sample is buffered every sampleTicks cycles.
func (a *APU) Tick() {
	a.cycles++

	if a.cycles%channelClockDivider == 0 {
		for _, u := range a.units {
			if ev := u.clock(); ev != eventNone {
				a.handleChannelEvent(ev)
			}
		}

		if a.cycles%frameSequencerTicks == 0 {
			a.clockFrameSequencer()
		}
	}

	if a.cycles%sampleTicks == 0 {
		a.lastSample = a.mix()
		a.buffer.push(a.lastSample)
	}
}

func (a *APU) handleChannelEvent(ev channelEvent) {
	switch ev {
	case eventDMCIRQ:
		a.frame.dmcIRQ = true
		a.logger.Debug("DMC IRQ raised", "cycle", a.cycles)
		a.raiseIRQ()
	case eventDMCLoop:
		a.logger.Debug("DMC sample looped", "address", a.dmc.sampleAddress, "length", a.dmc.sampleLength)
	}
}

func (a *APU) clockFrameSequencer() {
	ev := a.frame.clock()

	if ev&frameHalf != 0 {
		a.pulse1.length.clock()
		a.pulse2.length.clock()
		a.triangle.length.clock()
		a.noise.length.clock()
		a.pulse1.sweep.clock(&a.pulse1.reload)
		a.pulse2.sweep.clock(&a.pulse2.reload)
	}

	if ev&frameQuarter != 0 {
		a.pulse1.env.clock()
		a.pulse2.env.clock()
		a.noise.env.clock()
		a.triangle.clockLinear()
	}

	if ev&frameIRQRaised != 0 {
		a.logger.Debug("Frame IRQ raised", "cycle", a.cycles)
		a.raiseIRQ()
	}
}

func (a *APU) raiseIRQ() {
	if a.irqHandler != nil {
		a.irqHandler()
	}
}

// mix averages the five channel outputs and clamps to 16 bits.
// This is a linear approximation, not the hardware's non-linear mixer.
func (a *APU) mix() int16 {
	var mixed int32
	for i, u := range a.units {
		if !a.muted[i] {
			mixed += u.output()
		}
	}
	mixed /= ChannelCount

	if mixed > maxSampleValue {
		mixed = maxSampleValue
	} else if mixed < minSampleValue {
		mixed = minSampleValue
	}

	return int16(mixed)
}

// GetAudioSamples copies up to count buffered samples into dst, oldest first,
// and zero-fills the remainder of dst[:count]. The buffer is left untouched;
// call ClearAudioBuffer once the samples have been consumed.
// It returns the number of buffered samples copied.
func (a *APU) GetAudioSamples(dst []int16, count int) int {
	return a.buffer.Copy(dst, count)
}

// ClearAudioBuffer empties the sample buffer.
func (a *APU) ClearAudioBuffer() {
	a.buffer.Clear()
}

// BufferedSamples returns the number of samples waiting in the buffer.
func (a *APU) BufferedSamples() int {
	return a.buffer.Len()
}

// BufferFull reports whether newly mixed samples are being dropped.
func (a *APU) BufferFull() bool {
	return a.buffer.Full()
}

// Cycles returns the number of master ticks since power on or the last reset.
func (a *APU) Cycles() uint64 {
	return a.cycles
}

// FrameIRQ returns the sticky frame sequencer interrupt flag.
func (a *APU) FrameIRQ() bool {
	return a.frame.frameIRQ
}

// DMCIRQ returns the sticky DMC interrupt flag.
func (a *APU) DMCIRQ() bool {
	return a.frame.dmcIRQ
}

// IRQ reports whether the APU is asserting the CPU's IRQ line.
func (a *APU) IRQ() bool {
	return a.frame.frameIRQ || a.frame.dmcIRQ
}

// AcknowledgeDMCIRQ clears the DMC interrupt flag. Hosts call this from their
// interrupt acknowledge path; a $4015 write has the same effect.
func (a *APU) AcknowledgeDMCIRQ() {
	a.frame.dmcIRQ = false
}
