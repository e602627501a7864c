package audio

// Timing constants
// Reference: https://www.nesdev.org/wiki/APU
const (
	// CPUFrequency is the NTSC 2A03 master clock rate the core is ticked at.
	CPUFrequency = 1789773

	// channelClockDivider gates channel timers to every other master tick.
	channelClockDivider = 2

	// frameSequencerTicks is the number of master ticks between frame sequencer steps.
	frameSequencerTicks = 14914

	// sampleTicks is the number of master ticks between output samples.
	sampleTicks = 81
)

// Output constants
const (
	// BufferSize is the capacity of the sample buffer. Samples produced while the
	// buffer is full are dropped until the host drains and clears it.
	BufferSize = 1024

	// SampleRate is the nominal output rate. The core actually emits
	// EffectiveSampleRate samples per second, see sampleTicks.
	SampleRate = 44100

	// EffectiveSampleRate is the rate samples are appended at, rounded to the
	// nearest Hz: CPUFrequency / sampleTicks.
	EffectiveSampleRate = (CPUFrequency + sampleTicks/2) / sampleTicks

	maxSampleValue = 32767
	minSampleValue = -32768
)

// Channel output scaling
const (
	pulseAmplitude    = 1000
	noiseAmplitude    = 1000
	triangleAmplitude = 200
	triangleCenter    = 7
	dmcAmplitude      = 16
	dmcCenter         = 64
)

// Channel constants
const (
	lfsrInitialValue = 1

	// pulses with a reload at or below this value are silenced
	pulseMinReload = 7
	// triangles with a reload at or below this value are silenced
	triangleMinReload = 1

	envelopeMax = 15

	dmcLevelMax       = 125 // highest level an increment is still applied at
	dmcLevelMin       = 2   // lowest level a decrement is still applied at
	dmcLevelStep      = 2
	dmcRateZeroReload = 428
	dmcRateScale      = 32
)
