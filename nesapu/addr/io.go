package addr

// APU registers
// Reference: https://www.nesdev.org/wiki/APU_registers
const (
	// APU register range
	APUStart uint16 = 0x4000
	APUEnd   uint16 = 0x4017

	// Pulse 1
	Pulse1Control uint16 = 0x4000 // Duty, length halt / envelope loop, constant volume, volume
	Pulse1Sweep   uint16 = 0x4001 // Sweep enable, period, negate, shift
	Pulse1TimerLo uint16 = 0x4002 // Timer low 8 bits
	Pulse1TimerHi uint16 = 0x4003 // Length counter load, timer high 3 bits

	// Pulse 2
	Pulse2Control uint16 = 0x4004
	Pulse2Sweep   uint16 = 0x4005
	Pulse2TimerLo uint16 = 0x4006
	Pulse2TimerHi uint16 = 0x4007

	// Triangle
	TriangleLinear  uint16 = 0x4008 // Linear counter control / length halt, reload value
	TriangleTimerLo uint16 = 0x400A
	TriangleTimerHi uint16 = 0x400B

	// Noise
	NoiseControl uint16 = 0x400C // Length halt / envelope loop, constant volume, volume
	NoisePeriod  uint16 = 0x400E // Mode, period index
	NoiseLength  uint16 = 0x400F // Length counter load

	// DMC
	DMCControl uint16 = 0x4010 // IRQ enable, loop, rate index
	DMCLoad    uint16 = 0x4011 // Direct output level load
	DMCAddress uint16 = 0x4012 // Sample address
	DMCLength  uint16 = 0x4013 // Sample length

	// Global control
	Status       uint16 = 0x4015 // Channel enables (write), status (read)
	FrameCounter uint16 = 0x4017 // Frame sequencer mode and IRQ inhibit
)

// DMCSampleBase is the base of the DMC sample address space. Sample addresses
// written to DMCAddress are offsets from here in 64 byte units.
const DMCSampleBase uint16 = 0xC000

// registers lists every address the APU decodes.
var registers = [...]uint16{
	Pulse1Control, Pulse1Sweep, Pulse1TimerLo, Pulse1TimerHi,
	Pulse2Control, Pulse2Sweep, Pulse2TimerLo, Pulse2TimerHi,
	TriangleLinear, TriangleTimerLo, TriangleTimerHi,
	NoiseControl, NoisePeriod, NoiseLength,
	DMCControl, DMCLoad, DMCAddress, DMCLength,
	Status, FrameCounter,
}

// IsAPURegister reports whether address is one of the decoded APU registers.
// Unused holes in the range (0x4009, 0x400D, 0x4014, 0x4016) are not.
func IsAPURegister(address uint16) bool {
	for _, r := range registers {
		if r == address {
			return true
		}
	}
	return false
}

// Registers returns every decoded APU register address in ascending order.
func Registers() []uint16 {
	out := make([]uint16, len(registers))
	copy(out, registers[:])
	return out
}
