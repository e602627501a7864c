package audio

import (
	"github.com/valerio/go-nesapu/nesapu/addr"
	"github.com/valerio/go-nesapu/nesapu/bit"
)

// Status register bits ($4015 read)
const (
	statusFrameIRQ = 6
	statusDMCIRQ   = 7
)

// WriteRegister writes to an APU register. Writes to addresses the APU does
// not decode are ignored.
func (a *APU) WriteRegister(address uint16, value uint8) {
	switch address {
	case addr.Pulse1Control:
		a.pulse1.writeControl(value)
	case addr.Pulse1Sweep:
		a.pulse1.sweep.write(value)
	case addr.Pulse1TimerLo:
		a.pulse1.writeTimerLow(value)
	case addr.Pulse1TimerHi:
		a.pulse1.writeTimerHigh(value)

	case addr.Pulse2Control:
		a.pulse2.writeControl(value)
	case addr.Pulse2Sweep:
		a.pulse2.sweep.write(value)
	case addr.Pulse2TimerLo:
		a.pulse2.writeTimerLow(value)
	case addr.Pulse2TimerHi:
		a.pulse2.writeTimerHigh(value)

	case addr.TriangleLinear:
		a.triangle.writeLinear(value)
	case addr.TriangleTimerLo:
		a.triangle.writeTimerLow(value)
	case addr.TriangleTimerHi:
		a.triangle.writeTimerHigh(value)

	case addr.NoiseControl:
		a.noise.writeControl(value)
	case addr.NoisePeriod:
		a.noise.writePeriod(value)
	case addr.NoiseLength:
		a.noise.writeLength(value)

	case addr.DMCControl:
		a.dmc.writeControl(value)
	case addr.DMCLoad:
		a.dmc.writeLoad(value)
	case addr.DMCAddress:
		a.dmc.writeAddress(value, addr.DMCSampleBase)
	case addr.DMCLength:
		a.dmc.writeLength(value)

	case addr.Status:
		a.writeStatus(value)
	case addr.FrameCounter:
		a.frame.write(value)
		a.logger.Debug("Frame sequencer reset",
			"five_step", a.frame.fiveStep,
			"irq_enabled", a.frame.irqEnabled)

	default:
		a.logger.Debug("Ignoring write to unmapped APU address", "address", address, "value", value)
	}
}

// writeStatus applies channel enables. A cleared bit silences the channel
// immediately by zeroing its length counter (DMC: its remaining bytes).
// The write also acknowledges a pending DMC IRQ.
func (a *APU) writeStatus(value uint8) {
	for i, u := range a.units {
		u.setEnabled(bit.IsSet(uint8(i), value))
	}
	a.frame.dmcIRQ = false
}

// ReadRegister reads from an APU register. Only $4015 is readable; every
// other address reads as 0.
// Reading $4015 clears the frame IRQ flag, but not the DMC IRQ flag.
func (a *APU) ReadRegister(address uint16) uint8 {
	if address != addr.Status {
		return 0
	}

	status := a.peekStatus()
	a.frame.frameIRQ = false
	return status
}

// PeekStatus returns the $4015 status byte without the read side effect.
func (a *APU) PeekStatus() uint8 {
	return a.peekStatus()
}

func (a *APU) peekStatus() uint8 {
	var status uint8
	for i, u := range a.units {
		// bit 4 is the DMC's bytes remaining, bits 0-3 the length counters
		status = bit.SetIf(u.active(), uint8(i), status)
	}
	status = bit.SetIf(a.frame.frameIRQ, statusFrameIRQ, status)
	status = bit.SetIf(a.frame.dmcIRQ, statusDMCIRQ, status)
	return status
}
