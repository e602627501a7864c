package audio

// frameEvent is a set of updates fired by one frame sequencer step.
type frameEvent uint8

const (
	// frameQuarter clocks envelopes and the triangle linear counter.
	frameQuarter frameEvent = 1 << iota
	// frameHalf clocks length counters and sweep units.
	frameHalf
	// frameIRQRaised reports that this step set the frame IRQ flag.
	frameIRQRaised
)

// frameSequencer drives the channels' envelope, sweep and length units.
// Step actions, 1-based:
//
//	4-step mode              5-step mode
//	Step  Half  Quarter IRQ  Step  Half  Quarter
//	1     X     -       -    1     X     -
//	2     X     X       -    2     X     X
//	3     X     -       -    3     X     -
//	4     X     X       X    4     X     X
//	                         5     X     X
//
// Reference: https://www.nesdev.org/wiki/APU_Frame_Counter
type frameSequencer struct {
	fiveStep   bool
	irqEnabled bool
	step       uint8

	// sticky interrupt flags, surfaced through the $4015 status read
	frameIRQ bool
	dmcIRQ   bool
}

// write applies a $4017 write: bit 7 selects 5-step mode, bit 6 inhibits the
// frame IRQ. The step counter restarts.
func (f *frameSequencer) write(value uint8) {
	f.fiveStep = value&0x80 != 0
	f.irqEnabled = value&0x40 == 0
	f.step = 0
}

func (f *frameSequencer) steps() uint8 {
	if f.fiveStep {
		return 5
	}
	return 4
}

func (f *frameSequencer) clock() frameEvent {
	f.step++

	switch f.step {
	case 1, 3:
		return frameHalf
	case 2:
		return frameHalf | frameQuarter
	}

	if f.step < f.steps() {
		// step 4 of the 5-step sequence
		return frameHalf | frameQuarter
	}

	ev := frameHalf | frameQuarter
	if !f.fiveStep && f.irqEnabled {
		f.frameIRQ = true
		ev |= frameIRQRaised
	}
	f.step = 0
	return ev
}
