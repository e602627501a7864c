package audio

// ChannelState is a read-only snapshot of one channel, for debuggers and
// visualisers. Fields that do not apply to a channel are left zero.
type ChannelState struct {
	Enabled bool
	Muted   bool

	Period uint16 // timer reload value
	Length uint8  // length counter
	Halted bool   // length counter halt

	Volume uint8 // current envelope or constant volume (pulse, noise)
	Duty   uint8 // duty cycle index (pulse)
	Step   uint8 // sequencer position (pulse, triangle)
	Linear uint8 // linear counter (triangle)
	Mode   bool  // short LFSR mode (noise)
	Shift  uint16

	Level     uint8  // output level (DMC)
	Address   uint16 // current sample address (DMC)
	Remaining uint16 // bytes remaining (DMC)
	Loop      bool   // loop flag (DMC)

	Output int32 // last computed sample
}

// State is a snapshot of the whole APU.
type State struct {
	Channels [ChannelCount]ChannelState

	FrameStep uint8
	FiveStep  bool
	FrameIRQ  bool
	DMCIRQ    bool

	Cycles     uint64
	Buffered   int
	LastSample int16
}

// State returns a snapshot of the APU's internal state.
func (a *APU) State() State {
	s := State{
		FrameStep:  a.frame.step,
		FiveStep:   a.frame.fiveStep,
		FrameIRQ:   a.frame.frameIRQ,
		DMCIRQ:     a.frame.dmcIRQ,
		Cycles:     a.cycles,
		Buffered:   a.buffer.Len(),
		LastSample: a.lastSample,
	}

	s.Channels[Pulse1] = a.pulse1.state()
	s.Channels[Pulse2] = a.pulse2.state()
	s.Channels[Triangle] = a.triangle.state()
	s.Channels[Noise] = a.noise.state()
	s.Channels[DMC] = a.dmc.state()
	for i := range s.Channels {
		s.Channels[i].Muted = a.muted[i]
	}

	return s
}

// MuteChannel mutes or unmutes a channel in the mix. Muting only affects the
// mixed output; the channel keeps running.
func (a *APU) MuteChannel(channel Channel, muted bool) {
	if channel < ChannelCount {
		a.muted[channel] = muted
	}
}

// ToggleChannel toggles muting for a channel.
func (a *APU) ToggleChannel(channel Channel) {
	if channel < ChannelCount {
		a.muted[channel] = !a.muted[channel]
	}
}

// SoloChannel mutes all channels except the specified one.
func (a *APU) SoloChannel(channel Channel) {
	for i := range a.muted {
		a.muted[i] = Channel(i) != channel
	}
}

// UnmuteAll unmutes all channels.
func (a *APU) UnmuteAll() {
	a.muted = [ChannelCount]bool{}
}

// ChannelStatus reports, per channel, whether it is audible: not muted and
// with its status bit set.
func (a *APU) ChannelStatus() [ChannelCount]bool {
	var out [ChannelCount]bool
	for i, u := range a.units {
		out[i] = !a.muted[i] && u.active()
	}
	return out
}
