package audio

// Channel identifies one of the five sound channels. The value doubles as the
// channel's bit index in the status register.
type Channel uint8

const (
	Pulse1 Channel = iota
	Pulse2
	Triangle
	Noise
	DMC

	// ChannelCount is the number of sound channels.
	ChannelCount = 5
)

var channelNames = [ChannelCount]string{"Pulse 1", "Pulse 2", "Triangle", "Noise", "DMC"}

func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return "Unknown"
}

// Channels returns all channels in status bit order.
func Channels() []Channel {
	return []Channel{Pulse1, Pulse2, Triangle, Noise, DMC}
}

// channelEvent is reported by a channel's clock to the APU.
type channelEvent uint8

const (
	eventNone channelEvent = iota
	eventDMCIRQ
	eventDMCLoop
)

// unit is the common surface of the five channel types.
type unit interface {
	// clock advances the channel by one channel-rate cycle.
	clock() channelEvent
	// output returns the last computed signed sample.
	output() int32
	// setEnabled applies the channel's bit of a $4015 write.
	setEnabled(enabled bool)
	// active reports the channel's $4015 status bit.
	active() bool
}

var (
	_ unit = (*pulse)(nil)
	_ unit = (*triangle)(nil)
	_ unit = (*noise)(nil)
	_ unit = (*dmc)(nil)
)
