package audio

// Provider is the surface a frontend uses to pull audio and drive debug mutes.
type Provider interface {
	// GetAudioSamples copies buffered samples for playback
	GetAudioSamples(dst []int16, count int) int
	ClearAudioBuffer()

	// Audio debugging controls

	ToggleChannel(channel Channel)
	SoloChannel(channel Channel)
	ChannelStatus() [ChannelCount]bool
	State() State
}

var _ Provider = (*APU)(nil)
