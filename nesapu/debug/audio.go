package debug

import (
	"math"
	"strconv"

	"github.com/valerio/go-nesapu/nesapu/audio"
)

type ChannelStatus struct {
	Name      string
	Enabled   bool
	Muted     bool
	Frequency float64
	Volume    uint8
	Duty      uint8
	Length    uint8
	Output    int32
	Note      string
}

type AudioData struct {
	Channels   [audio.ChannelCount]ChannelStatus
	FrameStep  uint8
	FiveStep   bool
	FrameIRQ   bool
	DMCIRQ     bool
	LastSample int16
	Buffered   int
	SampleRate int
}

// ExtractAudioData derives human readable channel information from an APU
// snapshot.
func ExtractAudioData(state audio.State) *AudioData {
	data := &AudioData{
		FrameStep:  state.FrameStep,
		FiveStep:   state.FiveStep,
		FrameIRQ:   state.FrameIRQ,
		DMCIRQ:     state.DMCIRQ,
		LastSample: state.LastSample,
		Buffered:   state.Buffered,
		SampleRate: audio.EffectiveSampleRate,
	}

	for _, c := range audio.Channels() {
		s := state.Channels[c]
		ch := &data.Channels[c]
		ch.Name = c.String()
		ch.Enabled = s.Enabled
		ch.Muted = s.Muted
		ch.Volume = s.Volume
		ch.Duty = s.Duty
		ch.Length = s.Length
		ch.Output = s.Output
		ch.Frequency = channelFrequency(c, s.Period)

		switch c {
		case audio.Noise:
			ch.Note = "Noise"
		case audio.DMC:
			ch.Volume = s.Level
			ch.Note = "Sample"
		default:
			ch.Note = frequencyToNote(ch.Frequency)
		}
	}

	return data
}

// channelFrequency converts a timer reload value to the channel's output
// frequency. Noise and DMC report their timer rate.
func channelFrequency(c audio.Channel, period uint16) float64 {
	switch c {
	case audio.Pulse1, audio.Pulse2:
		return audio.CPUFrequency / (16 * (float64(period) + 1))
	case audio.Triangle:
		return audio.CPUFrequency / (32 * (float64(period) + 1))
	}

	if period == 0 {
		return 0
	}
	return audio.CPUFrequency / float64(period)
}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func frequencyToNote(freq float64) string {
	if freq < 20 || freq > 20000 {
		return "--"
	}

	// MIDI note number, A4 = 69
	midi := int(math.Round(12*math.Log2(freq/440.0))) + 69
	octave := midi/12 - 1
	if octave < 0 || octave > 9 {
		return "--"
	}

	return noteNames[midi%12] + strconv.Itoa(octave)
}
