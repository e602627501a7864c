package debug

import (
	"fmt"
	"strings"
)

const reportHeader = "Channel   On  Muted  Freq (Hz)  Note    Vol  Len     Out"

// Report renders a channel table followed by the frame sequencer and IRQ
// state. Styled output colours enabled channels and raised IRQs.
func Report(data *AudioData, styled bool) string {
	st := newPlainStyles()
	if styled {
		st = newStyles()
	}

	var b strings.Builder
	b.WriteString(st.header.Render(reportHeader))
	b.WriteByte('\n')

	for _, ch := range data.Channels {
		row := fmt.Sprintf("%-9s %-3s %-6s %9.1f  %-6s %4d %4d %7d",
			ch.Name, yesNo(ch.Enabled), yesNo(ch.Muted), ch.Frequency, ch.Note, ch.Volume, ch.Length, ch.Output)

		style := st.off
		switch {
		case ch.Muted:
			style = st.muted
		case ch.Enabled:
			style = st.on
		}
		b.WriteString(style.Render(row))
		b.WriteByte('\n')
	}

	steps := 4
	if data.FiveStep {
		steps = 5
	}
	fmt.Fprintf(&b, "Frame step %d/%d  IRQ ", data.FrameStep, steps)
	b.WriteString(flag(st, "frame", data.FrameIRQ))
	b.WriteByte(' ')
	b.WriteString(flag(st, "dmc", data.DMCIRQ))
	fmt.Fprintf(&b, "  Last sample %d  Buffered %d @ %d Hz\n", data.LastSample, data.Buffered, data.SampleRate)

	return b.String()
}

func flag(st styles, name string, set bool) string {
	if set {
		return st.irq.Render(strings.ToUpper(name))
	}
	return name
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "-"
}
