package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-nesapu/nesapu/audio"
	"github.com/valerio/go-nesapu/nesapu/timing"
)

type recordingSink struct {
	chunks [][]int16
	err    error
}

func (s *recordingSink) WriteSamples(samples []int16) error {
	if s.err != nil {
		return s.err
	}
	s.chunks = append(s.chunks, append([]int16(nil), samples...))
	return nil
}

func (s *recordingSink) lengths() []int {
	out := make([]int, len(s.chunks))
	for i, c := range s.chunks {
		out[i] = len(c)
	}
	return out
}

func mustParse(t *testing.T, src string) *Script {
	t.Helper()
	s, err := Parse([]byte(src), "")
	require.NoError(t, err)
	return s
}

func TestRunner_DrainsToSink(t *testing.T) {
	s := mustParse(t, `
steps:
  - write: {address: 0x4015, value: 0x01}
  - write: {address: 0x4003, value: 0x08}
  - read: 0x4015
  - ticks: 83025
`)
	sink := &recordingSink{}
	r, err := NewRunner(s, WithSink(sink))
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(83025), res.Ticks)
	assert.Equal(t, 1025, res.Samples, "one sample every 81 ticks")
	assert.Equal(t, []int{audio.BufferSize, 1}, sink.lengths(), "full buffers are flushed, then the rest")
	assert.Equal(t, []StatusRead{{Tick: 0, Address: 0x4015, Value: 0x01}}, res.Reads)
	assert.Equal(t, int16(-204), sink.chunks[0][0])
}

func TestRunner_FramesAndIRQ(t *testing.T) {
	s := mustParse(t, `
steps:
  - write: {address: 0x4017, value: 0x00}
  - frames: 2
  - read: 0x4015
  - read: 0x4015
`)
	frames := 0
	r, err := NewRunner(s, WithFrameHook(func(ctx context.Context, apu *audio.APU) error {
		frames++
		return nil
	}))
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, frames)
	assert.Equal(t, uint64(2*timing.TicksPerFrame), res.Ticks)
	assert.Equal(t, 1, res.IRQs)
	require.Len(t, res.Reads, 2)
	assert.Equal(t, uint8(0x40), res.Reads[0].Value)
	assert.Equal(t, uint8(0x00), res.Reads[1].Value, "the first read acknowledges the frame IRQ")
}

func TestRunner_DMCSampleFromMemory(t *testing.T) {
	s := mustParse(t, `
memory:
  - address: 0xC000
    bytes: [0xFF]
steps:
  - write: {address: 0x4010, value: 0x80}
  - write: {address: 0x4012, value: 0x00}
  - write: {address: 0x4013, value: 0x00}
  - write: {address: 0x4015, value: 0x10}
  - ticks: 2
  - read: 0x4015
  - ack_dmc_irq: true
`)
	r, err := NewRunner(s)
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.IRQs)
	assert.Equal(t, uint64(1), r.RAM().ReadCount())
	assert.Equal(t, uint8(0x80), res.Reads[0].Value)
	assert.False(t, r.APU().DMCIRQ(), "ack_dmc_irq clears the flag")
}

func TestRunner_MemoryFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kick.dmc"), []byte{0x12, 0x34}, 0o644))

	s, err := Parse([]byte("memory:\n  - {address: 0xC400, file: kick.dmc}\n"), dir)
	require.NoError(t, err)

	r, err := NewRunner(s)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x34), r.RAM().Peek(0xC401))

	s, err = Parse([]byte("memory:\n  - {address: 0xC400, file: nope.dmc}\n"), dir)
	require.NoError(t, err)
	_, err = NewRunner(s)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunner_Stops(t *testing.T) {
	s := mustParse(t, "steps:\n  - frames: 5\n")

	t.Run("frame hook error", func(t *testing.T) {
		stop := errors.New("stop")
		r, err := NewRunner(s, WithFrameHook(func(context.Context, *audio.APU) error { return stop }))
		require.NoError(t, err)

		res, err := r.Run(context.Background())
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, uint64(timing.TicksPerFrame), res.Ticks)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r, err := NewRunner(s)
		require.NoError(t, err)

		_, err = r.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("sink error", func(t *testing.T) {
		broken := errors.New("disk full")
		r, err := NewRunner(s, WithSink(&recordingSink{err: broken}))
		require.NoError(t, err)

		_, err = r.Run(context.Background())
		assert.ErrorIs(t, err, broken)
	})
}
