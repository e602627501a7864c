package script

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valerio/go-nesapu/nesapu/audio"
	"github.com/valerio/go-nesapu/nesapu/memory"
	"github.com/valerio/go-nesapu/nesapu/timing"
)

// SampleSink receives mixed samples each time the APU buffer is drained.
type SampleSink interface {
	WriteSamples(samples []int16) error
}

// FrameHook is called after every TicksPerFrame master ticks. Returning an
// error stops the run.
type FrameHook func(ctx context.Context, apu *audio.APU) error

// StatusRead records the value returned by a read step.
type StatusRead struct {
	Tick    uint64
	Address uint16
	Value   uint8
}

// Result summarises a finished run.
type Result struct {
	Ticks   uint64
	Samples int
	IRQs    int
	Reads   []StatusRead
}

// Runner executes a script against a fresh APU.
type Runner struct {
	script *Script

	ram *memory.RAM
	bus *memory.Bus
	apu *audio.APU

	sink      SampleSink
	frameHook FrameHook
	logger    *slog.Logger

	buf    []int16
	result Result
}

type RunnerOption func(*Runner)

func WithSink(sink SampleSink) RunnerOption {
	return func(r *Runner) { r.sink = sink }
}

func WithFrameHook(hook FrameHook) RunnerOption {
	return func(r *Runner) { r.frameHook = hook }
}

func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner builds the memory image and the APU for a script.
func NewRunner(s *Script, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		script: s,
		ram:    memory.NewRAM(),
		logger: slog.Default(),
		buf:    make([]int16, audio.BufferSize),
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, m := range s.Memory {
		if m.File != "" {
			if _, err := r.ram.LoadFile(m.Address, s.path(m.File)); err != nil {
				return nil, fmt.Errorf("memory entry %d: %w", i, err)
			}
			continue
		}
		data := make([]byte, len(m.Bytes))
		for j, b := range m.Bytes {
			data[j] = byte(b)
		}
		r.ram.Load(m.Address, data)
	}

	r.apu = audio.New(r.ram,
		audio.WithLogger(r.logger),
		audio.WithIRQHandler(func() { r.result.IRQs++ }))
	r.bus = memory.NewBus(r.ram, r.apu)
	return r, nil
}

// APU returns the APU driven by the runner.
func (r *Runner) APU() *audio.APU {
	return r.apu
}

// RAM returns the memory image the DMC reads from.
func (r *Runner) RAM() *memory.RAM {
	return r.ram
}

// Run executes every step. Samples still buffered at the end are flushed to
// the sink.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	r.logger.Debug("Running script", "name", r.script.Name, "steps", len(r.script.Steps))

	for i, step := range r.script.Steps {
		if err := r.runStep(ctx, step); err != nil {
			return r.result, fmt.Errorf("step %d: %w", i, err)
		}
	}

	if err := r.drain(); err != nil {
		return r.result, err
	}

	r.logger.Debug("Script finished",
		"ticks", r.result.Ticks,
		"samples", r.result.Samples,
		"irqs", r.result.IRQs,
		"dmc_fetches", r.ram.ReadCount())
	return r.result, nil
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	switch {
	case step.Write != nil:
		r.bus.Write(step.Write.Address, uint8(step.Write.Value))
	case step.Read != nil:
		r.result.Reads = append(r.result.Reads, StatusRead{
			Tick:    r.result.Ticks,
			Address: *step.Read,
			Value:   r.bus.Read(*step.Read),
		})
	case step.AckDMCIRQ:
		r.apu.AcknowledgeDMCIRQ()
	case step.Ticks > 0:
		return r.tick(ctx, step.Ticks)
	case step.Frames > 0:
		return r.tick(ctx, step.Frames*timing.TicksPerFrame)
	}
	return nil
}

func (r *Runner) tick(ctx context.Context, n uint64) error {
	for i := uint64(0); i < n; i++ {
		r.apu.Tick()
		r.result.Ticks++

		if r.apu.BufferFull() {
			if err := r.drain(); err != nil {
				return err
			}
		}

		if r.result.Ticks%timing.TicksPerFrame != 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.frameHook != nil {
			if err := r.frameHook(ctx, r.apu); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) drain() error {
	n := r.apu.GetAudioSamples(r.buf, len(r.buf))
	r.apu.ClearAudioBuffer()
	if n == 0 {
		return nil
	}

	r.result.Samples += n
	if r.sink == nil {
		return nil
	}
	if err := r.sink.WriteSamples(r.buf[:n]); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	return nil
}
