package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"
	"github.com/valerio/go-nesapu/nesapu/audio"
	"github.com/valerio/go-nesapu/nesapu/debug"
	"github.com/valerio/go-nesapu/nesapu/render"
	"github.com/valerio/go-nesapu/nesapu/script"
	"github.com/valerio/go-nesapu/nesapu/timing"
	"github.com/valerio/go-nesapu/nesapu/wav"
	"golang.org/x/term"
)

var errNoScript = errors.New("no script path provided")

func scriptArg(c *cli.Context) (*script.Script, string, error) {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, c.Command.Name)
		return nil, "", errNoScript
	}

	path := c.Args().First()
	s, err := script.Load(path)
	if err != nil {
		return nil, "", err
	}
	return s, path, nil
}

func renderCommand(c *cli.Context) error {
	s, path, err := scriptArg(c)
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".wav"
	}
	return renderScript(context.Background(), s, out)
}

// renderScript runs s and writes the mixed samples to a WAV file at out.
func renderScript(ctx context.Context, s *script.Script, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	w, err := wav.NewWriter(f, audio.EffectiveSampleRate)
	if err != nil {
		return err
	}

	r, err := script.NewRunner(s, script.WithSink(w))
	if err != nil {
		return err
	}

	res, err := r.Run(ctx)
	if err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	slog.Info("Rendered script",
		"name", s.Name,
		"path", out,
		"samples", res.Samples,
		"seconds", float64(res.Samples)/audio.EffectiveSampleRate)
	return f.Close()
}

func statusCommand(c *cli.Context) error {
	s, _, err := scriptArg(c)
	if err != nil {
		return err
	}

	styled := !c.Bool("no-color") && term.IsTerminal(int(os.Stdout.Fd()))
	return statusReport(context.Background(), os.Stdout, s, styled)
}

// statusReport runs s without audio output, then prints every read step and
// the final channel report.
func statusReport(ctx context.Context, w io.Writer, s *script.Script, styled bool) error {
	r, err := script.NewRunner(s)
	if err != nil {
		return err
	}

	res, err := r.Run(ctx)
	if err != nil {
		return err
	}

	for _, read := range res.Reads {
		fmt.Fprintf(w, "tick %-10d $%04X = 0x%02X\n", read.Tick, read.Address, read.Value)
	}
	fmt.Fprintf(w, "%d ticks (%d frames), %d samples, %d IRQs\n\n",
		res.Ticks, timing.FramesFor(res.Ticks), res.Samples, res.IRQs)
	fmt.Fprint(w, debug.Report(debug.ExtractAudioData(r.APU().State()), styled))
	return nil
}

func scopeCommand(c *cli.Context) error {
	s, _, err := scriptArg(c)
	if err != nil {
		return err
	}

	limiter, err := newLimiter(c.String("pacing"))
	if err != nil {
		return err
	}

	return playScope(context.Background(), s, limiter, render.NewTerminalScope)
}

// playScope runs s in real time on the scope returned by open, paced by
// limiter, and stops the limiter when done. Everything that can fail is set
// up before open takes over the terminal.
func playScope(ctx context.Context, s *script.Script, limiter timing.Limiter, open func() (*render.Scope, error)) error {
	defer limiter.Stop()

	var scope *render.Scope
	r, err := script.NewRunner(s, script.WithFrameHook(func(ctx context.Context, apu *audio.APU) error {
		scope.Update(apu)
		return limiter.WaitForNextFrame(ctx)
	}))
	if err != nil {
		return err
	}

	scope, err = open()
	if err != nil {
		return err
	}

	return scope.Run(ctx, func(ctx context.Context) error {
		_, err := r.Run(ctx)
		return err
	})
}

func newLimiter(pacing string) (timing.Limiter, error) {
	switch pacing {
	case "adaptive":
		return timing.NewAdaptiveLimiter(timing.FrameDuration()), nil
	case "ticker":
		return timing.NewTickerLimiter(timing.FrameDuration()), nil
	case "none":
		return timing.NewNoOpLimiter(), nil
	}
	return nil, fmt.Errorf("unknown pacing %q", pacing)
}
