package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "nesapu"
	app.Description = "NES APU sound core driven by register scripts"
	app.Usage = "nesapu [options] <command> <script.yaml>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log APU state changes",
		},
	}
	app.Before = func(c *cli.Context) error {
		level := slog.LevelInfo
		if c.Bool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "render",
			Usage:     "Run a script and write the mixed output to a WAV file",
			ArgsUsage: "<script.yaml>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "Output WAV path (default: script name with .wav)",
				},
			},
			Action: renderCommand,
		},
		{
			Name:      "status",
			Usage:     "Run a script and print its status reads and the final channel state",
			ArgsUsage: "<script.yaml>",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "no-color",
					Usage: "Disable styled output",
				},
			},
			Action: statusCommand,
		},
		{
			Name:      "scope",
			Usage:     "Play a script in real time with a terminal level meter",
			ArgsUsage: "<script.yaml>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "pacing",
					Usage: "Frame pacing: adaptive, ticker or none",
					Value: "adaptive",
				},
			},
			Action: scopeCommand,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running nesapu", "error", err)
		os.Exit(1)
	}
}
