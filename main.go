package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pixtext/brailleart"
	"pixtext/dither"
	"pixtext/parallel"
	"pixtext/pipeline"
	"pixtext/play"

	"github.com/alecthomas/kong"
)

type cli struct {
	Verbose bool `short:"v" help:"Log debug information to stderr"`
	Workers int  `help:"Goroutines converting rows (0 for one per CPU, 1 for a serial pass)" default:"0"`

	Braille brailleart.CLICmd `cmd:"" help:"Print a pixel map read from stdin as Braille text"`
	Rank    dither.CLICmd     `cmd:"" help:"Rank the 16 color palette for every pixel of a pixel map read from stdin"`
	Play    play.CLICmd       `cmd:"" help:"Show numbered text frames at a fixed rate"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pixtext"),
		kong.Description("Convert pixel maps to terminal text."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := parallel.Start(c.Workers)
	defer pool.Wait(true)

	streams := &pipeline.Streams{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(streams, logger, pool); err != nil {
		slog.Error("command failed", "cmd", kctx.Command(), "error", err)
		pool.Wait(true)
		stop()
		os.Exit(1)
	}
}
