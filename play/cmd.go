package play

import (
	"context"
	"fmt"
	"log/slog"

	"pixtext/pipeline"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	FPS    int    `arg:"" name:"fps" help:"Frames per second"`
	Format string `arg:"" name:"format" help:"File name pattern with one integer conversion, e.g. frame%04d.txt"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.FPS < 1 {
		return fmt.Errorf("%w: fps %d", ErrArgument, c.FPS)
	}

	format, err := ParseFormat(c.Format)
	if err != nil {
		return err
	}
	c.Format = format
	return nil
}

func (c *CLICmd) Run(ctx context.Context, s *pipeline.Streams, logger *slog.Logger) error {
	logger = logger.With("cmd", "play", "format", c.Format)
	p := Player{
		FPS:    c.FPS,
		Format: c.Format,
		Out:    s.Out,
		Logger: logger,
	}

	n, err := p.Play(ctx)
	if err != nil {
		return err
	}
	logger.Debug("played", "frames", n)
	return nil
}
