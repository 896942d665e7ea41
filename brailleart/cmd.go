// Package brailleart is the command that prints a pixel map as Braille text.
package brailleart

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"pixtext/braille"
	"pixtext/parallel"
	"pixtext/pipeline"

	"github.com/alecthomas/kong"
)

// ErrArgument is returned for arguments that cannot be used.
var ErrArgument = errors.New("invalid argument")

const invertToken = "invert"

type CLICmd struct {
	Args    []string        `arg:"" optional:"" help:"Optional 'invert' followed by an optional luma threshold (default 0.5). Put negative thresholds after '--'."`
	Width   int             `help:"Scale the image to this many pixels across before converting" default:"0"`
	Height  int             `help:"Scale the image to this many pixels down before converting" default:"0"`
	Options braille.Options `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Width < 0 {
		return fmt.Errorf("%w: width %d", ErrArgument, c.Width)
	}
	if c.Height < 0 {
		return fmt.Errorf("%w: height %d", ErrArgument, c.Height)
	}

	var err error
	c.Options, err = ParseArgs(c.Args)
	return err
}

// ParseArgs reads the positional arguments: "invert" as the first one turns
// inversion on, any other word leaves it off. The last argument, unless it is
// that "invert", is the threshold.
func ParseArgs(args []string) (braille.Options, error) {
	o := braille.DefaultOptions
	if len(args) == 0 {
		return o, nil
	}

	o.Invert = args[0] == invertToken
	last := args[len(args)-1]
	if len(args) == 1 && o.Invert {
		return o, nil
	}

	t, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return o, fmt.Errorf("%w: threshold %q is not a number", ErrArgument, last)
	}
	o.Threshold = t
	return o, nil
}

func (c *CLICmd) Run(s *pipeline.Streams, logger *slog.Logger, pool *parallel.Pool) error {
	conv := pipeline.Converter{
		Logger: logger.With("cmd", "braille"),
		Range:  pool.Range,
		Width:  c.Width,
		Height: c.Height,
	}

	if err := conv.Braille(s.In, s.Out, c.Options); err != nil {
		return fmt.Errorf("could not convert image from stdin: %w", err)
	}
	return nil
}
