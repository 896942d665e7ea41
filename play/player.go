// Package play shows a numbered sequence of text frames, such as the output
// of the braille command for every frame of a video, at a fixed rate.
package play

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

var (
	// ErrArgument is returned for an unusable rate or file name format.
	ErrArgument = errors.New("invalid argument")
	// ErrNoFrames is returned when not a single frame could be opened.
	ErrNoFrames = errors.New("failed to open any files")
	// ErrFilename is returned when a formatted file name is too long.
	ErrFilename = errors.New("filename too long")
)

const maxFilename = 255

var (
	clearScreen = []byte("\x1b[H\x1b[2J\x1b[3J")
	resetCursor = []byte("\x1b[H")
)

// Player writes frames to Out, each one over the previous one.
type Player struct {
	// FPS is the number of frames per second.
	FPS int
	// Format is a fmt pattern producing the file name of frame i.
	Format string
	Out    io.Writer
	Logger *slog.Logger

	// Open opens a frame. Defaults to os.Open.
	Open func(name string) (io.ReadCloser, error)
	// Now and Sleep default to the wall clock.
	Now   func() time.Time
	Sleep func(ctx context.Context, until time.Time) error
}

func openFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func sleepUntil(ctx context.Context, t time.Time) error {
	timer := time.NewTimer(time.Until(t))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Play shows frames starting at index 0 until the first missing file and
// returns the number of frames shown. A missing frame 0 is skipped, so
// sequences may start at 1. Frames are paced against absolute deadlines so
// slow writes do not accumulate drift.
func (p *Player) Play(ctx context.Context) (int, error) {
	if p.FPS < 1 {
		return 0, fmt.Errorf("%w: fps %d", ErrArgument, p.FPS)
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	open := p.Open
	if open == nil {
		open = openFile
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepUntil
	}

	interval := time.Second / time.Duration(p.FPS)
	next := now()

	if _, err := p.Out.Write(clearScreen); err != nil {
		return 0, fmt.Errorf("failed to clear screen: %w", err)
	}

	shown := 0
	for index := 0; ; index++ {
		name := fmt.Sprintf(p.Format, index)
		if len(name) >= maxFilename {
			return shown, fmt.Errorf("%w: %q", ErrFilename, name)
		}

		frame, err := readFrame(open, name)
		if err != nil {
			var notOpened *openError
			if !errors.As(err, &notOpened) {
				return shown, fmt.Errorf("failed to read from file number %d: %w", index, err)
			}
			if index == 0 {
				continue
			}
			if shown == 0 {
				return 0, ErrNoFrames
			}
			logger.Debug("end of sequence", "file", name, "frames", shown)
			return shown, nil
		}

		if _, err := p.Out.Write(resetCursor); err != nil {
			return shown, fmt.Errorf("failed to write to stdout on file number %d: %w", index, err)
		}
		if _, err := p.Out.Write(frame); err != nil {
			return shown, fmt.Errorf("failed to write to stdout on file number %d: %w", index, err)
		}
		shown++

		next = next.Add(interval)
		if err := sleep(ctx, next); err != nil {
			return shown, err
		}
	}
}

type openError struct {
	err error
}

func (e *openError) Error() string {
	return e.err.Error()
}

func (e *openError) Unwrap() error {
	return e.err
}

func readFrame(open func(string) (io.ReadCloser, error), name string) ([]byte, error) {
	f, err := open(name)
	if err != nil {
		return nil, &openError{err}
	}
	defer f.Close()

	return io.ReadAll(f)
}
