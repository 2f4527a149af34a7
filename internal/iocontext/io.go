// Package iocontext carries the command I/O streams through contexts so
// commands can be run against buffers in tests.
package iocontext

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
)

// IO holds the input/output streams for commands.
type IO struct {
	Out    io.Writer // stdout
	ErrOut io.Writer // stderr
	In     io.Reader // stdin
}

// DefaultIO returns the standard IO streams.
func DefaultIO() *IO {
	return &IO{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
		In:     os.Stdin,
	}
}

// Buffers are the in-memory streams behind a test IO.
type Buffers struct {
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// TestIO returns an IO that reads stdin from input and records output.
func TestIO(input string) (*IO, *Buffers) {
	b := &Buffers{Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}}
	return &IO{Out: b.Out, ErrOut: b.ErrOut, In: strings.NewReader(input)}, b
}

// IsTerminal reports whether Out is an interactive terminal.
func (s *IO) IsTerminal() bool {
	f, ok := s.Out.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

type ioKey struct{}

// WithIO adds IO streams to a context.
func WithIO(ctx context.Context, streams *IO) context.Context {
	return context.WithValue(ctx, ioKey{}, streams)
}

// GetIO retrieves IO streams from context, defaulting to standard streams.
func GetIO(ctx context.Context) *IO {
	if streams, ok := ctx.Value(ioKey{}).(*IO); ok && streams != nil {
		return streams
	}
	return DefaultIO()
}
