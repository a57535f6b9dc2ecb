// Package streams provides the diagnostic outputs used by envconfig. A Streams
// value pairs an Out writer, which receives one line per fallback decision
// made while binding (defaults used, optional keys left empty), with an ErrOut
// writer, which receives fatal load errors reported by envconfig.MustLoad.
//
// Adapters are provided for stdout/stderr, discarding, in-memory capture and
// log/slog.
package streams

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Streams is the contract accepted by envconfig.WithStreams. Either writer
// may be nil, which silences that stream.
type Streams interface {
	Out() io.Writer
	ErrOut() io.Writer
}

// Writers is a Streams that forwards to two fixed writers.
type Writers struct {
	out    io.Writer
	errOut io.Writer
}

func (w Writers) Out() io.Writer    { return w.out }
func (w Writers) ErrOut() io.Writer { return w.errOut }

// New returns a Streams writing diagnostics to out and errors to errOut.
func New(out, errOut io.Writer) Writers {
	return Writers{out: out, errOut: errOut}
}

// Std returns a Streams backed by os.Stdout and os.Stderr.
func Std() Writers {
	return New(os.Stdout, os.Stderr)
}

// ErrorsOnly returns a Streams that drops diagnostics and reports errors to
// os.Stderr. This is what envconfig uses when no streams are configured.
func ErrorsOnly() Writers {
	return New(nil, os.Stderr)
}

// Discard returns a Streams that drops everything.
func Discard() Writers {
	return New(io.Discard, io.Discard)
}

// syncBuffer is a mutex-protected bytes.Buffer.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func (s *syncBuffer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.Reset()
}

// Buffers captures both streams in memory. It is safe for concurrent writers,
// so one value can be shared by several Providers.
type Buffers struct {
	out    syncBuffer
	errOut syncBuffer
}

// NewBuffers returns an empty Buffers.
func NewBuffers() *Buffers { return &Buffers{} }

func (b *Buffers) Out() io.Writer    { return &b.out }
func (b *Buffers) ErrOut() io.Writer { return &b.errOut }

// Strings returns what has been written to Out and ErrOut so far.
func (b *Buffers) Strings() (out, errOut string) {
	return b.out.String(), b.errOut.String()
}

// Reset clears both buffers.
func (b *Buffers) Reset() {
	b.out.Reset()
	b.errOut.Reset()
}

// slogWriter turns each Write into one log record.
type slogWriter struct {
	l     *slog.Logger
	level slog.Level
}

func (w slogWriter) Write(p []byte) (int, error) {
	n := len(p)
	msg := string(bytes.TrimRight(p, "\n"))
	w.l.Log(context.Background(), w.level, msg)
	return n, nil
}

// Slog returns a Streams that logs diagnostics at level out and errors at
// level errOut on l.
func Slog(l *slog.Logger, out, errOut slog.Level) Writers {
	return New(slogWriter{l: l, level: out}, slogWriter{l: l, level: errOut})
}
