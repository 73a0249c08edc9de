package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
)

// ─── Frame protocol ─────────────────────────────────────────────────────────

const (
	eventPrefix = "event: "
	dataPrefix  = "data: "

	// DoneSentinel is the data payload some backends send after the last frame.
	DoneSentinel = "[DONE]"

	chunkSize = 32 * 1024
)

// Event is one decoded data frame. When an "event:" line preceded the frame,
// its name is stored both in Name and in the payload's "event" field.
type Event struct {
	Name    string
	Payload map[string]any
}

// Type returns the event's type tag: the payload "event" field, falling back
// to "type".
func (e Event) Type() string {
	if s, ok := e.Payload["event"].(string); ok && s != "" {
		return s
	}
	if s, ok := e.Payload["type"].(string); ok {
		return s
	}
	return ""
}

// ─── Reader ─────────────────────────────────────────────────────────────────

// Reader turns a byte stream of SSE frames into Events. Chunk boundaries may
// fall anywhere, including inside a multi-byte character; only complete
// lines are decoded and the trailing partial line is kept for the next read.
type Reader struct {
	src     io.Reader
	chunk   []byte
	buf     []byte
	pending string
	ready   []Event
	done    bool
	err     error
	stop    func() bool
	logger  *slog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for skipped frames.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewReader wraps src. If src is also an io.Closer it is closed when the
// stream ends, fails, or the context passed to Next is cancelled.
func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{
		src:    src,
		chunk:  make([]byte, chunkSize),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Next returns the next event. It returns io.EOF once the source is drained,
// ctx.Err() after cancellation, and a wrapped error on transport failure.
func (r *Reader) Next(ctx context.Context) (Event, error) {
	if r.stop == nil {
		// Closing the source unblocks a Read that is waiting on the network.
		r.stop = context.AfterFunc(ctx, func() { r.closeSource() })
	}
	for {
		if err := ctx.Err(); err != nil {
			r.fail(err)
			return Event{}, err
		}
		if len(r.ready) > 0 {
			ev := r.ready[0]
			r.ready = r.ready[1:]
			return ev, nil
		}
		if r.err != nil {
			return Event{}, r.err
		}
		if r.done {
			return Event{}, io.EOF
		}

		n, err := r.src.Read(r.chunk)
		if n > 0 {
			r.buf = append(r.buf, r.chunk[:n]...)
			r.drainLines()
		}
		switch {
		case err == nil, ctx.Err() != nil:
			continue
		case errors.Is(err, io.EOF):
			if len(r.buf) > 0 {
				r.processLine(string(r.buf))
				r.buf = nil
			}
			r.done = true
			r.release()
		default:
			// Frames decoded before the failure are still delivered.
			r.err = fmt.Errorf("reading stream: %w", err)
			r.release()
		}
	}
}

// Events iterates over the stream until EOF, cancellation or failure. A
// terminal error other than io.EOF is yielded once as the last element.
func (r *Reader) Events(ctx context.Context) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		defer r.Close()
		for {
			ev, err := r.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Event{}, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// Close releases the underlying source. Calling it more than once is safe.
func (r *Reader) Close() error {
	if r.err == nil && !r.done {
		r.err = io.ErrClosedPipe
		r.ready = nil
	}
	r.release()
	return nil
}

func (r *Reader) fail(err error) {
	r.err = err
	r.ready = nil
	r.release()
}

func (r *Reader) release() {
	if r.stop != nil {
		r.stop()
	}
	r.closeSource()
}

func (r *Reader) closeSource() {
	if c, ok := r.src.(io.Closer); ok {
		_ = c.Close()
	}
}

// drainLines processes every complete line in buf.
func (r *Reader) drainLines() {
	for {
		i := bytes.IndexByte(r.buf, '\n')
		if i < 0 {
			return
		}
		line := string(r.buf[:i])
		r.buf = r.buf[i+1:]
		r.processLine(line)
	}
}

func (r *Reader) processLine(line string) {
	line = strings.TrimSuffix(line, "\r")

	switch {
	case strings.HasPrefix(line, eventPrefix):
		r.pending = strings.TrimSpace(line[len(eventPrefix):])

	case strings.HasPrefix(line, dataPrefix):
		data := line[len(dataPrefix):]
		if strings.TrimSpace(data) == DoneSentinel {
			return
		}
		var payload map[string]any
		if err := json.Unmarshal([]byte(data), &payload); err != nil || payload == nil {
			r.logger.Warn("skipping undecodable sse frame", "error", err, "frame", truncate(data, 200))
			return
		}
		ev := Event{Payload: payload}
		if r.pending != "" {
			ev.Name = r.pending
			payload["event"] = r.pending
		}
		r.pending = ""
		r.ready = append(r.ready, ev)

	case strings.TrimSpace(line) == "":
		r.pending = ""
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
