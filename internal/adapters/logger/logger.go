// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/dupe/internal/core/ports"
)

// messager is implemented by zerr errors, which can report their own
// message without the wrapped chain.
type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

var _ ports.Logger = (*Logger)(nil)

// New creates a new Logger writing human-readable lines to stderr.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// rebuild must be called with mu held.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = NewPrettyHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with its causes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}
	l.logger.Error(formatChain(collectMessages(err)))
}

// collectMessages walks the zerr chain. Joined errors are walked in order
// and the first other error ends the walk with its full text. Metadata is
// rendered as key=value pairs after the message it belongs to.
func collectMessages(err error) []string {
	var (
		messages []string
		pending  []string
	)
	for current := err; current != nil; {
		if joined, ok := current.(interface{ Unwrap() []error }); ok {
			start := len(messages)
			for _, e := range joined.Unwrap() {
				messages = append(messages, collectMessages(e)...)
			}
			if len(messages) > start {
				messages[start] = withAttrs(messages[start], pending)
			}
			break
		}
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, withAttrs(current.Error(), pending))
			break
		}
		attrs := metadataAttrs(current)
		if msg := m.Message(); msg != "" {
			messages = append(messages, withAttrs(msg, append(pending, attrs...)))
			pending = nil
		} else {
			// Metadata-only wrapper: the pairs describe its cause.
			pending = append(pending, attrs...)
		}
		current = errors.Unwrap(current)
	}
	if len(pending) > 0 && len(messages) > 0 {
		last := len(messages) - 1
		messages[last] = withAttrs(messages[last], pending)
	}
	return messages
}

func metadataAttrs(err error) []string {
	md, ok := err.(metadataer)
	if !ok {
		return nil
	}
	meta := md.Metadata()
	attrs := make([]string, 0, len(meta))
	for _, key := range slices.Sorted(maps.Keys(meta)) {
		attrs = append(attrs, fmt.Sprintf("%s=%v", key, meta[key]))
	}
	return attrs
}

// withAttrs appends attrs to the first line of msg.
func withAttrs(msg string, attrs []string) string {
	if len(attrs) == 0 {
		return msg
	}
	first, rest, multiline := strings.Cut(msg, "\n")
	first += " " + strings.Join(attrs, " ")
	if multiline {
		return first + "\n" + rest
	}
	return first
}

func formatChain(messages []string) string {
	var out []string
	for i, msg := range messages {
		lines := strings.Split(msg, "\n")
		switch i {
		case 0:
			out = append(out, "Error: "+lines[0])
			for _, line := range lines[1:] {
				out = append(out, "       "+line)
			}
			continue
		case 1:
			out = append(out, "", "  Caused by:")
		}
		out = append(out, "    -> "+lines[0])
		for _, line := range lines[1:] {
			out = append(out, "       "+line)
		}
	}
	return strings.Join(out, "\n")
}
