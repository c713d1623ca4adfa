package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultFilePath is the log file relative to the working directory.
const DefaultFilePath = "logs/showroom.log"

// DefaultTailSize is how many recent lines Tail keeps for the overlay.
const DefaultTailSize = 200

// Options configure New.
type Options struct {
	Level    string
	FilePath string
	TailSize int
	// Console receives a colored copy of every line; nil means stderr.
	Console io.Writer
}

// Logger is a charmbracelet logger whose output goes to the console, an
// append-only file and an in-memory tail.
type Logger struct {
	*log.Logger
	tail *Tail
	file *os.File
}

// New opens the log file (creating its directory) and returns the logger.
// An empty FilePath disables the file.
func New(opts Options) (*Logger, error) {
	if opts.TailSize <= 0 {
		opts.TailSize = DefaultTailSize
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	tail := NewTail(opts.TailSize)
	writers := []io.Writer{console, tail}

	var file *os.File
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}

	l := log.NewWithOptions(io.MultiWriter(writers...), log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "showroom",
	})
	level, err := log.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = log.InfoLevel
	}
	l.SetLevel(level)
	return &Logger{Logger: l, tail: tail, file: file}, nil
}

// Lines returns a copy of the most recent lines.
func (l *Logger) Lines() []string {
	return l.tail.Lines()
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Discard returns a logger that writes nowhere.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Tail keeps the last n lines written to it.
type Tail struct {
	mu      sync.Mutex
	max     int
	lines   []string
	partial []byte
}

func NewTail(n int) *Tail {
	return &Tail{max: n, lines: make([]string, 0, n)}
}

func (t *Tail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	buf := append(t.partial, p...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		t.push(string(buf[:i]))
		buf = buf[i+1:]
	}
	t.partial = append([]byte(nil), buf...)
	return len(p), nil
}

func (t *Tail) push(line string) {
	if len(t.lines) == t.max {
		copy(t.lines, t.lines[1:])
		t.lines = t.lines[:t.max-1]
	}
	t.lines = append(t.lines, line)
}

// Lines returns a copy of the stored lines, oldest first.
func (t *Tail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}
