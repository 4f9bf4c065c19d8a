// Package log4uwu is a small multi-transport logging package with colorized
// interactive output and tagged logical threads. Every message is shown on
// an interactive stream (terminal) and written, in plain timestamped form,
// to any number of transports: log files and live connections.
package log4uwu

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/fatih/color"
)

// Logger is the central state holder. It owns the transport list, the
// interactive stream and the registry of active logical threads.
//
// Construct with New; the zero value is not usable.
type Logger struct {
	sync struct {
		thrdMtx sync.RWMutex // guards threads map and the id counter
		outMtx  sync.Mutex   // keeps interactive lines whole under concurrent use
	}
	transports []Transport              // fan-out destinations, fixed after construction
	threads    map[string]*LoggerThread // active logical threads by id
	stdout     io.Writer                // interactive stream
	timefmt    string                   // record timestamp layout
	counter    uint64                   // last issued thread id, never reused
	debugMode  bool                     // interactive visibility of debug and lifecycle messages
}

// Option configures a Logger during New.
type Option func(*Logger) error

// New constructs a Logger. Without options it logs interactively only: no
// transports, debug mode off, the default record timestamp layout and
// [color.Output] as the interactive stream.
//
// Preferred usage example:
//
//	logger, err := log4uwu.New(
//	    log4uwu.WithFile("logs/run.log"),
//	    log4uwu.WithDebug(true),
//	)
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		threads: map[string]*LoggerThread{},
		stdout:  color.Output,
		timefmt: DEFAULT_TIME_FORMAT,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// WithTransports appends ready transports in the given order. Nil
// transports are ignored.
func WithTransports(transports ...Transport) Option {
	return func(l *Logger) error {
		for _, transport := range transports {
			if transport != nil {
				l.transports = append(l.transports, transport)
			}
		}
		return nil
	}
}

// WithFile appends a file transport for path, prepared as NewFileTransport
// does.
func WithFile(path string) Option {
	return func(l *Logger) error {
		transport, err := NewFileTransport(path)
		if err != nil {
			return err
		}
		l.transports = append(l.transports, transport)
		return nil
	}
}

// WithStream appends a live-connection transport. A nil connection is
// ignored.
func WithStream(conn Conn) Option {
	return func(l *Logger) error {
		if conn != nil {
			l.transports = append(l.transports, NewStreamTransport(conn))
		}
		return nil
	}
}

// WithDebug switches interactive visibility of debug and thread lifecycle
// messages. Transports receive them regardless.
func WithDebug(debug bool) Option {
	return func(l *Logger) error {
		l.debugMode = debug
		return nil
	}
}

// WithTimeFormat sets the record timestamp layout.
//
// More about time format layouts at https://pkg.go.dev/time#Layout. Example:
//
//	"2006-01-02 15:04:05"
func WithTimeFormat(layout string) Option {
	return func(l *Logger) error {
		l.timefmt = layout
		return nil
	}
}

// WithStdout redirects the interactive stream somewhere other than
// [color.Output]. A nil writer is ignored.
func WithStdout(w io.Writer) Option {
	return func(l *Logger) error {
		if w != nil {
			l.stdout = w
		}
		return nil
	}
}

/////////////////////////////////////////////////////////////////////////////////////////

// Log writes one message at the given level and returns the message
// unchanged, so a call can be embedded in an expression:
//
//	return errors.New(logger.Log(log4uwu.LVL_ERROR, "giving up"))
//
// The interactive line carries the colorized level tag; per-call options
// colorize the body (WithColor) or suppress the line (Silent). Every
// configured transport receives the plain record. Panics on levels outside
// the declared set.
func (l *Logger) Log(level LogLevel, message string, opts ...LogOption) string {
	return l.log(level, message, "", opts...)
}

// Debug logs at DEBUG level. The interactive line appears in debug mode
// only; transports receive the record either way.
func (l *Logger) Debug(message string) string {
	return l.log(LVL_DEBUG, message, "", gated())
}

// Error logs err at ERROR level with a red body. Errors carrying a stack
// trace (github.com/pkg/errors) are rendered with it, plain errors with
// their message only.
func (l *Logger) Error(err error) string {
	return l.log(LVL_ERROR, errorDetail(err), "", WithColor("red"))
}

// Info logs at INFO level.
func (l *Logger) Info(message string) string {
	return l.log(LVL_INFO, message, "")
}

// Init logs at INIT level. Meant for startup and wiring messages.
func (l *Logger) Init(message string) string {
	return l.log(LVL_INIT, message, "")
}

// Warn logs at WARN level.
func (l *Logger) Warn(message string) string {
	return l.log(LVL_WARN, message, "")
}

// errorDetail renders the best available error text: %+v expands to message
// plus stack trace for stack-carrying errors and to the bare message
// otherwise. A nil error renders as "<nil>".
func errorDetail(err error) string {
	return fmt.Sprintf("%+v", err)
}

// DebugMode reports whether debug and lifecycle messages are interactively
// visible.
func (l *Logger) DebugMode() bool {
	return l.debugMode
}

// Transports returns the attached transports in dispatch order.
func (l *Logger) Transports() []Transport {
	return slices.Clone(l.transports)
}

/////////////////////////////////////////////////////////////////////////////////////////

// StartThread allocates the next thread id, registers a LoggerThread under
// it and announces the start at THREAD level (interactively visible in
// debug mode only). Ids are never reused within a Logger.
func (l *Logger) StartThread() *LoggerThread {
	l.sync.thrdMtx.Lock()
	l.counter++
	thread := &LoggerThread{
		logger: l,
		id:     "0x" + strconv.FormatUint(l.counter, 16),
		level:  DEFAULT_THREAD_LEVEL,
	}
	l.threads[thread.id] = thread
	l.sync.thrdMtx.Unlock()
	l.log(LVL_THREAD, "Started thread ID "+thread.id, "", gated())
	return thread
}

// EndAllThreads ends every registered thread and returns the ids that were
// ended. The registry is empty afterwards.
func (l *Logger) EndAllThreads() (ended []string) {
	l.sync.thrdMtx.RLock()
	threads := slices.Collect(maps.Values(l.threads))
	l.sync.thrdMtx.RUnlock()
	for _, thread := range threads {
		thread.End()
		ended = append(ended, thread.ID())
	}
	return ended
}

// ActiveThreads returns the sorted ids of the registered threads.
func (l *Logger) ActiveThreads() []string {
	l.sync.thrdMtx.RLock()
	defer l.sync.thrdMtx.RUnlock()
	return slices.Sorted(maps.Keys(l.threads))
}
