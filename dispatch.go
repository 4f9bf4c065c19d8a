package log4uwu

/*
Conversion of log calls into interactive lines and transport records:
 - per-call options (body color, silencing, debug gating)
 - building the interactive line (colorized level tag, optional thread id
   tag, optionally colorized body)
 - building the plain record shared by all transports
 - fan-out with per-transport isolation: a transport that fails or panics
   loses that one record and never disturbs the others or the caller
*/

import (
	"time"

	"github.com/acarl005/stripansi"
	"github.com/valyala/bytebufferpool"
)

// now supplies record timestamps. Overridable in tests.
var now = time.Now

// logCall carries the per-call options of a single Log invocation.
type logCall struct {
	color  string
	silent bool
	gated  bool // interactive output additionally requires debug mode
}

// LogOption adjusts a single Log call.
type LogOption func(*logCall)

// WithColor colorizes the interactive message body. Unknown color names
// leave the body uncolored. Transport records are never colorized.
func WithColor(name string) LogOption {
	return func(c *logCall) { c.color = name }
}

// Silent suppresses the interactive line of the call. Transports still
// receive the record.
func Silent() LogOption {
	return func(c *logCall) { c.silent = true }
}

// gated marks a call whose interactive line is shown in debug mode only.
// Used by Debug and by thread lifecycle announcements.
func gated() LogOption {
	return func(c *logCall) { c.gated = true }
}

// log is the single dispatch point behind every Logger and LoggerThread
// logging method. It returns the message unchanged.
func (l *Logger) log(level LogLevel, message, threadID string, opts ...LogOption) string {
	checkLevel(level)
	call := logCall{}
	for _, opt := range opts {
		if opt != nil {
			opt(&call)
		}
	}
	if !call.silent && (!call.gated || l.debugMode) {
		l.writeInteractive(level, message, threadID, call.color)
	}
	l.writeTransports(level, message, threadID)
	return message
}

// writeInteractive builds and writes one interactive line:
// "<[LEVEL] tag> [<[id] tag> ]<body>\n". Panics from the destination writer
// are swallowed, logging must not take the host down.
func (l *Logger) writeInteractive(level LogLevel, message, threadID, colorName string) {
	defer func() { _ = recover() }()
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	buf.WriteString(levelColors[level].Sprint("[" + LevelNames[level] + "]"))
	buf.WriteByte(' ')
	if threadID != "" {
		buf.WriteString(threadIDColor.Sprint("[" + threadID + "]"))
		buf.WriteByte(' ')
	}
	if c := messageColors[colorName]; c != nil {
		buf.WriteString(c.Sprint(message))
	} else {
		buf.WriteString(message)
	}
	buf.WriteByte('\n')
	l.sync.outMtx.Lock()
	defer l.sync.outMtx.Unlock()
	l.stdout.Write(buf.B)
}

// writeTransports builds the plain record once and hands it to every
// transport independently. With no transports attached the call returns
// before any timestamp work.
func (l *Logger) writeTransports(level LogLevel, message, threadID string) {
	if len(l.transports) == 0 {
		return
	}
	record := l.buildRecord(level, message, threadID)
	for _, transport := range l.transports {
		writeRecord(transport, record)
	}
}

// writeRecord performs one transport write. Errors and panics drop the
// record for that transport only.
func writeRecord(transport Transport, record string) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
		}
	}()
	_ = transport.WriteRecord(record)
	return
}

// buildRecord renders the transport record:
// "[<ts>] - <LEVEL> - [<id> - ]<message>". ANSI escape sequences are
// stripped from the message, so interactive styling never reaches a
// transport.
func (l *Logger) buildRecord(level LogLevel, message, threadID string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	buf.WriteByte('[')
	buf.WriteString(now().Format(l.timefmt))
	buf.WriteByte(']')
	buf.WriteString(RECORD_DELIMITER)
	buf.WriteString(LevelNames[level])
	buf.WriteString(RECORD_DELIMITER)
	if threadID != "" {
		buf.WriteString(threadID)
		buf.WriteString(RECORD_DELIMITER)
	}
	buf.WriteString(stripansi.Strip(message))
	return buf.String()
}
