package log4uwu

/*
A LoggerThread tags a sub-stream of related messages with an identity of its
own, typically one per concurrent unit of work. Threads are created by
Logger.StartThread, share the parent's transports and interactive stream and
announce their lifecycle at THREAD level.

Note that a logical thread is a naming device, not an OS thread: any number
of goroutines may log through the same handle, and a single goroutine may
hold several.
*/

// LoggerThread is a handle for one logical thread of log messages. Create
// with Logger.StartThread; the zero value is not usable.
type LoggerThread struct {
	logger *Logger  // owning logger, shared transports and stream
	id     string   // "0x" + hex of the issue counter, unique per logger
	level  LogLevel // current level used by Write / fmt.Fprintf helpers
}

// ID returns the thread identifier, e.g. "0x1f".
func (t *LoggerThread) ID() string {
	return t.id
}

// Log writes one message tagged with the thread id and returns the message
// unchanged. The interactive line shows the id after the level tag; the
// transport record embeds it between level and message.
func (t *LoggerThread) Log(level LogLevel, message string, opts ...LogOption) string {
	return t.logger.log(level, message, t.id, opts...)
}

// Debug logs at DEBUG level under the thread id. Interactive visibility
// follows the owning logger's debug mode.
func (t *LoggerThread) Debug(message string) string {
	return t.logger.log(LVL_DEBUG, message, t.id, gated())
}

// Error logs err at ERROR level under the thread id, red body, stack trace
// when the error carries one.
func (t *LoggerThread) Error(err error) string {
	return t.logger.log(LVL_ERROR, errorDetail(err), t.id, WithColor("red"))
}

// Info logs at INFO level under the thread id.
func (t *LoggerThread) Info(message string) string {
	return t.logger.log(LVL_INFO, message, t.id)
}

// Init logs at INIT level under the thread id.
func (t *LoggerThread) Init(message string) string {
	return t.logger.log(LVL_INIT, message, t.id)
}

// Warn logs at WARN level under the thread id.
func (t *LoggerThread) Warn(message string) string {
	return t.logger.log(LVL_WARN, message, t.id)
}

// End announces the thread's termination (THREAD level, interactively
// visible in debug mode only) and removes it from the registry. Ending an
// already ended thread does nothing. The handle itself stays usable, later
// messages are still tagged with its id.
func (t *LoggerThread) End() {
	l := t.logger
	l.sync.thrdMtx.Lock()
	_, active := l.threads[t.id]
	delete(l.threads, t.id)
	l.sync.thrdMtx.Unlock()
	if active {
		l.log(LVL_THREAD, "Ended thread ID "+t.id, "", gated())
	}
}
