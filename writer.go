package log4uwu

/*********************************************************************************
io.Writer interface implementation

A LoggerThread implements io.Writer so it can be used with fmt.Fprintf and
other formatting helpers. The semantics are:
 - Lvl(level) sets the level used by subsequent Write calls.
 - Write(p) logs the bytes as one tagged message at that level and reports
   len(p).

This allows patterns like:

	fmt.Fprintf(thread.Lvl(LVL_WARN), "disk low: %d%%", percent)
*/

// Lvl sets the thread's current level (used by Write/fmt.Fprintf) and
// returns the same thread for convenient chaining. Panics on levels outside
// the declared set.
func (t *LoggerThread) Lvl(level LogLevel) *LoggerThread {
	t.level = checkLevel(level)
	return t
}

// Write implements io.Writer. The payload becomes one tagged log message at
// the level selected by Lvl (DEFAULT_THREAD_LEVEL until then). A nil
// payload is treated as a zero-length write. The returned error is always
// nil; delivery is best-effort like any other log call.
func (t *LoggerThread) Write(p []byte) (n int, err error) {
	if p == nil {
		return 0, nil
	}
	t.logger.log(t.level, string(p), t.id)
	return len(p), nil
}
