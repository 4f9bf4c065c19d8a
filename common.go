package log4uwu

/*
Core data types and package-wide constants used by the logger:
  - basetype and the byte-sized LogLevel enum
  - LevelMap: fixed-size per-level string array (record names, tags)
  - per-level tag colors and the named message-body colors
  - defaults and validity helpers
*/

import (
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

type basetype byte // underlying byte-sized representation used for enums

type LogLevel basetype // Logger levels (alias for byte)

const (
	// Log level values. The trailing _LVL_MAX_for_checks_only is used as an
	// exclusive upper bound for validity checks.
	LVL_INFO LogLevel = iota
	LVL_INIT
	LVL_DEBUG
	LVL_ERROR
	LVL_WARN
	LVL_THREAD
	_LVL_MAX_for_checks_only
)

const (
	// Default values for short construction forms
	DEFAULT_TIME_FORMAT  = "02-01-06 15:04:05" // record timestamp layout (see time.Layout)
	DEFAULT_THREAD_LEVEL = LVL_INFO            // level used by the thread io.Writer adapter until Lvl() is called
)

const (
	// Fixed channel name stream transports publish records under.
	STREAM_CHANNEL = "logger"
	// Separator between record fields: "[<ts>] - <LEVEL> - [<id> - ]<message>"
	RECORD_DELIMITER = " - "
)

const (
	_ERROR_MESSAGE_INVALID_LEVEL = "invalid log level"
)

// LevelMap is a fixed-size array with one entry per log level. Used for
// level names and tags.
type LevelMap [_LVL_MAX_for_checks_only]string

// Level names as they appear in transport records and interactive tags.
var LevelNames = &LevelMap{
	"INFO",   //LVL_INFO
	"INIT",   //LVL_INIT
	"DEBUG",  //LVL_DEBUG
	"ERROR",  //LVL_ERROR
	"WARN",   //LVL_WARN
	"THREAD", //LVL_THREAD
}

// Interactive tag colors, one per level. Indexed with checked levels only.
var levelColors = [_LVL_MAX_for_checks_only]*color.Color{
	color.New(color.FgHiGreen),   //LVL_INFO
	color.New(color.FgHiWhite),   //LVL_INIT
	color.New(color.FgHiCyan),    //LVL_DEBUG
	color.New(color.FgHiRed),     //LVL_ERROR
	color.New(color.FgHiYellow),  //LVL_WARN
	color.New(color.FgHiMagenta), //LVL_THREAD
}

// threadIDColor renders the thread id tag in interactive lines.
var threadIDColor = color.New(color.FgHiBlue)

// Message-body colors accepted by WithColor. Unknown names leave the body
// uncolored.
var messageColors = map[string]*color.Color{
	"black":   color.New(color.FgBlack),
	"red":     color.New(color.FgRed),
	"green":   color.New(color.FgGreen),
	"yellow":  color.New(color.FgYellow),
	"blue":    color.New(color.FgBlue),
	"magenta": color.New(color.FgMagenta),
	"cyan":    color.New(color.FgCyan),
	"white":   color.New(color.FgWhite),
	"gray":    color.New(color.FgHiBlack),
	"grey":    color.New(color.FgHiBlack),
}

// String returns the level name used in records and tags, "UNKNOWN" for
// values outside the declared set.
func (level LogLevel) String() string {
	if !level.valid() {
		return "UNKNOWN"
	}
	return LevelNames[level]
}

// Reports whether the level is within the declared set.
func (level LogLevel) valid() bool {
	return level < _LVL_MAX_for_checks_only
}

// checkLevel returns the level unchanged and panics on values outside the
// declared set. Levels form a closed enumeration; anything else is a
// contract violation by the caller.
func checkLevel(level LogLevel) LogLevel {
	if !level.valid() {
		panic(errors.Errorf("%s: %d", _ERROR_MESSAGE_INVALID_LEVEL, int(level)))
	}
	return level
}
