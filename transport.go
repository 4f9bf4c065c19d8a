package log4uwu

/*
Transports are the persistent destinations of log records. Two variants are
provided:
  - FileTransport appends records to a file path, one line per record
  - StreamTransport emits records to a live connection while it is connected

The Logger depends only on the Transport capability, so further variants can
be attached through WithTransports.
*/

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Transport writes one formatted record to its destination. A failed write
// is reported through the error; the logger drops the record for that
// transport and carries on with the others.
type Transport interface {
	WriteRecord(record string) error
}

// Conn is a live connection a StreamTransport publishes to. Emit is called
// only while Connected reports true.
type Conn interface {
	Connected() bool
	Emit(channel string, payload []byte) error
}

// FileTransport appends records to a log file, one line per record.
type FileTransport struct {
	path string
}

// NewFileTransport prepares a file transport for the given path: missing
// parent directories are created and a file left over from a previous run
// is removed, so logging starts on an empty file.
func NewFileTransport(path string) (*FileTransport, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create log directory %q", dir)
		}
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "remove stale log file %q", path)
	}
	return &FileTransport{path: path}, nil
}

// Path returns the file path records are appended to.
func (ft *FileTransport) Path() string {
	return ft.path
}

// WriteRecord appends the record and a trailing newline. The file is opened
// per record, so removal or rotation between writes does not wedge the
// transport.
func (ft *FileTransport) WriteRecord(record string) error {
	f, err := os.OpenFile(ft.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open log file %q", ft.path)
	}
	_, werr := f.WriteString(record + "\n")
	cerr := f.Close()
	if werr != nil {
		return errors.Wrapf(werr, "append to log file %q", ft.path)
	}
	if cerr != nil {
		return errors.Wrapf(cerr, "close log file %q", ft.path)
	}
	return nil
}

// StreamTransport emits records to a live connection. Records produced
// while the connection has no subscribers are skipped, not queued.
type StreamTransport struct {
	conn Conn
}

// NewStreamTransport wraps a live connection as a transport.
func NewStreamTransport(conn Conn) *StreamTransport {
	return &StreamTransport{conn: conn}
}

// WriteRecord publishes the record under STREAM_CHANNEL. A disconnected
// connection is not an error, the record is simply skipped.
func (st *StreamTransport) WriteRecord(record string) error {
	if st.conn == nil || !st.conn.Connected() {
		return nil
	}
	return errors.Wrap(st.conn.Emit(STREAM_CHANNEL, []byte(record)), "emit record")
}
