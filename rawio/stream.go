package rawio

import "io"

// Stream is the byte-stream abstraction a band reads and writes through.
// It is supplied by the caller; the engine never constructs one of its
// own beyond the convenience helpers in internal/stream.
//
// No partial-read retry is attempted: a ReadAt/WriteAt returning fewer
// bytes than requested, with a nil error, is treated the same as io.EOF —
// "end of file reached".
type Stream interface {
	io.ReaderAt
	io.WriterAt
	// Size returns the current size of the stream in bytes.
	Size() (int64, error)
	// Flush forces any buffered writes to be committed.
	Flush() error
	// Close releases the stream. Bands only call this when they own it.
	Close() error
}
