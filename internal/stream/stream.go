// Package stream provides byte-stream implementations satisfying
// rawio.Stream: a plain seekable-file backend and an optional read-only
// memory-mapped backend. Neither type imports rawio — they satisfy its
// Stream interface structurally, the same way go-hdf5's
// binary.SeekableWriterAt adapts an io.WriteSeeker without naming its
// caller's package.
package stream

import (
	"fmt"
	"os"

	"golang.org/x/exp/mmap"
)

// FileStream is a Stream backed by an *os.File.
type FileStream struct {
	f *os.File
}

// Open opens path for read/write, creating it if it does not exist.
func Open(path string) (*FileStream, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	return &FileStream{f: f}, nil
}

// OpenReadOnly opens path for reading only.
func OpenReadOnly(path string) (*FileStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	return &FileStream{f: f}, nil
}

func (s *FileStream) ReadAt(p []byte, off int64) (int, error)  { return s.f.ReadAt(p, off) }
func (s *FileStream) WriteAt(p []byte, off int64) (int, error) { return s.f.WriteAt(p, off) }

func (s *FileStream) Size() (int64, error) {
	fi, err := s.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat stream: %w", err)
	}
	return fi.Size(), nil
}

func (s *FileStream) Flush() error { return s.f.Sync() }
func (s *FileStream) Close() error { return s.f.Close() }

// MMapStream is a read-only Stream backed by a memory-mapped file
// (golang.org/x/exp/mmap), grounded on other_examples'
// Echoflaresat-spacecam__striped.go use of mmap.Open as a plain
// io.ReaderAt. Writes always fail: callers that need to write must use
// FileStream instead.
type MMapStream struct {
	r *mmap.ReaderAt
}

// OpenMMap memory-maps path read-only.
func OpenMMap(path string) (*MMapStream, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap opening stream: %w", err)
	}
	return &MMapStream{r: r}, nil
}

func (s *MMapStream) ReadAt(p []byte, off int64) (int, error) { return s.r.ReadAt(p, off) }

func (s *MMapStream) WriteAt(p []byte, off int64) (int, error) {
	return 0, fmt.Errorf("mmap stream is read-only")
}

func (s *MMapStream) Size() (int64, error) { return int64(s.r.Len()), nil }
func (s *MMapStream) Flush() error         { return nil }
func (s *MMapStream) Close() error         { return s.r.Close() }

// ShouldAttemptMMap decides whether a caller (a format driver, not this
// engine) should try memory-mapping a file at all. The engine itself
// never calls this — it only has an opinion via this helper, which a
// driver may ignore.
//
// It returns true only for read-only access to a non-empty file of at
// most 4 GiB with at most 64 bands; there is no lower size bound, so
// small files qualify too. A writable mapping is outside this engine's
// remit entirely.
func ShouldAttemptMMap(fileSize int64, bandCount int, readOnly bool) bool {
	if !readOnly {
		return false
	}
	if fileSize <= 0 {
		return false
	}
	const maxMappable = 1 << 32 // 4 GiB: stay well inside a safe mapping size
	if fileSize > maxMappable {
		return false
	}
	return bandCount <= 64
}
