// Package binreader abstracts the two ways the engine reads the trigram
// model file: directly from an *os.File, or through the page cache. Every
// concurrent restoration task opens its own Reader — a Reader is
// single-threaded and must not be shared across goroutines (spec.md §4.2,
// §9's "one reader per task" design note).
package binreader

import (
	"encoding/binary"
	"io"
)

// Reader is the minimal surface the model package needs: read a
// little-endian int32 at the current position, and seek.
type Reader interface {
	ReadInt32() (int32, error)
	Seek(offset int64, whence int) (int64, error)
	io.Closer
}

// fileReader reads directly from an io.ReadSeekCloser (an *os.File in
// practice; tests may substitute a fake).
type fileReader struct {
	f io.ReadSeekCloser
}

// NewFileReader wraps f for direct, unbuffered binary reads.
func NewFileReader(f io.ReadSeekCloser) Reader {
	return &fileReader{f: f}
}

func (r *fileReader) ReadInt32() (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r.f, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

func (r *fileReader) Seek(offset int64, whence int) (int64, error) {
	return r.f.Seek(offset, whence)
}

func (r *fileReader) Close() error {
	return r.f.Close()
}

// cacheReaderAt is satisfied by *pagecache.Cache.
type cacheReaderAt interface {
	io.ReaderAt
	Size() int64
}

// cacheReader reads through a page cache, tracking its own cursor.
type cacheReader struct {
	cache  cacheReaderAt
	cursor int64
}

// NewCacheReader wraps a page cache for paged binary reads. Each call
// produces an independent cursor, suitable for handing one to every
// concurrent restoration task while they all share the same underlying
// cache.
func NewCacheReader(cache cacheReaderAt) Reader {
	return &cacheReader{cache: cache}
}

func (r *cacheReader) ReadInt32() (int32, error) {
	var buf [4]byte
	n, err := r.cache.ReadAt(buf[:], r.cursor)
	r.cursor += int64(n)
	if n < 4 {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

func (r *cacheReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		r.cursor = offset
	case io.SeekCurrent:
		r.cursor += offset
	case io.SeekEnd:
		r.cursor = r.cache.Size() + offset
	}
	return r.cursor, nil
}

func (r *cacheReader) Close() error {
	return nil
}
