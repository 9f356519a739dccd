package util

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const (
	MinLevel     = gzip.BestSpeed
	MaxLevel     = gzip.BestCompression
	DefaultLevel = 6
)

// IsGzipPath reports whether path names a gzip-compressed file.
func IsGzipPath(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

// ValidateLevel checks that level is a usable gzip compression level.
func ValidateLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
	}
	return nil
}

// NewGzipWriter wraps w in a gzip writer at the given level.
func NewGzipWriter(w io.Writer, level int) (*gzip.Writer, error) {
	if err := ValidateLevel(level); err != nil {
		return nil, err
	}
	return gzip.NewWriterLevel(w, level)
}

// OpenInput opens path for reading. Files ending in ".gz" are decompressed
// transparently; anything else is returned raw.
//
// Errors from the gzip layer (bad header, checksum mismatch, truncated
// stream) are wrapped with ErrCorruptGzip. Errors from the underlying file
// come back as *fs.PathError, unwrapped.
func OpenInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !IsGzipPath(path) {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	switch {
	case errors.Is(err, io.EOF):
		// zero-length .gz file, nothing to decompress
		return f, nil
	case err != nil:
		f.Close()
		return nil, classifyGzipError(path, err)
	}
	return &gzipInput{path: path, f: f, zr: zr}, nil
}

type gzipInput struct {
	path string
	f    *os.File
	zr   *gzip.Reader
}

func (g *gzipInput) Read(p []byte) (int, error) {
	n, err := g.zr.Read(p)
	if err != nil && err != io.EOF {
		err = classifyGzipError(g.path, err)
	}
	return n, err
}

func (g *gzipInput) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if ferr != nil {
		return ferr
	}
	return zerr
}

func classifyGzipError(path string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrCorruptGzip, path, err)
}
