package util

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// ChunkSize is the buffer size used when streaming file contents,
// both for hashing and for concatenation.
const ChunkSize = 1 << 20

// GetFileHash hashes the raw bytes of a file and returns the hash as a
// lowercase hex string. Compressed files are hashed as stored on disk.
func GetFileHash(path string) (hash string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
