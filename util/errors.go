// Package util provides utility functions for edgeagg.
package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Compression errors
	ErrInvalidLevel = errors.New("compression level must be between 1 and 9")
	ErrCorruptGzip  = errors.New("corrupt gzip stream")
)
