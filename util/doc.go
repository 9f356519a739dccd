// Package util provides the low-level file plumbing shared by the edgeagg
// packages.
//
// Key Components:
//
// Hashing:
//   - SHA-256 content digests streamed in ChunkSize reads
//
// Compression:
//   - gzip writers with validated compression levels (1-9)
//   - OpenInput, which transparently decompresses ".gz" inputs and tags
//     format errors with ErrCorruptGzip so callers can tell them apart from
//     plain I/O failures
//
// Files:
//   - ReplaceFile for committing a temporary file over its final path
//   - WriteJSONFile for indented JSON documents such as manifests
//
// Nothing in this package holds state; every function is safe to call from
// multiple goroutines.
package util
