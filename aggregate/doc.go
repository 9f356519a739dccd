// Package aggregate concatenates many small edge-list files into one
// gzip-compressed file and records what went into it.
//
// An aggregation run walks an input directory, keeps every regular file whose
// name ends in ".gz", ".txt" or ".txt.gz", and processes those candidates in
// ascending path order:
//
//   - the raw bytes of each file are hashed with SHA-256
//   - the decompressed bytes are appended to a single gzip stream
//   - the stream is written to "<output>.tmp" and renamed over the output
//     once every candidate has been visited
//
// Per-file problems never abort a run. Each one is captured as a Failure
// tagged with the Stage it happened in, and files that could not be
// concatenated are listed under "skipped" in the Manifest. A run fails only
// when there is nothing to aggregate or when the output itself cannot be
// written.
//
// The Manifest is a JSON document describing the run. Dry runs produce a
// reduced manifest listing candidate paths and sizes without touching the
// output path.
package aggregate
