// Package edgefs exposes an aggregate as a read-only FUSE filesystem.
//
// The mounted directory holds two files:
//   - the decompressed aggregate, named after the output without ".gz"
//   - manifest.json, the manifest byte for byte
//
// The aggregate is decompressed into memory on first read and kept for the
// lifetime of the mount. Sizes are reported from the manifest, so a stale
// manifest shows up as a short or long read rather than an error; run
// "edgeagg validate" first when in doubt.
//
// The main entry point is Open(), whose result is mounted with
// bazil.org/fuse.
package edgefs
