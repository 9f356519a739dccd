// Package main provides the edgeagg command-line interface.
//
// edgeagg concatenates a tree of edge-list files (.txt, .gz, .txt.gz) into a
// single gzip-compressed stream in deterministic path order, and writes a
// JSON manifest recording sizes and SHA-256 checksums of every input.
//
// The main binary supports multiple subcommands:
//   - aggregate: Build the aggregate and its manifest
//   - validate: Check an aggregate against its manifest
//   - mount: Mount a read-only FUSE view of an aggregate
//   - count: Count candidate files in directory trees
//   - path: Resolve paths inside the project data directory
//   - groups: Summarize ground-truth groupings
//   - seed: Generate synthetic edge files
package main
