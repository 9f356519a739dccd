// Package cmd provides the command-line interface implementation for edgeagg.
//
// This package contains all the subcommand implementations for the edgeagg CLI
// tool. It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator, persistent --config and --verbose flags
//   - aggregate: Concatenate edge files into one gzip file with a manifest
//   - validate: Check an aggregate against its manifest
//   - mount: Read-only FUSE view of an aggregate
//   - count: Count candidate files
//   - path, groups: Data directory lookups and ground-truth summaries
//   - seed: Synthetic test data
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Commands print their results to
// the command's output writer and log warnings through zap on stderr.
package cmd
