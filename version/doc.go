// Package version reports the version and build metadata of edgeagg.
//
// Values come from, in order of preference:
//   - variables set at link time with -ldflags -X (Version, Commit, Date)
//   - the module version and vcs.* settings embedded by the Go toolchain
//   - "development" / "unknown" fallbacks
//
// The aggregate command does not stamp the version into manifests; it is
// printed by --version and the version subcommand only.
package version
