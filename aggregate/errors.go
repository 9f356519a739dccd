package aggregate

import "errors"

var (
	ErrNoCandidates     = errors.New("no candidate files found")
	ErrMissingInputDir  = errors.New("input directory is required")
	ErrMissingOutput    = errors.New("output path is required")
	ErrDryRunManifest   = errors.New("manifest was written by a dry run")
	ErrManifestMismatch = errors.New("manifest does not match aggregate")
)
