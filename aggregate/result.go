package aggregate

import "fmt"

// Stage names the step of per-file processing where a failure happened.
type Stage string

const (
	StageStat       Stage = "stat"
	StageHash       Stage = "hash"
	StageOpen       Stage = "open"
	StageRead       Stage = "read"
	StageDecompress Stage = "decompress"
)

// Skips reports whether a failure at this stage keeps the file out of the
// aggregate. Stat and hash failures only leave manifest fields empty.
func (s Stage) Skips() bool {
	switch s {
	case StageOpen, StageRead, StageDecompress:
		return true
	}
	return false
}

// Failure is one problem met while processing a candidate.
type Failure struct {
	Stage Stage
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Stage, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// FileResult is the outcome of processing a single candidate.
type FileResult struct {
	Path     string
	Size     *int64  // on-disk size; nil when stat failed
	SHA256   *string // digest of the raw bytes; nil when hashing failed or skipped
	Written  int64   // decompressed bytes appended to the output
	Failures []Failure
}

// Skipped returns the failure that kept the file out of the aggregate, if
// there is one.
func (r FileResult) Skipped() (Failure, bool) {
	for _, f := range r.Failures {
		if f.Stage.Skips() {
			return f, true
		}
	}
	return Failure{}, false
}

func (r *FileResult) fail(stage Stage, err error) {
	r.Failures = append(r.Failures, Failure{Stage: stage, Err: err})
}
