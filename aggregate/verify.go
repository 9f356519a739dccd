package aggregate

import (
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/edge-aggregate/util"
	"github.com/klauspost/compress/gzip"
)

// Verify checks an aggregate against the manifest that describes it and
// returns a description of every inconsistency found. An empty slice means
// the aggregate is consistent.
//
// When checkInputs is set, every per-file entry is hashed and sized again
// so that inputs changed since the run are reported as well.
func Verify(m *Manifest, checkInputs bool) []string {
	var problems []string
	if m.DryRun {
		return []string{ErrDryRunManifest.Error()}
	}

	if m.FilesProcessed != len(m.PerFile) {
		problems = append(problems, fmt.Sprintf("files_processed is %d but per_file lists %d entries",
			m.FilesProcessed, len(m.PerFile)))
	}

	info, err := os.Stat(m.Output)
	if err != nil {
		problems = append(problems, fmt.Sprintf("cannot stat output %s: %v", m.Output, err))
		return append(problems, checkEntries(m, checkInputs)...)
	}
	if m.CompressedSizeBytes != nil && *m.CompressedSizeBytes != info.Size() {
		problems = append(problems, fmt.Sprintf("compressed size mismatch: manifest %d, output %d",
			*m.CompressedSizeBytes, info.Size()))
	}

	n, err := decompressedSize(m.Output)
	if err != nil {
		problems = append(problems, fmt.Sprintf("cannot decompress output %s: %v", m.Output, err))
	} else if n != m.TotalUncompressedBytes {
		problems = append(problems, fmt.Sprintf("uncompressed size mismatch: manifest %d, output %d",
			m.TotalUncompressedBytes, n))
	}

	return append(problems, checkEntries(m, checkInputs)...)
}

func checkEntries(m *Manifest, checkInputs bool) []string {
	if !checkInputs {
		return nil
	}
	var problems []string
	for _, e := range m.PerFile {
		if e.Size != nil {
			info, err := os.Stat(e.Path)
			if err != nil {
				problems = append(problems, fmt.Sprintf("cannot stat input %s: %v", e.Path, err))
				continue
			}
			if info.Size() != *e.Size {
				problems = append(problems, fmt.Sprintf("input %s size changed: manifest %d, now %d",
					e.Path, *e.Size, info.Size()))
			}
		}
		if e.SHA256 != nil {
			hash, err := util.GetFileHash(e.Path)
			if err != nil {
				problems = append(problems, fmt.Sprintf("cannot hash input %s: %v", e.Path, err))
				continue
			}
			if hash != *e.SHA256 {
				problems = append(problems, fmt.Sprintf("input %s checksum changed: manifest %s, now %s",
					e.Path, *e.SHA256, hash))
			}
		}
	}
	return problems
}

func decompressedSize(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		return 0, err
	}
	defer zr.Close()
	return io.CopyBuffer(io.Discard, zr, make([]byte, util.ChunkSize))
}
