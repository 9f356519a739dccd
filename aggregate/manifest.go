package aggregate

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dendrascience/edge-aggregate/util"
)

// TimestampFormat is the layout of created_at: ISO-8601 in UTC with
// microsecond precision and a trailing Z.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

type (
	// FileEntry describes a file that made it into the aggregate.
	FileEntry struct {
		Path   string  `json:"path"`
		Size   *int64  `json:"size"`
		SHA256 *string `json:"sha256"`
	}
	// SizeEntry is the dry-run view of a candidate.
	SizeEntry struct {
		Path string `json:"path"`
		Size *int64 `json:"size"`
	}
	// SkipEntry records a candidate that was left out and why.
	SkipEntry struct {
		Path  string `json:"path"`
		Stage Stage  `json:"stage"`
		Error string `json:"error"`
	}
	// Manifest describes one aggregation run.
	//
	// A dry-run manifest only carries Files. A real run carries the totals,
	// PerFile and Skipped instead.
	Manifest struct {
		CreatedAt time.Time
		InputDir  string
		Output    string
		DryRun    bool

		Files []SizeEntry

		FilesProcessed         int
		TotalUncompressedBytes int64
		CompressedSizeBytes    *int64
		PerFile                []FileEntry
		Skipped                []SkipEntry
	}
)

type dryRunManifest struct {
	CreatedAt string      `json:"created_at"`
	InputDir  string      `json:"input_dir"`
	Output    string      `json:"output"`
	Files     []SizeEntry `json:"files"`
}

type runManifest struct {
	CreatedAt              string      `json:"created_at"`
	InputDir               string      `json:"input_dir"`
	Output                 string      `json:"output"`
	FilesProcessed         int         `json:"files_processed"`
	TotalUncompressedBytes int64       `json:"total_uncompressed_bytes"`
	CompressedSizeBytes    *int64      `json:"compressed_size_bytes"`
	PerFile                []FileEntry `json:"per_file"`
	Skipped                []SkipEntry `json:"skipped"`
}

func (m Manifest) MarshalJSON() ([]byte, error) {
	created := m.CreatedAt.UTC().Format(TimestampFormat)
	if m.DryRun {
		files := m.Files
		if files == nil {
			files = []SizeEntry{}
		}
		return json.Marshal(dryRunManifest{
			CreatedAt: created,
			InputDir:  m.InputDir,
			Output:    m.Output,
			Files:     files,
		})
	}
	perFile, skipped := m.PerFile, m.Skipped
	if perFile == nil {
		perFile = []FileEntry{}
	}
	if skipped == nil {
		skipped = []SkipEntry{}
	}
	return json.Marshal(runManifest{
		CreatedAt:              created,
		InputDir:               m.InputDir,
		Output:                 m.Output,
		FilesProcessed:         m.FilesProcessed,
		TotalUncompressedBytes: m.TotalUncompressedBytes,
		CompressedSizeBytes:    m.CompressedSizeBytes,
		PerFile:                perFile,
		Skipped:                skipped,
	})
}

func (m *Manifest) UnmarshalJSON(data []byte) error {
	var aux struct {
		CreatedAt              string       `json:"created_at"`
		InputDir               string       `json:"input_dir"`
		Output                 string       `json:"output"`
		Files                  *[]SizeEntry `json:"files"`
		FilesProcessed         int          `json:"files_processed"`
		TotalUncompressedBytes int64        `json:"total_uncompressed_bytes"`
		CompressedSizeBytes    *int64       `json:"compressed_size_bytes"`
		PerFile                *[]FileEntry `json:"per_file"`
		Skipped                []SkipEntry  `json:"skipped"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var created time.Time
	if aux.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, aux.CreatedAt)
		if err != nil {
			return fmt.Errorf("parse created_at: %w", err)
		}
		created = t
	}
	*m = Manifest{
		CreatedAt:              created,
		InputDir:               aux.InputDir,
		Output:                 aux.Output,
		FilesProcessed:         aux.FilesProcessed,
		TotalUncompressedBytes: aux.TotalUncompressedBytes,
		CompressedSizeBytes:    aux.CompressedSizeBytes,
		Skipped:                aux.Skipped,
	}
	if aux.PerFile != nil {
		m.PerFile = *aux.PerFile
	} else if aux.Files != nil {
		m.DryRun = true
		m.Files = *aux.Files
	}
	return nil
}

// Save writes the manifest to path as indented JSON.
func (m *Manifest) Save(path string) error {
	return util.WriteJSONFile(path, m)
}

// ReadManifest loads a manifest of either shape from path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
