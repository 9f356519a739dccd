package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dendrascience/edge-aggregate/aggregate"
)

func TestPathsOverlap(t *testing.T) {
	tests := []struct {
		name      string
		outputDir string
		mount     string
		expected  bool
	}{
		{"identical paths", "/data/agg", "/data/agg", true},
		{"mount inside output dir", "/data/agg", "/data/agg/view", true},
		{"output dir inside mount", "/data/agg/out", "/data/agg", true},
		{"separate trees", "/data/agg", "/mnt/view", false},
		{"sibling directories", "/data/agg", "/data/view", false},
		{"shared name prefix", "/data/agg", "/data/aggregate", false},
		{"relative overlapping", "agg", "agg/view", true},
		{"relative separate", "agg", "view", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pathsOverlap(tt.outputDir, tt.mount); got != tt.expected {
				t.Errorf("pathsOverlap(%q, %q) = %v, expected %v", tt.outputDir, tt.mount, got, tt.expected)
			}
		})
	}
}

func TestMountRejectsBadManifests(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	populateEdges(t, dir)

	dryManifest := filepath.Join(dir, "dry.json")
	if _, err := execute(t, "aggregate", filepath.Join(dir, "in"), filepath.Join(dir, "out.gz"),
		"--dry-run", "--manifest", dryManifest); err != nil {
		t.Fatalf("aggregate --dry-run error = %v", err)
	}
	if _, err := execute(t, "mount", dryManifest, filepath.Join(dir, "mnt")); !errors.Is(err, aggregate.ErrDryRunManifest) {
		t.Errorf("mount(dry-run manifest) error = %v, want ErrDryRunManifest", err)
	}

	manifest := filepath.Join(dir, "run.json")
	if _, err := execute(t, "aggregate", filepath.Join(dir, "in"), filepath.Join(dir, "out.gz"),
		"--manifest", manifest); err != nil {
		t.Fatalf("aggregate error = %v", err)
	}
	// The mountpoint may not be the directory the aggregate lives in.
	if _, err := execute(t, "mount", manifest, dir); err == nil {
		t.Error("mount over the output directory expected error")
	}
}
