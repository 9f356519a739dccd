package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/edge-aggregate/util"
)

func TestParse(t *testing.T) {
	t.Setenv("EDGEAGG_TEST_ROOT", "/srv/project")
	input := `[aggregate]
manifest=run.json
compresslevel=9

[data]
dir=$EDGEAGG_TEST_ROOT/data
`
	c, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Manifest != "run.json" {
		t.Errorf("Manifest = %q", c.Manifest)
	}
	if c.CompressLevel != 9 {
		t.Errorf("CompressLevel = %d", c.CompressLevel)
	}
	if c.DataDir != "/srv/project/data" {
		t.Errorf("DataDir = %q", c.DataDir)
	}
	if c.DataDirName != "" {
		t.Errorf("DataDirName = %q, want unset", c.DataDirName)
	}
}

func TestParse_BadLevel(t *testing.T) {
	_, err := Parse(strings.NewReader("[aggregate]\ncompresslevel=high\n"))
	if err == nil {
		t.Fatal("Parse() expected error for non-numeric level")
	}

	for _, level := range []string{"0", "10", "-1"} {
		_, err := Parse(strings.NewReader("[aggregate]\ncompresslevel=" + level + "\n"))
		if !errors.Is(err, util.ErrInvalidLevel) {
			t.Errorf("Parse(compresslevel=%s) error = %v, want ErrInvalidLevel", level, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	os.WriteFile(path, []byte("[data]\nname=my_data\n"), 0644)

	c, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.DataDirName != "my_data" || c.Path != path {
		t.Errorf("Load() = %+v", c)
	}

	missing := filepath.Join(dir, "missing")
	if c, err := Load(missing, true); err != nil || c != (Config{}) {
		t.Errorf("Load(missing, optional) = %+v, %v", c, err)
	}
	if _, err := Load(missing, false); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing, required) error = %v, want fs.ErrNotExist", err)
	}
	if c, err := Load("", false); err != nil || c != (Config{}) {
		t.Errorf("Load(\"\") = %+v, %v", c, err)
	}
}
