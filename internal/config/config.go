// Package config reads edgeagg defaults from an ini file, by default
// $HOME/.edgeagg:
//
//	[aggregate]
//	manifest=aggregate_manifest.json
//	compresslevel=6
//
//	[data]
//	dir=$HOME/cisco_network_analysis/dir_g21_small_workload_with_gt
//	name=dir_g21_small_workload_with_gt
//
// Values only supply defaults; command-line flags always win. Environment
// variables in values are expanded.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dendrascience/edge-aggregate/util"
	ini "github.com/lars-t-hansen/ini"
)

// DefaultFileName is the config file looked up in the home directory.
const DefaultFileName = ".edgeagg"

// Config holds the values found in a config file. Zero values mean unset.
type Config struct {
	Path string // file the values came from, empty if none

	Manifest      string
	CompressLevel int
	DataDir       string
	DataDirName   string
}

type fields struct {
	parser        *ini.Parser
	manifest      *ini.Field
	compressLevel *ini.Field
	dataDir       *ini.Field
	dataDirName   *ini.Field
}

func newFields() *fields {
	p := ini.NewParser()
	aggregate := p.AddSection("aggregate")
	data := p.AddSection("data")
	return &fields{
		parser:        p,
		manifest:      aggregate.AddString("manifest"),
		compressLevel: aggregate.AddString("compresslevel"),
		dataDir:       data.AddString("dir"),
		dataDirName:   data.AddString("name"),
	}
}

// DefaultPath returns $HOME/.edgeagg, or "" when HOME is not set.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

// Parse reads config values from r.
func Parse(r io.Reader) (Config, error) {
	f := newFields()
	store, err := f.parser.Parse(r)
	if err != nil {
		return Config{}, err
	}
	get := func(field *ini.Field) string {
		if !field.Present(store) {
			return ""
		}
		return os.ExpandEnv(field.StringVal(store))
	}

	var c Config
	c.Manifest = get(f.manifest)
	c.DataDir = get(f.dataDir)
	c.DataDirName = get(f.dataDirName)
	if s := get(f.compressLevel); s != "" {
		level, err := strconv.Atoi(s)
		if err != nil {
			return Config{}, fmt.Errorf("aggregate.compresslevel: %w", err)
		}
		if err := util.ValidateLevel(level); err != nil {
			return Config{}, fmt.Errorf("aggregate.compresslevel: %w", err)
		}
		c.CompressLevel = level
	}
	return c, nil
}

// Load reads the config file at path. When optional is set, a missing file
// yields an empty Config instead of an error.
func Load(path string, optional bool) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	c.Path = path
	return c, nil
}
