package datapath

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// layout builds a project tree:
//
//	root/README.md
//	root/dir_g21_small_workload_with_gt/dir_no_packets_etc/
//	root/dir_g21_small_workload_with_gt/groupings.gt.txt
//	root/notebooks/deep/
func layout(t *testing.T) (root string) {
	t.Helper()
	root = t.TempDir()
	data := filepath.Join(root, DefaultDataDirName)
	for _, d := range []string{
		filepath.Join(data, "dir_no_packets_etc"),
		filepath.Join(root, "notebooks", "deep"),
	} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	os.WriteFile(filepath.Join(root, ReadmeMarker), []byte("# project\n"), 0644)
	os.WriteFile(filepath.Join(data, "groupings.gt.txt"), []byte("n1 g1\n"), 0644)
	return root
}

func TestFindProjectRoot(t *testing.T) {
	root := layout(t)

	tests := []struct {
		name  string
		start string
	}{
		{"from root", root},
		{"from nested directory", filepath.Join(root, "notebooks", "deep")},
		{"from data directory", filepath.Join(root, DefaultDataDirName, "dir_no_packets_etc")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindProjectRoot(tt.start, "")
			if err != nil {
				t.Fatalf("FindProjectRoot() error = %v", err)
			}
			if got != root {
				t.Errorf("FindProjectRoot() = %s, want %s", got, root)
			}
		})
	}
}

func TestFindProjectRoot_GitMarker(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, ReadmeMarker), nil, 0644)
	os.Mkdir(filepath.Join(root, GitMarker), 0755)
	nested := filepath.Join(root, "a", "b")
	os.MkdirAll(nested, 0755)

	got, err := FindProjectRoot(nested, "")
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %s, want %s", got, root)
	}
}

func TestFindProjectRoot_ReadmeAlone(t *testing.T) {
	// a README without .git or the data directory does not mark a root
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ReadmeMarker), nil, 0644)

	got, err := FindProjectRoot(dir, "some_unlikely_data_dir_name")
	if err == nil && got == dir {
		t.Errorf("FindProjectRoot() accepted %s without a second marker", dir)
	}
}

func TestDiscover(t *testing.T) {
	root := layout(t)

	r, err := Discover(filepath.Join(root, "notebooks"), "")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := filepath.Join(root, DefaultDataDirName)
	if r.Base() != want {
		t.Errorf("Base() = %s, want %s", r.Base(), want)
	}
}

func TestDiscover_MissingDataDir(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, ReadmeMarker), nil, 0644)
	os.Mkdir(filepath.Join(root, GitMarker), 0755)

	_, err := Discover(root, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Discover() error = %v, want ErrNotFound", err)
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	os.WriteFile(file, nil, 0644)

	if _, err := New(dir); err != nil {
		t.Errorf("New(dir) error = %v", err)
	}
	if _, err := New(filepath.Join(dir, "missing")); !errors.Is(err, ErrNotFound) {
		t.Errorf("New(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := New(file); !errors.Is(err, ErrNotFound) {
		t.Errorf("New(file) error = %v, want ErrNotFound", err)
	}
}

func TestResolver(t *testing.T) {
	root := layout(t)
	base := filepath.Join(root, DefaultDataDirName)
	r, err := New(base)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		resolve func(string) (string, error)
		arg     string
		want    string
		wantErr bool
	}{
		{"subdir", r.Subdir, "dir_no_packets_etc", filepath.Join(base, "dir_no_packets_etc"), false},
		{"subdir missing", r.Subdir, "nope", "", true},
		{"subdir given a file", r.Subdir, "groupings.gt.txt", "", true},
		{"file", r.File, "groupings.gt.txt", filepath.Join(base, "groupings.gt.txt"), false},
		{"file missing", r.File, "nope.txt", "", true},
		{"file given a directory", r.File, "dir_no_packets_etc", "", true},
		{"resolve file", r.Resolve, "groupings.gt.txt", filepath.Join(base, "groupings.gt.txt"), false},
		{"resolve dir", r.Resolve, "dir_no_packets_etc", filepath.Join(base, "dir_no_packets_etc"), false},
		{"resolve absolute", r.Resolve, root, root, false},
		{"resolve missing", r.Resolve, "nope", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.resolve(tt.arg)
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("error = %v, want ErrNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
