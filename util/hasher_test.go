package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetFileHash(t *testing.T) {
	tmpDir := t.TempDir()

	emptyFile := filepath.Join(tmpDir, "empty.txt")
	os.WriteFile(emptyFile, []byte{}, 0644)

	helloFile := filepath.Join(tmpDir, "hello.txt")
	os.WriteFile(helloFile, []byte("hello world"), 0644)

	binaryFile := filepath.Join(tmpDir, "binary.bin")
	os.WriteFile(binaryFile, []byte{0x00, 0x01, 0x02, 0xff}, 0644)

	subDir := filepath.Join(tmpDir, "subdir")
	os.Mkdir(subDir, 0755)

	tests := []struct {
		name     string
		path     string
		wantHash string
		wantErr  error
	}{
		{
			name:     "empty file",
			path:     emptyFile,
			wantHash: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "hello world file",
			path:     helloFile,
			wantHash: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
		{
			name:     "binary file",
			path:     binaryFile,
			wantHash: "3d1f57c984978ef98a18378c8166c1cb8ede02c03eeb6aee7e2f121dfeee3e56",
		},
		{
			name:    "directory returns error",
			path:    subDir,
			wantErr: ErrExpectedFile,
		},
		{
			name:    "non-existent file",
			path:    filepath.Join(tmpDir, "nonexistent.txt"),
			wantErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := GetFileHash(tt.path)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("GetFileHash() expected error %v, got nil", tt.wantErr)
				}
				if tt.wantErr == os.ErrNotExist {
					if !os.IsNotExist(err) {
						t.Errorf("GetFileHash() error = %v, want os.ErrNotExist", err)
					}
					return
				}
				if err != tt.wantErr {
					t.Errorf("GetFileHash() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("GetFileHash() unexpected error = %v", err)
			}
			if gotHash != tt.wantHash {
				t.Errorf("GetFileHash() = %v, want %v", gotHash, tt.wantHash)
			}
		})
	}
}

// Larger than one chunk, so the copy loop runs more than once.
func TestGetFileHash_MultiChunk(t *testing.T) {
	tmpDir := t.TempDir()

	largeFile := filepath.Join(tmpDir, "large.bin")
	data := make([]byte, ChunkSize*2+17)
	for i := range data {
		data[i] = byte(i % 251)
	}
	os.WriteFile(largeFile, data, 0644)

	hash, err := GetFileHash(largeFile)
	if err != nil {
		t.Fatalf("GetFileHash() error = %v", err)
	}
	want, _ := GetHash(strings.NewReader(string(data)))
	if hash != want {
		t.Errorf("GetFileHash() = %s, want %s", hash, want)
	}
	if len(hash) != 64 {
		t.Errorf("GetFileHash() hash length = %d, want 64", len(hash))
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("GetFileHash() hash contains invalid character: %c", c)
			break
		}
	}
}

func TestGetHash(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "hello world",
			input: "hello world",
			want:  "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
		{
			name:  "newline at end",
			input: "hello\n",
			want:  "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetHash(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("GetHash() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetHash() = %v, want %v", got, tt.want)
			}
		})
	}
}
