package sdruntime

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestVerifyModelChecksum(t *testing.T) {
	content := []byte("test model content")

	tests := []struct {
		name    string
		sidecar string // "" means no sidecar file
		wantErr error
	}{
		{name: "no known checksum", sidecar: ""},
		{name: "matching sidecar", sidecar: sha256Hex(content)},
		{name: "sha256sum format", sidecar: sha256Hex(content) + "  model.safetensors\n"},
		{name: "uppercase digest", sidecar: "  " + upper(sha256Hex(content))},
		{name: "mismatch", sidecar: sha256Hex([]byte("other")), wantErr: ErrModelCorrupted},
		{name: "blank sidecar", sidecar: "\n", wantErr: ErrModelCorrupted},
		{name: "malformed sidecar", sidecar: "not-a-digest", wantErr: ErrModelCorrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modelPath := filepath.Join(t.TempDir(), "model.safetensors")
			if err := os.WriteFile(modelPath, content, 0644); err != nil {
				t.Fatal(err)
			}
			if tt.sidecar != "" {
				if err := os.WriteFile(modelPath+checksumSuffix, []byte(tt.sidecar), 0644); err != nil {
					t.Fatal(err)
				}
			}

			err := VerifyModelChecksum(modelPath)
			if tt.wantErr == nil && err != nil {
				t.Errorf("VerifyModelChecksum() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("VerifyModelChecksum() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyModelChecksum_MissingModel(t *testing.T) {
	err := VerifyModelChecksum(filepath.Join(t.TempDir(), "missing.safetensors"))
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("Expected ErrModelNotFound, got: %v", err)
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}
