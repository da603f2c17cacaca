package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// ComputeSHA256 streams a file through SHA256 and returns the lowercase hex
// digest.
func ComputeSHA256(filepath string) (string, error) {
	if filepath == "" {
		return "", fmt.Errorf("filepath cannot be empty")
	}

	file, err := os.Open(filepath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// VerifyChecksum reports whether the file's SHA256 equals expectedHash
// (hex, any case). A malformed expectedHash is an error.
func VerifyChecksum(filepath string, expectedHash string) (bool, error) {
	if expectedHash == "" {
		return false, fmt.Errorf("expected hash cannot be empty")
	}
	if len(expectedHash) != 64 {
		return false, fmt.Errorf("invalid SHA256 hash length: expected 64 characters, got %d", len(expectedHash))
	}
	if _, err := hex.DecodeString(expectedHash); err != nil {
		return false, fmt.Errorf("invalid SHA256 hash format: %w", err)
	}

	computed, err := ComputeSHA256(filepath)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(computed, expectedHash), nil
}
