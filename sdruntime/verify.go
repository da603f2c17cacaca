package sdruntime

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"longsd/core"
)

// knownChecksums maps model filenames to their published SHA256.
var knownChecksums = map[string]string{
	"sd-v1-5.safetensors": "6ce0161689b3853acaa03779ec93eafe75a02f4ced659bee03f50797806fa2fa",
}

// checksumSuffix names the optional sidecar file next to a model, holding
// its expected hex SHA256 (sha256sum output format is accepted).
const checksumSuffix = ".sha256"

// VerifyModelChecksum checks modelPath against its sidecar checksum file, or
// against the built-in table when no sidecar exists. Models with no known
// checksum pass unverified.
//
// Returns ErrModelNotFound if the file is missing and ErrModelCorrupted on mismatch.
func VerifyModelChecksum(modelPath string) error {
	if _, err := os.Stat(modelPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return fmt.Errorf("failed to access model file: %w", err)
	}

	expected, ok, err := expectedChecksum(modelPath)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	ok, err = core.VerifyChecksum(modelPath, expected)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelCorrupted, err)
	}
	if !ok {
		return fmt.Errorf("%w: SHA256 of %s is not %s", ErrModelCorrupted, modelPath, expected)
	}
	return nil
}

func expectedChecksum(modelPath string) (string, bool, error) {
	data, err := os.ReadFile(modelPath + checksumSuffix)
	switch {
	case err == nil:
		fields := strings.Fields(string(data))
		if len(fields) == 0 {
			return "", false, fmt.Errorf("%w: empty checksum file %s%s", ErrModelCorrupted, modelPath, checksumSuffix)
		}
		return strings.ToLower(fields[0]), true, nil
	case os.IsNotExist(err):
		sum, ok := knownChecksums[filepath.Base(modelPath)]
		return sum, ok, nil
	default:
		return "", false, fmt.Errorf("failed to read checksum file: %w", err)
	}
}
