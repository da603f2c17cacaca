package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"longsd/core"
	"longsd/document"
)

// EnvFileCheck warns when path (usually ".env") is missing; settings may
// still come from the environment or a config file.
func EnvFileCheck(path string) Check {
	return func() CheckResult {
		if err := CheckFileExists(path); err != nil {
			return Warning("using process environment only", err)
		}
		return Passed(path)
	}
}

// ConfigCheck runs cfg.Validate.
func ConfigCheck(cfg *core.Config) Check {
	return func() CheckResult {
		if err := cfg.Validate(); err != nil {
			return Failed("invalid configuration", err)
		}
		return Passed(fmt.Sprintf("backend %s, %d workers", cfg.SDBackend, cfg.Workers))
	}
}

// TextsCheck looks for the source text of every name. Missing texts are a
// warning: those documents fail on their own and the rest of the batch runs.
func TextsCheck(layout document.Layout, names []string) Check {
	return func() CheckResult {
		if len(names) == 0 {
			return Failed("no documents given", fmt.Errorf("pass at least one name with -f"))
		}

		var missing []string
		for _, name := range names {
			doc := document.Resolve(layout, name)
			if err := CheckFileExists(doc.TextPath); err != nil {
				missing = append(missing, doc.TextPath)
			}
		}
		if len(missing) > 0 {
			return Warning(fmt.Sprintf("%d of %d texts missing", len(missing), len(names)),
				fmt.Errorf("not found: %s", strings.Join(missing, ", ")))
		}
		return Passed(fmt.Sprintf("%d texts found", len(names)))
	}
}

// DiskSpaceCheck warns when the images directory has less than required
// bytes free.
func DiskSpaceCheck(layout document.Layout, required int64) Check {
	return func() CheckResult {
		path := filepath.Join(layout.Root, document.ImagesDir)
		info, err := GetDiskSpace(path)
		if err != nil {
			return Warning("could not determine free space", err)
		}
		if err := CheckDiskSpace(path, required); err != nil {
			return Warning("low disk space", err)
		}
		return Passed(info.FreeFormatted + " free")
	}
}

// ModelCheck verifies the model file of the sd backend with verify. Other
// backends need no model file.
func ModelCheck(cfg *core.Config, verify func(path string) error) Check {
	return func() CheckResult {
		if cfg.SDBackend != core.BackendSD {
			return Skipped(cfg.SDBackend + " backend needs no model file")
		}
		if err := CheckFileExists(cfg.SDModelPath); err != nil {
			return Failed("model file unavailable", err)
		}
		if err := verify(cfg.SDModelPath); err != nil {
			return Failed("model checksum mismatch", err)
		}
		return Passed(filepath.Base(cfg.SDModelPath))
	}
}
