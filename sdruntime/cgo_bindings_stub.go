//go:build !sd || stub

// Stub bindings used when the binary is built without the "sd" tag.
// Loading always fails so workers report the misconfiguration before any
// unit is dispatched; use SD_BACKEND=placeholder for GPU-less runs.

package sdruntime

import (
	"fmt"
	"os"
)

func loadModelImpl(modelPath string, device int) (*SDContext, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
	} else if err != nil {
		return nil, fmt.Errorf("%w: unable to access %s: %v", ErrModelLoadFailed, modelPath, err)
	}

	return nil, fmt.Errorf("%w: stable-diffusion.cpp not linked (device %d); "+
		"build with CGO_ENABLED=1 -tags sd", ErrModelLoadFailed, device)
}

func generateImageImpl(ctx *SDContext, params GenerateParams) (*GenerateResult, error) {
	return nil, fmt.Errorf("%w: stable-diffusion.cpp not linked", ErrGenerationFailed)
}

func freeContextImpl(ctx *SDContext) {
	if ctx == nil {
		return
	}
	ctx.valid = false
}

func getBackendInfoImpl() string {
	return "stub (no stable-diffusion.cpp library linked)"
}
