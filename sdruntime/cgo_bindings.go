package sdruntime

import (
	"context"
	"fmt"
)

// SDContext is a handle to a stable-diffusion.cpp context bound to one device.
// It implements Model.
type SDContext struct {
	id        uint64
	modelPath string
	device    int
	valid     bool
}

// IsValid returns whether this context is usable.
func (c *SDContext) IsValid() bool {
	return c != nil && c.valid
}

// ModelPath returns the model path used to create this context.
func (c *SDContext) ModelPath() string {
	if c == nil {
		return ""
	}
	return c.modelPath
}

// Device returns the accelerator ordinal this context was created on.
func (c *SDContext) Device() int {
	if c == nil {
		return -1
	}
	return c.device
}

// GenerateResult holds the raw result of one txt2img call.
type GenerateResult struct {
	ImageData []byte // PNG bytes
	Width     int
	Height    int
	Seed      int64 // seed actually used
}

// LoadModel loads a Stable Diffusion model onto the given device.
// The returned context must be released with FreeContext (or Close).
func LoadModel(modelPath string, device int) (*SDContext, error) {
	return loadModelImpl(modelPath, device)
}

// GenerateImage runs txt2img on ctx. Parameters are validated first.
func GenerateImage(ctx *SDContext, params GenerateParams) (*GenerateResult, error) {
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	return generateImageImpl(ctx, params)
}

// FreeContext releases the context. Nil and already-freed contexts are a no-op.
func FreeContext(ctx *SDContext) {
	freeContextImpl(ctx)
}

// GetBackendInfo describes the linked compute backend.
func GetBackendInfo() string {
	return getBackendInfoImpl()
}

// Generate implements Model. The C call cannot be interrupted, so a deadline
// that expires mid-render is reported after the call returns and the image is discarded.
func (c *SDContext) Generate(ctx context.Context, params GenerateParams) ([]byte, error) {
	if !c.IsValid() {
		return nil, ErrModelClosed
	}
	if err := contextError(ctx); err != nil {
		return nil, err
	}

	params.Seed = resolveSeed(params.Seed)
	result, err := GenerateImage(c, params)
	if err != nil {
		return nil, err
	}
	if err := contextError(ctx); err != nil {
		return nil, err
	}

	if err := ValidateImageData(result.ImageData); err != nil {
		return nil, fmt.Errorf("%w: generated image validation failed: %v", ErrGenerationFailed, err)
	}
	return result.ImageData, nil
}

// Close implements Model.
func (c *SDContext) Close() error {
	FreeContext(c)
	return nil
}
