package sdruntime

import "errors"

// Sentinel errors for SD runtime operations.
var (
	// Model-related errors
	ErrModelNotFound   = errors.New("sdruntime: model file not found")
	ErrModelLoadFailed = errors.New("sdruntime: failed to load model")
	ErrModelCorrupted  = errors.New("sdruntime: model file is corrupted or invalid")
	ErrModelClosed     = errors.New("sdruntime: model is closed")
	ErrUnknownBackend  = errors.New("sdruntime: unknown backend")

	// Generation errors
	ErrGenerationFailed  = errors.New("sdruntime: image generation failed")
	ErrGenerationTimeout = errors.New("sdruntime: image generation timed out")

	// Input validation errors
	ErrInvalidPrompt = errors.New("sdruntime: invalid prompt")
	ErrInvalidParams = errors.New("sdruntime: invalid generation parameters")

	// Hardware/resource errors
	ErrCUDANotAvailable = errors.New("sdruntime: CUDA not available")
	ErrOutOfVRAM        = errors.New("sdruntime: out of VRAM")
)
