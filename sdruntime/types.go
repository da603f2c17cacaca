package sdruntime

import "fmt"

// GenerateParams holds parameters for image generation.
type GenerateParams struct {
	Prompt         string  // Required: text description of the image to generate
	NegativePrompt string  // Optional: what to avoid in the image
	Width          int     // Image width in pixels (128-2048, must be divisible by 8)
	Height         int     // Image height in pixels (128-2048, must be divisible by 8)
	Steps          int     // Number of inference steps (1-100)
	CFGScale       float64 // Classifier-free guidance scale (1.0-30.0)
	Seed           int64   // Random seed for reproducibility (-1 for random)
}

// Parameter validation constants
const (
	MinImageSize      = 128
	MaxImageSize      = 2048
	ImageSizeMultiple = 8

	MinSteps = 1
	MaxSteps = 100

	MinCFGScale = 1.0
	MaxCFGScale = 30.0

	MaxPromptLength = 1000
)

// DefaultParams returns the parameters used when nothing is configured:
// 512x512, 20 steps, CFG 7.5, random seed.
func DefaultParams() GenerateParams {
	return GenerateParams{
		Width:    512,
		Height:   512,
		Steps:    20,
		CFGScale: 7.5,
		Seed:     -1,
	}
}

// ValidateParams validates generation parameters and returns an error if invalid.
func ValidateParams(p GenerateParams) error {
	if err := ValidatePrompt(p.Prompt); err != nil {
		return err
	}

	if err := validateDimension("width", p.Width); err != nil {
		return err
	}
	if err := validateDimension("height", p.Height); err != nil {
		return err
	}

	if p.Steps < MinSteps || p.Steps > MaxSteps {
		return fmt.Errorf("%w: steps %d must be between %d and %d",
			ErrInvalidParams, p.Steps, MinSteps, MaxSteps)
	}

	if p.CFGScale < MinCFGScale || p.CFGScale > MaxCFGScale {
		return fmt.Errorf("%w: CFGScale %.2f must be between %.1f and %.1f",
			ErrInvalidParams, p.CFGScale, MinCFGScale, MaxCFGScale)
	}

	if len(p.NegativePrompt) > MaxPromptLength {
		return fmt.Errorf("%w: negative prompt length %d exceeds maximum %d",
			ErrInvalidParams, len(p.NegativePrompt), MaxPromptLength)
	}

	return nil
}

func validateDimension(name string, v int) error {
	if v < MinImageSize || v > MaxImageSize {
		return fmt.Errorf("%w: %s %d must be between %d and %d",
			ErrInvalidParams, name, v, MinImageSize, MaxImageSize)
	}
	if v%ImageSizeMultiple != 0 {
		return fmt.Errorf("%w: %s %d must be divisible by %d",
			ErrInvalidParams, name, v, ImageSizeMultiple)
	}
	return nil
}
