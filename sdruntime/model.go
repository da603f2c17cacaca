package sdruntime

import (
	"context"
	"errors"
	"fmt"
)

// Backend names accepted by Load
const (
	BackendSD          = "sd"
	BackendPlaceholder = "placeholder"
)

// DeviceConfig tells a worker which model to load and onto which accelerator.
type DeviceConfig struct {
	Backend   string
	ModelPath string
	Device    int // accelerator ordinal, e.g. the CUDA device index
}

// Model is a loaded image-generation model. A Model is owned by exactly one
// worker and is not safe for concurrent use.
type Model interface {
	// Generate renders params.Prompt and returns PNG bytes.
	Generate(ctx context.Context, params GenerateParams) ([]byte, error)
	// Close releases the model and its device memory.
	Close() error
}

// Loader creates a Model for one worker. It is called once per worker, from
// inside the worker's goroutine.
type Loader func(cfg DeviceConfig) (Model, error)

// Load is the default Loader; it dispatches on cfg.Backend.
func Load(cfg DeviceConfig) (Model, error) {
	switch cfg.Backend {
	case BackendSD:
		return LoadModel(cfg.ModelPath, cfg.Device)
	case BackendPlaceholder, "":
		return NewPlaceholderModel(cfg.Device), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// AssignDevices returns one DeviceConfig per worker, spreading workers over
// devices round-robin. An empty device list places every worker on device 0.
func AssignDevices(base DeviceConfig, devices []int, workers int) []DeviceConfig {
	if workers <= 0 {
		return nil
	}
	if len(devices) == 0 {
		devices = []int{0}
	}

	configs := make([]DeviceConfig, workers)
	for i := range configs {
		cfg := base
		cfg.Device = devices[i%len(devices)]
		configs[i] = cfg
	}
	return configs
}

// contextError maps a done context to the sdruntime error taxonomy.
func contextError(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
	}
	return err
}
