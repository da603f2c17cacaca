// Package sdruntime renders images from text prompts.
//
// A Model is one loaded image-generation model. Models are never shared:
// each render worker calls a Loader once, inside its own goroutine, and keeps
// the returned Model for its lifetime. Device selection is passed explicitly
// through DeviceConfig instead of process-wide state.
//
// Two backends are available:
//
//   - "sd": stable-diffusion.cpp through CGo. Requires building with
//     CGO_ENABLED=1 go build -tags sd; without the tag LoadModel reports
//     ErrModelLoadFailed.
//   - "placeholder": a deterministic renderer that paints the prompt text on
//     a gradient. Useful for dry runs and tests on machines without a GPU.
//
// # Quick Start
//
//	model, err := sdruntime.Load(sdruntime.DeviceConfig{
//	    Backend:   sdruntime.BackendSD,
//	    ModelPath: "/models/sd-v1-5.safetensors",
//	    Device:    0,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer model.Close()
//
//	params := sdruntime.DefaultParams()
//	params.Prompt = "a lighthouse in a storm"
//	png, err := model.Generate(ctx, params)
//
// # Error Handling
//
// Use errors.Is with the sentinel errors in errors.go:
//
//	if errors.Is(err, sdruntime.ErrOutOfVRAM) {
//	    // lower SD_IMAGE_SIZE or the number of workers
//	}
package sdruntime
