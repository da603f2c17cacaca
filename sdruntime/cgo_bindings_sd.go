//go:build sd && cgo && !stub

// CGo bindings for stable-diffusion.cpp.
//
// The library is reached through a thin C shim (libsdshim) exposing four
// symbols with a stable signature, so upstream API churn stays out of Go:
//
//	CGO_CFLAGS="-I${SD_SHIM}/include" \
//	CGO_LDFLAGS="-L${SD_SHIM}/lib -lsdshim -lstable-diffusion" \
//	go build -tags sd

package sdruntime

/*
#cgo LDFLAGS: -lsdshim -lstable-diffusion

#include <stdlib.h>
#include <stdint.h>

typedef struct sd_shim_ctx sd_shim_ctx;

extern sd_shim_ctx* sd_shim_ctx_create(const char* model_path, int device);
extern void sd_shim_ctx_free(sd_shim_ctx* ctx);
extern uint8_t* sd_shim_txt2img(sd_shim_ctx* ctx, const char* prompt, const char* negative_prompt,
                                int width, int height, int steps, float cfg_scale, int64_t seed,
                                int* out_width, int* out_height, int* out_status);
extern void sd_shim_free_image(uint8_t* img);
extern const char* sd_shim_backend_info(void);
*/
import "C"

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"unsafe"
)

// shim status codes returned through out_status
const (
	shimOK       = 0
	shimOOM      = 1
	shimNoDevice = 2
)

var (
	sdContextCounter uint64

	// contexts maps SDContext.id to the C handle. Each handle is used by a
	// single worker, but workers register and free concurrently.
	contexts sync.Map // uint64 -> *C.sd_shim_ctx
)

func loadModelImpl(modelPath string, device int) (*SDContext, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
	} else if err != nil {
		return nil, fmt.Errorf("%w: unable to access %s: %v", ErrModelLoadFailed, modelPath, err)
	}

	cModelPath := C.CString(modelPath)
	defer C.free(unsafe.Pointer(cModelPath))

	cCtx := C.sd_shim_ctx_create(cModelPath, C.int(device))
	if cCtx == nil {
		return nil, fmt.Errorf("%w: device %d returned null context", ErrModelLoadFailed, device)
	}

	id := atomic.AddUint64(&sdContextCounter, 1)
	contexts.Store(id, cCtx)

	return &SDContext{
		id:        id,
		modelPath: modelPath,
		device:    device,
		valid:     true,
	}, nil
}

func generateImageImpl(ctx *SDContext, params GenerateParams) (*GenerateResult, error) {
	if !ctx.IsValid() {
		return nil, fmt.Errorf("%w: context is nil or invalid", ErrGenerationFailed)
	}
	v, ok := contexts.Load(ctx.id)
	if !ok {
		return nil, fmt.Errorf("%w: no C context for id %d", ErrGenerationFailed, ctx.id)
	}
	cCtx := v.(*C.sd_shim_ctx)

	cPrompt := C.CString(params.Prompt)
	defer C.free(unsafe.Pointer(cPrompt))
	cNegPrompt := C.CString(params.NegativePrompt)
	defer C.free(unsafe.Pointer(cNegPrompt))

	var outWidth, outHeight, status C.int
	imgPtr := C.sd_shim_txt2img(
		cCtx,
		cPrompt,
		cNegPrompt,
		C.int(params.Width),
		C.int(params.Height),
		C.int(params.Steps),
		C.float(params.CFGScale),
		C.int64_t(params.Seed),
		&outWidth,
		&outHeight,
		&status,
	)

	switch status {
	case shimOK:
	case shimOOM:
		return nil, ErrOutOfVRAM
	case shimNoDevice:
		return nil, ErrCUDANotAvailable
	default:
		return nil, fmt.Errorf("%w: shim status %d", ErrGenerationFailed, int(status))
	}
	if imgPtr == nil {
		return nil, fmt.Errorf("%w: txt2img returned null", ErrGenerationFailed)
	}
	defer C.sd_shim_free_image(imgPtr)

	w, h := int(outWidth), int(outHeight)
	pixels := C.GoBytes(unsafe.Pointer(imgPtr), C.int(w*h*4))

	pngData, err := EncodeToPNG(pixels, w, h)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return &GenerateResult{
		ImageData: pngData,
		Width:     w,
		Height:    h,
		Seed:      params.Seed,
	}, nil
}

func freeContextImpl(ctx *SDContext) {
	if ctx == nil {
		return
	}
	if v, ok := contexts.LoadAndDelete(ctx.id); ok {
		C.sd_shim_ctx_free(v.(*C.sd_shim_ctx))
	}
	ctx.valid = false
}

func getBackendInfoImpl() string {
	if info := C.sd_shim_backend_info(); info != nil {
		return C.GoString(info)
	}
	return "sd (unknown backend)"
}
