//go:build !sd || stub

package sdruntime

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadModel_StubRefusesExistingModel(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "model.safetensors")
	if err := os.WriteFile(modelPath, []byte("weights"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, err := LoadModel(modelPath, 0)
	if !errors.Is(err, ErrModelLoadFailed) {
		t.Fatalf("LoadModel() error = %v, want ErrModelLoadFailed", err)
	}
	if ctx != nil {
		t.Error("LoadModel() returned a context alongside an error")
	}
}

func TestSDContext_ClosedContext(t *testing.T) {
	var c *SDContext
	if c.IsValid() {
		t.Error("nil context reported valid")
	}

	c = &SDContext{modelPath: "m", device: 1, valid: true}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if c.IsValid() {
		t.Error("context still valid after Close")
	}

	params := DefaultParams()
	params.Prompt = "a fox"
	if _, err := c.Generate(context.Background(), params); !errors.Is(err, ErrModelClosed) {
		t.Errorf("Generate() after Close error = %v, want ErrModelClosed", err)
	}

	FreeContext(nil)
}
