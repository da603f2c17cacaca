package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigError
		contains []string
	}{
		{
			name: "error with action",
			err: &ConfigError{
				Code:    "TEST_CODE",
				Message: "Test message",
				Action:  "Take this action",
			},
			contains: []string{"Test message", "Take this action"},
		},
		{
			name: "error without action",
			err: &ConfigError{
				Code:    "TEST_CODE",
				Message: "Test message only",
			},
			contains: []string{"Test message only"},
		},
		{
			name: "error with cause",
			err: &ConfigError{
				Code:    "TEST_CODE",
				Message: "Outer",
				Err:     errors.New("inner cause"),
			},
			contains: []string{"Outer", "inner cause"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(errStr, s) {
					t.Errorf("ConfigError.Error() = %q, expected to contain %q", errStr, s)
				}
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      *ConfigError
		wantCode string
		contains string
	}{
		{"missing auth", ErrMissingAuth("OPENAI_TOKEN"), ErrCodeMissingAuth, "OPENAI_TOKEN"},
		{"text not found", ErrTextNotFound("texts/a.txt", cause), ErrCodeTextNotFound, "texts/a.txt"},
		{"corrupt cache", ErrCorruptCache("image_prompts/a.json", cause), ErrCodeCorruptCache, "image_prompts/a.json"},
		{"invalid config", ErrInvalidConfig("SD_IMAGE_SIZE", "bad"), ErrCodeInvalidConfig, "SD_IMAGE_SIZE"},
		{"config file", ErrConfigFile("longsd.yaml", cause), ErrCodeConfigFile, "longsd.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("Error() = %q, expected to contain %q", tt.err.Error(), tt.contains)
			}
			if tt.err.Action == "" {
				t.Error("Action should not be empty")
			}
		})
	}
}

func TestConfigError_Unwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := fmt.Errorf("loading prompts: %w", ErrCorruptCache("x.json", cause))

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the underlying cause through ConfigError")
	}

	cfgErr, ok := IsConfigError(err)
	if !ok {
		t.Fatal("IsConfigError() = false for wrapped ConfigError")
	}
	if cfgErr.Code != ErrCodeCorruptCache {
		t.Errorf("Code = %s, want %s", cfgErr.Code, ErrCodeCorruptCache)
	}
	if got := GetErrorCode(err); got != ErrCodeCorruptCache {
		t.Errorf("GetErrorCode() = %s, want %s", got, ErrCodeCorruptCache)
	}
}

func TestGetErrorCode_NonConfigError(t *testing.T) {
	if code := GetErrorCode(errors.New("plain")); code != "" {
		t.Errorf("GetErrorCode() = %q, want empty", code)
	}
	if _, ok := IsConfigError(nil); ok {
		t.Error("IsConfigError(nil) = true, want false")
	}
}
