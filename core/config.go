package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported image backends
const (
	BackendSD          = "sd"
	BackendPlaceholder = "placeholder"
)

// Config holds all configuration values.
//
// Values are resolved in order: defaults, optional YAML file, environment
// (including .env loaded by the caller), then command-line flags applied by main.
type Config struct {
	// Filesystem layout root; texts/, image_prompts/, images/ and documents/ live below it
	Root string `yaml:"root"`

	// Completion service
	OpenAIToken     string  `yaml:"-"` // never read from the config file
	OpenAIBaseURL   string  `yaml:"openai_base_url"`
	CompletionModel string  `yaml:"completion_model"`
	MaxTokens       int     `yaml:"max_tokens"`
	Temperature     float64 `yaml:"temperature"`

	// Image generation
	SDBackend        string  `yaml:"sd_backend"`
	SDModelPath      string  `yaml:"sd_model_path"`
	SDDevices        []int   `yaml:"sd_devices"`
	SDImageSize      int     `yaml:"sd_image_size"`
	SDInferenceSteps int     `yaml:"sd_inference_steps"`
	SDGuidanceScale  float64 `yaml:"sd_guidance_scale"`
	SDNegativePrompt string  `yaml:"sd_negative_prompt"`
	SDTimeoutSeconds int     `yaml:"sd_timeout_seconds"`

	// Run behaviour
	Workers          int  `yaml:"workers"`
	OverwritePrompts bool `yaml:"overwrite_prompts"`
	FailFast         bool `yaml:"fail_fast"`

	// Logging
	DevMode bool   `yaml:"dev_mode"`
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Root:             ".",
		CompletionModel:  "gpt-3.5-turbo-instruct",
		MaxTokens:        256,
		Temperature:      0.8,
		SDBackend:        BackendPlaceholder,
		SDDevices:        []int{0},
		SDImageSize:      512,
		SDInferenceSteps: 20,
		SDGuidanceScale:  7.5,
		SDTimeoutSeconds: 0,
		Workers:          3,
		LogFile:          "longsd.log",
	}
}

// LoadConfig loads configuration from an optional YAML file and the environment.
// If path is empty, LONGSD_CONFIG is consulted; no file at all is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("LONGSD_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// loadFile overlays values from a YAML file. Unknown keys are rejected.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrConfigFile(path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return ErrConfigFile(path, err)
	}
	return nil
}

// applyEnv overlays environment variables on top of the current values.
func (c *Config) applyEnv() {
	c.Root = GetEnvOrDefault("LONGSD_ROOT", c.Root)

	// OPENAI_API_KEY is accepted as a fallback for the original token name
	c.OpenAIToken = GetEnvOrDefault("OPENAI_TOKEN", os.Getenv("OPENAI_API_KEY"))
	c.OpenAIBaseURL = GetEnvOrDefault("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.CompletionModel = GetEnvOrDefault("LONGSD_COMPLETION_MODEL", c.CompletionModel)

	c.SDBackend = GetEnvOrDefault("SD_BACKEND", c.SDBackend)
	c.SDModelPath = GetEnvOrDefault("SD_MODEL_PATH", c.SDModelPath)
	c.SDDevices = ParseIntListEnv("SD_DEVICES", c.SDDevices)
	c.SDImageSize = ParseIntEnv("SD_IMAGE_SIZE", c.SDImageSize)
	c.SDInferenceSteps = ParseIntEnv("SD_INFERENCE_STEPS", c.SDInferenceSteps)
	c.SDGuidanceScale = ParseFloat64Env("SD_GUIDANCE_SCALE", c.SDGuidanceScale)
	c.SDNegativePrompt = GetEnvOrDefault("SD_NEGATIVE_PROMPT", c.SDNegativePrompt)
	c.SDTimeoutSeconds = ParseIntEnv("SD_TIMEOUT_SECONDS", c.SDTimeoutSeconds)

	c.Workers = ParseIntEnv("LONGSD_WORKERS", c.Workers)
	c.FailFast = ParseBoolEnv("LONGSD_FAIL_FAST", c.FailFast)

	c.DevMode = ParseBoolEnv("DEV_MODE", c.DevMode)
	c.LogFile = GetEnvOrDefault("LOG_FILE", c.LogFile)
}

// SDTimeout returns the per-render timeout; zero means no timeout.
func (c *Config) SDTimeout() time.Duration {
	return time.Duration(c.SDTimeoutSeconds) * time.Second
}

// Validate checks the configuration and returns the first problem found as a *ConfigError.
func (c *Config) Validate() error {
	if c.OpenAIToken == "" {
		return ErrMissingAuth("OPENAI_TOKEN")
	}
	if c.Workers < 1 {
		return ErrInvalidConfig("num_gpu_processes", fmt.Sprintf("must be at least 1, got %d", c.Workers))
	}
	if c.MaxTokens < 1 {
		return ErrInvalidConfig("max_tokens", fmt.Sprintf("must be at least 1, got %d", c.MaxTokens))
	}

	switch c.SDBackend {
	case BackendSD:
		if c.SDModelPath == "" {
			return ErrInvalidConfig("SD_MODEL_PATH", "required when SD_BACKEND=sd")
		}
	case BackendPlaceholder:
	default:
		return ErrInvalidConfig("SD_BACKEND", fmt.Sprintf("unknown backend %q (want %q or %q)", c.SDBackend, BackendSD, BackendPlaceholder))
	}

	if len(c.SDDevices) == 0 {
		return ErrInvalidConfig("SD_DEVICES", "at least one device ordinal is required")
	}
	for _, d := range c.SDDevices {
		if d < 0 {
			return ErrInvalidConfig("SD_DEVICES", fmt.Sprintf("device ordinal %d is negative", d))
		}
	}
	if c.SDImageSize%8 != 0 || c.SDImageSize < 128 || c.SDImageSize > 2048 {
		return ErrInvalidConfig("SD_IMAGE_SIZE", fmt.Sprintf("must be 128-2048 and divisible by 8, got %d", c.SDImageSize))
	}
	if c.SDInferenceSteps < 1 || c.SDInferenceSteps > 100 {
		return ErrInvalidConfig("SD_INFERENCE_STEPS", fmt.Sprintf("must be between 1 and 100, got %d", c.SDInferenceSteps))
	}
	if c.SDGuidanceScale < 1.0 || c.SDGuidanceScale > 30.0 {
		return ErrInvalidConfig("SD_GUIDANCE_SCALE", fmt.Sprintf("must be between 1.0 and 30.0, got %.2f", c.SDGuidanceScale))
	}
	if c.SDTimeoutSeconds < 0 {
		return ErrInvalidConfig("SD_TIMEOUT_SECONDS", fmt.Sprintf("must not be negative, got %d", c.SDTimeoutSeconds))
	}

	return nil
}
