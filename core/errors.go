package core

import (
	"errors"
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
// Configuration errors are fatal for the document being processed.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
	Err     error  // Underlying cause, if any
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", msg, e.Action)
	}
	return msg
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Error codes for configuration errors
const (
	ErrCodeMissingAuth   = "MISSING_AUTH"
	ErrCodeTextNotFound  = "TEXT_NOT_FOUND"
	ErrCodeCorruptCache  = "CORRUPT_CACHE"
	ErrCodeInvalidConfig = "INVALID_CONFIG"
	ErrCodeConfigFile    = "CONFIG_FILE"
)

// ErrMissingAuth returns an error for a missing completion service credential.
func ErrMissingAuth(varName string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingAuth,
		Message: fmt.Sprintf("Missing completion service credential %s", varName),
		Action:  fmt.Sprintf("Set %s in your environment or .env file", varName),
	}
}

// ErrTextNotFound returns an error for an unreadable source text.
func ErrTextNotFound(path string, cause error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeTextNotFound,
		Message: fmt.Sprintf("Cannot read source text %s", path),
		Action:  "Place the text under the texts/ directory or check the file name",
		Err:     cause,
	}
}

// ErrCorruptCache returns an error for a prompt cache file that cannot be decoded.
// The cache is never repaired automatically.
func ErrCorruptCache(path string, cause error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeCorruptCache,
		Message: fmt.Sprintf("Prompt cache %s is not a valid prompt set", path),
		Action:  "Fix or delete the file, or rerun with --overwrite_prompts",
		Err:     cause,
	}
}

// ErrInvalidConfig returns an error for a configuration value out of range.
func ErrInvalidConfig(varName, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf("Invalid %s: %s", varName, reason),
		Action:  fmt.Sprintf("Correct %s in your environment, .env or config file", varName),
	}
}

// ErrConfigFile returns an error for an unreadable or malformed YAML config file.
func ErrConfigFile(path string, cause error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeConfigFile,
		Message: fmt.Sprintf("Cannot load config file %s", path),
		Action:  "Check the YAML syntax or unset LONGSD_CONFIG",
		Err:     cause,
	}
}

// IsConfigError checks if an error is (or wraps) a ConfigError and returns it if so
func IsConfigError(err error) (*ConfigError, bool) {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's a ConfigError
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}
