package logging

import (
	"regexp"
	"strings"
)

// RedactedPlaceholder is the string used to replace sensitive data
const RedactedPlaceholder = "[REDACTED]"

// sensitivePatterns match credentials that may appear in values, such as an
// upstream error echoing the Authorization header.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(sk-[a-zA-Z0-9_-]{20,})`),        // OpenAI keys, legacy and project-scoped
	regexp.MustCompile(`(?i)(bearer\s+[a-zA-Z0-9._-]{20,})`), // Authorization header values
	regexp.MustCompile(`(?i)(token\s*[:=]\s*[^\s,;]{8,})`),   // token= or token:
	regexp.MustCompile(`(?i)(api_key\s*[:=]\s*[^\s,;]{8,})`), // api_key= or api_key:
}

// sensitiveFieldNames are field name fragments whose values are always redacted
var sensitiveFieldNames = []string{
	"OPENAI_TOKEN",
	"OPENAI_API_KEY",
	"API_KEY",
	"APIKEY",
	"ACCESS_TOKEN",
	"BEARER",
	"SECRET",
	"PASSWORD",
	"AUTHORIZATION",
}

// RedactSensitiveData replaces any detected credential in value with RedactedPlaceholder.
//
// Example:
//
//	RedactSensitiveData("auth failed for sk-abc123def456ghi789jkl0")
//	// "auth failed for [REDACTED]"
func RedactSensitiveData(value string) string {
	if value == "" {
		return value
	}

	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedPlaceholder)
	}
	return result
}

// IsSensitiveField reports whether a field name indicates a credential.
func IsSensitiveField(fieldName string) bool {
	upperName := strings.ToUpper(fieldName)

	for _, name := range sensitiveFieldNames {
		if strings.Contains(upperName, name) {
			return true
		}
	}
	return false
}
