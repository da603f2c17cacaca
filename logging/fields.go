package logging

import (
	"time"

	"go.uber.org/zap"
)

// Field helpers shared by the pipeline packages so every log line uses the
// same keys for the same concepts.

// Document tags an entry with the document name as given on the command line.
func Document(name string) zap.Field {
	return zap.String("document", name)
}

// Section tags an entry with a narrative section (start, middle, end).
func Section(section string) zap.Field {
	return zap.String("section", section)
}

// Prompt tags an entry with an image prompt.
func Prompt(prompt string) zap.Field {
	return zap.String("prompt", prompt)
}

// Worker tags an entry with the render worker index.
func Worker(id int) zap.Field {
	return zap.Int("worker", id)
}

// Stage tags an entry with the orchestration state of a document.
func Stage(stage string) zap.Field {
	return zap.String("stage", stage)
}

// RenderFields groups the fields logged when a unit finishes rendering.
func RenderFields(section, imagePath string, elapsed time.Duration) []zap.Field {
	return []zap.Field{
		Section(section),
		zap.String("image_path", imagePath),
		zap.Duration("elapsed", elapsed),
	}
}
