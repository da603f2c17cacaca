package pipeline

import (
	"context"
	"time"

	"longsd/metrics"
	"longsd/prompts"
)

// recordingClient records a completion TaskRecord per request.
type recordingClient struct {
	next      prompts.CompletionClient
	collector metrics.Collector
	document  string
}

func (c recordingClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := c.next.Complete(ctx, prompt)
	end := time.Now()

	task := metrics.TaskRecord{
		Type:      metrics.TaskTypeCompletion,
		Document:  c.document,
		Status:    metrics.StatusSuccess,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}
	if err != nil {
		task.Status = metrics.StatusError
		task.ErrorMsg = err.Error()
	}
	c.collector.RecordTask(task)
	return text, err
}
