// Package metrics records per-task and per-document results of a run and
// aggregates them into the end-of-run summary.
package metrics

import "time"

// TaskRecord is one completion request or one image render.
type TaskRecord struct {
	ID        string        `json:"id"`
	RunID     string        `json:"run_id"`
	Type      string        `json:"type"` // TaskTypeCompletion or TaskTypeRender
	Document  string        `json:"document"`
	Section   string        `json:"section,omitempty"`
	Worker    int           `json:"worker,omitempty"`
	Status    string        `json:"status"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time,omitempty"`
	Duration  time.Duration `json:"duration"`
	ErrorMsg  string        `json:"error_msg,omitempty"`
}

// DocumentRecord is the final state of one document in a batch.
type DocumentRecord struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	State    string        `json:"state"` // last pipeline state reached
	Planned  int           `json:"planned"`
	Rendered int           `json:"rendered"`
	Failed   int           `json:"failed"`
	Skipped  []string      `json:"skipped_sections,omitempty"`
	Output   string        `json:"output,omitempty"`
	Duration time.Duration `json:"duration"`
	ErrorMsg string        `json:"error_msg,omitempty"`
}

// TaskMetrics aggregates every recorded task.
type TaskMetrics struct {
	TotalProcessed int64                       `json:"total_processed"`
	TotalSuccess   int64                       `json:"total_success"`
	TotalErrors    int64                       `json:"total_errors"`
	ByType         map[string]*TaskTypeMetrics `json:"by_type"`
}

// TaskTypeMetrics aggregates tasks of one type.
type TaskTypeMetrics struct {
	Count       int64         `json:"count"`
	SuccessRate float64       `json:"success_rate"`
	AvgDuration time.Duration `json:"avg_duration"`
}

// Summary is the end-of-run report.
type Summary struct {
	RunID     string           `json:"run_id"`
	Version   string           `json:"version"`
	Elapsed   time.Duration    `json:"elapsed"`
	Tasks     TaskMetrics      `json:"tasks"`
	Documents []DocumentRecord `json:"documents"`
}

// Failed reports whether any document in the run failed.
func (s Summary) Failed() bool {
	for _, d := range s.Documents {
		if d.Status != StatusSuccess {
			return true
		}
	}
	return false
}

// Status values for TaskRecord and DocumentRecord
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusPartial = "partial" // document assembled with some renders failed
)

// Task types
const (
	TaskTypeCompletion = "completion"
	TaskTypeRender     = "render"
)
