package metrics

// Collector receives task records from the components doing the work.
// Implementations must be safe for concurrent use; render workers record
// from their own goroutines.
type Collector interface {
	RecordTask(task TaskRecord)
}

// Discard is a Collector that drops every record.
var Discard Collector = discard{}

type discard struct{}

func (discard) RecordTask(TaskRecord) {}
