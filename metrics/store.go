package metrics

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps the records of one run in memory. Task history is a ring of
// fixed capacity; aggregates cover every task ever recorded.
//
// Usage:
//
//	store := NewStore(DefaultStoreConfig(), time.Now())
//	store.RecordTask(task)
//	summary := store.Summary()
type Store struct {
	mu sync.RWMutex

	runID string

	taskHistory []TaskRecord
	taskCap     int
	taskHead    int
	taskSize    int

	totalTasks   int64
	totalSuccess int64
	totalErrors  int64
	taskByType   map[string]*taskTypeStats

	documents []DocumentRecord

	startTime time.Time
	version   string
}

type taskTypeStats struct {
	count         int64
	successCount  int64
	totalDuration time.Duration
}

// StoreConfig configures a Store.
type StoreConfig struct {
	TaskHistoryCapacity int
	Version             string
}

// DefaultStoreConfig returns a 1000-task history.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		TaskHistoryCapacity: 1000,
		Version:             "dev",
	}
}

// NewStore creates a Store with a fresh run ID.
func NewStore(config StoreConfig, startTime time.Time) *Store {
	capacity := config.TaskHistoryCapacity
	if capacity < 1 {
		capacity = 1000
	}

	return &Store{
		runID:       uuid.NewString(),
		taskHistory: make([]TaskRecord, capacity),
		taskCap:     capacity,
		taskByType:  make(map[string]*taskTypeStats),
		startTime:   startTime,
		version:     config.Version,
	}
}

// RunID identifies this run in logs and task records.
func (s *Store) RunID() string {
	return s.runID
}

// NewTaskID returns a unique task identifier.
func NewTaskID() string {
	return uuid.NewString()
}

// RecordTask implements Collector. Missing IDs are filled in.
func (s *Store) RecordTask(task TaskRecord) {
	if task.ID == "" {
		task.ID = NewTaskID()
	}
	if task.RunID == "" {
		task.RunID = s.runID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.taskHistory[s.taskHead] = task
	s.taskHead = (s.taskHead + 1) % s.taskCap
	if s.taskSize < s.taskCap {
		s.taskSize++
	}

	s.totalTasks++
	switch task.Status {
	case StatusSuccess:
		s.totalSuccess++
	case StatusError:
		s.totalErrors++
	}

	stats, ok := s.taskByType[task.Type]
	if !ok {
		stats = &taskTypeStats{}
		s.taskByType[task.Type] = stats
	}
	stats.count++
	if task.Status == StatusSuccess {
		stats.successCount++
	}
	stats.totalDuration += task.Duration
}

// RecordDocument appends the final record of one document.
func (s *Store) RecordDocument(doc DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, doc)
}

// TaskMetrics returns aggregated task statistics.
func (s *Store) TaskMetrics() TaskMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskMetricsLocked()
}

func (s *Store) taskMetricsLocked() TaskMetrics {
	m := TaskMetrics{
		TotalProcessed: s.totalTasks,
		TotalSuccess:   s.totalSuccess,
		TotalErrors:    s.totalErrors,
		ByType:         make(map[string]*TaskTypeMetrics, len(s.taskByType)),
	}

	for taskType, stats := range s.taskByType {
		var successRate float64
		var avgDuration time.Duration
		if stats.count > 0 {
			successRate = float64(stats.successCount) / float64(stats.count) * 100
			avgDuration = stats.totalDuration / time.Duration(stats.count)
		}
		m.ByType[taskType] = &TaskTypeMetrics{
			Count:       stats.count,
			SuccessRate: successRate,
			AvgDuration: avgDuration,
		}
	}
	return m
}

// RecentTasks returns up to limit of the most recent tasks, oldest first.
func (s *Store) RecentTasks(limit int) []TaskRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || s.taskSize == 0 {
		return []TaskRecord{}
	}
	if limit > s.taskSize {
		limit = s.taskSize
	}

	result := make([]TaskRecord, limit)
	for i := 0; i < limit; i++ {
		idx := (s.taskHead - limit + i + s.taskCap) % s.taskCap
		result[i] = s.taskHistory[idx]
	}
	return result
}

// Summary snapshots the run.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]DocumentRecord, len(s.documents))
	copy(docs, s.documents)

	return Summary{
		RunID:     s.runID,
		Version:   s.version,
		Elapsed:   time.Since(s.startTime),
		Tasks:     s.taskMetricsLocked(),
		Documents: docs,
	}
}

var _ Collector = (*Store)(nil)
