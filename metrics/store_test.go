package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestStore_RecordTaskAggregates(t *testing.T) {
	store := NewStore(DefaultStoreConfig(), time.Now())

	tasks := []TaskRecord{
		{Type: TaskTypeRender, Status: StatusSuccess, Duration: 2 * time.Second},
		{Type: TaskTypeRender, Status: StatusError, Duration: 4 * time.Second},
		{Type: TaskTypeCompletion, Status: StatusSuccess, Duration: time.Second},
	}
	for _, task := range tasks {
		store.RecordTask(task)
	}

	m := store.TaskMetrics()
	if m.TotalProcessed != 3 || m.TotalSuccess != 2 || m.TotalErrors != 1 {
		t.Errorf("totals = %d/%d/%d, want 3/2/1", m.TotalProcessed, m.TotalSuccess, m.TotalErrors)
	}

	render := m.ByType[TaskTypeRender]
	if render == nil {
		t.Fatal("no render metrics")
	}
	if render.Count != 2 || render.SuccessRate != 50 || render.AvgDuration != 3*time.Second {
		t.Errorf("render metrics = %+v", *render)
	}
}

func TestStore_FillsIDs(t *testing.T) {
	store := NewStore(DefaultStoreConfig(), time.Now())
	store.RecordTask(TaskRecord{Type: TaskTypeRender, Status: StatusSuccess})

	recent := store.RecentTasks(1)
	if len(recent) != 1 {
		t.Fatalf("RecentTasks(1) returned %d", len(recent))
	}
	if recent[0].ID == "" {
		t.Error("task ID not assigned")
	}
	if recent[0].RunID != store.RunID() {
		t.Errorf("RunID = %q, want %q", recent[0].RunID, store.RunID())
	}

	other := NewStore(DefaultStoreConfig(), time.Now())
	if other.RunID() == store.RunID() {
		t.Error("two stores share a run ID")
	}
}

func TestStore_RecentTasksRing(t *testing.T) {
	store := NewStore(StoreConfig{TaskHistoryCapacity: 3}, time.Now())
	for _, section := range []string{"a", "b", "c", "d", "e"} {
		store.RecordTask(TaskRecord{Section: section, Status: StatusSuccess})
	}

	tests := []struct {
		limit int
		want  []string
	}{
		{0, nil},
		{2, []string{"d", "e"}},
		{3, []string{"c", "d", "e"}},
		{10, []string{"c", "d", "e"}},
	}

	for _, tt := range tests {
		got := store.RecentTasks(tt.limit)
		if len(got) != len(tt.want) {
			t.Errorf("RecentTasks(%d) len = %d, want %d", tt.limit, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i].Section != tt.want[i] {
				t.Errorf("RecentTasks(%d)[%d] = %q, want %q", tt.limit, i, got[i].Section, tt.want[i])
			}
		}
	}

	if n := store.TaskMetrics().TotalProcessed; n != 5 {
		t.Errorf("TotalProcessed = %d, want 5 despite ring eviction", n)
	}
}

func TestStore_Summary(t *testing.T) {
	store := NewStore(StoreConfig{Version: "v1"}, time.Now().Add(-time.Minute))
	store.RecordDocument(DocumentRecord{Name: "a", Status: StatusSuccess})

	s := store.Summary()
	if s.Version != "v1" || s.RunID != store.RunID() {
		t.Errorf("Summary header = %q/%q", s.Version, s.RunID)
	}
	if s.Elapsed < time.Minute {
		t.Errorf("Elapsed = %v, want >= 1m", s.Elapsed)
	}
	if s.Failed() {
		t.Error("Failed() = true with only successful documents")
	}

	store.RecordDocument(DocumentRecord{Name: "b", Status: StatusPartial})
	if !store.Summary().Failed() {
		t.Error("Failed() = false with a partial document")
	}

	// snapshot must not alias the store
	s.Documents[0].Name = "mutated"
	if store.Summary().Documents[0].Name != "a" {
		t.Error("Summary() exposes internal slice")
	}
}

func TestStore_ConcurrentRecord(t *testing.T) {
	store := NewStore(StoreConfig{TaskHistoryCapacity: 10}, time.Now())

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				store.RecordTask(TaskRecord{Type: TaskTypeRender, Worker: worker, Status: StatusSuccess})
			}
		}(w)
	}
	wg.Wait()

	if n := store.TaskMetrics().TotalSuccess; n != 800 {
		t.Errorf("TotalSuccess = %d, want 800", n)
	}
}

func TestDiscard(t *testing.T) {
	Discard.RecordTask(TaskRecord{})
}
