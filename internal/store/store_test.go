package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestIngestLogLifecycle(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	id, err := st.CreateIngestLog(2, "a.docx;b.docx")
	if err != nil {
		t.Fatalf("CreateIngestLog: %v", err)
	}
	if err := st.UpdateIngestLog(id, 5, 3, 2, 0, "done", ""); err != nil {
		t.Fatalf("UpdateIngestLog: %v", err)
	}

	logs, err := st.ListIngestLogs(10)
	if err != nil {
		t.Fatalf("ListIngestLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("want 1 log, got %d", len(logs))
	}
	l := logs[0]
	if l.ID != id || l.FileCount != 2 || l.RowsExtracted != 5 || l.RowsAppended != 3 ||
		l.DuplicatesSkipped != 2 || l.Status != "done" {
		t.Fatalf("unexpected log: %+v", l)
	}
	if l.CompletedAt == nil {
		t.Fatalf("completed_at not set")
	}
}

func TestListIngestLogs_NewestFirst(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	first, err := st.CreateIngestLog(1, "a.docx")
	if err != nil {
		t.Fatalf("CreateIngestLog: %v", err)
	}
	second, err := st.CreateIngestLog(1, "b.docx")
	if err != nil {
		t.Fatalf("CreateIngestLog: %v", err)
	}

	logs, err := st.ListIngestLogs(10)
	if err != nil {
		t.Fatalf("ListIngestLogs: %v", err)
	}
	if len(logs) != 2 || logs[0].ID != second || logs[1].ID != first {
		t.Fatalf("unexpected order: %+v", logs)
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	v, err := st.GetSetting("assumed_year")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if v != "" {
		t.Fatalf("want empty, got %q", v)
	}

	if err := st.SetSetting("assumed_year", "2024"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := st.SetSetting("assumed_year", "2025"); err != nil {
		t.Fatalf("SetSetting update: %v", err)
	}

	v, err = st.GetSetting("assumed_year")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if v != "2025" {
		t.Fatalf("want 2025, got %q", v)
	}

	all, err := st.GetAllSettings()
	if err != nil {
		t.Fatalf("GetAllSettings: %v", err)
	}
	if all["assumed_year"] != "2025" {
		t.Fatalf("unexpected settings: %v", all)
	}
}
