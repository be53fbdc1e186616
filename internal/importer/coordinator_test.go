package importer

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"shiftmaster/internal/store"
	"shiftmaster/internal/workbook"
)

func makeDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0"?>`)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := w.Write([]byte(doc.String())); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func reportDocx(t *testing.T, date, base string, items ...string) []byte {
	t.Helper()
	paragraphs := []string{"Shift Report", "Date: " + date, "Today's Tasks", base}
	paragraphs = append(paragraphs, items...)
	paragraphs = append(paragraphs, "Manpower", "Signed (Supervisor) A. Silva")
	return makeDocx(t, paragraphs...)
}

func newTestCoordinator(t *testing.T) (*Coordinator, *store.Store) {
	t.Helper()

	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	master := workbook.NewMaster(filepath.Join(dir, "Master.xlsx"))
	return NewCoordinator(master, st), st
}

func drain(t *testing.T, ch <-chan ProgressEvent) (events []ProgressEvent, final ProgressEvent) {
	t.Helper()
	for event := range ch {
		events = append(events, event)
	}
	if len(events) == 0 {
		t.Fatalf("no events received")
	}
	return events, events[len(events)-1]
}

func TestIngest_AppendsAndLogs(t *testing.T) {
	t.Parallel()

	c, st := newTestCoordinator(t)

	_, final := drain(t, c.Ingest(IngestOptions{
		AssumedYear: 2024,
		Files: []IngestFile{
			{Name: "a.docx", Data: reportDocx(t, "10th January 2024", "1 ECS 12 ST", "2292", "4410")},
		},
	}))

	if final.Type != "done" {
		t.Fatalf("final event: want done, got %s (%s)", final.Type, final.Message)
	}
	report, ok := final.Data.(*IngestReport)
	if !ok {
		t.Fatalf("final data is %T", final.Data)
	}
	if report.RowsExtracted != 2 || report.RowsAppended != 2 || report.DuplicatesSkipped != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	logs, err := st.ListIngestLogs(10)
	if err != nil {
		t.Fatalf("ListIngestLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("want 1 log, got %d", len(logs))
	}
	if logs[0].Status != "done" || logs[0].RowsAppended != 2 {
		t.Fatalf("unexpected log: %+v", logs[0])
	}
}

func TestIngest_SecondRunIsDeduplicated(t *testing.T) {
	t.Parallel()

	c, _ := newTestCoordinator(t)
	opts := IngestOptions{
		AssumedYear: 2024,
		Files: []IngestFile{
			{Name: "a.docx", Data: reportDocx(t, "10th January 2024", "1 ECS 12 ST", "2292", "4410")},
		},
	}

	if _, final := drain(t, c.Ingest(opts)); final.Type != "done" {
		t.Fatalf("first run: %s (%s)", final.Type, final.Message)
	}

	_, final := drain(t, c.Ingest(opts))
	if final.Type != "done" {
		t.Fatalf("second run: %s (%s)", final.Type, final.Message)
	}
	report := final.Data.(*IngestReport)
	if report.RowsAppended != 0 || report.DuplicatesSkipped != 2 || report.MasterRows != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestIngest_BadFileIsSkippedButBatchContinues(t *testing.T) {
	t.Parallel()

	c, st := newTestCoordinator(t)

	events, final := drain(t, c.Ingest(IngestOptions{
		AssumedYear: 2024,
		Files: []IngestFile{
			{Name: "bad.docx", Data: []byte("not a docx")},
			{Name: "good.docx", Data: reportDocx(t, "11th January 2024", "1 HNX 10 ST", "0031.1")},
		},
	}))

	if final.Type != "done" {
		t.Fatalf("final event: want done, got %s (%s)", final.Type, final.Message)
	}
	report := final.Data.(*IngestReport)
	if report.FailedFiles != 1 || report.RowsAppended != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	sawWarning := false
	for _, event := range events {
		if event.Type == "warning" {
			sawWarning = true
		}
	}
	if !sawWarning {
		t.Fatalf("expected a warning event for the bad file")
	}

	logs, err := st.ListIngestLogs(10)
	if err != nil {
		t.Fatalf("ListIngestLogs: %v", err)
	}
	if logs[0].Status != "partial" || logs[0].FailedFiles != 1 {
		t.Fatalf("unexpected log: %+v", logs[0])
	}
}

func TestIngest_AllFilesBadFailsWithoutWriting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	masterPath := filepath.Join(dir, "Master.xlsx")
	c := NewCoordinator(workbook.NewMaster(masterPath), st)

	_, final := drain(t, c.Ingest(IngestOptions{
		Files: []IngestFile{{Name: "bad.docx", Data: []byte("junk")}},
	}))
	if final.Type != "error" {
		t.Fatalf("final event: want error, got %s", final.Type)
	}

	status, err := workbook.NewMaster(masterPath).Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Exists {
		t.Fatalf("master must not be created by a failed batch")
	}
}
