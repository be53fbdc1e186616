package importer

import (
	"fmt"
	"strings"
	"time"

	"shiftmaster/internal/model"
	"shiftmaster/internal/parser"
	"shiftmaster/internal/store"
	"shiftmaster/internal/workbook"
)

// Coordinator drives one ingest batch: parse each uploaded document, flatten
// the reports into master rows, and run a single dedup-append against the
// master workbook. Batches run one at a time; there is no concurrency beyond
// the goroutine feeding the progress channel.
type Coordinator struct {
	master *workbook.Master
	store  *store.Store
}

// NewCoordinator creates an ingest coordinator.
func NewCoordinator(master *workbook.Master, st *store.Store) *Coordinator {
	return &Coordinator{master: master, store: st}
}

// IngestFile is one uploaded document.
type IngestFile struct {
	Name string
	Data []byte
}

// IngestOptions configures one batch.
type IngestOptions struct {
	Files       []IngestFile
	AssumedYear int // fills dates written without a year; 0 = current year
}

// ProgressEvent is one progress update streamed to the client.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/file_start/file_done/warning/error/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// FileResult is the outcome for one document in the batch.
type FileResult struct {
	Filename string `json:"filename"`
	Status   string `json:"status"` // extracted/error
	Rows     int    `json:"rows"`
	Error    string `json:"error,omitempty"`
}

// IngestReport summarizes a completed batch.
type IngestReport struct {
	FileCount         int           `json:"fileCount"`
	FailedFiles       int           `json:"failedFiles"`
	RowsExtracted     int           `json:"rowsExtracted"`
	RowsAppended      int           `json:"rowsAppended"`
	DuplicatesSkipped int           `json:"duplicatesSkipped"`
	MasterRows        int           `json:"masterRows"`
	Duration          time.Duration `json:"duration"`
	Files             []FileResult  `json:"files"`
}

// Ingest runs the batch and returns the progress channel. The channel is
// closed when the batch is finished; the final event is "done" (carrying the
// IngestReport) or "error".
func (c *Coordinator) Ingest(opts IngestOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doIngest(opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doIngest(opts IngestOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()

	names := make([]string, len(opts.Files))
	for i, f := range opts.Files {
		names[i] = f.Name
	}

	c.send(progressChan, ProgressEvent{
		Type:    "start",
		Message: fmt.Sprintf("Ingesting %d file(s)", len(opts.Files)),
		Data:    map[string]interface{}{"files": names},
	})

	logID, err := c.store.CreateIngestLog(len(opts.Files), strings.Join(names, ";"))
	if err != nil {
		c.send(progressChan, ProgressEvent{
			Type:    "error",
			Message: fmt.Sprintf("Failed to record ingest: %v", err),
		})
		return
	}

	report := &IngestReport{FileCount: len(opts.Files)}
	p := parser.New(opts.AssumedYear)
	ingestedAt := time.Now().UTC()

	var rows []model.MasterRow
	for _, file := range opts.Files {
		c.send(progressChan, ProgressEvent{
			Type:    "file_start",
			Message: fmt.Sprintf("Parsing %s", file.Name),
			Data:    map[string]string{"filename": file.Name},
		})

		rep, err := p.Parse(file.Name, file.Data)
		if err != nil {
			report.FailedFiles++
			report.Files = append(report.Files, FileResult{
				Filename: file.Name,
				Status:   "error",
				Error:    err.Error(),
			})
			c.send(progressChan, ProgressEvent{
				Type:    "warning",
				Message: fmt.Sprintf("Skipping %s: %v", file.Name, err),
				Data:    map[string]string{"filename": file.Name},
			})
			continue
		}

		fileRows := model.RowsFromReport(rep, ingestedAt)
		rows = append(rows, fileRows...)
		report.RowsExtracted += len(fileRows)
		report.Files = append(report.Files, FileResult{
			Filename: file.Name,
			Status:   "extracted",
			Rows:     len(fileRows),
		})

		c.send(progressChan, ProgressEvent{
			Type:    "file_done",
			Message: fmt.Sprintf("%s: %d row(s), date %s", file.Name, len(fileRows), rep.WorkDate.Format(model.DateLayout)),
			Data: map[string]interface{}{
				"filename": file.Name,
				"rows":     len(fileRows),
			},
		})
	}

	if len(rows) == 0 {
		msg := "No rows could be extracted from the uploaded files"
		_ = c.store.UpdateIngestLog(logID, 0, 0, 0, report.FailedFiles, "error", msg)
		c.send(progressChan, ProgressEvent{Type: "error", Message: msg, Data: report})
		return
	}

	result, err := c.master.Append(rows)
	if err != nil {
		_ = c.store.UpdateIngestLog(logID, report.RowsExtracted, 0, 0, report.FailedFiles, "error", err.Error())
		c.send(progressChan, ProgressEvent{
			Type:    "error",
			Message: fmt.Sprintf("Master update failed, nothing was written: %v", err),
			Data:    report,
		})
		return
	}

	report.RowsAppended = result.Appended
	report.DuplicatesSkipped = result.Skipped
	report.MasterRows = result.TotalRows
	report.Duration = time.Since(startTime)

	status := "done"
	if report.FailedFiles > 0 {
		status = "partial"
	}
	_ = c.store.UpdateIngestLog(logID, report.RowsExtracted, report.RowsAppended,
		report.DuplicatesSkipped, report.FailedFiles, status, "")

	c.send(progressChan, ProgressEvent{
		Type: "done",
		Message: fmt.Sprintf("Master updated: %d appended, %d duplicate(s) skipped, %d row(s) total",
			report.RowsAppended, report.DuplicatesSkipped, report.MasterRows),
		Data: report,
	})
}

func (c *Coordinator) send(ch chan ProgressEvent, event ProgressEvent) {
	event.Timestamp = time.Now()
	ch <- event
}
