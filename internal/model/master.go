package model

import "time"

// MasterSheet is the sheet holding the flat ingested table.
const MasterSheet = "MASTER"

// DateLayout is how WORK_DATE is written into the workbook and into dedup keys.
const DateLayout = "2006-01-02"

// MasterColumns is the fixed header row of the master workbook. An existing
// master whose header differs is rejected before anything is written.
var MasterColumns = []string{
	"ECS_CODE_FULL",
	"ECS_BASE",
	"ITEM",
	"WORK_DATE",
	"SUPERVISOR",
	"SUPERINTENDENT",
	"SOURCE_FILE",
	"INGESTED_AT",
	"DEDUP_KEY",
}

// MasterRow flattens one ShiftReport+ReportItem pair into a workbook row.
type MasterRow struct {
	ECSCodeFull    string    `json:"ecsCodeFull"`
	ECSBase        string    `json:"ecsBase"`
	Item           string    `json:"item"`
	WorkDate       time.Time `json:"workDate"`
	Supervisor     string    `json:"supervisor"`
	Superintendent string    `json:"superintendent"`
	SourceFile     string    `json:"sourceFile"`
	IngestedAt     time.Time `json:"ingestedAt"`
}

// DedupKey derives the duplicate-suppression key from the row's stable
// fields. Two rows with the same key are the same row.
func (r MasterRow) DedupKey() string {
	return r.WorkDate.Format(DateLayout) + "|" + r.ECSCodeFull
}

// Cells returns the row in MasterColumns order.
func (r MasterRow) Cells() []string {
	return []string{
		r.ECSCodeFull,
		r.ECSBase,
		r.Item,
		r.WorkDate.Format(DateLayout),
		r.Supervisor,
		r.Superintendent,
		r.SourceFile,
		r.IngestedAt.UTC().Format(time.RFC3339),
		r.DedupKey(),
	}
}

// RowsFromReport flattens a report into master rows, preserving item order.
func RowsFromReport(rep *ShiftReport, ingestedAt time.Time) []MasterRow {
	rows := make([]MasterRow, 0, len(rep.Items))
	for _, it := range rep.Items {
		rows = append(rows, MasterRow{
			ECSCodeFull:    it.ECSCodeFull(),
			ECSBase:        it.ECSBase,
			Item:           it.Item,
			WorkDate:       rep.WorkDate,
			Supervisor:     rep.Supervisor,
			Superintendent: rep.Superintendent,
			SourceFile:     rep.SourceFile,
			IngestedAt:     ingestedAt,
		})
	}
	return rows
}
