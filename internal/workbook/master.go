package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"shiftmaster/internal/model"
)

// Master is the persistent workbook accumulating all ingested rows. It is a
// flat append-only table: existing rows are never rewritten, reordered or
// deleted. The file is only held open for the duration of one read-then-append
// operation.
type Master struct {
	path string
}

// NewMaster wraps the master workbook at path. The file may not exist yet;
// the first append creates it with the header row.
func NewMaster(path string) *Master {
	return &Master{path: path}
}

// Path returns the on-disk location of the master workbook.
func (m *Master) Path() string {
	return m.path
}

// AppendResult summarizes one append operation.
type AppendResult struct {
	Appended  int `json:"appended"`  // rows written
	Skipped   int `json:"skipped"`   // rows suppressed by dedup key
	TotalRows int `json:"totalRows"` // data rows in the master afterwards
}

// Status describes the master workbook without modifying it.
type Status struct {
	Path         string    `json:"path"`
	Exists       bool      `json:"exists"`
	RowCount     int       `json:"rowCount"`
	LastModified time.Time `json:"lastModified,omitempty"`
}

// Append writes the rows whose dedup key is not already present, in the given
// order, after all existing rows. The save is all-or-nothing: output goes to
// a temp file that replaces the master only on success, and when every row is
// a duplicate the file is not touched at all.
func (m *Master) Append(rows []model.MasterRow) (*AppendResult, error) {
	f, created, err := m.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]

	existing, err := f.GetRows(sheet)
	if err != nil {
		return nil, &AccessError{Path: m.path, Op: "read", Err: err}
	}
	if err := m.checkSchema(existing); err != nil {
		return nil, err
	}

	keys := existingKeys(existing)
	result := &AppendResult{TotalRows: len(existing) - 1}

	next := len(existing) + 1 // 1-based row number after the last used row
	for _, row := range rows {
		key := row.DedupKey()
		if keys[key] {
			result.Skipped++
			continue
		}
		keys[key] = true

		cell, err := excelize.CoordinatesToCellName(1, next)
		if err != nil {
			return nil, &AccessError{Path: m.path, Op: "save", Err: err}
		}
		if err := f.SetSheetRow(sheet, cell, rowValues(row.Cells())); err != nil {
			return nil, &AccessError{Path: m.path, Op: "save", Err: err}
		}
		next++
		result.Appended++
		result.TotalRows++
	}

	// Nothing new and the file already exists: leave it byte-identical.
	if result.Appended == 0 && !created {
		return result, nil
	}

	if err := m.saveAtomic(f); err != nil {
		return nil, err
	}
	return result, nil
}

// Status reports whether the master exists and how many data rows it holds.
func (m *Master) Status() (*Status, error) {
	info, err := os.Stat(m.path)
	if os.IsNotExist(err) {
		return &Status{Path: m.path, Exists: false}, nil
	}
	if err != nil {
		return nil, &AccessError{Path: m.path, Op: "open", Err: err}
	}

	f, err := excelize.OpenFile(m.path)
	if err != nil {
		return nil, &AccessError{Path: m.path, Op: "open", Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &AccessError{Path: m.path, Op: "read", Err: err}
	}
	if err := m.checkSchema(rows); err != nil {
		return nil, err
	}

	return &Status{
		Path:         m.path,
		Exists:       true,
		RowCount:     len(rows) - 1,
		LastModified: info.ModTime(),
	}, nil
}

// Rows returns the data rows currently in the master, in stored order.
func (m *Master) Rows() ([][]string, error) {
	f, err := excelize.OpenFile(m.path)
	if err != nil {
		return nil, &AccessError{Path: m.path, Op: "open", Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &AccessError{Path: m.path, Op: "read", Err: err}
	}
	if err := m.checkSchema(rows); err != nil {
		return nil, err
	}
	return rows[1:], nil
}

// Keys returns the dedup keys currently present in the master, or an empty
// set when the file does not exist yet. Used to preview which uploaded rows
// are new before the user confirms the append.
func (m *Master) Keys() (map[string]bool, error) {
	if _, err := os.Stat(m.path); os.IsNotExist(err) {
		return map[string]bool{}, nil
	}

	f, err := excelize.OpenFile(m.path)
	if err != nil {
		return nil, &AccessError{Path: m.path, Op: "open", Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &AccessError{Path: m.path, Op: "read", Err: err}
	}
	if err := m.checkSchema(rows); err != nil {
		return nil, err
	}
	return existingKeys(rows), nil
}

// open loads the existing master, or builds a fresh in-memory workbook with
// the header row when the file does not exist yet.
func (m *Master) open() (f *excelize.File, created bool, err error) {
	if _, err := os.Stat(m.path); os.IsNotExist(err) {
		f := excelize.NewFile()
		f.SetSheetName("Sheet1", model.MasterSheet)
		if err := f.SetSheetRow(model.MasterSheet, "A1", rowValues(model.MasterColumns)); err != nil {
			_ = f.Close()
			return nil, false, &AccessError{Path: m.path, Op: "save", Err: err}
		}
		return f, true, nil
	}

	f, err = excelize.OpenFile(m.path)
	if err != nil {
		return nil, false, &AccessError{Path: m.path, Op: "open", Err: err}
	}
	return f, false, nil
}

// checkSchema validates the header row of a loaded master against
// model.MasterColumns. rows is the full GetRows output including the header.
func (m *Master) checkSchema(rows [][]string) error {
	if len(rows) == 0 {
		return &SchemaError{Path: m.path, Expected: model.MasterColumns, Actual: nil}
	}
	header := rows[0]
	if len(header) != len(model.MasterColumns) {
		return &SchemaError{Path: m.path, Expected: model.MasterColumns, Actual: header}
	}
	for i, col := range model.MasterColumns {
		if header[i] != col {
			return &SchemaError{Path: m.path, Expected: model.MasterColumns, Actual: header}
		}
	}
	return nil
}

// saveAtomic writes the workbook next to the target and renames it into
// place, so a failed save never corrupts the existing master.
func (m *Master) saveAtomic(f *excelize.File) error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &AccessError{Path: m.path, Op: "save", Err: err}
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp%d", filepath.Base(m.path), os.Getpid()))
	if err := f.SaveAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return &AccessError{Path: m.path, Op: "save", Err: err}
	}
	if err := os.Rename(tmp, m.path); err != nil {
		_ = os.Remove(tmp)
		return &AccessError{Path: m.path, Op: "save", Err: err}
	}
	return nil
}

// existingKeys collects dedup keys from the key column; rows predating the
// DEDUP_KEY column fall back to deriving the key from their stable fields.
func existingKeys(rows [][]string) map[string]bool {
	keyIdx := len(model.MasterColumns) - 1
	keys := make(map[string]bool, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > keyIdx && row[keyIdx] != "" {
			keys[row[keyIdx]] = true
			continue
		}
		if len(row) > 3 && row[0] != "" {
			keys[row[3]+"|"+row[0]] = true
		}
	}
	return keys
}

func rowValues(cells []string) *[]interface{} {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return &values
}
