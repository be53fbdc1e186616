package model

import "time"

// ShiftReport is one parsed shift-report document. It is immutable once
// parsed; it is either appended to the master workbook or discarded.
type ShiftReport struct {
	SourceFile     string       `json:"sourceFile"`
	WorkDate       time.Time    `json:"workDate"`
	Supervisor     string       `json:"supervisor"`
	Superintendent string       `json:"superintendent"`
	Items          []ReportItem `json:"items"`
}

// ReportItem one (ECS base, item) pair extracted from the task table.
type ReportItem struct {
	ECSBase string `json:"ecsBase"` // normalized, e.g. "1HNX10ST"
	Item    string `json:"item"`    // e.g. "2292" or "0031.1"
}

// ECSCodeFull is the full equipment code: base identifier plus item number.
func (i ReportItem) ECSCodeFull() string {
	return i.ECSBase + i.Item
}
