package parser

import (
	"os"
	"time"

	"shiftmaster/internal/model"
)

// Parser extracts ShiftReports from DOCX shift-report documents. Parsing has
// no side effects beyond reading the input.
type Parser struct {
	assumedYear int
}

// New creates a parser. assumedYear fills in dates written without an
// explicit year; zero means the current UTC year.
func New(assumedYear int) *Parser {
	if assumedYear <= 0 {
		assumedYear = time.Now().UTC().Year()
	}
	return &Parser{assumedYear: assumedYear}
}

// ParseFile reads and parses a DOCX file from disk.
func (p *Parser) ParseFile(path string) (*model.ShiftReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newExtractionError(path, "document", err)
	}
	return p.Parse(path, data)
}

// Parse extracts a ShiftReport from DOCX bytes. name is only used for error
// reporting and the report's SourceFile field. It fails with an
// *ExtractionError when the bytes are not a readable DOCX or when no ECS item
// rows can be found.
func (p *Parser) Parse(name string, data []byte) (*model.ShiftReport, error) {
	text, err := extractDocxText(data)
	if err != nil {
		return nil, newExtractionError(name, "document", err)
	}

	workDate, _ := extractWorkDate(text, p.assumedYear)
	supervisor, superintendent := extractSignatures(text)

	items := extractECSRows(text)
	if len(items) == 0 {
		return nil, newExtractionError(name, "items", nil)
	}

	return &model.ShiftReport{
		SourceFile:     name,
		WorkDate:       workDate,
		Supervisor:     supervisor,
		Superintendent: superintendent,
		Items:          items,
	}, nil
}
