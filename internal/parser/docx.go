package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// extractDocxText reads word/document.xml out of the DOCX ZIP container and
// returns all non-empty paragraph text in document order, one paragraph per
// line. Paragraphs inside table cells are ordinary <w:p> elements in the
// document stream, so table content (where shift-report templates keep most
// fields) comes out the same way.
func extractDocxText(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var lines []string
	var current strings.Builder
	depth := 0 // nesting depth of <w:p>; cells nest paragraphs but never <w:p> in <w:p>

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" {
				depth++
				current.Reset()
			}

		case xml.CharData:
			if depth > 0 {
				current.Write(t)
			}

		case xml.EndElement:
			if t.Name.Local == "p" && depth > 0 {
				depth--
				text := strings.TrimSpace(current.String())
				if text != "" {
					lines = append(lines, text)
				}
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}
