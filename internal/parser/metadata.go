package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const monthPattern = `(January|February|March|April|May|June|July|August|September|October|November|December)`

var monthNumbers = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var (
	// "7th January", "7 January 2025"
	workDateRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+` + monthPattern + `\b(?:\s+(\d{4}))?`)
	// free-form date on the line following a "Date" label
	dateLabelRe = regexp.MustCompile(`(?i)\bDate\b[:\s]*\n?\s*([^\n]+)`)

	supervisorRe     = regexp.MustCompile(`(?i)Signed\s*\(Supervisor\)\s*:?\s*([A-Za-z][A-Za-z .'\-]+)`)
	superintendentRe = regexp.MustCompile(`(?i)Signed\s*\(Superintendent\)\s*:?\s*([A-Za-z][A-Za-z .'\-]+)`)

	spacesRe = regexp.MustCompile(`[ \t]+`)
)

// cleanSpaces collapses runs of spaces/tabs and trims the result.
func cleanSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// extractSignatures pulls the supervisor and superintendent names from the
// "Signed (...)" markers. Either may be empty; signature blocks are often
// left blank on the template.
func extractSignatures(text string) (supervisor, superintendent string) {
	if m := supervisorRe.FindStringSubmatch(text); m != nil {
		supervisor = cleanSpaces(m[1])
	}
	if m := superintendentRe.FindStringSubmatch(text); m != nil {
		superintendent = cleanSpaces(m[1])
	}
	return supervisor, superintendent
}

// extractWorkDate finds the report date. Primary form is "7th January" or
// "7 January 2025"; when the year is absent, assumedYear fills it in. If no
// such pattern exists, the line after a "Date" label is parsed day-first as a
// fallback, and failing that the date degrades to Jan 1 of the assumed year.
func extractWorkDate(text string, assumedYear int) (time.Time, bool) {
	if m := workDateRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := monthNumbers[strings.ToLower(m[2])]
		year := assumedYear
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		if d, ok := buildDate(year, month, day); ok {
			return d, true
		}
	}

	if m := dateLabelRe.FindStringSubmatch(text); m != nil {
		raw := cleanSpaces(m[1])
		if t, err := dateparse.ParseAny(raw, dateparse.PreferMonthFirst(false)); err == nil {
			if t.Year() == 0 {
				t = time.Date(assumedYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Date(assumedYear, time.January, 1, 0, 0, 0, 0, time.UTC), false
}

// buildDate rejects impossible day numbers instead of letting time.Date
// normalize them into the next month.
func buildDate(year int, month time.Month, day int) (time.Time, bool) {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
