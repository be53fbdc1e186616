package parser

import (
	"regexp"
	"strings"

	"shiftmaster/internal/model"
)

var (
	// ECS base identifier: digit, 2-3 letters, optional hyphen/space, two
	// alphanumerics, two letters. "1 HNX 10 ST", "1HK-10SE", "1 HDD 0B ST".
	ecsBaseRe = regexp.MustCompile(`(?i)\b(\d)\s*([A-Za-z]{2,3})\s*[- ]?\s*([0-9A-Za-z]{2})\s*([A-Za-z]{2})\b`)
	// item numbers like 2292 or 0031.1
	itemRe = regexp.MustCompile(`\b\d{4}(?:\.\d)?\b`)

	taskZoneStartRe = regexp.MustCompile(`(?i)Today['’]?s\s+Tasks`)
	taskZoneEndRe   = regexp.MustCompile(`(?i)\bManpower\b`)
)

// NormalizeECSBase collapses an ECS base spelling into its compact uppercase
// form:
//
//	"1 HNX 10 ST" -> "1HNX10ST"
//	"1HK-10SE"    -> "1HK10SE"
//	"1 HDD 0B ST" -> "1HDD0BST"
//
// Returns false when no ECS base is present in the input.
func NormalizeECSBase(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	m := ecsBaseRe.FindStringSubmatch(cleanSpaces(raw))
	if m == nil {
		return "", false
	}
	return joinECSBase(m), true
}

func joinECSBase(m []string) string {
	return m[1] + strings.ToUpper(m[2]) + strings.ToUpper(m[3]) + strings.ToUpper(m[4])
}

// clipTaskZone limits the scan to the region between "Today's Tasks" and
// "Manpower" when those markers exist, cutting false positives from the rest
// of the template.
func clipTaskZone(text string) string {
	start := 0
	end := len(text)

	if loc := taskZoneStartRe.FindStringIndex(text); loc != nil {
		start = loc[0]
	}
	if loc := taskZoneEndRe.FindStringIndex(text); loc != nil && loc[0] > start {
		end = loc[0]
	}

	return text[start:end]
}

// extractECSRows scans the task zone for ECS base occurrences and collects
// the item numbers between each base and the next one. Items repeat freely in
// the documents, so they are deduplicated per base chunk, preserving first
// occurrence order.
func extractECSRows(text string) []model.ReportItem {
	zone := clipTaskZone(text)

	matches := ecsBaseRe.FindAllStringSubmatchIndex(zone, -1)
	if len(matches) == 0 {
		return nil
	}

	var rows []model.ReportItem

	for i, loc := range matches {
		m := []string{
			zone[loc[0]:loc[1]],
			zone[loc[2]:loc[3]],
			zone[loc[4]:loc[5]],
			zone[loc[6]:loc[7]],
			zone[loc[8]:loc[9]],
		}
		base := joinECSBase(m)

		chunkStart := loc[1]
		chunkEnd := len(zone)
		if i+1 < len(matches) {
			chunkEnd = matches[i+1][0]
		}

		seen := make(map[string]bool)
		for _, item := range itemRe.FindAllString(zone[chunkStart:chunkEnd], -1) {
			if seen[item] {
				continue
			}
			seen[item] = true
			rows = append(rows, model.ReportItem{ECSBase: base, Item: item})
		}
	}

	return rows
}
