package parser

import (
	"testing"
	"time"
)

func TestExtractWorkDate_OrdinalWithYear(t *testing.T) {
	t.Parallel()

	d, found := extractWorkDate("Shift handover on 7th January 2025", 2020)
	if !found {
		t.Fatalf("expected found")
	}
	if !d.Equal(time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", d)
	}
}

func TestExtractWorkDate_AssumedYear(t *testing.T) {
	t.Parallel()

	d, found := extractWorkDate("7  January", 2024)
	if !found {
		t.Fatalf("expected found")
	}
	if !d.Equal(time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", d)
	}
}

func TestExtractWorkDate_DateLabelFallback(t *testing.T) {
	t.Parallel()

	d, found := extractWorkDate("Report\nDate\n12/03/2024\nOther", 2020)
	if !found {
		t.Fatalf("expected found")
	}
	// day-first: 12 March, not 3 December
	if !d.Equal(time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", d)
	}
}

func TestExtractWorkDate_LastResort(t *testing.T) {
	t.Parallel()

	d, found := extractWorkDate("no dates anywhere in this text", 2023)
	if found {
		t.Fatalf("expected not found")
	}
	if !d.Equal(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", d)
	}
}

func TestExtractWorkDate_RejectsImpossibleDay(t *testing.T) {
	t.Parallel()

	// "32nd January" must not normalize into February 1st
	d, found := extractWorkDate("done on 32nd January 2024", 2023)
	if found {
		t.Fatalf("expected not found, got %v", d)
	}
}

func TestExtractSignatures(t *testing.T) {
	t.Parallel()

	text := "Signed (Supervisor)  A. Silva\nSigned (Superintendent) Maria d'Avila-Reis"
	supervisor, superintendent := extractSignatures(text)
	if supervisor != "A. Silva" {
		t.Fatalf("supervisor: got %q", supervisor)
	}
	if superintendent != "Maria d'Avila-Reis" {
		t.Fatalf("superintendent: got %q", superintendent)
	}
}

func TestExtractSignatures_Missing(t *testing.T) {
	t.Parallel()

	supervisor, superintendent := extractSignatures("no signature block at all")
	if supervisor != "" || superintendent != "" {
		t.Fatalf("want empty, got %q / %q", supervisor, superintendent)
	}
}

func TestCleanSpaces(t *testing.T) {
	t.Parallel()

	if got := cleanSpaces("  a \t b   c  "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}
