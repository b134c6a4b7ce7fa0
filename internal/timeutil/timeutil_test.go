package timeutil

import (
	"testing"
	"time"
)

func TestFormatTimestampIsUTC(t *testing.T) {
	loc := time.FixedZone("plus2", 2*60*60)
	ts := time.Date(2024, 3, 4, 12, 0, 0, 500, loc)
	if got := FormatTimestamp(ts); got != "2024-03-04T10:00:00.0000005Z" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestParseTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 4, 10, 11, 12, 123456789, time.UTC)
	got, err := ParseTimestamp(FormatTimestamp(ts))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(ts) || got.Location() != time.UTC {
		t.Fatalf("expected %v, got %v", ts, got)
	}
}

func TestParseTimestampAcceptsNaiveAndOffsetForms(t *testing.T) {
	cases := map[string]time.Time{
		"2024-01-02T03:04:05.123456": time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.UTC),
		"2024-01-02T03:04:05":        time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"2024-01-02 03:04:05":        time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"2024-01-02T03:04:05+02:00":  time.Date(2024, 1, 2, 1, 4, 5, 0, time.UTC),
		"2024-01-02":                 time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseTimestamp(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %q: expected %v, got %v", in, want, got)
		}
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-01T00:00:00"} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
