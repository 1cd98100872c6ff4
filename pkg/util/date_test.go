package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeSeendate(t *testing.T) {
	got, ok := ParseTime("20240615T093000Z")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseTimePlainDate(t *testing.T) {
	got, ok := ParseTime("2023-01-31")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2023 || got.Month() != time.January || got.Day() != 31 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestDay(t *testing.T) {
	in := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := Day(in); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
