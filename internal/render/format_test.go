package render

import (
	"testing"
	"time"
)

func TestFormatNumbersAreLocaleInvariant(t *testing.T) {
	cases := []struct {
		cell any
		want string
	}{
		{int64(42), "42"},
		{int32(-7), "-7"},
		{uint64(18446744073709551615), "18446744073709551615"},
		{float64(3.5), "3.5"},
		{float64(1234567.25), "1234567.25"},
		{"3.50", "3.50"},
		{[]byte("3.50"), "3.50"},
		{true, "true"},
	}
	for _, c := range cases {
		if got := Format(c.cell, false); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.cell, got, c.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := Format(ts, false); got != "2020-01-02T03:04:05Z" {
		t.Fatalf("Format(time) = %q", got)
	}
}

func TestFormatCRLFTruncation(t *testing.T) {
	if got := Format("line1\r\nline2", true); got != "line1" {
		t.Fatalf("with flag: got %q, want %q", got, "line1")
	}
	if got := Format("line1\r\nline2", false); got != "line1\r\nline2" {
		t.Fatalf("without flag: got %q", got)
	}
	// Bare LF is not a CR-LF pair and survives.
	if got := Format("a\nb", true); got != "a\nb" {
		t.Fatalf("bare LF: got %q", got)
	}
}

func TestFormatNulTruncation(t *testing.T) {
	for _, flag := range []bool{false, true} {
		if got := Format("abcde\x00padding", flag); got != "abcde" {
			t.Fatalf("flag=%v: got %q, want %q", flag, got, "abcde")
		}
	}
}

func TestFormatTruncationOrder(t *testing.T) {
	// CR-LF cut happens first, then the NUL cut on the remainder.
	if got := Format("ab\x00cd\r\nef", true); got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
}

func TestFormatIdempotent(t *testing.T) {
	once := Format("line1\r\nline2\x00pad", true)
	if got := Format(once, true); got != once {
		t.Fatalf("second pass changed %q to %q", once, got)
	}
}

func TestIsNull(t *testing.T) {
	if !IsNull(nil) {
		t.Fatal("nil cell should be NULL")
	}
	if IsNull("") {
		t.Fatal("empty string is a value, not NULL")
	}
}
