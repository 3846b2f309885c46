package core

import (
	"testing"
	"time"
)

// TestParseDateLayouts tests that each supported layout parses to the same day
func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2025-01-15", "2025-01-15"},
		{"2025/01/15", "2025-01-15"},
		{"01/15/2025", "2025-01-15"},
		{"Jan 15, 2025", "2025-01-15"},
		{"15 Jan 2025", "2025-01-15"},
		{"2025-01-15 09:30:00", "2025-01-15"},
		{"2025-01-15T09:30:00", "2025-01-15"},
		{"2025-01-15T09:30:00Z", "2025-01-15"},
		{"  2025-01-15  ", "2025-01-15"},
	}

	for _, test := range tests {
		d, ok := ParseDate(test.input)
		if !ok {
			t.Errorf("Expected %q to parse", test.input)
			continue
		}
		if d.String() != test.expected {
			t.Errorf("Expected %q to parse to %s, got %s", test.input, test.expected, d)
		}
	}
}

// TestParseDateFailures tests that junk input reports no match
func TestParseDateFailures(t *testing.T) {
	for _, input := range []string{"", "   ", "pending", "15th of never", "2025-13-45"} {
		if _, ok := ParseDate(input); ok {
			t.Errorf("Expected %q not to parse", input)
		}
	}
}

// TestDateMonth tests the YYYY-MM bucket derivation
func TestDateMonth(t *testing.T) {
	d := NewDate(time.Date(2025, time.February, 28, 17, 45, 0, 0, time.UTC))
	if d.Month() != "2025-02" {
		t.Errorf("Expected month bucket 2025-02, got %s", d.Month())
	}
	if d.String() != "2025-02-28" {
		t.Errorf("Expected time-of-day to be truncated, got %s", d.String())
	}
}

// TestDateOrdering tests Before/After/Equal comparisons
func TestDateOrdering(t *testing.T) {
	early, _ := ParseDate("2025-01-01")
	late, _ := ParseDate("2025-06-30")

	if !early.Before(late) {
		t.Error("Expected early.Before(late)")
	}
	if !late.After(early) {
		t.Error("Expected late.After(early)")
	}
	if early.After(late) || late.Before(early) {
		t.Error("Ordering comparisons are inconsistent")
	}
	if !early.Equal(early) {
		t.Error("Expected a date to equal itself")
	}
}

// TestDateJSON tests the quoted YYYY-MM-DD JSON form
func TestDateJSON(t *testing.T) {
	d, _ := ParseDate("2025-01-15")

	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(data) != `"2025-01-15"` {
		t.Errorf("Expected quoted date, got %s", data)
	}

	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("Expected round trip to preserve the date, got %s", back)
	}

	if err := back.UnmarshalJSON([]byte(`"junk"`)); err == nil {
		t.Error("Expected an error for an unparseable date")
	}
}
