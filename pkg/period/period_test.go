package period

import "testing"

func TestWeekRange(t *testing.T) {
	cases := []struct {
		date      string
		wantStart string
		wantEnd   string
	}{
		{"2025-03-10", "2025-03-10", "2025-03-16"}, // Monday
		{"2025-03-12", "2025-03-10", "2025-03-16"}, // Wednesday
		{"2025-03-15", "2025-03-10", "2025-03-16"}, // Saturday
		{"2025-03-16", "2025-03-10", "2025-03-16"}, // Sunday ends its own week
		{"2025-03-17", "2025-03-17", "2025-03-23"},
		{"2025-01-01", "2024-12-30", "2025-01-05"}, // week spans a year boundary
		{"2024-02-29", "2024-02-26", "2024-03-03"}, // leap day
	}
	for _, c := range cases {
		start, end, err := WeekRange(c.date)
		if err != nil {
			t.Fatalf("WeekRange(%s) failed: %v", c.date, err)
		}
		if start != c.wantStart || end != c.wantEnd {
			t.Fatalf("WeekRange(%s) = %s..%s, want %s..%s", c.date, start, end, c.wantStart, c.wantEnd)
		}
	}
}

func TestWeekRangeInvalidDate(t *testing.T) {
	for _, date := range []string{"", "2025-13-01", "2025-03-32", "12-03-2025", "2025-3-1"} {
		if _, _, err := WeekRange(date); err == nil {
			t.Fatalf("expected error for %q", date)
		}
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2025-03-31", 1)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	if got != "2025-04-01" {
		t.Fatalf("expected 2025-04-01, got %s", got)
	}

	got, err = AddDays("2025-03-01", -1)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	if got != "2025-02-28" {
		t.Fatalf("expected 2025-02-28, got %s", got)
	}
}

func TestMonthKey(t *testing.T) {
	got, err := MonthKey("2025-03-12")
	if err != nil {
		t.Fatalf("MonthKey failed: %v", err)
	}
	if got != "2025-03" {
		t.Fatalf("expected 2025-03, got %s", got)
	}

	if _, err := MonthKey("2025-03"); err == nil {
		t.Fatalf("expected error for non-date input")
	}
}

func TestValidMonth(t *testing.T) {
	valid := []string{"2025-03", "1999-12", "2030-01"}
	for _, m := range valid {
		if !ValidMonth(m) {
			t.Fatalf("expected %q to be valid", m)
		}
	}
	invalid := []string{"2025-3", "2025-13", "2025/03", "2025-03-12", ""}
	for _, m := range invalid {
		if ValidMonth(m) {
			t.Fatalf("expected %q to be invalid", m)
		}
	}
}

func TestMonthDateRange(t *testing.T) {
	start, end := MonthDateRange("2025-02")
	if start != "2025-02-01" || end != "2025-02-31" {
		t.Fatalf("MonthDateRange(2025-02) = %s..%s", start, end)
	}
}
