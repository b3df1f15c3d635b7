package util

import (
	"testing"
	"time"
)

func TestDate_IsMidnightUTC(t *testing.T) {
	d := Date(2025, 3, 15)
	if d.Location() != time.UTC {
		t.Errorf("Date location = %v, want UTC", d.Location())
	}
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 || d.Nanosecond() != 0 {
		t.Errorf("Date(2025, 3, 15) = %v, want midnight", d)
	}
}

func TestStartAndEndOfMonth(t *testing.T) {
	tests := []struct {
		in        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{Date(2025, 1, 31), Date(2025, 1, 1), Date(2025, 1, 31)},
		{Date(2025, 2, 14), Date(2025, 2, 1), Date(2025, 2, 28)},
		{Date(2024, 2, 1), Date(2024, 2, 1), Date(2024, 2, 29)}, // leap year
		{Date(2025, 4, 30), Date(2025, 4, 1), Date(2025, 4, 30)},
		{Date(2025, 12, 5), Date(2025, 12, 1), Date(2025, 12, 31)},
	}

	for _, tt := range tests {
		if got := StartOfMonth(tt.in); !got.Equal(tt.wantStart) {
			t.Errorf("StartOfMonth(%s) = %s, want %s", FormatYMD(tt.in), FormatYMD(got), FormatYMD(tt.wantStart))
		}
		if got := EndOfMonth(tt.in); !got.Equal(tt.wantEnd) {
			t.Errorf("EndOfMonth(%s) = %s, want %s", FormatYMD(tt.in), FormatYMD(got), FormatYMD(tt.wantEnd))
		}
	}
}

func TestStartOfMonth_NonUTCInput(t *testing.T) {
	// 2025-04-01 08:00 in Tokyo is still March 31 in UTC
	tokyo := time.FixedZone("JST", 9*60*60)
	in := time.Date(2025, 4, 1, 8, 0, 0, 0, tokyo)

	got := StartOfMonth(in)
	if !got.Equal(Date(2025, 3, 1)) {
		t.Errorf("StartOfMonth(%v) = %s, want 2025-03-01", in, FormatYMD(got))
	}
}

func TestAddMonths_ClampsDay(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"jan 31 to feb", Date(2025, 1, 31), 1, Date(2025, 2, 28)},
		{"jan 31 to leap feb", Date(2024, 1, 31), 1, Date(2024, 2, 29)},
		{"mar 31 plus two", Date(2025, 3, 31), 2, Date(2025, 5, 31)},
		{"aug 31 to sep", Date(2025, 8, 31), 1, Date(2025, 9, 30)},
		{"year rollover", Date(2025, 11, 15), 3, Date(2026, 2, 15)},
		{"negative", Date(2025, 3, 31), -1, Date(2025, 2, 28)},
		{"negative across year", Date(2025, 1, 10), -2, Date(2024, 11, 10)},
		{"zero", Date(2025, 6, 30), 0, Date(2025, 6, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.in, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonths(%s, %d) = %s, want %s", FormatYMD(tt.in), tt.n, FormatYMD(got), FormatYMD(tt.want))
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		in   time.Time
		want bool
	}{
		{Date(2025, 3, 1), true},  // Saturday
		{Date(2025, 3, 2), true},  // Sunday
		{Date(2025, 3, 3), false}, // Monday
		{Date(2025, 1, 31), false},
	}

	for _, tt := range tests {
		if got := IsWeekend(tt.in); got != tt.want {
			t.Errorf("IsWeekend(%s) = %v, want %v", FormatYMD(tt.in), got, tt.want)
		}
	}
}

func TestShiftWeekendToNextWeekday(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{Date(2025, 3, 1), Date(2025, 3, 3)},     // Saturday -> Monday
		{Date(2025, 3, 2), Date(2025, 3, 3)},     // Sunday -> Monday
		{Date(2025, 3, 3), Date(2025, 3, 3)},     // Monday unchanged
		{Date(2025, 5, 31), Date(2025, 6, 2)},    // crosses month end
		{Date(2025, 12, 27), Date(2025, 12, 29)}, // Saturday near year end
		{Date(2027, 7, 10), Date(2027, 7, 12)},
	}

	for _, tt := range tests {
		got := ShiftWeekendToNextWeekday(tt.in)
		if !got.Equal(tt.want) {
			t.Errorf("ShiftWeekendToNextWeekday(%s) = %s, want %s", FormatYMD(tt.in), FormatYMD(got), FormatYMD(tt.want))
		}
	}
}

func TestMonthStarts(t *testing.T) {
	got := MonthStarts(Date(2025, 11, 20), Date(2026, 2, 3))
	want := []time.Time{Date(2025, 11, 1), Date(2025, 12, 1), Date(2026, 1, 1), Date(2026, 2, 1)}

	if len(got) != len(want) {
		t.Fatalf("MonthStarts returned %d months, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("MonthStarts[%d] = %s, want %s", i, FormatYMD(got[i]), FormatYMD(want[i]))
		}
	}
}

func TestMonthStarts_SameMonthAndEmpty(t *testing.T) {
	if got := MonthStarts(Date(2025, 3, 1), Date(2025, 3, 31)); len(got) != 1 {
		t.Errorf("MonthStarts within one month returned %d months, want 1", len(got))
	}
	if got := MonthStarts(Date(2025, 4, 1), Date(2025, 3, 31)); len(got) != 0 {
		t.Errorf("MonthStarts with from after to returned %d months, want 0", len(got))
	}
}

func TestMonthStarts_Restartable(t *testing.T) {
	first := MonthStarts(Date(2025, 1, 1), Date(2025, 6, 30))
	first[0] = Date(1999, 1, 1)

	second := MonthStarts(Date(2025, 1, 1), Date(2025, 6, 30))
	if !second[0].Equal(Date(2025, 1, 1)) {
		t.Errorf("MonthStarts shares state between calls: got %s", FormatYMD(second[0]))
	}
}

func TestStartOfDayAndFormatYMD(t *testing.T) {
	in := time.Date(2025, 7, 9, 23, 59, 0, 0, time.UTC)
	if got := StartOfDay(in); !got.Equal(Date(2025, 7, 9)) {
		t.Errorf("StartOfDay(%v) = %v, want 2025-07-09", in, got)
	}
	if got := FormatYMD(Date(2025, 3, 1)); got != "2025-03-01" {
		t.Errorf("FormatYMD = %q, want 2025-03-01", got)
	}
}
