package core

import (
	"testing"
	"time"
)

func TestMonthWindows(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		wantEnds []string
	}{
		{
			name:  "february leap year",
			year:  2024,
			month: time.February,
			wantEnds: []string{
				"2024-02-07", "2024-02-14", "2024-02-21", "2024-02-28", "2024-02-29",
			},
		},
		{
			name:  "february non-leap year",
			year:  2023,
			month: time.February,
			wantEnds: []string{
				"2023-02-07", "2023-02-14", "2023-02-21", "2023-02-28", "",
			},
		},
		{
			name:  "31-day month",
			year:  2024,
			month: time.January,
			wantEnds: []string{
				"2024-01-07", "2024-01-14", "2024-01-21", "2024-01-28", "2024-01-31",
			},
		},
		{
			name:  "30-day month",
			year:  2024,
			month: time.April,
			wantEnds: []string{
				"2024-04-07", "2024-04-14", "2024-04-21", "2024-04-28", "2024-04-30",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows := MonthWindows(tt.year, tt.month)
			if len(windows) != 5 {
				t.Fatalf("MonthWindows() returned %d windows, want 5", len(windows))
			}
			for i, w := range windows {
				if w.WeekIndex != i {
					t.Errorf("window %d has WeekIndex %d", i, w.WeekIndex)
				}
				if w.EndDate != tt.wantEnds[i] {
					t.Errorf("window %d EndDate = %q, want %q", i, w.EndDate, tt.wantEnds[i])
				}
			}
		})
	}
}

func TestMonthWindows_LeapFebruaryFifthWindow(t *testing.T) {
	windows := MonthWindows(2024, time.February)
	fifth := windows[4]
	if fifth.StartDate != "2024-02-29" || fifth.EndDate != "2024-02-29" {
		t.Errorf("fifth window = [%s, %s], want single day 2024-02-29", fifth.StartDate, fifth.EndDate)
	}
}

func TestMonthWindows_CoverageNoGapsNoOverlaps(t *testing.T) {
	months := []struct {
		year  int
		month time.Month
	}{
		{2024, time.February},
		{2023, time.February},
		{2024, time.January},
		{2025, time.April},
		{2025, time.December},
	}

	for _, m := range months {
		windows := MonthWindows(m.year, m.month)
		lastDay := time.Date(m.year, m.month+1, 0, 0, 0, 0, 0, time.UTC).Day()

		covered := make(map[int]int)
		for _, w := range windows {
			if w.StartDate == "" {
				continue
			}
			start, err := ParseDate(w.StartDate)
			if err != nil {
				t.Fatalf("%d-%d: bad start date %q", m.year, m.month, w.StartDate)
			}
			end, err := ParseDate(w.EndDate)
			if err != nil {
				t.Fatalf("%d-%d: bad end date %q", m.year, m.month, w.EndDate)
			}
			for d := start.Time.Day(); d <= end.Time.Day(); d++ {
				covered[d]++
			}
		}

		for d := 1; d <= lastDay; d++ {
			if covered[d] != 1 {
				t.Errorf("%d-%d: day %d covered %d times, want exactly once", m.year, m.month, d, covered[d])
			}
		}
		if len(covered) != lastDay {
			t.Errorf("%d-%d: covered %d days, want %d", m.year, m.month, len(covered), lastDay)
		}
	}
}

func TestWindowsFor_CacheHit(t *testing.T) {
	edited := []WeeklyWindow{
		{WeekIndex: 0, StartDate: "2024-03-02", EndDate: "2024-03-08"},
		{WeekIndex: 1, StartDate: "2024-03-09", EndDate: "2024-03-15"},
		{WeekIndex: 2, StartDate: "2024-03-16", EndDate: "2024-03-22"},
		{WeekIndex: 3, StartDate: "2024-03-23", EndDate: "2024-03-29"},
		{WeekIndex: 4, StartDate: "2024-03-30", EndDate: "2024-03-31"},
	}
	cfg := SaveWindows(DefaultCategories(), 2024, time.March, edited)

	got, hit := WindowsFor(cfg, 2024, time.March)
	if !hit {
		t.Fatal("WindowsFor() cache miss for saved month")
	}
	if got[0].StartDate != "2024-03-02" {
		t.Errorf("saved windows not returned verbatim: got start %q", got[0].StartDate)
	}

	_, hit = WindowsFor(cfg, 2024, time.April)
	if hit {
		t.Error("WindowsFor() unexpected cache hit for unsaved month")
	}
}

func TestSaveWindows_DoesNotMutateOriginal(t *testing.T) {
	cfg := DefaultCategories()
	updated := SaveWindows(cfg, 2024, time.March, MonthWindows(2024, time.March))
	if len(cfg.SavedWeeks) != 0 {
		t.Error("SaveWindows() mutated the input config")
	}
	if len(updated.SavedWeeks) != 1 {
		t.Errorf("updated config has %d saved months, want 1", len(updated.SavedWeeks))
	}
}

func TestSavedWeeksKey(t *testing.T) {
	// The stored key keeps the historical 0-based month index.
	if got := SavedWeeksKey(2024, time.January); got != "2024-0" {
		t.Errorf("SavedWeeksKey(2024, January) = %q, want 2024-0", got)
	}
	if got := SavedWeeksKey(2025, time.December); got != "2025-11" {
		t.Errorf("SavedWeeksKey(2025, December) = %q, want 2025-11", got)
	}
}
