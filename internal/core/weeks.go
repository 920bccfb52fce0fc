package core

import (
	"fmt"
	"time"
)

// WeeklyWindow is one of the five 7-day spans covering a month. Inactive
// windows (index past the end of the month) carry empty date strings.
type WeeklyWindow struct {
	WeekIndex int    `json:"weekIndex"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

const weeksPerMonth = 5

// MonthWindows computes the five consecutive weekly windows for a month.
// Window i spans days [7i+1, min(7i+7, lastDay)].
func MonthWindows(year int, month time.Month) []WeeklyWindow {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	windows := make([]WeeklyWindow, weeksPerMonth)
	for i := 0; i < weeksPerMonth; i++ {
		startDay := i*7 + 1
		endDay := startDay + 6
		if endDay > lastDay {
			endDay = lastDay
		}

		if startDay > lastDay {
			windows[i] = WeeklyWindow{WeekIndex: i}
			continue
		}

		windows[i] = WeeklyWindow{
			WeekIndex: i,
			StartDate: formatDay(year, month, startDay),
			EndDate:   formatDay(year, month, endDay),
		}
	}
	return windows
}

// WindowsFor returns the saved windows for the month when present, so
// user-edited boundaries survive navigation, and computes fresh ones
// otherwise. The second result reports a cache hit.
func WindowsFor(cfg CategoryConfig, year int, month time.Month) ([]WeeklyWindow, bool) {
	if saved, ok := cfg.SavedWeeks[SavedWeeksKey(year, month)]; ok {
		return saved, true
	}
	return MonthWindows(year, month), false
}

// SaveWindows stores edited windows under the month's cache key and returns
// the updated config.
func SaveWindows(cfg CategoryConfig, year int, month time.Month, windows []WeeklyWindow) CategoryConfig {
	saved := make(map[string][]WeeklyWindow, len(cfg.SavedWeeks)+1)
	for k, v := range cfg.SavedWeeks {
		saved[k] = v
	}
	saved[SavedWeeksKey(year, month)] = windows
	cfg.SavedWeeks = saved
	return cfg
}

func formatDay(year int, month time.Month, day int) string {
	return fmt.Sprintf("%d-%02d-%02d", year, int(month), day)
}
