package gamification

import (
	"slices"
	"time"
)

const dateLayout = "2006-01-02"

// StreakInfo describes a user's run of consecutive days with at least one completed quest.
type StreakInfo struct {
	CurrentStreak int
	// LongestStreak mirrors CurrentStreak; historical maxima are not tracked.
	LongestStreak      int
	LastCompletionDate *time.Time
	CompletedToday     bool
	DaysUntilNextLevel int
	NextLevelName      string
}

type streakLevel struct {
	days int
	name string
}

var streakLevels = []streakLevel{
	{7, "Week Warrior"},
	{30, "Month Master"},
	{100, "Century Champion"},
}

// CalculateStreak computes the streak as of today from raw completion timestamps.
// Timestamps are reduced to calendar dates in today's location. The streak is alive
// when the most recent completion is today or yesterday.
func CalculateStreak(completions []time.Time, today time.Time) StreakInfo {
	dates := uniqueDates(completions, today.Location())
	info := StreakInfo{}
	info.DaysUntilNextLevel, info.NextLevelName = nextLevel(0)
	if len(dates) == 0 {
		return info
	}

	todayDate := calendarDate(today, today.Location())
	last := dates[0]
	info.LastCompletionDate = &last
	info.CompletedToday = slices.ContainsFunc(dates, todayDate.Equal)

	if !last.Before(todayDate.AddDate(0, 0, -1)) {
		info.CurrentStreak = 1
		for i := 1; i < len(dates); i++ {
			if !dates[i].Equal(dates[i-1].AddDate(0, 0, -1)) {
				break
			}
			info.CurrentStreak++
		}
	}

	info.LongestStreak = info.CurrentStreak
	info.DaysUntilNextLevel, info.NextLevelName = nextLevel(info.CurrentStreak)
	return info
}

// CompletedDates returns the unique completion dates, most recent first, as YYYY-MM-DD.
func CompletedDates(completions []time.Time, loc *time.Location) []string {
	dates := uniqueDates(completions, loc)
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(dateLayout))
	}
	return out
}

func nextLevel(streak int) (int, string) {
	for _, lvl := range streakLevels {
		if streak < lvl.days {
			return lvl.days - streak, lvl.name
		}
	}
	return 0, "Streak Master"
}

// uniqueDates returns distinct calendar dates sorted descending.
func uniqueDates(completions []time.Time, loc *time.Location) []time.Time {
	seen := make(map[time.Time]struct{}, len(completions))
	dates := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		if c.IsZero() {
			continue
		}
		d := calendarDate(c, loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return b.Compare(a) })
	return dates
}

func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
