package core

import (
	"time"

	"github.com/inovacc/katasync/internal/model"
)

// ComputeStats counts the history and the current daily streak relative to now.
//
// The streak walks back one calendar day at a time starting today, or
// yesterday when nothing was synced today, and stops at the first day
// without an entry. Days are compared at local midnight in now's location.
func ComputeStats(history []model.SyncRecord, now time.Time) model.Stats {
	stats := model.Stats{ProblemsSolved: len(history)}

	if len(history) == 0 {
		return stats
	}

	loc := now.Location()
	days := make(map[time.Time]struct{}, len(history))

	for _, record := range history {
		days[midnight(record.Timestamp.In(loc))] = struct{}{}
	}

	day := midnight(now)
	if _, ok := days[day]; !ok {
		day = day.AddDate(0, 0, -1)
		if _, ok := days[day]; !ok {
			return stats
		}
	}

	for {
		if _, ok := days[day]; !ok {
			break
		}

		stats.Streak++
		day = day.AddDate(0, 0, -1)
	}

	return stats
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
