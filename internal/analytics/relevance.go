package analytics

import "time"

// Relevant reports whether an item should still appear on the dashboard.
// Open items are always relevant; closed items stay relevant for windowDays
// after their completion timestamp. A nil completion timestamp fails open
// (the item is kept): the engine degrades toward showing data, never toward
// silently hiding it.
func Relevant(closed bool, completedAt *time.Time, windowDays int, now time.Time) bool {
    if !closed { return true }
    if completedAt == nil { return true }
    cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour)
    return !completedAt.Before(cutoff)
}
