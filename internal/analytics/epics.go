/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package analytics

import (
    "fmt"
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/domain"
)

// EpicProgress is one row of the epic progress chart.
type EpicProgress struct {
    EpicID          int64   `json:"epic_id"`
    Label           string  `json:"label"`
    DonePct         float64 `json:"done_pct"`
    InProgressPct   float64 `json:"in_progress_pct"`
    NotStartedPct   float64 `json:"not_started_pct"`
    DoneCount       int     `json:"done_count"`
    InProgressCount int     `json:"in_progress_count"`
    NotStartedCount int     `json:"not_started_count"`
    Total           int     `json:"total"`
}

// EpicProgressRows computes per-epic story progress, one row per epic that
// survives the epic recency window, preserving the input epic order. Story
// association is many-to-many and discovered via each story's epic list.
// Every story not classified Done or InProgress counts as not-started, so an
// epic with no linked stories reads as fully not-started.
func EpicProgressRows(epics []domain.Epic, stories []domain.UserStory, cfg Config, now time.Time) []EpicProgress {
    rows := make([]EpicProgress, 0, len(epics))
    for _, e := range epics {
        if !Relevant(e.IsClosed, e.CompletionTime(), cfg.EpicWindowDays, now) { continue }
        var done, inProgress, total int
        for _, st := range stories {
            if !hasEpic(st.EpicIDs, e.ID) { continue }
            total++
            switch cfg.Stories.Bucket(st.StatusName) {
            case BucketDone: done++
            case BucketInProgress: inProgress++
            }
        }
        notStarted := total - done - inProgress
        row := EpicProgress{
            EpicID:          e.ID,
            Label:           fmt.Sprintf("%s (%s) [%d]", e.Subject, e.StatusName, total),
            DoneCount:       done,
            InProgressCount: inProgress,
            NotStartedCount: notStarted,
            Total:           total,
        }
        if total > 0 {
            row.DonePct = 100 * float64(done) / float64(total)
            row.InProgressPct = 100 * float64(inProgress) / float64(total)
            row.NotStartedPct = 100 * float64(notStarted) / float64(total)
        } else {
            row.NotStartedPct = 100
        }
        rows = append(rows, row)
    }
    return rows
}

func hasEpic(ids []int64, id int64) bool {
    for _, v := range ids { if v == id { return true } }
    return false
}
