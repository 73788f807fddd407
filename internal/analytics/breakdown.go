/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package analytics

import (
    "sort"
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/domain"
)

const noSprintLabel = "No Sprint"

// StatusBreakdown holds stacked per-group counters. Index i of each counter
// slice belongs to Groups[i]; stacking order for rendering is Done, then
// InProgress, then New.
type StatusBreakdown struct {
    Groups     []string `json:"groups"`
    Done       []int    `json:"done"`
    InProgress []int    `json:"in_progress"`
    New        []int    `json:"new"`
}

// SprintBreakdown groups stories, tasks, and issues by selected sprint and
// status bucket. Each item type is classified with its own taxonomy. Items
// whose milestone was excluded by windowing are dropped, not folded into
// No Sprint; the No Sprint group appears first and only when at least one
// item has no milestone at all.
func SprintBreakdown(stories []domain.UserStory, tasks []domain.Task, issues []domain.Issue, sprints []domain.Sprint, cfg Config, today time.Time) StatusBreakdown {
    selected := WindowSprints(sprints, today, cfg.FutureSprints, cfg.CompletedSprints)
    sort.SliceStable(selected, func(i, j int) bool { return selected[i].EstimatedStart.Before(selected[j].EstimatedStart) })

    type counts struct{ done, inProgress, fresh int }
    bySprint := make(map[int64]*counts, len(selected))
    for _, s := range selected { bySprint[s.ID] = &counts{} }
    var none counts
    var haveNone bool

    add := func(milestone *int64, b Bucket) {
        c := &none
        if milestone != nil {
            var ok bool
            if c, ok = bySprint[*milestone]; !ok { return }
        } else {
            haveNone = true
        }
        switch b {
        case BucketDone: c.done++
        case BucketInProgress: c.inProgress++
        default: c.fresh++
        }
    }
    for _, st := range stories { add(st.MilestoneID, cfg.Stories.Bucket(st.StatusName)) }
    for _, t := range tasks { add(t.MilestoneID, cfg.Tasks.Bucket(t.StatusName)) }
    for _, is := range issues { add(is.MilestoneID, cfg.Issues.Bucket(is.StatusName)) }

    var out StatusBreakdown
    push := func(label string, c counts) {
        out.Groups = append(out.Groups, label)
        out.Done = append(out.Done, c.done)
        out.InProgress = append(out.InProgress, c.inProgress)
        out.New = append(out.New, c.fresh)
    }
    if haveNone { push(noSprintLabel, none) }
    for _, s := range selected { push(SprintLabel(s, today), *bySprint[s.ID]) }
    return out
}
