/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package analytics

import (
    "fmt"
    "sort"
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/domain"
)

type SprintClass int

const (
    SprintActive SprintClass = iota
    SprintFuture
    SprintCompleted
)

func (c SprintClass) String() string {
    switch c {
    case SprintActive: return "Active"
    case SprintFuture: return "Future"
    default: return "Completed"
    }
}

// Classify places a sprint into exactly one class for a fixed today. The
// closed flag wins over the date window, so a closed sprint whose dates still
// span today is Completed, and a sprint with no dates at all is Completed.
// The reference time is reduced to its UTC date first; sprint dates carry no
// time of day, and a sprint finishing today is active through the whole day.
func Classify(s domain.Sprint, today time.Time) SprintClass {
    if s.Closed { return SprintCompleted }
    day := today.UTC().Truncate(24 * time.Hour)
    if s.EstimatedStart.After(day) { return SprintFuture }
    if s.EstimatedFinish.Before(day) { return SprintCompleted }
    return SprintActive
}

// ClassifySprints splits sprints into the three classes, each ordered for
// selection: active and future ascending by start, completed descending by
// finish (most recently ended first).
func ClassifySprints(sprints []domain.Sprint, today time.Time) (active, future, completed []domain.Sprint) {
    for _, s := range sprints {
        switch Classify(s, today) {
        case SprintActive: active = append(active, s)
        case SprintFuture: future = append(future, s)
        default: completed = append(completed, s)
        }
    }
    sort.SliceStable(active, func(i, j int) bool { return active[i].EstimatedStart.Before(active[j].EstimatedStart) })
    sort.SliceStable(future, func(i, j int) bool { return future[i].EstimatedStart.Before(future[j].EstimatedStart) })
    sort.SliceStable(completed, func(i, j int) bool { return completed[i].EstimatedFinish.After(completed[j].EstimatedFinish) })
    return active, future, completed
}

// WindowSprints selects the sprints shown on sprint-scoped charts: every
// active sprint, the next numFuture future sprints, and the numCompleted most
// recently ended completed sprints. Everything else is excluded from those
// charts entirely.
func WindowSprints(sprints []domain.Sprint, today time.Time, numFuture, numCompleted int) []domain.Sprint {
    active, future, completed := ClassifySprints(sprints, today)
    if numFuture < 0 { numFuture = 0 }
    if numCompleted < 0 { numCompleted = 0 }
    if numFuture < len(future) { future = future[:numFuture] }
    if numCompleted < len(completed) { completed = completed[:numCompleted] }
    out := make([]domain.Sprint, 0, len(active)+len(future)+len(completed))
    out = append(out, active...)
    out = append(out, future...)
    out = append(out, completed...)
    return out
}

// SprintLabel renders the chart axis label: name, date range, status word.
// The closed flag overrides the date-derived word.
func SprintLabel(s domain.Sprint, today time.Time) string {
    word := Classify(s, today).String()
    if s.Closed { word = "Closed" }
    return fmt.Sprintf("%s (%s to %s) %s", s.Name, s.EstimatedStart.Format("01/02/06"), s.EstimatedFinish.Format("01/02/06"), word)
}
