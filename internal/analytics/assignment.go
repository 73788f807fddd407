/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package analytics

import (
    "sort"
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/domain"
)

// Metric selects the column dimension of the assignment matrix.
type Metric string

const (
    MetricStatus   Metric = "status"
    MetricPriority Metric = "priority"
)

const (
    unassignedLabel = "Unassigned"
    unknownLabel    = "Unknown"
)

// AssignmentMatrix is an assignee × bucket cross-tabulation. Rows hold
// display names with Unassigned always last; Counts[r][c] pairs Rows[r] with
// Columns[c], and missing combinations are 0, not absent.
type AssignmentMatrix struct {
    Rows    []string `json:"rows"`
    Columns []string `json:"columns"`
    Counts  [][]int  `json:"counts"`
}

// AssignmentMatrixFor cross-tabulates relevant stories, tasks, and issues by
// assignee and by either status bucket or priority display name. Assignee ids
// that resolve to no user, and items with no assignee at all, land in the
// Unassigned row. For the priority metric, columns are the distinct observed
// names sorted ascending; items without a priority name count under Unknown.
func AssignmentMatrixFor(users []domain.User, stories []domain.UserStory, tasks []domain.Task, issues []domain.Issue, cfg Config, metric Metric, now time.Time) AssignmentMatrix {
    names := make(map[int64]string, len(users))
    for _, u := range users {
        if n := u.DisplayName(); n != "" { names[u.ID] = n }
    }
    assignee := func(id *int64) string {
        if id == nil { return unassignedLabel }
        if n, ok := names[*id]; ok { return n }
        return unassignedLabel
    }

    type cell struct{ row, col string }
    counts := map[cell]int{}
    colSeen := map[string]struct{}{}
    rowSeen := map[string]struct{}{}
    add := func(row, col string) {
        counts[cell{row, col}]++
        rowSeen[row] = struct{}{}
        colSeen[col] = struct{}{}
    }

    for _, st := range stories {
        if !Relevant(st.IsClosed, st.CompletionTime(), cfg.StoryWindowDays, now) { continue }
        col := cfg.Stories.Bucket(st.StatusName).String()
        if metric == MetricPriority { col = unknownLabel }
        add(assignee(st.AssigneeID), col)
    }
    for _, t := range tasks {
        if !Relevant(t.IsClosed, t.CompletionTime(), cfg.TaskWindowDays, now) { continue }
        col := cfg.Tasks.Bucket(t.StatusName).String()
        if metric == MetricPriority { col = unknownLabel }
        add(assignee(t.AssigneeID), col)
    }
    for _, is := range issues {
        if !Relevant(is.IsClosed, is.CompletionTime(), cfg.IssueWindowDays, now) { continue }
        col := ""
        if metric == MetricPriority {
            col = is.PriorityName
            if col == "" { col = unknownLabel }
        } else {
            col = cfg.Issues.Bucket(is.StatusName).String()
        }
        add(assignee(is.AssigneeID), col)
    }

    var columns []string
    if metric == MetricPriority {
        for c := range colSeen { columns = append(columns, c) }
        sort.Strings(columns)
    } else {
        columns = []string{BucketNew.String(), BucketInProgress.String(), BucketDone.String()}
    }

    var rows []string
    hasUnassigned := false
    for r := range rowSeen {
        if r == unassignedLabel { hasUnassigned = true; continue }
        rows = append(rows, r)
    }
    sort.Strings(rows)
    if hasUnassigned { rows = append(rows, unassignedLabel) }

    matrix := make([][]int, len(rows))
    for ri, r := range rows {
        matrix[ri] = make([]int, len(columns))
        for ci, c := range columns { matrix[ri][ci] = counts[cell{r, c}] }
    }
    return AssignmentMatrix{Rows: rows, Columns: columns, Counts: matrix}
}
