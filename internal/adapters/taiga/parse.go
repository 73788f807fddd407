/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package taiga

import (
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/domain"
)

func toStr(v any) string {
    s, _ := v.(string)
    return s
}

func toInt64(v any) int64 {
    switch n := v.(type) {
    case float64:
        return int64(n)
    case int64:
        return n
    }
    return 0
}

func toInt64p(v any) *int64 {
    switch n := v.(type) {
    case float64:
        i := int64(n)
        return &i
    case int64:
        return &n
    }
    return nil
}

func toBool(v any) bool {
    b, _ := v.(bool)
    return b
}

func parseTimeUTC(s string) *time.Time {
    if s == "" { return nil }
    for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
        if t, err := time.Parse(layout, s); err == nil {
            u := t.UTC()
            return &u
        }
    }
    return nil
}

func parseDate(s string) time.Time {
    t, err := time.Parse("2006-01-02", s)
    if err != nil { return time.Time{} }
    return t
}

// timeField returns the first key that parses as a timestamp.
func timeField(m map[string]any, keys ...string) *time.Time {
    for _, k := range keys {
        if t := parseTimeUTC(toStr(m[k])); t != nil { return t }
    }
    return nil
}

// statusName prefers the expanded status object and falls back to the flat
// field some payloads carry instead.
func statusName(m map[string]any) string {
    if extra, ok := m["status_extra_info"].(map[string]any); ok {
        if name := toStr(extra["name"]); name != "" { return name }
    }
    return toStr(m["status"])
}

// parseTags reads Taiga's [[name, color], ...] tag encoding. Malformed
// entries are skipped, a null color becomes the empty string.
func parseTags(v any) []domain.Tag {
    arr, ok := v.([]any)
    if !ok { return nil }
    out := make([]domain.Tag, 0, len(arr))
    for _, e := range arr {
        pair, ok := e.([]any)
        if !ok || len(pair) == 0 { continue }
        name := toStr(pair[0])
        if name == "" { continue }
        tag := domain.Tag{Name: name}
        if len(pair) > 1 { tag.Color = toStr(pair[1]) }
        out = append(out, tag)
    }
    return out
}

// parseEpicRefs reads the epics array on a user story. Taiga sends null when
// the story belongs to no epic.
func parseEpicRefs(v any) []int64 {
    arr, ok := v.([]any)
    if !ok { return nil }
    out := make([]int64, 0, len(arr))
    for _, e := range arr {
        if m, ok := e.(map[string]any); ok {
            if id := toInt64(m["id"]); id != 0 { out = append(out, id) }
        }
    }
    return out
}

func projectFromJSON(m map[string]any) domain.Project {
    logo := toStr(m["logo_big_url"])
    if logo == "" { logo = toStr(m["logo_small_url"]) }
    return domain.Project{
        ID:      toInt64(m["id"]),
        Name:    toStr(m["name"]),
        LogoURL: logo,
    }
}

func epicFromJSON(m map[string]any) domain.Epic {
    return domain.Epic{
        ID:         toInt64(m["id"]),
        Subject:    toStr(m["subject"]),
        StatusName: statusName(m),
        IsClosed:   toBool(m["is_closed"]),
        ModifiedAt: timeField(m, "modified_date"),
    }
}

func storyFromJSON(m map[string]any) domain.UserStory {
    return domain.UserStory{
        ID:          toInt64(m["id"]),
        Subject:     toStr(m["subject"]),
        StatusName:  statusName(m),
        IsClosed:    toBool(m["is_closed"]),
        MilestoneID: toInt64p(m["milestone"]),
        EpicIDs:     parseEpicRefs(m["epics"]),
        AssigneeID:  toInt64p(m["assigned_to"]),
        FinishedAt:  timeField(m, "finish_date", "finished_date"),
        ModifiedAt:  timeField(m, "modified_date"),
        CreatedAt:   timeField(m, "created_date"),
        Tags:        parseTags(m["tags"]),
    }
}

func taskFromJSON(m map[string]any) domain.Task {
    return domain.Task{
        ID:          toInt64(m["id"]),
        Subject:     toStr(m["subject"]),
        StatusName:  statusName(m),
        IsClosed:    toBool(m["is_closed"]),
        MilestoneID: toInt64p(m["milestone"]),
        AssigneeID:  toInt64p(m["assigned_to"]),
        FinishedAt:  timeField(m, "finished_date", "finish_date"),
        ModifiedAt:  timeField(m, "modified_date"),
        CreatedAt:   timeField(m, "created_date"),
        Tags:        parseTags(m["tags"]),
    }
}

func issueFromJSON(m map[string]any) domain.Issue {
    issue := domain.Issue{
        ID:          toInt64(m["id"]),
        Subject:     toStr(m["subject"]),
        StatusName:  statusName(m),
        IsClosed:    toBool(m["is_closed"]),
        MilestoneID: toInt64p(m["milestone"]),
        AssigneeID:  toInt64p(m["assigned_to"]),
        TypeID:      toInt64p(m["type"]),
        SeverityID:  toInt64p(m["severity"]),
        PriorityID:  toInt64p(m["priority"]),
        FinishedAt:  timeField(m, "finished_date", "finish_date"),
        ModifiedAt:  timeField(m, "modified_date"),
        CreatedAt:   timeField(m, "created_date"),
        Tags:        parseTags(m["tags"]),
    }
    if extra, ok := m["priority_extra_info"].(map[string]any); ok {
        issue.PriorityName = toStr(extra["name"])
    }
    return issue
}

func sprintFromJSON(m map[string]any) domain.Sprint {
    return domain.Sprint{
        ID:              toInt64(m["id"]),
        Name:            toStr(m["name"]),
        EstimatedStart:  parseDate(toStr(m["estimated_start"])),
        EstimatedFinish: parseDate(toStr(m["estimated_finish"])),
        Closed:          toBool(m["closed"]),
    }
}

func userFromJSON(m map[string]any) domain.User {
    return domain.User{
        ID:              toInt64(m["id"]),
        Username:        toStr(m["username"]),
        FullName:        toStr(m["full_name"]),
        FullNameDisplay: toStr(m["full_name_display"]),
    }
}

func lookupFromJSON(m map[string]any) domain.Lookup {
    return domain.Lookup{ID: toInt64(m["id"]), Name: toStr(m["name"])}
}
