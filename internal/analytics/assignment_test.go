package analytics

import (
    "testing"
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/domain"
)

func matrixConfig() Config {
    return Config{
        Stories:         NewTaxonomy([]string{"done"}, []string{"in progress"}, []string{"new"}),
        Tasks:           NewTaxonomy([]string{"done"}, []string{"in progress"}, []string{"new"}),
        Issues:          NewTaxonomy([]string{"done"}, []string{"in progress"}, []string{"new"}),
        StoryWindowDays: 14,
        TaskWindowDays:  14,
        IssueWindowDays: 14,
    }
}

func matrixUsers() []domain.User {
    return []domain.User{
        {ID: 1, FullNameDisplay: "Zoe"},
        {ID: 2, FullName: "Adam"},
        {ID: 3, Username: "mika"},
    }
}

func cellAt(m AssignmentMatrix, row, col string) int {
    ri, ci := -1, -1
    for i, r := range m.Rows { if r == row { ri = i } }
    for i, c := range m.Columns { if c == col { ci = i } }
    if ri < 0 || ci < 0 { return -1 }
    return m.Counts[ri][ci]
}

func TestAssignmentMatrix_StatusMetric(t *testing.T) {
    now := day(2025, 6, 15)
    cfg := matrixConfig()
    stories := []domain.UserStory{
        {StatusName: "done", AssigneeID: i64(1)},
        {StatusName: "in progress", AssigneeID: i64(1)},
        {StatusName: "new"}, // unassigned
    }
    tasks := []domain.Task{
        {StatusName: "done", AssigneeID: i64(2)},
        {StatusName: "done", AssigneeID: i64(99)}, // unresolvable id
    }
    m := AssignmentMatrixFor(matrixUsers(), stories, tasks, nil, cfg, MetricStatus, now)

    wantCols := []string{"New", "In Progress", "Done"}
    if len(m.Columns) != 3 { t.Fatalf("status columns must be fixed: %v", m.Columns) }
    for i, c := range wantCols {
        if m.Columns[i] != c { t.Fatalf("status columns must be New/In Progress/Done, got %v", m.Columns) }
    }
    if m.Rows[len(m.Rows)-1] != "Unassigned" { t.Fatalf("Unassigned must be last: %v", m.Rows) }
    if m.Rows[0] != "Adam" || m.Rows[1] != "Zoe" { t.Fatalf("rows must be sorted by display name: %v", m.Rows) }

    if got := cellAt(m, "Zoe", "Done"); got != 1 { t.Fatalf("Zoe/Done = %d", got) }
    if got := cellAt(m, "Zoe", "In Progress"); got != 1 { t.Fatalf("Zoe/In Progress = %d", got) }
    if got := cellAt(m, "Zoe", "New"); got != 0 { t.Fatalf("missing combination must be 0, got %d", got) }
    // new story with no assignee + task assigned to unknown user id
    if got := cellAt(m, "Unassigned", "New"); got != 1 { t.Fatalf("Unassigned/New = %d", got) }
    if got := cellAt(m, "Unassigned", "Done"); got != 1 { t.Fatalf("Unassigned/Done = %d", got) }
}

func TestAssignmentMatrix_RowSumsMatchItemCounts(t *testing.T) {
    now := day(2025, 6, 15)
    cfg := matrixConfig()
    stories := []domain.UserStory{
        {StatusName: "done", AssigneeID: i64(1)},
        {StatusName: "new", AssigneeID: i64(1)},
        {StatusName: "new"},
        {StatusName: "in progress"},
    }
    m := AssignmentMatrixFor(matrixUsers(), stories, nil, nil, cfg, MetricStatus, now)
    sums := map[string]int{}
    for ri, r := range m.Rows {
        for _, v := range m.Counts[ri] { sums[r] += v }
    }
    if sums["Zoe"] != 2 { t.Fatalf("Zoe row sum = %d, want 2", sums["Zoe"]) }
    if sums["Unassigned"] != 2 { t.Fatalf("Unassigned row sum = %d, want 2", sums["Unassigned"]) }
}

func TestAssignmentMatrix_RelevanceFilterApplies(t *testing.T) {
    now := day(2025, 6, 15)
    cfg := matrixConfig()
    stale := now.Add(-30 * 24 * time.Hour)
    stories := []domain.UserStory{
        {StatusName: "done", AssigneeID: i64(1), IsClosed: true, FinishedAt: &stale},
        {StatusName: "done", AssigneeID: i64(1)},
    }
    m := AssignmentMatrixFor(matrixUsers(), stories, nil, nil, cfg, MetricStatus, now)
    if got := cellAt(m, "Zoe", "Done"); got != 1 {
        t.Fatalf("stale closed story should be filtered, Zoe/Done = %d", got)
    }
}

func TestAssignmentMatrix_PriorityMetric(t *testing.T) {
    now := day(2025, 6, 15)
    cfg := matrixConfig()
    issues := []domain.Issue{
        {StatusName: "new", AssigneeID: i64(1), PriorityName: "High"},
        {StatusName: "new", AssigneeID: i64(1), PriorityName: "Low"},
        {StatusName: "new", AssigneeID: i64(1), PriorityName: "High"},
        {StatusName: "new", AssigneeID: i64(2)}, // no priority resolved
    }
    m := AssignmentMatrixFor(matrixUsers(), nil, nil, issues, cfg, MetricPriority, now)
    want := []string{"High", "Low", "Unknown"}
    if len(m.Columns) != 3 { t.Fatalf("columns = %v", m.Columns) }
    for i, c := range want {
        if m.Columns[i] != c { t.Fatalf("priority columns must be sorted ascending, got %v", m.Columns) }
    }
    if got := cellAt(m, "Zoe", "High"); got != 2 { t.Fatalf("Zoe/High = %d", got) }
    if got := cellAt(m, "Adam", "Unknown"); got != 1 { t.Fatalf("Adam/Unknown = %d", got) }
}
