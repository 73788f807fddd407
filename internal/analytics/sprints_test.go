package analytics

import (
    "testing"
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/domain"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func sprint(id int64, name string, start, finish time.Time, closed bool) domain.Sprint {
    return domain.Sprint{ID: id, Name: name, EstimatedStart: start, EstimatedFinish: finish, Closed: closed}
}

func TestClassify_IsTotalAndMutuallyExclusive(t *testing.T) {
    today := day(2025, 6, 15)
    cases := []struct {
        name string
        s    domain.Sprint
        want SprintClass
    }{
        {"current window open", sprint(1, "s", day(2025, 6, 10), day(2025, 6, 20), false), SprintActive},
        {"current window closed", sprint(2, "s", day(2025, 6, 10), day(2025, 6, 20), true), SprintCompleted},
        {"starts tomorrow", sprint(3, "s", day(2025, 6, 16), day(2025, 6, 30), false), SprintFuture},
        {"ended yesterday", sprint(4, "s", day(2025, 6, 1), day(2025, 6, 14), false), SprintCompleted},
        {"ends today", sprint(5, "s", day(2025, 6, 1), day(2025, 6, 15), false), SprintActive},
        {"starts today", sprint(6, "s", day(2025, 6, 15), day(2025, 6, 25), false), SprintActive},
        {"no dates at all", domain.Sprint{ID: 7, Name: "s"}, SprintCompleted},
    }
    for _, c := range cases {
        if got := Classify(c.s, today); got != c.want {
            t.Fatalf("%s: Classify = %v, want %v", c.name, got, c.want)
        }
    }
}

func TestClassify_MidDayClock(t *testing.T) {
    now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
    s := sprint(1, "s", day(2025, 6, 1), day(2025, 6, 15), false)
    if got := Classify(s, now); got != SprintActive {
        t.Fatalf("sprint ending today must stay Active under a mid-day clock, got %v", got)
    }
    s = sprint(2, "s", day(2025, 6, 16), day(2025, 6, 30), false)
    if got := Classify(s, now); got != SprintFuture {
        t.Fatalf("sprint starting tomorrow must stay Future under a mid-day clock, got %v", got)
    }
}

func TestSprintBreakdown_MidDayClock(t *testing.T) {
    now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
    cfg := Config{Stories: NewTaxonomy([]string{"done"}, nil, nil), FutureSprints: 0, CompletedSprints: 0}
    sprints := []domain.Sprint{sprint(10, "Ending", day(2025, 6, 1), day(2025, 6, 15), false)}
    stories := []domain.UserStory{{StatusName: "done", MilestoneID: i64(10)}}
    out := SprintBreakdown(stories, nil, nil, sprints, cfg, now)
    if len(out.Groups) != 1 || out.Done[0] != 1 {
        t.Fatalf("sprint on its final day must still be selected: %+v", out)
    }
    if want := "Ending (06/01/25 to 06/15/25) Active"; out.Groups[0] != want {
        t.Fatalf("label = %q, want %q", out.Groups[0], want)
    }
}

func TestClassifySprints_EverySprintLandsInExactlyOneClass(t *testing.T) {
    today := day(2025, 6, 15)
    var sprints []domain.Sprint
    for i := int64(1); i <= 12; i++ {
        sprints = append(sprints, sprint(i, "S", day(2025, 6, int(i)), day(2025, 6, int(i)+9), i%4 == 0))
    }
    active, future, completed := ClassifySprints(sprints, today)
    if len(active)+len(future)+len(completed) != len(sprints) {
        t.Fatalf("classification not total: %d+%d+%d != %d", len(active), len(future), len(completed), len(sprints))
    }
    seen := map[int64]int{}
    for _, s := range active { seen[s.ID]++ }
    for _, s := range future { seen[s.ID]++ }
    for _, s := range completed { seen[s.ID]++ }
    for id, n := range seen {
        if n != 1 { t.Fatalf("sprint %d classified %d times", id, n) }
    }
}

func TestClassifySprints_Ordering(t *testing.T) {
    today := day(2025, 6, 15)
    sprints := []domain.Sprint{
        sprint(1, "f2", day(2025, 7, 10), day(2025, 7, 20), false),
        sprint(2, "f1", day(2025, 6, 20), day(2025, 6, 30), false),
        sprint(3, "c1", day(2025, 5, 1), day(2025, 5, 10), false),
        sprint(4, "c2", day(2025, 6, 1), day(2025, 6, 10), false),
    }
    _, future, completed := ClassifySprints(sprints, today)
    if future[0].ID != 2 || future[1].ID != 1 {
        t.Fatalf("future should be ascending by start, got %v %v", future[0].ID, future[1].ID)
    }
    if completed[0].ID != 4 || completed[1].ID != 3 {
        t.Fatalf("completed should be most recently ended first, got %v %v", completed[0].ID, completed[1].ID)
    }
}

func TestWindowSprints_KeepsAllActiveAndBoundsTheRest(t *testing.T) {
    today := day(2025, 6, 15)
    sprints := []domain.Sprint{
        sprint(1, "a1", day(2025, 6, 10), day(2025, 6, 20), false),
        sprint(2, "a2", day(2025, 6, 12), day(2025, 6, 22), false),
        sprint(3, "a3", day(2025, 6, 14), day(2025, 6, 24), false),
        sprint(4, "f1", day(2025, 6, 25), day(2025, 7, 5), false),
        sprint(5, "f2", day(2025, 7, 6), day(2025, 7, 16), false),
        sprint(6, "c1", day(2025, 5, 20), day(2025, 5, 30), false),
        sprint(7, "c2", day(2025, 5, 1), day(2025, 5, 10), false),
        sprint(8, "c3", day(2025, 4, 1), day(2025, 4, 10), false),
    }
    sel := WindowSprints(sprints, today, 1, 2)
    if len(sel) != 6 {
        t.Fatalf("expected 3 active + 1 future + 2 completed = 6, got %d", len(sel))
    }
    ids := map[int64]bool{}
    for _, s := range sel { ids[s.ID] = true }
    for _, want := range []int64{1, 2, 3, 4, 6, 7} {
        if !ids[want] { t.Fatalf("expected sprint %d selected, have %v", want, ids) }
    }
    if ids[5] || ids[8] {
        t.Fatalf("windowing selected excluded sprints: %v", ids)
    }
}

func TestWindowSprints_NegativeBoundsKeepOnlyActive(t *testing.T) {
    today := day(2025, 6, 15)
    sprints := []domain.Sprint{
        sprint(1, "a1", day(2025, 6, 10), day(2025, 6, 20), false),
        sprint(2, "f1", day(2025, 6, 25), day(2025, 7, 5), false),
        sprint(3, "c1", day(2025, 5, 1), day(2025, 5, 10), false),
    }
    sel := WindowSprints(sprints, today, -1, -3)
    if len(sel) != 1 || sel[0].ID != 1 {
        t.Fatalf("negative bounds should behave like zero, got %v", sel)
    }
}

func TestSprintLabel_ClosedOverridesDates(t *testing.T) {
    today := day(2025, 6, 15)
    s := sprint(1, "Sprint 9", day(2025, 6, 10), day(2025, 6, 20), true)
    got := SprintLabel(s, today)
    want := "Sprint 9 (06/10/25 to 06/20/25) Closed"
    if got != want { t.Fatalf("SprintLabel = %q, want %q", got, want) }

    s.Closed = false
    got = SprintLabel(s, today)
    want = "Sprint 9 (06/10/25 to 06/20/25) Active"
    if got != want { t.Fatalf("SprintLabel = %q, want %q", got, want) }
}
