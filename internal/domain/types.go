package domain

import "time"

// Tag is a (name, color) pair attached to a story, task, or issue.
type Tag struct {
    Name  string
    Color string
}

type Project struct {
    ID      int64
    Name    string
    LogoURL string
}

type Epic struct {
    ID         int64
    Subject    string
    StatusName string
    IsClosed   bool
    ModifiedAt *time.Time
}

type UserStory struct {
    ID          int64
    Subject     string
    StatusName  string
    IsClosed    bool
    MilestoneID *int64
    EpicIDs     []int64
    AssigneeID  *int64
    FinishedAt  *time.Time
    ModifiedAt  *time.Time
    CreatedAt   *time.Time
    Tags        []Tag
}

type Task struct {
    ID          int64
    Subject     string
    StatusName  string
    IsClosed    bool
    MilestoneID *int64
    AssigneeID  *int64
    FinishedAt  *time.Time
    ModifiedAt  *time.Time
    CreatedAt   *time.Time
    Tags        []Tag
}

type Issue struct {
    ID           int64
    Subject      string
    StatusName   string
    IsClosed     bool
    MilestoneID  *int64
    AssigneeID   *int64
    TypeID       *int64
    SeverityID   *int64
    PriorityID   *int64
    PriorityName string
    FinishedAt   *time.Time
    ModifiedAt   *time.Time
    CreatedAt    *time.Time
    Tags         []Tag
}

// Sprint is a Taiga milestone. Zero dates mean the field was absent upstream.
type Sprint struct {
    ID              int64
    Name            string
    EstimatedStart  time.Time
    EstimatedFinish time.Time
    Closed          bool
}

type User struct {
    ID              int64
    Username        string
    FullName        string
    FullNameDisplay string
}

// DisplayName resolves the name shown on charts: full_name_display, then
// full_name, then username.
func (u User) DisplayName() string {
    if u.FullNameDisplay != "" { return u.FullNameDisplay }
    if u.FullName != "" { return u.FullName }
    return u.Username
}

// Lookup is one id→name row from the issue-types, severities, or priorities tables.
type Lookup struct {
    ID   int64
    Name string
}

// CompletionTime is the timestamp a closed epic is aged against.
func (e Epic) CompletionTime() *time.Time { return e.ModifiedAt }

// CompletionTime prefers the explicit finish date, then modification, then creation.
func (s UserStory) CompletionTime() *time.Time { return completion(s.FinishedAt, s.ModifiedAt, s.CreatedAt) }

func (t Task) CompletionTime() *time.Time { return completion(t.FinishedAt, t.ModifiedAt, t.CreatedAt) }

func (i Issue) CompletionTime() *time.Time { return completion(i.FinishedAt, i.ModifiedAt, i.CreatedAt) }

func completion(ts ...*time.Time) *time.Time {
    for _, t := range ts { if t != nil { return t } }
    return nil
}
