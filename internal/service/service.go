/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package service

import (
    "context"
    "sync"
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/analytics"
    "github.com/JonahLargen/TaigaDashboard/internal/config"
    "github.com/JonahLargen/TaigaDashboard/internal/domain"
    "github.com/rs/zerolog"
)

type TaigaClient interface {
    Project(ctx context.Context, projectID int64) (domain.Project, error)
    Epics(ctx context.Context, projectID int64) ([]domain.Epic, error)
    UserStories(ctx context.Context, projectID int64) ([]domain.UserStory, error)
    Tasks(ctx context.Context, projectID int64) ([]domain.Task, error)
    Issues(ctx context.Context, projectID int64) ([]domain.Issue, error)
    Sprints(ctx context.Context, projectID int64) ([]domain.Sprint, error)
    Users(ctx context.Context, projectID int64) ([]domain.User, error)
    IssueTypes(ctx context.Context, projectID int64) ([]domain.Lookup, error)
    IssueSeverities(ctx context.Context, projectID int64) ([]domain.Lookup, error)
    IssuePriorities(ctx context.Context, projectID int64) ([]domain.Lookup, error)
}

// Snapshot is one full pull of the project, taken at a single point in time.
type Snapshot struct {
    Project    domain.Project
    Epics      []domain.Epic
    Stories    []domain.UserStory
    Tasks      []domain.Task
    Issues     []domain.Issue
    Sprints    []domain.Sprint
    Users      []domain.User
    Types      []domain.Lookup
    Severities []domain.Lookup
    Priorities []domain.Lookup
}

// ConfigSummary echoes the taxonomy and window settings the charts were
// computed under, so a reader of the payload can tell why an item landed
// where it did.
type ConfigSummary struct {
    StoryDoneStatuses       []string `json:"story_done_statuses"`
    StoryInProgressStatuses []string `json:"story_in_progress_statuses"`
    StoryNewStatuses        []string `json:"story_new_statuses"`
    TaskDoneStatuses        []string `json:"task_done_statuses"`
    TaskInProgressStatuses  []string `json:"task_in_progress_statuses"`
    TaskNewStatuses         []string `json:"task_new_statuses"`
    IssueDoneStatuses       []string `json:"issue_done_statuses"`
    IssueInProgressStatuses []string `json:"issue_in_progress_statuses"`
    IssueNewStatuses        []string `json:"issue_new_statuses"`
    EpicRecencyDays         int      `json:"epic_recency_days"`
    StoryRecencyDays        int      `json:"story_recency_days"`
    TaskRecencyDays         int      `json:"task_recency_days"`
    IssueRecencyDays        int      `json:"issue_recency_days"`
    FutureSprints           int      `json:"future_sprints"`
    CompletedSprints        int      `json:"completed_sprints"`
}

type Dashboard struct {
    ProjectID   int64     `json:"project_id"`
    ProjectName string    `json:"project_name"`
    ProjectLogo string    `json:"project_logo,omitempty"`
    GeneratedAt time.Time `json:"generated_at"`

    Config ConfigSummary `json:"config"`

    EpicProgress         []analytics.EpicProgress    `json:"epic_progress"`
    StoryBreakdown       analytics.StatusBreakdown   `json:"story_breakdown"`
    WorkBreakdown        analytics.StatusBreakdown   `json:"work_breakdown"`
    AssignmentByStatus   analytics.AssignmentMatrix  `json:"assignment_by_status"`
    AssignmentByPriority analytics.AssignmentMatrix  `json:"assignment_by_priority"`
    Tags                 []analytics.TagCount        `json:"tags"`
    TagFontSizes         []float64                   `json:"tag_font_sizes,omitempty"`
    IssueDistribution    analytics.IssueDistribution `json:"issue_distribution"`
}

type Service struct {
    cfg    config.Config
    log    zerolog.Logger
    taiga  TaigaClient
    engine analytics.Config

    mu       sync.Mutex
    cached   *Dashboard
    cachedAt time.Time
}

func New(cfg config.Config, log zerolog.Logger, taiga TaigaClient) *Service {
    return &Service{cfg: cfg, log: log, taiga: taiga, engine: engineConfig(cfg)}
}

func engineConfig(cfg config.Config) analytics.Config {
    return analytics.Config{
        Stories:          analytics.NewTaxonomy(cfg.StoryDoneStatuses, cfg.StoryInProgressStatuses, cfg.StoryNewStatuses),
        Tasks:            analytics.NewTaxonomy(cfg.TaskDoneStatuses, cfg.TaskInProgressStatuses, cfg.TaskNewStatuses),
        Issues:           analytics.NewTaxonomy(cfg.IssueDoneStatuses, cfg.IssueInProgressStatuses, cfg.IssueNewStatuses),
        EpicWindowDays:   cfg.EpicRecencyDays,
        StoryWindowDays:  cfg.StoryRecencyDays,
        TaskWindowDays:   cfg.TaskRecencyDays,
        IssueWindowDays:  cfg.IssueRecencyDays,
        FutureSprints:    cfg.FutureSprints,
        CompletedSprints: cfg.CompletedSprints,
        MaxTags:          cfg.TagCloudMaxTags,
        MinFontSize:      cfg.TagCloudMinFont,
        MaxFontSize:      cfg.TagCloudMaxFont,
    }
}

// Dashboard returns the cached payload when it is still fresh, otherwise
// recomputes it.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
    s.mu.Lock()
    if s.cached != nil && time.Since(s.cachedAt) < s.cfg.CacheTTL {
        d := s.cached
        s.mu.Unlock()
        return d, nil
    }
    s.mu.Unlock()
    return s.Refresh(ctx)
}

// Refresh pulls a fresh snapshot, rebuilds the dashboard, and replaces the
// cache. A failed refresh leaves the previous cache entry in place.
func (s *Service) Refresh(ctx context.Context) (*Dashboard, error) {
    start := time.Now()
    snap, err := s.fetchSnapshot(ctx)
    if err != nil {
        s.log.Error().Err(err).Msg("snapshot fetch failed")
        return nil, err
    }
    d := s.build(snap, time.Now().UTC())
    s.mu.Lock()
    s.cached = d
    s.cachedAt = time.Now()
    s.mu.Unlock()
    s.log.Info().
        Int64("project", s.cfg.ProjectID).
        Int("epics", len(snap.Epics)).
        Int("stories", len(snap.Stories)).
        Int("tasks", len(snap.Tasks)).
        Int("issues", len(snap.Issues)).
        Dur("took", time.Since(start)).
        Msg("dashboard rebuilt")
    return d, nil
}

// Warm is the cron entrypoint.
func (s *Service) Warm(ctx context.Context) error {
    _, err := s.Refresh(ctx)
    return err
}

// fetchSnapshot pulls every collection concurrently through a bounded worker
// pool. Any collection failing fails the snapshot.
func (s *Service) fetchSnapshot(ctx context.Context) (*Snapshot, error) {
    pid := s.cfg.ProjectID
    snap := &Snapshot{}
    fetchers := []func() error{
        func() error { p, err := s.taiga.Project(ctx, pid); snap.Project = p; return err },
        func() error { v, err := s.taiga.Epics(ctx, pid); snap.Epics = v; return err },
        func() error { v, err := s.taiga.UserStories(ctx, pid); snap.Stories = v; return err },
        func() error { v, err := s.taiga.Tasks(ctx, pid); snap.Tasks = v; return err },
        func() error { v, err := s.taiga.Issues(ctx, pid); snap.Issues = v; return err },
        func() error { v, err := s.taiga.Sprints(ctx, pid); snap.Sprints = v; return err },
        func() error { v, err := s.taiga.Users(ctx, pid); snap.Users = v; return err },
        func() error { v, err := s.taiga.IssueTypes(ctx, pid); snap.Types = v; return err },
        func() error { v, err := s.taiga.IssueSeverities(ctx, pid); snap.Severities = v; return err },
        func() error { v, err := s.taiga.IssuePriorities(ctx, pid); snap.Priorities = v; return err },
    }
    workerCount := s.cfg.FetchWorkers
    if workerCount <= 0 { workerCount = 4 }
    jobs := make(chan func() error)
    var wg sync.WaitGroup
    var mu sync.Mutex
    var firstErr error
    for w := 0; w < workerCount; w++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            for job := range jobs {
                if err := job(); err != nil {
                    mu.Lock()
                    if firstErr == nil { firstErr = err }
                    mu.Unlock()
                }
            }
        }()
    }
    for _, f := range fetchers { jobs <- f }
    close(jobs)
    wg.Wait()
    if firstErr != nil { return nil, firstErr }
    return snap, nil
}

// build assembles the payload from a snapshot. Pure; the clock comes in as
// an argument.
func (s *Service) build(snap *Snapshot, now time.Time) *Dashboard {
    cfg := s.engine
    issues := resolvePriorities(snap.Issues, snap.Priorities)

    tags := analytics.TagFrequency(snap.Stories, snap.Tasks, issues, cfg.MaxTags)
    return &Dashboard{
        ProjectID:   snap.Project.ID,
        ProjectName: snap.Project.Name,
        ProjectLogo: snap.Project.LogoURL,
        GeneratedAt: now,
        Config:      s.configSummary(),

        EpicProgress:         analytics.EpicProgressRows(snap.Epics, snap.Stories, cfg, now),
        StoryBreakdown:       analytics.SprintBreakdown(snap.Stories, nil, nil, snap.Sprints, cfg, now),
        WorkBreakdown:        analytics.SprintBreakdown(nil, snap.Tasks, issues, snap.Sprints, cfg, now),
        AssignmentByStatus:   analytics.AssignmentMatrixFor(snap.Users, snap.Stories, snap.Tasks, issues, cfg, analytics.MetricStatus, now),
        AssignmentByPriority: analytics.AssignmentMatrixFor(snap.Users, snap.Stories, snap.Tasks, issues, cfg, analytics.MetricPriority, now),
        Tags:                 tags,
        TagFontSizes:         analytics.FontSizes(tags, cfg.MinFontSize, cfg.MaxFontSize),
        IssueDistribution:    analytics.IssueDistributionFor(issues, snap.Types, snap.Severities, snap.Priorities, cfg),
    }
}

// resolvePriorities fills PriorityName from the priorities table for issues
// whose payload did not carry the expanded name.
func resolvePriorities(issues []domain.Issue, priorities []domain.Lookup) []domain.Issue {
    names := make(map[int64]string, len(priorities))
    for _, p := range priorities { names[p.ID] = p.Name }
    out := make([]domain.Issue, len(issues))
    copy(out, issues)
    for i := range out {
        if out[i].PriorityName != "" || out[i].PriorityID == nil { continue }
        out[i].PriorityName = names[*out[i].PriorityID]
    }
    return out
}

func (s *Service) configSummary() ConfigSummary {
    return ConfigSummary{
        StoryDoneStatuses:       s.cfg.StoryDoneStatuses,
        StoryInProgressStatuses: s.cfg.StoryInProgressStatuses,
        StoryNewStatuses:        s.cfg.StoryNewStatuses,
        TaskDoneStatuses:        s.cfg.TaskDoneStatuses,
        TaskInProgressStatuses:  s.cfg.TaskInProgressStatuses,
        TaskNewStatuses:         s.cfg.TaskNewStatuses,
        IssueDoneStatuses:       s.cfg.IssueDoneStatuses,
        IssueInProgressStatuses: s.cfg.IssueInProgressStatuses,
        IssueNewStatuses:        s.cfg.IssueNewStatuses,
        EpicRecencyDays:         s.cfg.EpicRecencyDays,
        StoryRecencyDays:        s.cfg.StoryRecencyDays,
        TaskRecencyDays:         s.cfg.TaskRecencyDays,
        IssueRecencyDays:        s.cfg.IssueRecencyDays,
        FutureSprints:           s.cfg.FutureSprints,
        CompletedSprints:        s.cfg.CompletedSprints,
    }
}
