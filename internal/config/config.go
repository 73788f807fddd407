/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
    "log"
    "os"
    "strconv"
    "strings"
    "time"
)

type Config struct {
    AppEnv   string
    TZ       string
    HTTPAddr string

    TaigaBaseURL  string
    TaigaUsername string
    TaigaPassword string
    ProjectID     int64

    StoryDoneStatuses       []string
    StoryInProgressStatuses []string
    StoryNewStatuses        []string
    TaskDoneStatuses        []string
    TaskInProgressStatuses  []string
    TaskNewStatuses         []string
    IssueDoneStatuses       []string
    IssueInProgressStatuses []string
    IssueNewStatuses        []string

    EpicRecencyDays  int
    StoryRecencyDays int
    TaskRecencyDays  int
    IssueRecencyDays int

    FutureSprints    int
    CompletedSprints int

    TagCloudMaxTags int
    TagCloudMinFont float64
    TagCloudMaxFont float64

    CacheTTL     time.Duration
    RefreshCron  string
    HTTPTimeout  time.Duration
    FetchWorkers int
}

func getenv(key, def string) string {
    v := os.Getenv(key)
    if v == "" { return def }
    return v
}

func atoi(key string, def int) int {
    v := os.Getenv(key)
    if v == "" { return def }
    i, err := strconv.Atoi(v)
    if err != nil { return def }
    return i
}

func atof(key string, def float64) float64 {
    v := os.Getenv(key)
    if v == "" { return def }
    f, err := strconv.ParseFloat(v, 64)
    if err != nil { return def }
    return f
}

func dur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" { return def }
    d, err := time.ParseDuration(v)
    if err != nil { return def }
    return d
}

func parseStrings(csv string) []string {
    if csv == "" { return nil }
    parts := strings.Split(csv, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p == "" { continue }
        out = append(out, p)
    }
    return out
}

func statuses(key, def string) []string {
    return parseStrings(getenv(key, def))
}

func Load() Config {
    cfg := Config{
        AppEnv:   getenv("APP_ENV", "dev"),
        TZ:       getenv("APP_TZ", "UTC"),
        HTTPAddr: getenv("HTTP_ADDR", ":8080"),

        TaigaBaseURL:  getenv("TAIGA_BASE_URL", "https://api.taiga.io"),
        TaigaUsername: getenv("TAIGA_USERNAME", ""),
        TaigaPassword: getenv("TAIGA_PASSWORD", ""),
        ProjectID:     int64(atoi("TAIGA_PROJECT_ID", 0)),

        StoryDoneStatuses:       statuses("USER_STORY_DONE_STATUSES", "done"),
        StoryInProgressStatuses: statuses("USER_STORY_IN_PROGRESS_STATUSES", "in progress,ready for test"),
        StoryNewStatuses:        statuses("USER_STORY_NEW_STATUSES", "new"),
        TaskDoneStatuses:        statuses("TASK_DONE_STATUSES", "done"),
        TaskInProgressStatuses:  statuses("TASK_IN_PROGRESS_STATUSES", "in progress,ready for test"),
        TaskNewStatuses:         statuses("TASK_NEW_STATUSES", "new"),
        IssueDoneStatuses:       statuses("ISSUE_DONE_STATUSES", "done"),
        IssueInProgressStatuses: statuses("ISSUE_IN_PROGRESS_STATUSES", "in progress,ready for test"),
        IssueNewStatuses:        statuses("ISSUE_NEW_STATUSES", "new"),

        EpicRecencyDays:  atoi("EPIC_RECENCY_DAYS", 90),
        StoryRecencyDays: atoi("USER_STORY_RECENCY_DAYS", 90),
        TaskRecencyDays:  atoi("TASK_RECENCY_DAYS", 90),
        IssueRecencyDays: atoi("ISSUE_RECENCY_DAYS", 90),

        FutureSprints:    atoi("SPRINT_FUTURE_COUNT", 2),
        CompletedSprints: atoi("SPRINT_COMPLETED_COUNT", 3),

        TagCloudMaxTags: atoi("TAG_CLOUD_MAX_TAGS", 30),
        TagCloudMinFont: atof("TAG_CLOUD_MIN_FONT", 12),
        TagCloudMaxFont: atof("TAG_CLOUD_MAX_FONT", 40),

        CacheTTL:     dur("CACHE_TTL", 15*time.Minute),
        RefreshCron:  getenv("REFRESH_CRON", "*/15 * * * *"),
        HTTPTimeout:  dur("HTTP_TIMEOUT", 15*time.Second),
        FetchWorkers: atoi("FETCH_WORKERS", 4),
    }

    // set global timezone if available
    if loc, err := time.LoadLocation(cfg.TZ); err == nil {
        time.Local = loc
    } else {
        log.Printf("warning: cannot load TZ %s: %v", cfg.TZ, err)
    }
    return cfg
}
