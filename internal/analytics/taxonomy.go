/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package analytics

import "strings"

// Bucket is a semantic status category. Every raw status resolves to exactly
// one bucket; anything unmatched degrades to New.
type Bucket int

const (
    BucketNew Bucket = iota
    BucketInProgress
    BucketDone
)

func (b Bucket) String() string {
    switch b {
    case BucketDone: return "Done"
    case BucketInProgress: return "In Progress"
    default: return "New"
    }
}

// Taxonomy maps raw status display names to buckets using three configured
// name sets. Each item type (story, task, issue) carries its own Taxonomy;
// the resolver itself is type-agnostic. Both the sets and the tested status
// are normalized with trim + lowercase.
type Taxonomy struct {
    done       map[string]struct{}
    inProgress map[string]struct{}
    fresh      map[string]struct{}
}

func NewTaxonomy(done, inProgress, fresh []string) Taxonomy {
    return Taxonomy{done: nameSet(done), inProgress: nameSet(inProgress), fresh: nameSet(fresh)}
}

func nameSet(names []string) map[string]struct{} {
    out := make(map[string]struct{}, len(names))
    for _, n := range names {
        n = strings.ToLower(strings.TrimSpace(n))
        if n != "" { out[n] = struct{}{} }
    }
    return out
}

// Bucket classifies a raw status display name. Empty or unknown statuses
// resolve to New; missing information never fails an aggregation.
func (t Taxonomy) Bucket(status string) Bucket {
    key := strings.ToLower(strings.TrimSpace(status))
    if _, ok := t.done[key]; ok { return BucketDone }
    if _, ok := t.inProgress[key]; ok { return BucketInProgress }
    return BucketNew
}

// IsDone reports done-set membership only. The issue distribution counts use
// this two-way distinction instead of the full three-way bucket.
func (t Taxonomy) IsDone(status string) bool {
    key := strings.ToLower(strings.TrimSpace(status))
    _, ok := t.done[key]
    return ok
}

// Config carries every knob the engine reads. It is built once at startup
// and treated as read-only; every aggregation function receives it (plus an
// explicit reference time) instead of touching globals or the wall clock.
type Config struct {
    Stories Taxonomy
    Tasks   Taxonomy
    Issues  Taxonomy

    EpicWindowDays  int
    StoryWindowDays int
    TaskWindowDays  int
    IssueWindowDays int

    FutureSprints    int
    CompletedSprints int

    MaxTags     int
    MinFontSize float64
    MaxFontSize float64
}
