/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package analytics

import (
    "sort"
    "strings"

    "github.com/JonahLargen/TaigaDashboard/internal/domain"
)

// TagCount is one ranked row of the tag cloud. Color is whichever color was
// attached to the last processed occurrence of the tag name: last write wins.
// That is a deliberate carry-over from the original dashboard, not a
// guaranteed canonical color.
type TagCount struct {
    Tag   string `json:"tag"`
    Count int    `json:"count"`
    Color string `json:"color"`
}

// TagFrequency counts tag occurrences across stories, tasks, and issues
// combined, ranked by descending count with ties broken by first appearance,
// truncated to maxTags. Tags with empty names are skipped.
func TagFrequency(stories []domain.UserStory, tasks []domain.Task, issues []domain.Issue, maxTags int) []TagCount {
    type entry struct {
        count int
        color string
        order int
    }
    byName := map[string]*entry{}
    order := 0
    addAll := func(tags []domain.Tag) {
        for _, tg := range tags {
            if strings.TrimSpace(tg.Name) == "" { continue }
            e, ok := byName[tg.Name]
            if !ok {
                e = &entry{order: order}
                order++
                byName[tg.Name] = e
            }
            e.count++
            e.color = tg.Color
        }
    }
    for _, st := range stories { addAll(st.Tags) }
    for _, t := range tasks { addAll(t.Tags) }
    for _, is := range issues { addAll(is.Tags) }

    out := make([]TagCount, 0, len(byName))
    orders := make(map[string]int, len(byName))
    for name, e := range byName {
        out = append(out, TagCount{Tag: name, Count: e.count, Color: e.color})
        orders[name] = e.order
    }
    sort.SliceStable(out, func(i, j int) bool {
        if out[i].Count != out[j].Count { return out[i].Count > out[j].Count }
        return orders[out[i].Tag] < orders[out[j].Tag]
    })
    if maxTags > 0 && len(out) > maxTags { out = out[:maxTags] }
    return out
}

// FontSizes maps ranked tag counts to font sizes by linear interpolation
// between minSize and maxSize. When every count is equal the midpoint is used
// for all tags. Layout and jitter are the renderer's problem; this is only
// the scale.
func FontSizes(tags []TagCount, minSize, maxSize float64) []float64 {
    if len(tags) == 0 { return nil }
    lo, hi := tags[0].Count, tags[0].Count
    for _, t := range tags {
        if t.Count < lo { lo = t.Count }
        if t.Count > hi { hi = t.Count }
    }
    sizes := make([]float64, len(tags))
    if hi == lo {
        mid := (minSize + maxSize) / 2
        for i := range sizes { sizes[i] = mid }
        return sizes
    }
    for i, t := range tags {
        sizes[i] = minSize + (maxSize-minSize)*float64(t.Count-lo)/float64(hi-lo)
    }
    return sizes
}
