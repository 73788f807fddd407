package analytics

import "github.com/JonahLargen/TaigaDashboard/internal/domain"

// IssueDistribution holds open-issue counts per resolved name, one
// independent frequency map per dimension.
type IssueDistribution struct {
    ByType     map[string]int `json:"by_type"`
    BySeverity map[string]int `json:"by_severity"`
    ByPriority map[string]int `json:"by_priority"`
}

// IssueDistributionFor counts issues whose status is outside the done set,
// resolved through the id→name lookup tables. Only the done/not-done
// distinction applies here, not the three-way bucket. Ids that resolve to
// nothing count under Unknown.
func IssueDistributionFor(issues []domain.Issue, types, severities, priorities []domain.Lookup, cfg Config) IssueDistribution {
    typeNames := lookupNames(types)
    sevNames := lookupNames(severities)
    priNames := lookupNames(priorities)
    dist := IssueDistribution{
        ByType:     map[string]int{},
        BySeverity: map[string]int{},
        ByPriority: map[string]int{},
    }
    for _, is := range issues {
        if cfg.Issues.IsDone(is.StatusName) { continue }
        dist.ByType[resolveName(typeNames, is.TypeID)]++
        dist.BySeverity[resolveName(sevNames, is.SeverityID)]++
        dist.ByPriority[resolveName(priNames, is.PriorityID)]++
    }
    return dist
}

func lookupNames(rows []domain.Lookup) map[int64]string {
    out := make(map[int64]string, len(rows))
    for _, r := range rows { out[r.ID] = r.Name }
    return out
}

func resolveName(names map[int64]string, id *int64) string {
    if id == nil { return unknownLabel }
    if n, ok := names[*id]; ok && n != "" { return n }
    return unknownLabel
}
