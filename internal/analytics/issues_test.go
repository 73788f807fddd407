package analytics

import (
    "testing"

    "github.com/JonahLargen/TaigaDashboard/internal/domain"
)

func TestIssueDistribution_CountsOpenIssuesOnly(t *testing.T) {
    cfg := Config{Issues: NewTaxonomy([]string{"closed"}, nil, nil)}
    types := []domain.Lookup{{ID: 1, Name: "Bug"}, {ID: 2, Name: "Feature"}}
    severities := []domain.Lookup{{ID: 10, Name: "Minor"}, {ID: 11, Name: "Major"}}
    priorities := []domain.Lookup{{ID: 20, Name: "Normal"}}
    issues := []domain.Issue{
        {StatusName: "new", TypeID: i64(1), SeverityID: i64(10), PriorityID: i64(20)},
        {StatusName: "in progress", TypeID: i64(1), SeverityID: i64(11), PriorityID: i64(20)},
        {StatusName: "new", TypeID: i64(2), SeverityID: i64(10), PriorityID: i64(20)},
        {StatusName: "Closed", TypeID: i64(1), SeverityID: i64(10), PriorityID: i64(20)}, // done: excluded everywhere
    }
    dist := IssueDistributionFor(issues, types, severities, priorities, cfg)
    if dist.ByType["Bug"] != 2 || dist.ByType["Feature"] != 1 {
        t.Fatalf("unexpected byType: %v", dist.ByType)
    }
    if dist.BySeverity["Minor"] != 2 || dist.BySeverity["Major"] != 1 {
        t.Fatalf("unexpected bySeverity: %v", dist.BySeverity)
    }
    if dist.ByPriority["Normal"] != 3 {
        t.Fatalf("unexpected byPriority: %v", dist.ByPriority)
    }
}

func TestIssueDistribution_UnresolvableIdsCountAsUnknown(t *testing.T) {
    cfg := Config{Issues: NewTaxonomy([]string{"closed"}, nil, nil)}
    issues := []domain.Issue{
        {StatusName: "new", TypeID: i64(42)}, // id not in the lookup table
        {StatusName: "new"},                  // ids absent entirely
    }
    dist := IssueDistributionFor(issues, nil, nil, nil, cfg)
    if dist.ByType["Unknown"] != 2 { t.Fatalf("unexpected byType: %v", dist.ByType) }
    if dist.BySeverity["Unknown"] != 2 { t.Fatalf("unexpected bySeverity: %v", dist.BySeverity) }
    if dist.ByPriority["Unknown"] != 2 { t.Fatalf("unexpected byPriority: %v", dist.ByPriority) }
}

func TestIssueDistribution_EmptyInputIsValid(t *testing.T) {
    cfg := Config{Issues: NewTaxonomy([]string{"closed"}, nil, nil)}
    dist := IssueDistributionFor(nil, nil, nil, nil, cfg)
    if len(dist.ByType) != 0 || len(dist.BySeverity) != 0 || len(dist.ByPriority) != 0 {
        t.Fatalf("expected empty maps, got %+v", dist)
    }
}
