package domain

import "sort"

// RuleKind identifies one governance rule.
type RuleKind string

const (
	RuleRemovalTag    RuleKind = "removal-tag"
	RuleCountLimit    RuleKind = "count-limit"
	RuleStaleModified RuleKind = "stale-last-modified"
	RuleStaleTraffic  RuleKind = "stale-last-traffic"
)

// ruleOrder fixes the reporting order of rule kinds.
var ruleOrder = map[RuleKind]int{
	RuleRemovalTag:    0,
	RuleCountLimit:    1,
	RuleStaleModified: 2,
	RuleStaleTraffic:  3,
}

// Violation is one failed governance check. It is the expected output of a
// failing policy, not an operational error.
type Violation struct {
	Rule    RuleKind `json:"rule"`
	Flag    string   `json:"flag,omitempty"`
	Message string   `json:"message"`
	Files   []string `json:"files,omitempty"`
}

// Report is the consolidated outcome of one run.
type Report struct {
	Passed        bool             `json:"passed"`
	Violations    []Violation      `json:"violations"`
	Summary       map[RuleKind]int `json:"summary"`
	Warnings      []string         `json:"warnings,omitempty"`
	FilesAnalyzed int              `json:"files_analyzed"`
	UsedFlags     []UsedFlag       `json:"used_flags,omitempty"`
	RegistrySize  int              `json:"registry_size"`
}

// BuildReport sorts violations deterministically (rule kind, then flag
// identifier), tallies them per rule, and derives the verdict. Required for
// reproducible CI output regardless of extraction concurrency.
func BuildReport(violations []Violation, warnings []string, used []UsedFlag, filesAnalyzed, registrySize int) *Report {
	sorted := make([]Violation, len(violations))
	copy(sorted, violations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ruleOrder[sorted[i].Rule] != ruleOrder[sorted[j].Rule] {
			return ruleOrder[sorted[i].Rule] < ruleOrder[sorted[j].Rule]
		}
		return sorted[i].Flag < sorted[j].Flag
	})

	summary := make(map[RuleKind]int)
	for _, v := range sorted {
		summary[v.Rule]++
	}

	return &Report{
		Passed:        len(sorted) == 0,
		Violations:    sorted,
		Summary:       summary,
		Warnings:      warnings,
		FilesAnalyzed: filesAnalyzed,
		UsedFlags:     used,
		RegistrySize:  registrySize,
	}
}
