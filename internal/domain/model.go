package domain

import (
	"sort"
	"strings"
	"time"
)

// ExtractionMethod records how a candidate was found in a file.
type ExtractionMethod string

const (
	MethodSyntax ExtractionMethod = "syntax"
	MethodRegex  ExtractionMethod = "regex"
)

// ChangedFile is one file modified between the two commits under analysis,
// carrying its content at the target commit.
type ChangedFile struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
	Content   string `json:"-"`
}

// CandidateUsage is a single raw string extracted from one file.
type CandidateUsage struct {
	Value  string           `json:"value"`
	File   string           `json:"file"`
	Method ExtractionMethod `json:"method"`
}

// CandidateSet deduplicates candidate strings across files while keeping
// provenance (which files contributed each string).
type CandidateSet struct {
	files map[string]map[string]struct{}
}

func NewCandidateSet() *CandidateSet {
	return &CandidateSet{files: make(map[string]map[string]struct{})}
}

func (s *CandidateSet) Add(u CandidateUsage) {
	if u.Value == "" {
		return
	}
	if s.files[u.Value] == nil {
		s.files[u.Value] = make(map[string]struct{})
	}
	s.files[u.Value][u.File] = struct{}{}
}

func (s *CandidateSet) AddAll(usages []CandidateUsage) {
	for _, u := range usages {
		s.Add(u)
	}
}

func (s *CandidateSet) Len() int { return len(s.files) }

// Values returns all candidate strings in lexical order.
func (s *CandidateSet) Values() []string {
	values := make([]string, 0, len(s.files))
	for v := range s.files {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Files returns the sorted list of files that contributed a candidate.
func (s *CandidateSet) Files(value string) []string {
	contributors := s.files[value]
	files := make([]string, 0, len(contributors))
	for f := range contributors {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// EnvironmentState is a flag's per-environment rollout state.
type EnvironmentState struct {
	LastModified time.Time `json:"last_modified"`
	LastTraffic  time.Time `json:"last_traffic"`
	Allocation   int       `json:"allocation"`
}

// FlagRecord is one flag as known to the registry. Read-only for the
// duration of a run.
type FlagRecord struct {
	Name         string                      `json:"name"`
	Tags         []string                    `json:"tags,omitempty"`
	Environments map[string]EnvironmentState `json:"environments,omitempty"`
}

// HasAnyTag reports whether the record carries any of the given tags and
// returns the first match. Tag comparison is case-insensitive; flag
// identifiers never are.
func (f FlagRecord) HasAnyTag(tags []string) (string, bool) {
	for _, want := range tags {
		want = strings.TrimSpace(want)
		if want == "" {
			continue
		}
		for _, have := range f.Tags {
			if strings.EqualFold(strings.TrimSpace(have), want) {
				return have, true
			}
		}
	}
	return "", false
}

// Registry is the full flag snapshot for one project at one point in time.
type Registry struct {
	Flags    []FlagRecord `json:"flags"`
	Warnings []string     `json:"warnings,omitempty"`
}

// Get returns the record for an identifier, matched exactly.
func (r *Registry) Get(name string) (FlagRecord, bool) {
	for _, f := range r.Flags {
		if f.Name == name {
			return f, true
		}
	}
	return FlagRecord{}, false
}

// UsedFlag is a registry flag that was actually found in the change set.
type UsedFlag struct {
	Name  string   `json:"name"`
	Files []string `json:"files,omitempty"`
}

// FilterCandidates intersects the candidate set with the registry: a string
// survives only when it exactly equals some flag identifier. This is what
// makes "extract every string argument" safe.
func FilterCandidates(candidates *CandidateSet, reg *Registry) []UsedFlag {
	var used []UsedFlag
	for _, value := range candidates.Values() {
		if _, ok := reg.Get(value); ok {
			used = append(used, UsedFlag{Name: value, Files: candidates.Files(value)})
		}
	}
	return used
}
