package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flaggate/flaggate/internal/domain"
)

func TestCandidateSet_DeduplicatesAcrossFiles(t *testing.T) {
	set := domain.NewCandidateSet()
	set.Add(domain.CandidateUsage{Value: "checkout-v2", File: "a.js", Method: domain.MethodSyntax})
	set.Add(domain.CandidateUsage{Value: "checkout-v2", File: "b.py", Method: domain.MethodRegex})
	set.Add(domain.CandidateUsage{Value: "checkout-v2", File: "a.js", Method: domain.MethodSyntax})

	assert.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"a.js", "b.py"}, set.Files("checkout-v2"))
}

func TestCandidateSet_IgnoresEmptyValues(t *testing.T) {
	set := domain.NewCandidateSet()
	set.Add(domain.CandidateUsage{Value: "", File: "a.js"})
	assert.Equal(t, 0, set.Len())
}

func TestCandidateSet_ValuesSorted(t *testing.T) {
	set := domain.NewCandidateSet()
	set.AddAll([]domain.CandidateUsage{
		{Value: "zeta", File: "a.js"},
		{Value: "alpha", File: "a.js"},
		{Value: "mid", File: "a.js"},
	})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, set.Values())
}

func TestFlagRecord_HasAnyTag_CaseInsensitive(t *testing.T) {
	rec := domain.FlagRecord{Name: "f", Tags: []string{"Deprecated", "web"}}

	match, ok := rec.HasAnyTag([]string{"deprecated"})
	assert.True(t, ok)
	assert.Equal(t, "Deprecated", match)
}

func TestFlagRecord_HasAnyTag_NoMatch(t *testing.T) {
	rec := domain.FlagRecord{Name: "f", Tags: []string{"web"}}
	_, ok := rec.HasAnyTag([]string{"deprecated", "remove-me"})
	assert.False(t, ok)
}

func TestFlagRecord_HasAnyTag_SkipsBlankWants(t *testing.T) {
	rec := domain.FlagRecord{Name: "f", Tags: []string{""}}
	_, ok := rec.HasAnyTag([]string{" ", ""})
	assert.False(t, ok)
}

func TestRegistry_Get_ExactMatchOnly(t *testing.T) {
	reg := &domain.Registry{Flags: []domain.FlagRecord{{Name: "checkout-v2"}}}

	_, ok := reg.Get("checkout-v2")
	assert.True(t, ok)

	_, ok = reg.Get("Checkout-V2")
	assert.False(t, ok)
}

func TestFilterCandidates_KeepsOnlyRegistryFlags(t *testing.T) {
	set := domain.NewCandidateSet()
	set.AddAll([]domain.CandidateUsage{
		{Value: "checkout-v2", File: "cart.js"},
		{Value: "user-123", File: "cart.js"},
		{Value: "some log message", File: "cart.js"},
	})
	reg := &domain.Registry{Flags: []domain.FlagRecord{{Name: "checkout-v2"}, {Name: "unused-flag"}}}

	used := domain.FilterCandidates(set, reg)
	assert.Len(t, used, 1)
	assert.Equal(t, "checkout-v2", used[0].Name)
	assert.Equal(t, []string{"cart.js"}, used[0].Files)
}

func TestFilterCandidates_EmptyCandidates(t *testing.T) {
	used := domain.FilterCandidates(domain.NewCandidateSet(), &domain.Registry{Flags: []domain.FlagRecord{{Name: "f"}}})
	assert.Empty(t, used)
}
