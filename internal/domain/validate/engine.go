// Package validate evaluates governance policy over the used-flag set and
// the full registry. Evaluation is a pure fold into an ordered violation
// accumulator: every rule runs, every violation is gathered, and nothing
// short-circuits, so a single CI run surfaces every issue at once.
package validate

import (
	"fmt"
	"time"

	"github.com/flaggate/flaggate/internal/domain"
)

const lastActivityFormat = "2006-01-02 15:04:05"

// Evaluate applies every enabled rule and returns the violations found.
// now is injected so staleness math stays deterministic under test.
func Evaluate(used []domain.UsedFlag, reg *domain.Registry, pol domain.PolicyConfig, now time.Time) []domain.Violation {
	var out []domain.Violation
	out = append(out, checkRemovalTags(used, reg, pol)...)
	out = append(out, checkCountLimit(reg, pol)...)
	out = append(out, checkStaleness(reg, pol, now)...)
	return out
}

// checkRemovalTags flags any used flag whose tags intersect the configured
// removal tags: the change set must delete those call sites, not keep them.
func checkRemovalTags(used []domain.UsedFlag, reg *domain.Registry, pol domain.PolicyConfig) []domain.Violation {
	if len(pol.RemovalTags) == 0 {
		return nil
	}

	var out []domain.Violation
	for _, u := range used {
		record, ok := reg.Get(u.Name)
		if !ok {
			continue
		}
		tag, tagged := record.HasAnyTag(pol.RemovalTags)
		if !tagged {
			continue
		}
		out = append(out, domain.Violation{
			Rule:    domain.RuleRemovalTag,
			Flag:    u.Name,
			Message: fmt.Sprintf("flag %q carries removal tag %q; remove its references from the change set", u.Name, tag),
			Files:   u.Files,
		})
	}
	return out
}

// checkCountLimit produces a single violation naming the count and the
// limit when the registry has grown past the configured maximum.
func checkCountLimit(reg *domain.Registry, pol domain.PolicyConfig) []domain.Violation {
	if !pol.CountLimitEnabled() || len(reg.Flags) <= pol.MaxFlags {
		return nil
	}
	return []domain.Violation{{
		Rule: domain.RuleCountLimit,
		Message: fmt.Sprintf("project has %d flags, exceeding the configured maximum of %d; retire %d flag(s)",
			len(reg.Flags), pol.MaxFlags, len(reg.Flags)-pol.MaxFlags),
	}}
}

// checkStaleness evaluates every registry flag (not only used ones) against
// the age thresholds, restricted to the target environment. A flag at 100%
// rollout allocation uses the 100%-specific thresholds; permanent-tagged
// flags are exempt entirely. The modified and traffic signals trigger
// independently, so one flag can yield two distinct violations.
func checkStaleness(reg *domain.Registry, pol domain.PolicyConfig, now time.Time) []domain.Violation {
	var out []domain.Violation
	for _, flag := range reg.Flags {
		if _, permanent := flag.HasAnyTag(pol.PermanentTags); permanent {
			continue
		}
		env, ok := flag.Environments[pol.Environment]
		if !ok {
			continue // no data for the target environment, nothing to judge
		}

		modified, traffic := pol.LastModified, pol.LastTraffic
		if env.Allocation == 100 {
			modified, traffic = pol.FullRolloutLastModified, pol.FullRolloutLastTraffic
		}

		if modified.Exceeded(now, env.LastModified) {
			out = append(out, domain.Violation{
				Rule: domain.RuleStaleModified,
				Flag: flag.Name,
				Message: fmt.Sprintf("flag %q not modified in over %s in environment %q (last modified %s)",
					flag.Name, modified, pol.Environment, env.LastModified.Format(lastActivityFormat)),
			})
		}
		if traffic.Exceeded(now, env.LastTraffic) {
			out = append(out, domain.Violation{
				Rule: domain.RuleStaleTraffic,
				Flag: flag.Name,
				Message: fmt.Sprintf("flag %q received no traffic in over %s in environment %q (last traffic %s)",
					flag.Name, traffic, pol.Environment, env.LastTraffic.Format(lastActivityFormat)),
			})
		}
	}
	return out
}
