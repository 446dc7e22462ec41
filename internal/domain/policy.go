package domain

import (
	"fmt"
	"strings"
	"time"
)

// DisabledSentinel is the configuration value that switches a threshold or
// limit off entirely. Distinct from a zero threshold, which means
// "immediately stale".
const DisabledSentinel = "-1"

// Threshold is an optional duration bound. The zero value is disabled.
type Threshold struct {
	span    time.Duration
	enabled bool
}

// NewThreshold returns an enabled threshold with the given span.
func NewThreshold(span time.Duration) Threshold {
	return Threshold{span: span, enabled: true}
}

// ParseThreshold parses a configuration value into a Threshold. An empty
// value or the disabled sentinel yields a disabled threshold; anything else
// must be a valid compound duration.
func ParseThreshold(value string) (Threshold, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == DisabledSentinel {
		return Threshold{}, nil
	}
	span, err := ParseSpan(value)
	if err != nil {
		return Threshold{}, err
	}
	return NewThreshold(span), nil
}

func (t Threshold) Enabled() bool       { return t.enabled }
func (t Threshold) Span() time.Duration { return t.span }

// Exceeded reports whether the age of last, measured at now, is beyond the
// threshold. Disabled thresholds and missing timestamps never trigger.
func (t Threshold) Exceeded(now, last time.Time) bool {
	if !t.enabled || last.IsZero() {
		return false
	}
	return now.Sub(last) > t.span
}

func (t Threshold) String() string {
	if !t.enabled {
		return "disabled"
	}
	return t.span.String()
}

// PolicyConfig is the full governance policy for one run. Immutable once
// built; a disabled field means the corresponding check is skipped.
type PolicyConfig struct {
	RemovalTags   []string
	PermanentTags []string

	// MaxFlags bounds the registry size; -1 disables the check.
	MaxFlags int

	LastModified Threshold
	LastTraffic  Threshold

	// Thresholds applied instead of the general ones when a flag is at
	// 100% rollout allocation in the target environment.
	FullRolloutLastModified Threshold
	FullRolloutLastTraffic  Threshold

	// Environment restricts staleness evaluation to one environment's data.
	Environment string
}

// CountLimitEnabled reports whether the registry size check is active.
func (p PolicyConfig) CountLimitEnabled() bool { return p.MaxFlags >= 0 }

// SplitTags turns a comma-separated tag list into trimmed, non-empty parts.
func SplitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// ConfigError is a fatal pre-analysis configuration failure. It lists every
// missing required setting at once so a single run surfaces them all.
type ConfigError struct {
	Missing  []string
	Optional []string
	Reason   string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing required settings: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Optional) > 0 {
		fmt.Fprintf(&b, " (optional settings not set: %s)", strings.Join(e.Optional, ", "))
	}
	return b.String()
}
