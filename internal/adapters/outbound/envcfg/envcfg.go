// Package envcfg loads process configuration from environment variables,
// the way CI plugins are configured.
package envcfg

import (
	"fmt"
	"sort"

	"github.com/caarlos0/env/v11"
	"github.com/flaggate/flaggate/internal/domain"
)

// Config is the raw environment surface of one run. Policy thresholds stay
// strings here; they are parsed (and validated) when building the
// domain.PolicyConfig so that a malformed duration is reported as a
// configuration error before any analysis work begins.
type Config struct {
	CommitBefore string `env:"FLAGGATE_COMMIT_BEFORE"`
	CommitAfter  string `env:"FLAGGATE_COMMIT_AFTER"`
	RepoPath     string `env:"FLAGGATE_REPO_PATH" envDefault:"."`

	APIURL   string `env:"FLAGGATE_API_URL" envDefault:"https://app.flagregistry.io"`
	APIToken string `env:"FLAGGATE_API_TOKEN"`
	Account  string `env:"FLAGGATE_ACCOUNT"`
	Org      string `env:"FLAGGATE_ORG"`
	Project  string `env:"FLAGGATE_PROJECT"`

	GitHubToken string `env:"FLAGGATE_GITHUB_TOKEN"`
	GitHubRepo  string `env:"FLAGGATE_GITHUB_REPO"`

	Environment   string `env:"FLAGGATE_ENVIRONMENT" envDefault:"Production"`
	RemovalTags   string `env:"FLAGGATE_TAG_REMOVE"`
	PermanentTags string `env:"FLAGGATE_TAG_PERMANENT"`
	MaxFlags      int    `env:"FLAGGATE_MAX_FLAGS" envDefault:"-1"`

	LastModifiedThreshold            string `env:"FLAGGATE_LAST_MODIFIED_THRESHOLD" envDefault:"-1"`
	LastTrafficThreshold             string `env:"FLAGGATE_LAST_TRAFFIC_THRESHOLD" envDefault:"-1"`
	FullRolloutLastModifiedThreshold string `env:"FLAGGATE_100_PERCENT_LAST_MODIFIED_THRESHOLD" envDefault:"-1"`
	FullRolloutLastTrafficThreshold  string `env:"FLAGGATE_100_PERCENT_LAST_TRAFFIC_THRESHOLD" envDefault:"-1"`
}

// Load parses the environment and validates required settings, collecting
// every missing name so one failed run reports them all.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, &domain.ConfigError{Reason: err.Error()}
	}

	var missing []string
	for name, value := range map[string]string{
		"FLAGGATE_COMMIT_BEFORE": cfg.CommitBefore,
		"FLAGGATE_COMMIT_AFTER":  cfg.CommitAfter,
		"FLAGGATE_API_TOKEN":     cfg.APIToken,
		"FLAGGATE_ACCOUNT":       cfg.Account,
		"FLAGGATE_PROJECT":       cfg.Project,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &domain.ConfigError{Missing: missing, Optional: unsetOptional(&cfg)}
	}

	return &cfg, nil
}

// Policy builds the immutable per-run policy from the raw config.
func (c *Config) Policy() (domain.PolicyConfig, error) {
	pol := domain.PolicyConfig{
		RemovalTags:   domain.SplitTags(c.RemovalTags),
		PermanentTags: domain.SplitTags(c.PermanentTags),
		MaxFlags:      c.MaxFlags,
		Environment:   c.Environment,
	}

	for _, th := range []struct {
		name  string
		value string
		dst   *domain.Threshold
	}{
		{"FLAGGATE_LAST_MODIFIED_THRESHOLD", c.LastModifiedThreshold, &pol.LastModified},
		{"FLAGGATE_LAST_TRAFFIC_THRESHOLD", c.LastTrafficThreshold, &pol.LastTraffic},
		{"FLAGGATE_100_PERCENT_LAST_MODIFIED_THRESHOLD", c.FullRolloutLastModifiedThreshold, &pol.FullRolloutLastModified},
		{"FLAGGATE_100_PERCENT_LAST_TRAFFIC_THRESHOLD", c.FullRolloutLastTrafficThreshold, &pol.FullRolloutLastTraffic},
	} {
		parsed, err := domain.ParseThreshold(th.value)
		if err != nil {
			return domain.PolicyConfig{}, &domain.ConfigError{
				Reason: fmt.Sprintf("%s: %v", th.name, err),
			}
		}
		*th.dst = parsed
	}

	return pol, nil
}

// UseGitHub reports whether the remote changed-file provider is configured.
func (c *Config) UseGitHub() bool {
	return c.GitHubToken != "" && c.GitHubRepo != ""
}

// unsetOptional lists the optional settings that would enable further
// checks, for the configuration error's guidance section.
func unsetOptional(c *Config) []string {
	var opts []string
	if c.RemovalTags == "" {
		opts = append(opts, "FLAGGATE_TAG_REMOVE (tag-based flag removal)")
	}
	if c.PermanentTags == "" {
		opts = append(opts, "FLAGGATE_TAG_PERMANENT (staleness exemptions)")
	}
	if c.MaxFlags < 0 {
		opts = append(opts, "FLAGGATE_MAX_FLAGS (flag count limit)")
	}
	if c.LastModifiedThreshold == domain.DisabledSentinel {
		opts = append(opts, "FLAGGATE_LAST_MODIFIED_THRESHOLD (stale flag detection)")
	}
	if c.LastTrafficThreshold == domain.DisabledSentinel {
		opts = append(opts, "FLAGGATE_LAST_TRAFFIC_THRESHOLD (unused flag detection)")
	}
	return opts
}
