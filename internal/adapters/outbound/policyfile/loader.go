// Package policyfile overlays governance policy from a repo-local
// .flaggate.yaml. Teams version their policy next to the code it governs;
// file values take precedence over environment-derived ones.
package policyfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flaggate/flaggate/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".flaggate.yaml"

// overrides mirrors PolicyConfig with optional fields; only set fields
// replace the base policy.
type overrides struct {
	Environment   string   `yaml:"environment"`
	RemovalTags   []string `yaml:"removal_tags"`
	PermanentTags []string `yaml:"permanent_tags"`
	MaxFlags      *int     `yaml:"max_flags"`

	LastModifiedThreshold            *string `yaml:"last_modified_threshold"`
	LastTrafficThreshold             *string `yaml:"last_traffic_threshold"`
	FullRolloutLastModifiedThreshold *string `yaml:"full_rollout_last_modified_threshold"`
	FullRolloutLastTrafficThreshold  *string `yaml:"full_rollout_last_traffic_threshold"`
}

// Loader reads .flaggate.yaml from a project root.
type Loader struct{}

func New() *Loader { return &Loader{} }

// Apply overlays the file's settings on top of base. A missing file leaves
// base untouched; a malformed file or duration is a configuration error.
func (l *Loader) Apply(projectPath string, base domain.PolicyConfig) (domain.PolicyConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return domain.PolicyConfig{}, err
	}

	var ov overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return domain.PolicyConfig{}, &domain.ConfigError{Reason: fmt.Sprintf("parsing %s: %v", fileName, err)}
	}

	merged := base
	if ov.Environment != "" {
		merged.Environment = ov.Environment
	}
	if len(ov.RemovalTags) > 0 {
		merged.RemovalTags = ov.RemovalTags
	}
	if len(ov.PermanentTags) > 0 {
		merged.PermanentTags = ov.PermanentTags
	}
	if ov.MaxFlags != nil {
		merged.MaxFlags = *ov.MaxFlags
	}

	for _, th := range []struct {
		name  string
		value *string
		dst   *domain.Threshold
	}{
		{"last_modified_threshold", ov.LastModifiedThreshold, &merged.LastModified},
		{"last_traffic_threshold", ov.LastTrafficThreshold, &merged.LastTraffic},
		{"full_rollout_last_modified_threshold", ov.FullRolloutLastModifiedThreshold, &merged.FullRolloutLastModified},
		{"full_rollout_last_traffic_threshold", ov.FullRolloutLastTrafficThreshold, &merged.FullRolloutLastTraffic},
	} {
		if th.value == nil {
			continue
		}
		parsed, err := domain.ParseThreshold(*th.value)
		if err != nil {
			return domain.PolicyConfig{}, &domain.ConfigError{
				Reason: fmt.Sprintf("%s: %s: %v", fileName, th.name, err),
			}
		}
		*th.dst = parsed
	}

	return merged, nil
}
