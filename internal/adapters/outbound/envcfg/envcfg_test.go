package envcfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaggate/flaggate/internal/domain"
)

func setRequired(t *testing.T) {
	t.Setenv("FLAGGATE_COMMIT_BEFORE", "abc123")
	t.Setenv("FLAGGATE_COMMIT_AFTER", "def456")
	t.Setenv("FLAGGATE_API_TOKEN", "token")
	t.Setenv("FLAGGATE_ACCOUNT", "acme")
	t.Setenv("FLAGGATE_PROJECT", "storefront")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.RepoPath)
	assert.Equal(t, "https://app.flagregistry.io", cfg.APIURL)
	assert.Equal(t, "Production", cfg.Environment)
	assert.Equal(t, -1, cfg.MaxFlags)
	assert.Equal(t, "-1", cfg.LastModifiedThreshold)
	assert.False(t, cfg.UseGitHub())
}

func TestLoad_CollectsAllMissingRequired(t *testing.T) {
	t.Setenv("FLAGGATE_COMMIT_BEFORE", "abc123")
	t.Setenv("FLAGGATE_COMMIT_AFTER", "")
	t.Setenv("FLAGGATE_API_TOKEN", "")
	t.Setenv("FLAGGATE_ACCOUNT", "")
	t.Setenv("FLAGGATE_PROJECT", "")

	_, err := Load()
	require.Error(t, err)

	var cerr *domain.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{
		"FLAGGATE_ACCOUNT",
		"FLAGGATE_API_TOKEN",
		"FLAGGATE_COMMIT_AFTER",
		"FLAGGATE_PROJECT",
	}, cerr.Missing)
	assert.NotEmpty(t, cerr.Optional)
}

func TestLoad_UseGitHub(t *testing.T) {
	setRequired(t)
	t.Setenv("FLAGGATE_GITHUB_TOKEN", "ghp_xxx")
	t.Setenv("FLAGGATE_GITHUB_REPO", "acme/storefront")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UseGitHub())
}

func TestPolicy_ParsesThresholds(t *testing.T) {
	setRequired(t)
	t.Setenv("FLAGGATE_TAG_REMOVE", "deprecated, remove-me")
	t.Setenv("FLAGGATE_TAG_PERMANENT", "permanent")
	t.Setenv("FLAGGATE_MAX_FLAGS", "50")
	t.Setenv("FLAGGATE_LAST_MODIFIED_THRESHOLD", "90d")
	t.Setenv("FLAGGATE_100_PERCENT_LAST_TRAFFIC_THRESHOLD", "1w 2d")

	cfg, err := Load()
	require.NoError(t, err)
	pol, err := cfg.Policy()
	require.NoError(t, err)

	assert.Equal(t, []string{"deprecated", "remove-me"}, pol.RemovalTags)
	assert.Equal(t, []string{"permanent"}, pol.PermanentTags)
	assert.Equal(t, 50, pol.MaxFlags)
	assert.Equal(t, 90*24*time.Hour, pol.LastModified.Span())
	assert.False(t, pol.LastTraffic.Enabled())
	assert.Equal(t, 9*24*time.Hour, pol.FullRolloutLastTraffic.Span())
	assert.Equal(t, "Production", pol.Environment)
}

func TestPolicy_MalformedThresholdNamesSetting(t *testing.T) {
	setRequired(t)
	t.Setenv("FLAGGATE_LAST_TRAFFIC_THRESHOLD", "ninety days")

	cfg, err := Load()
	require.NoError(t, err)
	_, err = cfg.Policy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FLAGGATE_LAST_TRAFFIC_THRESHOLD")
}
