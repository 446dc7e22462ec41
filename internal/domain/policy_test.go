package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flaggate/flaggate/internal/domain"
)

func TestParseThreshold_Disabled(t *testing.T) {
	th, err := domain.ParseThreshold("-1")
	assert.NoError(t, err)
	assert.False(t, th.Enabled())
}

func TestParseThreshold_Empty(t *testing.T) {
	th, err := domain.ParseThreshold("")
	assert.NoError(t, err)
	assert.False(t, th.Enabled())
}

func TestParseThreshold_Valid(t *testing.T) {
	th, err := domain.ParseThreshold("30d")
	assert.NoError(t, err)
	assert.True(t, th.Enabled())
	assert.Equal(t, 30*24*time.Hour, th.Span())
}

func TestParseThreshold_Malformed(t *testing.T) {
	_, err := domain.ParseThreshold("soon")
	assert.Error(t, err)
}

func TestThreshold_ZeroSpanIsNotDisabled(t *testing.T) {
	// "0s" means immediately stale, which is different from switched off.
	th, err := domain.ParseThreshold("0s")
	assert.NoError(t, err)
	assert.True(t, th.Enabled())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, th.Exceeded(now, now.Add(-time.Second)))
}

func TestThreshold_DisabledNeverExceeded(t *testing.T) {
	var th domain.Threshold
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, th.Exceeded(now, now.Add(-10000*time.Hour)))
}

func TestThreshold_MissingTimestampNeverExceeded(t *testing.T) {
	th := domain.NewThreshold(time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, th.Exceeded(now, time.Time{}))
}

func TestThreshold_ExceededBoundary(t *testing.T) {
	th := domain.NewThreshold(time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, th.Exceeded(now, now.Add(-time.Hour)))
	assert.True(t, th.Exceeded(now, now.Add(-time.Hour-time.Second)))
}

func TestThreshold_String(t *testing.T) {
	assert.Equal(t, "disabled", domain.Threshold{}.String())
	assert.Equal(t, "1h0m0s", domain.NewThreshold(time.Hour).String())
}

func TestPolicyConfig_CountLimitEnabled(t *testing.T) {
	assert.False(t, domain.PolicyConfig{MaxFlags: -1}.CountLimitEnabled())
	assert.True(t, domain.PolicyConfig{MaxFlags: 0}.CountLimitEnabled())
	assert.True(t, domain.PolicyConfig{MaxFlags: 50}.CountLimitEnabled())
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"deprecated", "remove-me"}, domain.SplitTags("deprecated, remove-me"))
	assert.Equal(t, []string{"one"}, domain.SplitTags(" one ,, "))
	assert.Nil(t, domain.SplitTags(""))
}

func TestConfigError_Message(t *testing.T) {
	err := &domain.ConfigError{
		Missing:  []string{"FLAGGATE_API_TOKEN", "FLAGGATE_PROJECT"},
		Optional: []string{"FLAGGATE_TAG_REMOVE"},
	}
	msg := err.Error()
	assert.Contains(t, msg, "FLAGGATE_API_TOKEN")
	assert.Contains(t, msg, "FLAGGATE_PROJECT")
	assert.Contains(t, msg, "FLAGGATE_TAG_REMOVE")
}

func TestConfigError_ReasonOnly(t *testing.T) {
	err := &domain.ConfigError{Reason: "malformed .flaggate.yaml"}
	assert.Equal(t, "configuration error: malformed .flaggate.yaml", err.Error())
}
