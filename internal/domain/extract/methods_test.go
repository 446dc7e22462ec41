package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEvaluationMethod_Variants(t *testing.T) {
	for _, name := range []string{
		"getTreatment",
		"get_treatment",
		"treatment",
		"getTreatments",
		"get_treatments",
		"treatments",
		"getTreatmentWithConfig",
		"get_treatment_with_config",
		"getTreatmentsWithConfig",
		"GetTreatment",
		"GetTreatmentsWithConfigAsync",
		"getTreatmentAsync",
		"get_treatment_async",
	} {
		assert.True(t, isEvaluationMethod(name), name)
	}
}

func TestIsEvaluationMethod_Rejects(t *testing.T) {
	for _, name := range []string{
		"getTreatmentPlan",
		"pretreatment",
		"treat",
		"getFlag",
		"async",
		"configure",
		"getTreatmentWith",
	} {
		assert.False(t, isEvaluationMethod(name), name)
	}
}

func TestSplitIdentifierWords(t *testing.T) {
	assert.Equal(t, []string{"get", "treatment"}, splitIdentifierWords("getTreatment"))
	assert.Equal(t, []string{"get", "treatments", "with", "config"}, splitIdentifierWords("get_treatments_with_config"))
	assert.Equal(t, []string{"get", "treatment", "async"}, splitIdentifierWords("GetTreatmentAsync"))
}
