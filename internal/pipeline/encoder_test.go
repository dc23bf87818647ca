package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneHotEncoderDropsFirstSortedCategory(t *testing.T) {
	enc := NewOneHotEncoder("part_time_job")
	require.NoError(t, enc.Fit([]string{"Yes", "No", "Yes"}))

	assert.Equal(t, []string{"No", "Yes"}, enc.Categories)
	assert.Equal(t, "No", enc.Reference())
	assert.Equal(t, 1, enc.Width())
	assert.Equal(t, []string{"part_time_job_Yes"}, enc.FeatureNames())

	dst := make([]float64, 1)
	require.NoError(t, enc.EncodeTo(dst, "Yes"))
	assert.Equal(t, []float64{1}, dst)

	require.NoError(t, enc.EncodeTo(dst, "No"))
	assert.Equal(t, []float64{0}, dst)
}

func TestOneHotEncoderMultipleCategories(t *testing.T) {
	enc := NewOneHotEncoder("diet_quality")
	require.NoError(t, enc.Fit([]string{"Poor", "Good", "Fair", "Good"}))

	assert.Equal(t, []string{"Fair", "Good", "Poor"}, enc.Categories)
	assert.Equal(t, []string{"diet_quality_Good", "diet_quality_Poor"}, enc.FeatureNames())

	dst := make([]float64, 2)
	require.NoError(t, enc.EncodeTo(dst, "Poor"))
	assert.Equal(t, []float64{0, 1}, dst)
	require.NoError(t, enc.EncodeTo(dst, "Fair"))
	assert.Equal(t, []float64{0, 0}, dst)
}

func TestOneHotEncoderUnknownCategory(t *testing.T) {
	enc := NewOneHotEncoder("gender")
	require.NoError(t, enc.Fit([]string{"Female", "Male"}))

	err := enc.EncodeTo(make([]float64, 1), "Robot")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Contains(t, err.Error(), `"Robot"`)
}

func TestOneHotEncoderSingleCategory(t *testing.T) {
	enc := NewOneHotEncoder("internet_quality")
	require.NoError(t, enc.Fit([]string{"Good", "Good"}))

	assert.Equal(t, 0, enc.Width())
	assert.Nil(t, enc.FeatureNames())
	assert.NoError(t, enc.EncodeTo(nil, "Good"))
}

func TestOneHotEncoderFitEmpty(t *testing.T) {
	enc := NewOneHotEncoder("gender")
	assert.ErrorIs(t, enc.Fit(nil), ErrEmptyTable)
}
