package mapper

import (
	"testing"

	"github.com/dkoosis/cpfgen/pkg/checksum"
	"github.com/dkoosis/cpfgen/pkg/pattern"
	"github.com/dkoosis/cpfgen/pkg/report"
	"github.com/dkoosis/cpfgen/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metric(t *testing.T, s *pattern.Summary, label string) pattern.SummaryItem {
	t.Helper()
	for _, m := range s.Metrics {
		if m.Label == label {
			return m
		}
	}
	t.Fatalf("metric %q not found in %+v", label, s.Metrics)
	return pattern.SummaryItem{}
}

func TestFromRun_FormatsCounts(t *testing.T) {
	stats := &report.RunStatistics{
		TotalCombinations: 100_000_000_000,
		Processed:         1_234_567,
		Valid:             12_345,
		Invalid:           1_222_221,
		RepeatedSequences: 1,
		ValidityRate:      1.0,
		DurationSeconds:   1.5,
		OutputPath:        "output/valid_cpfs.csv",
	}

	patterns := FromRun(stats, nil)
	require.Len(t, patterns, 1)
	s, ok := patterns[0].(*pattern.Summary)
	require.True(t, ok)

	assert.Equal(t, "Combination complete", s.Label)
	assert.Equal(t, pattern.SummaryKindRun, s.Kind)
	assert.Equal(t, "100,000,000,000", metric(t, s, "Candidate space").Value)
	assert.Equal(t, "1,234,567", metric(t, s, "Processed").Value)
	assert.Equal(t, "12,345", metric(t, s, "Valid").Value)
	assert.Equal(t, pattern.KindSuccess, metric(t, s, "Valid").Kind)
	assert.Equal(t, "1.00%", metric(t, s, "Validity rate").Value)
	assert.Equal(t, "1.5s", metric(t, s, "Duration").Value)
	assert.Equal(t, "output/valid_cpfs.csv", metric(t, s, "Output").Value)
	for _, m := range s.Metrics {
		assert.NotEqual(t, "Format errors", m.Label)
	}
}

func TestFromRun_EarlyStopAndSamples(t *testing.T) {
	stats := &report.RunStatistics{MaxValid: 1000, StoppedEarly: true, Valid: 1000, FormatErrors: 2}

	patterns := FromRun(stats, []float64{9.8, 10.1})
	require.Len(t, patterns, 2)

	s := patterns[0].(*pattern.Summary)
	assert.Equal(t, "Combination stopped at 1,000 valid CPFs", s.Label)
	assert.Equal(t, pattern.KindError, metric(t, s, "Format errors").Kind)

	spark, ok := patterns[1].(*pattern.Sparkline)
	require.True(t, ok)
	assert.Equal(t, []float64{9.8, 10.1}, spark.Values)
	assert.Equal(t, "%", spark.Unit)
}

func TestFromRun_NoValidIsWarning(t *testing.T) {
	s := FromRun(&report.RunStatistics{Processed: 100, Invalid: 99, RepeatedSequences: 1}, nil)[0].(*pattern.Summary)
	assert.Equal(t, pattern.KindWarning, metric(t, s, "Valid").Kind)
}

func TestFromManifest_ListsArtifactsInOrder(t *testing.T) {
	m := &segment.Manifest{
		DurationSeconds: 0.25,
		Files: map[string]string{
			"segment_4": "parts/segment_4_check_digits.csv",
			"segment_1": "parts/segment_1.csv",
			"segment_2": "parts/segment_2.csv",
			"segment_3": "parts/segment_3.csv",
		},
		Bounds: map[string]segment.Bounds{
			"segment_1": {Low: 0, High: 999},
			"segment_2": {Low: 10, High: 19},
			"segment_3": {Low: 5, High: 5},
			"segment_4": {Low: 0, High: 99},
		},
	}

	patterns := FromManifest(m)
	require.Len(t, patterns, 2)
	assert.Equal(t, "4", metric(t, patterns[0].(*pattern.Summary), "Files").Value)
	assert.Equal(t, "250ms", metric(t, patterns[0].(*pattern.Summary), "Duration").Value)

	table := patterns[1].(*pattern.Table)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, "parts/segment_1.csv", table.Rows[0].Name)
	assert.Equal(t, "1,000", table.Rows[0].Value)
	assert.Equal(t, "10", table.Rows[1].Value)
	assert.Equal(t, "1", table.Rows[2].Value)
	assert.Equal(t, "segment_4 [0, 99]", table.Rows[3].Details)
}

func TestFromValidation(t *testing.T) {
	inputs := []string{"123.456.789-09", "12345678900"}
	results := []checksum.Result{checksum.Validate(inputs[0]), checksum.Validate(inputs[1])}

	patterns := FromValidation(inputs, results)
	require.Len(t, patterns, 2)

	s := patterns[0].(*pattern.Summary)
	assert.Equal(t, pattern.SummaryKindValidate, s.Kind)
	assert.Equal(t, "1 of 2", s.Metrics[0].Value)
	assert.Equal(t, pattern.KindError, s.Metrics[0].Kind)

	table := patterns[1].(*pattern.Table)
	assert.Equal(t, pattern.TableRow{Name: "123.456.789-09", Value: "valid", Kind: pattern.KindSuccess, Details: "123.456.789-09"}, table.Rows[0])
	assert.Equal(t, "invalid", table.Rows[1].Value)
	assert.Equal(t, pattern.KindError, table.Rows[1].Kind)
}
