// Package mapper converts run artifacts into presentation patterns.
package mapper

import (
	"fmt"
	"slices"
	"time"

	"github.com/dkoosis/cpfgen/pkg/checksum"
	"github.com/dkoosis/cpfgen/pkg/pattern"
	"github.com/dkoosis/cpfgen/pkg/report"
	"github.com/dkoosis/cpfgen/pkg/segment"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// count formats n with thousands separators.
func count(n int64) string { return printer.Sprintf("%d", n) }

// FromRun converts combination statistics into a summary. samples, when
// present, are validity-rate readings taken during the run and become a
// sparkline.
func FromRun(stats *report.RunStatistics, samples []float64) []pattern.Pattern {
	label := "Combination complete"
	if stats.StoppedEarly {
		label = fmt.Sprintf("Combination stopped at %s valid CPFs", count(stats.MaxValid))
	}

	validKind := pattern.KindSuccess
	if stats.Valid == 0 {
		validKind = pattern.KindWarning
	}
	formatKind := pattern.KindInfo
	if stats.FormatErrors > 0 {
		formatKind = pattern.KindError
	}

	items := []pattern.SummaryItem{
		{Label: "Candidate space", Value: count(stats.TotalCombinations), Kind: pattern.KindInfo},
		{Label: "Processed", Value: count(stats.Processed), Kind: pattern.KindInfo},
		{Label: "Valid", Value: count(stats.Valid), Kind: validKind},
		{Label: "Invalid", Value: count(stats.Invalid), Kind: pattern.KindInfo},
		{Label: "Repeated sequences", Value: count(stats.RepeatedSequences), Kind: pattern.KindInfo},
	}
	if stats.FormatErrors > 0 {
		items = append(items, pattern.SummaryItem{Label: "Format errors", Value: count(stats.FormatErrors), Kind: formatKind})
	}
	items = append(items,
		pattern.SummaryItem{Label: "Validity rate", Value: printer.Sprintf("%.2f%%", stats.ValidityRate), Kind: pattern.KindInfo},
		pattern.SummaryItem{Label: "Duration", Value: formatDuration(stats.DurationSeconds), Kind: pattern.KindInfo},
	)
	if stats.OutputPath != "" {
		items = append(items, pattern.SummaryItem{Label: "Output", Value: stats.OutputPath, Kind: pattern.KindInfo})
	}

	out := []pattern.Pattern{&pattern.Summary{Label: label, Kind: pattern.SummaryKindRun, Metrics: items}}
	if len(samples) > 0 {
		out = append(out, &pattern.Sparkline{Label: "Validity rate", Values: samples, Unit: "%"})
	}
	return out
}

// FromManifest lists the generated segment artifacts in index order.
func FromManifest(m *segment.Manifest) []pattern.Pattern {
	labels := make([]string, 0, len(m.Files))
	for label := range m.Files {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	rows := make([]pattern.TableRow, 0, len(labels))
	for _, label := range labels {
		b := m.Bounds[label]
		rows = append(rows, pattern.TableRow{
			Name:    m.Files[label],
			Value:   count(int64(b.High - b.Low + 1)),
			Kind:    pattern.KindSuccess,
			Details: fmt.Sprintf("%s [%d, %d]", label, b.Low, b.High),
		})
	}
	return []pattern.Pattern{
		&pattern.Summary{
			Label: "Segments generated",
			Kind:  pattern.SummaryKindSegments,
			Metrics: []pattern.SummaryItem{
				{Label: "Files", Value: count(int64(len(rows))), Kind: pattern.KindInfo},
				{Label: "Duration", Value: formatDuration(m.DurationSeconds), Kind: pattern.KindInfo},
			},
		},
		&pattern.Table{Label: "Artifacts", Rows: rows},
	}
}

// FromValidation pairs each input with its validation result.
func FromValidation(inputs []string, results []checksum.Result) []pattern.Pattern {
	rows := make([]pattern.TableRow, 0, len(results))
	var valid int64
	for i, r := range results {
		row := pattern.TableRow{Name: inputs[i], Value: "invalid", Kind: pattern.KindError}
		if r.Valid {
			valid++
			row.Value = "valid"
			row.Kind = pattern.KindSuccess
			row.Details = r.Formatted
		}
		rows = append(rows, row)
	}

	kind := pattern.KindSuccess
	if valid < int64(len(results)) {
		kind = pattern.KindError
	}
	return []pattern.Pattern{
		&pattern.Summary{
			Label: "Validation",
			Kind:  pattern.SummaryKindValidate,
			Metrics: []pattern.SummaryItem{
				{Label: "Valid", Value: fmt.Sprintf("%s of %s", count(valid), count(int64(len(results)))), Kind: kind},
			},
		},
		&pattern.Table{Label: "Inputs", Rows: rows},
	}
}

func formatDuration(seconds float64) string {
	return (time.Duration(seconds * float64(time.Second))).Round(time.Millisecond).String()
}
