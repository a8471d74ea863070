package pattern

// SummaryKind identifies what produced a summary so renderers can dispatch on it.
type SummaryKind string

const (
	SummaryKindRun      SummaryKind = "run"
	SummaryKindSegments SummaryKind = "segments"
	SummaryKindValidate SummaryKind = "validate"
)

// Summary represents high-level metrics and counts.
type Summary struct {
	Label   string        `json:"label"`
	Kind    SummaryKind   `json:"kind"`
	Metrics []SummaryItem `json:"metrics"`
}

// SummaryItem is a single metric in a summary.
type SummaryItem struct {
	Label string `json:"label"` // e.g., "Valid", "Processed"
	Value string `json:"value"` // formatted value
	Kind  string `json:"kind"`  // one of the Kind constants
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
