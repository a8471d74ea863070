package pattern

// Table is a list of named rows, such as generated artifacts or
// validated inputs.
type Table struct {
	Label string     `json:"label"`
	Rows  []TableRow `json:"rows"`
}

// TableRow is a single entry of a Table.
type TableRow struct {
	Name    string `json:"name"`
	Value   string `json:"value,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

func (t *Table) Type() PatternType { return PatternTypeTable }
