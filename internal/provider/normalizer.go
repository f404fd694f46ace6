package provider

// Normalizer maps one provider's raw columns onto the canonical record shape.
// It fills the source-level fields only (date, teams, competition, result
// text, lineup, counts); season, age, player team, venue and opponent are
// derived by later stages.
type Normalizer interface {
	Provider() Provider
	// RequiredColumns lists the columns without which no record shape can be
	// inferred. A raw table missing all of them is unusable.
	RequiredColumns() []string
	// Prepare applies table-level cleanup such as dropping artifact columns.
	Prepare(t RawTable) RawTable
	// Normalize maps one raw row. skip is true for rows that are not match
	// records at all (for example repeated header rows).
	Normalize(row RawRow) (m Match, issues RowIssues, skip bool)
}

// Unmapped is a free-text name that was not found in an alias table.
type Unmapped struct {
	Kind  string
	Value string
}

// RowIssues collects the recoverable problems found while normalizing a row.
type RowIssues struct {
	BadDate    bool
	BadNumeric []string // canonical column names that failed to parse
	Unmapped   []Unmapped
}

// AddBadNumeric records a numeric column that fell back to a missing marker.
func (i *RowIssues) AddBadNumeric(column string) {
	i.BadNumeric = append(i.BadNumeric, column)
}

// ResolveSides resolves the two team names of a match. The alias table only
// lists the player's own sides, so an unknown opponent is expected; names
// are recorded only when neither side is known.
func (i *RowIssues) ResolveSides(table *AliasTable, home, away string) (string, string) {
	h, homeKnown := table.Resolve(home)
	a, awayKnown := table.Resolve(away)
	if homeKnown || awayKnown {
		return h, a
	}
	for _, name := range []string{h, a} {
		if name != "" {
			i.Unmapped = append(i.Unmapped, Unmapped{Kind: table.Kind, Value: name})
		}
	}
	return h, a
}

// Resolve runs name through table and records it when it is not known.
func (i *RowIssues) Resolve(table *AliasTable, name string) string {
	resolved, known := table.Resolve(name)
	if !known {
		i.Unmapped = append(i.Unmapped, Unmapped{Kind: table.Kind, Value: resolved})
	}
	return resolved
}
