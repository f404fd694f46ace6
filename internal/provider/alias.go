package provider

import (
	"sort"
	"strings"
)

// AliasTable maps inconsistent source-provided names to canonical names.
// Lookups are exact after trimming; values absent from the table pass through
// unchanged and are treated as already canonical.
type AliasTable struct {
	Kind      string // "team" or "competition", used in reports
	aliases   map[string]string
	canonical map[string]struct{}
}

// NewAliasTable builds a table from alias → canonical pairs.
func NewAliasTable(kind string, pairs map[string]string) *AliasTable {
	t := &AliasTable{
		Kind:      kind,
		aliases:   make(map[string]string, len(pairs)),
		canonical: make(map[string]struct{}, len(pairs)),
	}
	for alias, canon := range pairs {
		t.aliases[alias] = canon
		t.canonical[canon] = struct{}{}
	}
	return t
}

// Resolve returns the canonical form of name. known is false when name is
// neither an alias nor a canonical value of the table; the trimmed input is
// returned unchanged in that case.
func (t *AliasTable) Resolve(name string) (resolved string, known bool) {
	name = strings.TrimSpace(name)
	if t == nil || name == "" {
		return name, name == ""
	}
	if canon, ok := t.aliases[name]; ok {
		return canon, true
	}
	_, ok := t.canonical[name]
	return name, ok
}

// Names returns the sorted canonical names, for closest-match suggestions.
func (t *AliasTable) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.canonical))
	for name := range t.canonical {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of alias entries.
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.aliases)
}
