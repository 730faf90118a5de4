// Package profiles carries the static per-model hardware knowledge backing
// the fallback resolution path: which Bluetooth controller generation and CPU
// platform each supported Mac model shipped with.
package profiles

import (
	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
)

// Table is an immutable in-memory model table.
type Table struct {
	entries map[string]oclp.StaticProfile
}

// NewTable copies entries into a Table.
func NewTable(entries map[string]oclp.StaticProfile) *Table {
	m := make(map[string]oclp.StaticProfile, len(entries))
	for model, p := range entries {
		m[model] = p
	}
	return &Table{entries: m}
}

// Lookup implements oclp.ModelTable.
func (t *Table) Lookup(model string) (oclp.StaticProfile, bool) {
	p, ok := t.entries[model]
	return p, ok
}

// Len reports the number of models in the table.
func (t *Table) Len() int { return len(t.entries) }
