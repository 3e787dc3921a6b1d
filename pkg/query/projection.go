// Package query builds parameterized PostgreSQL SELECT statements from
// projection maps, so list endpoints filter, search, sort, and paginate
// through one code path.
package query

import (
	"strings"
)

// ProjectionMap maps response property names to qualified columns. It owns
// the FROM clause: the base table plus any joins declared on it.
type ProjectionMap struct {
	from    strings.Builder
	base    string
	current string
	columns map[string]string
	folded  map[string]string
	order   []string
}

// NewProjectionMap starts a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	p := &ProjectionMap{
		base:    schema + "." + table + " " + alias,
		current: alias,
		columns: make(map[string]string),
		folded:  make(map[string]string),
	}
	p.from.WriteString(p.base)
	return p
}

// Project exposes column of the most recently joined table (or the base
// table) as property name.
func (p *ProjectionMap) Project(column, name string) *ProjectionMap {
	qualified := p.current + "." + column
	p.columns[name] = qualified
	p.folded[strings.ToLower(name)] = qualified
	p.order = append(p.order, qualified)
	return p
}

// Join appends "joinType schema.table alias ON on" to the FROM clause.
// Subsequent Project calls qualify columns with alias.
func (p *ProjectionMap) Join(schema, table, alias, joinType, on string) *ProjectionMap {
	p.from.WriteString(" " + joinType + " " + schema + "." + table + " " + alias + " ON " + on)
	p.current = alias
	return p
}

// Table returns the base table reference ("public.videos v").
func (p *ProjectionMap) Table() string {
	return p.base
}

// From returns the base table followed by every declared join.
func (p *ProjectionMap) From() string {
	return p.from.String()
}

// Column resolves a property name to its qualified column. Lookup is exact
// first and then case-insensitive; unknown names are returned unchanged so
// callers may pass raw column references such as "l.liked_by".
func (p *ProjectionMap) Column(name string) string {
	if col, ok := p.lookup(name); ok {
		return col
	}
	return name
}

// HasColumn reports whether name resolves to a projected property.
func (p *ProjectionMap) HasColumn(name string) bool {
	_, ok := p.lookup(name)
	return ok
}

// Columns returns the SELECT list in projection order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.order, ", ")
}

func (p *ProjectionMap) lookup(name string) (string, bool) {
	if col, ok := p.columns[name]; ok {
		return col, true
	}
	col, ok := p.folded[strings.ToLower(name)]
	return col, ok
}
