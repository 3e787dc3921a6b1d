package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SortField is one ORDER BY term. Field is a projection property name.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// predicate is a WHERE fragment using "?" for its arguments. Placeholders are
// numbered when the statement is assembled.
type predicate struct {
	text string
	args []any
}

// Builder assembles SELECT statements over a ProjectionMap.
//
// The count and page statements of one Builder share the same FROM clause and
// predicates, so a page and its total always describe the same rows.
type Builder struct {
	projection  *ProjectionMap
	predicates  []predicate
	sort        []SortField
	defaultSort []SortField
	tieBreak    *SortField
}

// NewBuilder starts a statement over projection. defaultSort applies when no
// explicit order is set.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// ParseSortFields reads "title,-createdAt" into ascending title then
// descending createdAt. Blank terms are skipped; empty input yields nil.
func ParseSortFields(s string) []SortField {
	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		name, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// OrderByFields replaces the default order. Fields the projection does not
// map are dropped so client input never reaches the statement verbatim.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = b.sort[:0]
	for _, f := range fields {
		if b.projection.HasColumn(f.Field) {
			b.sort = append(b.sort, f)
		}
	}
	return b
}

// TieBreak appends field as the last ORDER BY term so rows with equal sort
// keys keep a stable position across pages.
func (b *Builder) TieBreak(field string, descending bool) *Builder {
	b.tieBreak = &SortField{Field: field, Descending: descending}
	return b
}

// WhereEquals adds field = value. Nil values and nil pointers add nothing.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.Where(b.projection.Column(field)+" = ?", value)
}

// WhereNotNull adds field IS NOT NULL.
func (b *Builder) WhereNotNull(field string) *Builder {
	return b.Where(b.projection.Column(field) + " IS NOT NULL")
}

// WhereContains adds a case-insensitive substring match on one field.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	return b.WhereSearch(value, field)
}

// WhereSearch matches value as a case-insensitive substring of any of fields.
// LIKE wildcards in value match literally. Nil or empty values add nothing.
func (b *Builder) WhereSearch(value *string, fields ...string) *Builder {
	if value == nil || strings.TrimSpace(*value) == "" || len(fields) == 0 {
		return b
	}

	pattern := "%" + escapeLike(strings.TrimSpace(*value)) + "%"
	terms := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		terms[i] = b.projection.Column(f) + " ILIKE ?"
		args[i] = pattern
	}

	text := terms[0]
	if len(terms) > 1 {
		text = "(" + strings.Join(terms, " OR ") + ")"
	}
	return b.Where(text, args...)
}

// BuildCount returns SELECT COUNT(*) over the current predicates.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.whereClause()
	return "SELECT COUNT(*) FROM " + b.projection.From() + where, args
}

// BuildPage returns the ordered statement for the given 1-based page.
func (b *Builder) BuildPage(page, limit int) (string, []any) {
	where, args := b.whereClause()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(),
		b.projection.From(),
		where,
		b.orderClause(),
		limit,
		(page-1)*limit,
	), args
}

// BuildSingle selects the row whose idField equals id. Predicates are ignored.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.From(),
		b.projection.Column(idField),
	), []any{id}
}

// BuildFirst selects at most one row matching the current predicates.
func (b *Builder) BuildFirst() (string, []any) {
	where, args := b.whereClause()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s LIMIT 1",
		b.projection.Columns(),
		b.projection.From(),
		where,
	), args
}

// Where adds a raw predicate using "?" placeholders for args. text is part of
// the statement and must never carry client input.
func (b *Builder) Where(text string, args ...any) *Builder {
	b.predicates = append(b.predicates, predicate{text: text, args: args})
	return b
}

func (b *Builder) whereClause() (string, []any) {
	if len(b.predicates) == 0 {
		return "", nil
	}

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(" WHERE ")
	for i, p := range b.predicates {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		next := 0
		for _, r := range p.text {
			if r != '?' {
				sb.WriteRune(r)
				continue
			}
			args = append(args, p.args[next])
			next++
			sb.WriteString("$" + strconv.Itoa(len(args)))
		}
	}
	return sb.String(), args
}

func (b *Builder) orderClause() string {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if b.tieBreak != nil {
		fields = append(fields[:len(fields):len(fields)], *b.tieBreak)
	}
	if len(fields) == 0 {
		return ""
	}

	terms := make([]string, len(fields))
	for i, f := range fields {
		dir := " ASC"
		if f.Descending {
			dir = " DESC"
		}
		terms[i] = b.projection.Column(f.Field) + dir
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
