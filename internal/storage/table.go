/*
 * Copyright (c) 2026 The MiniDB Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Table Engine Overview:
======================

A Table owns one table's rows and indexes, and executes insert, select,
update, and delete against its own storage.

Storage Layout:
===============

  - rows:         ordered slice of Row; append-only positionally, but
                  DELETE may remove elements, shifting positions.
  - primaryIndex: hash index, primary-key Value -> row position.
  - uniqueIndexes: one hash index per UNIQUE column, Value -> position.

Invariant: the primary index and every unique index are exact bijective
reflections of the corresponding column's values in rows. Any row removal
invalidates positions at or after the removed one, so DELETE always ends
with a full index rebuild rather than incremental patching.

Operation Semantics:
====================

  - Insert is all-or-nothing: on any failure no row is appended and no
    index is touched.
  - Select uses the primary index for O(1) primary-key equality lookups
    and a linear scan for everything else.
  - Update and Delete refuse to run without a WHERE clause.
  - Update converts every SET value before mutating any row, and guards
    primary-key/unique SET clauses against collisions so the index
    invariant survives.
*/
package storage

import (
	"fmt"

	dberrors "minidb/internal/errors"
)

// ColumnDef describes one column: its name and declared type.
// Immutable once the table is created.
type ColumnDef struct {
	Name string
	Type string
}

// Row is a mapping from column name to Value, one entry per column.
// Column order is fixed by the owning table's column list.
type Row map[string]Value

// Condition is a single equality predicate: column = value.
type Condition struct {
	Column string
	Value  Value
}

// SetClause is one column assignment in an UPDATE statement.
type SetClause struct {
	Column string
	Value  Value
}

// Result is the uniform outcome of every table and executor operation.
// For SELECT-family operations Columns and Data carry the projected
// output; Data rows are positional sequences aligned to Columns.
type Result struct {
	Success bool
	Message string
	Columns []string
	Data    [][]Value
}

// failure converts an error into a failed Result.
func failure(err error) Result {
	return Result{Success: false, Message: err.Error()}
}

// Table is one relational table: schema, row storage, and hash indexes.
type Table struct {
	Name       string
	Columns    []ColumnDef
	PrimaryKey string

	columnNames []string
	columnTypes map[string]string
	unique      map[string]bool

	rows          []Row
	primaryIndex  map[Value]int
	uniqueIndexes map[string]map[Value]int
}

// NewTable constructs an empty table. Indexes start empty and are
// maintained incrementally on INSERT.
func NewTable(name string, columns []ColumnDef, primaryKey string, uniqueColumns []string) *Table {
	t := &Table{
		Name:          name,
		Columns:       columns,
		PrimaryKey:    primaryKey,
		columnNames:   make([]string, 0, len(columns)),
		columnTypes:   make(map[string]string, len(columns)),
		unique:        make(map[string]bool),
		primaryIndex:  make(map[Value]int),
		uniqueIndexes: make(map[string]map[Value]int),
	}
	for _, col := range columns {
		t.columnNames = append(t.columnNames, col.Name)
		t.columnTypes[col.Name] = col.Type
	}
	for _, col := range uniqueColumns {
		t.unique[col] = true
		t.uniqueIndexes[col] = make(map[Value]int)
	}
	return t
}

// ColumnNames returns the column names in declared order.
func (t *Table) ColumnNames() []string {
	return t.columnNames
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columnTypes[name]
	return ok
}

// RowCount returns the current number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Rows returns the raw row storage in positional order. Front ends use
// this for direct table browsing; mutating the returned rows bypasses
// every constraint check.
func (t *Table) Rows() []Row {
	return t.rows
}

// Insert appends one row built from positional values.
//
// The value count must match the column count. Each value is converted
// to its column's declared type; the first conversion failure aborts and
// names the offending column. The primary-key check runs before the
// unique-column checks, and all checks run before any mutation, so a
// failed insert leaves rows and indexes untouched.
func (t *Table) Insert(values []Value) Result {
	if len(values) != len(t.Columns) {
		return failure(dberrors.ColumnCountMismatch(len(t.Columns), len(values)))
	}

	row := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		v, err := Convert(values[i], col.Type)
		if err != nil {
			return failure(dberrors.TypeMismatchForColumn(col.Name, err))
		}
		row[col.Name] = v
	}

	pk := row[t.PrimaryKey]
	if _, exists := t.primaryIndex[pk]; exists {
		return failure(dberrors.DuplicateKey(pk.Format()))
	}

	for col := range t.unique {
		if _, exists := t.uniqueIndexes[col][row[col]]; exists {
			return failure(dberrors.UniqueViolation(col, row[col].Format()))
		}
	}

	pos := len(t.rows)
	t.rows = append(t.rows, row)
	t.primaryIndex[pk] = pos
	for col := range t.unique {
		t.uniqueIndexes[col][row[col]] = pos
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Inserted 1 row into '%s'", t.Name),
	}
}

// Select returns rows projected to the requested columns.
//
// An empty column list or ['*'] selects all columns in declared order.
// A WHERE predicate on the primary key resolves through the primary
// index (zero or one row); any other column falls back to a linear scan.
// No WHERE returns every row.
func (t *Table) Select(columns []string, where *Condition) Result {
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		columns = t.columnNames
	}

	var matched []Row
	switch {
	case where == nil:
		matched = t.rows
	case where.Column == t.PrimaryKey:
		if pos, ok := t.primaryIndex[where.Value]; ok {
			matched = []Row{t.rows[pos]}
		}
	default:
		for _, row := range t.rows {
			if v, ok := row[where.Column]; ok && v == where.Value {
				matched = append(matched, row)
			}
		}
	}

	data := make([][]Value, 0, len(matched))
	for _, row := range matched {
		data = append(data, projectRow(row, columns))
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Selected %d row(s)", len(data)),
		Columns: columns,
		Data:    data,
	}
}

// projectRow extracts the requested columns from a row in order.
// A column the row does not carry projects as empty text.
func projectRow(row Row, columns []string) []Value {
	out := make([]Value, len(columns))
	for i, col := range columns {
		if v, ok := row[col]; ok {
			out[i] = v
		} else {
			out[i] = TextValue("")
		}
	}
	return out
}

// Update assigns SET values to every row matching the WHERE predicate.
//
// A missing WHERE clause is rejected outright. Matching rows are found
// by linear scan, never through an index. All SET values are converted
// before any row mutates, so a conversion failure leaves the table
// unchanged. SET clauses naming columns the table does not declare are
// ignored.
//
// A SET clause that targets the primary key or a unique column is
// checked for collisions first: the new value must not already belong
// to a row outside the match set, and a multi-row match cannot funnel
// into a single constrained value. After such an update the affected
// indexes are rebuilt, keeping them exact.
func (t *Table) Update(sets []SetClause, where *Condition) Result {
	if where == nil {
		return failure(dberrors.MissingWhereClause("UPDATE"))
	}

	var matched []int
	for pos, row := range t.rows {
		if v, ok := row[where.Column]; ok && v == where.Value {
			matched = append(matched, pos)
		}
	}
	if len(matched) == 0 {
		return Result{Success: true, Message: "Updated 0 row(s)"}
	}

	// Convert everything up front; nothing mutates on failure.
	converted := make([]SetClause, 0, len(sets))
	touchesIndexed := false
	for _, set := range sets {
		colType, ok := t.columnTypes[set.Column]
		if !ok {
			continue
		}
		v, err := Convert(set.Value, colType)
		if err != nil {
			return failure(dberrors.TypeMismatchForColumn(set.Column, err))
		}
		converted = append(converted, SetClause{Column: set.Column, Value: v})
		if set.Column == t.PrimaryKey || t.unique[set.Column] {
			touchesIndexed = true
		}
	}

	if touchesIndexed {
		if err := t.checkIndexedUpdate(converted, matched); err != nil {
			return failure(err)
		}
	}

	for _, pos := range matched {
		for _, set := range converted {
			t.rows[pos][set.Column] = set.Value
		}
	}
	if touchesIndexed {
		t.rebuildIndexes()
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Updated %d row(s)", len(matched)),
	}
}

// checkIndexedUpdate verifies that assigning new primary-key or unique
// values to the matched rows cannot produce duplicates.
func (t *Table) checkIndexedUpdate(sets []SetClause, matched []int) error {
	inMatch := make(map[int]bool, len(matched))
	for _, pos := range matched {
		inMatch[pos] = true
	}

	for _, set := range sets {
		var index map[Value]int
		switch {
		case set.Column == t.PrimaryKey:
			index = t.primaryIndex
		case t.unique[set.Column]:
			index = t.uniqueIndexes[set.Column]
		default:
			continue
		}

		// All matched rows receive the same value, so more than one
		// matched row guarantees a duplicate.
		if len(matched) > 1 {
			if set.Column == t.PrimaryKey {
				return dberrors.DuplicateKey(set.Value.Format())
			}
			return dberrors.UniqueViolation(set.Column, set.Value.Format())
		}

		if pos, exists := index[set.Value]; exists && !inMatch[pos] {
			if set.Column == t.PrimaryKey {
				return dberrors.DuplicateKey(set.Value.Format())
			}
			return dberrors.UniqueViolation(set.Column, set.Value.Format())
		}
	}
	return nil
}

// Delete removes every row matching the WHERE predicate.
//
// A missing WHERE clause is rejected outright. Matching positions come
// from a linear scan; removal proceeds in descending position order so
// the remaining positions stay valid during the pass. Afterwards every
// index is rebuilt unconditionally, regardless of how many rows went.
func (t *Table) Delete(where *Condition) Result {
	if where == nil {
		return failure(dberrors.MissingWhereClause("DELETE"))
	}

	var matched []int
	for pos, row := range t.rows {
		if v, ok := row[where.Column]; ok && v == where.Value {
			matched = append(matched, pos)
		}
	}
	if len(matched) == 0 {
		return Result{Success: true, Message: "Deleted 0 row(s)"}
	}

	for i := len(matched) - 1; i >= 0; i-- {
		pos := matched[i]
		t.rows = append(t.rows[:pos], t.rows[pos+1:]...)
	}
	t.rebuildIndexes()

	return Result{
		Success: true,
		Message: fmt.Sprintf("Deleted %d row(s)", len(matched)),
	}
}

// rebuildIndexes clears and repopulates the primary index and every
// unique index from the current row storage.
func (t *Table) rebuildIndexes() {
	t.primaryIndex = make(map[Value]int, len(t.rows))
	for col := range t.unique {
		t.uniqueIndexes[col] = make(map[Value]int, len(t.rows))
	}
	for pos, row := range t.rows {
		t.primaryIndex[row[t.PrimaryKey]] = pos
		for col := range t.unique {
			t.uniqueIndexes[col][row[col]] = pos
		}
	}
}
