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
Executor Overview:
==================

The Executor is the single entry point front ends use:

	db := storage.NewDatabase()
	exec := sql.NewExecutor(db)
	result := exec.Execute("SELECT * FROM users WHERE id = 1")

Execute parses the query, routes the parsed statement to the owning
table's operation (or to table creation), and returns the uniform
Result. The two-table join is the one operation the Executor performs
itself, row by row, rather than delegating to a table.

Every failure (syntax, missing table, constraint violation) comes
back as a Result with Success=false and a message. An unexpected panic
from deeper layers is recovered and reported as a generic execution
error; no fault ever propagates to the caller.
*/
package sql

import (
	"fmt"

	dberrors "minidb/internal/errors"
	"minidb/internal/logging"
	"minidb/internal/storage"
)

// Executor routes parsed statements to table operations on its Database.
type Executor struct {
	db     *storage.Database
	logger *logging.Logger
}

// NewExecutor creates an Executor over the given database.
func NewExecutor(db *storage.Database) *Executor {
	return &Executor{
		db:     db,
		logger: logging.NewLogger("executor"),
	}
}

// Database returns the underlying database. Front ends may use it for
// direct table browsing; Execute remains the primary access path.
func (e *Executor) Database() *storage.Database {
	return e.db
}

// Execute parses and runs a single query, returning the uniform Result.
func (e *Executor) Execute(query string) (result storage.Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Recovered from panic during execution", "panic", r)
			result = storage.Result{
				Success: false,
				Message: fmt.Sprintf("Error executing query: %v", r),
			}
		}
	}()

	e.logger.Debug("Executing query", "query", query)

	stmt, err := Parse(query)
	if err != nil {
		e.logger.Debug("Parse failed", "error", err)
		return storage.Result{Success: false, Message: err.Error()}
	}

	switch s := stmt.(type) {
	case CreateTableStmt:
		return e.db.CreateTable(s.TableName, s.Columns, s.PrimaryKey, s.UniqueColumns)

	case InsertStmt:
		t, ok := e.db.Table(s.TableName)
		if !ok {
			return tableMissing(s.TableName)
		}
		return t.Insert(s.Values)

	case SelectStmt:
		t, ok := e.db.Table(s.TableName)
		if !ok {
			return tableMissing(s.TableName)
		}
		return t.Select(s.Columns, s.Where)

	case SelectJoinStmt:
		return e.executeJoin(s)

	case UpdateStmt:
		t, ok := e.db.Table(s.TableName)
		if !ok {
			return tableMissing(s.TableName)
		}
		return t.Update(s.Sets, s.Where)

	case DeleteStmt:
		t, ok := e.db.Table(s.TableName)
		if !ok {
			return tableMissing(s.TableName)
		}
		return t.Delete(s.Where)

	default:
		return storage.Result{Success: false, Message: "Unsupported query type"}
	}
}

// tableMissing builds the failed Result for an unknown table name.
func tableMissing(name string) storage.Result {
	return storage.Result{
		Success: false,
		Message: dberrors.TableNotFound(name).Error(),
	}
}

// executeJoin runs a nested-loop inner join between two tables.
//
// Both tables and both join columns must exist. For every (left row,
// right row) pair whose join-column values compare equal (structural,
// type-sensitive equality), the rows merge into one combined row keyed
// "<table>.<column>" across the full cross of both schemas. A WHERE
// predicate then filters on those prefixed keys.
//
// No index accelerates the join, even when a join column is a primary
// key: the cost is always O(n*m).
func (e *Executor) executeJoin(s SelectJoinStmt) storage.Result {
	left, ok := e.db.Table(s.LeftTable)
	if !ok {
		return tableMissing(s.LeftTable)
	}
	right, ok := e.db.Table(s.RightTable)
	if !ok {
		return tableMissing(s.RightTable)
	}

	leftCol := s.Join.LeftColumn
	rightCol := s.Join.RightColumn
	if !left.HasColumn(leftCol) {
		return storage.Result{
			Success: false,
			Message: dberrors.ColumnNotFound(leftCol, s.LeftTable).Error(),
		}
	}
	if !right.HasColumn(rightCol) {
		return storage.Result{
			Success: false,
			Message: dberrors.ColumnNotFound(rightCol, s.RightTable).Error(),
		}
	}

	var joined []storage.Row
	for _, leftRow := range left.Rows() {
		leftVal := leftRow[leftCol]
		for _, rightRow := range right.Rows() {
			if leftVal != rightRow[rightCol] {
				continue
			}
			merged := make(storage.Row, len(left.Columns)+len(right.Columns))
			for _, col := range left.ColumnNames() {
				merged[s.LeftTable+"."+col] = leftRow[col]
			}
			for _, col := range right.ColumnNames() {
				merged[s.RightTable+"."+col] = rightRow[col]
			}
			joined = append(joined, merged)
		}
	}

	if s.Where != nil {
		filtered := joined[:0]
		for _, row := range joined {
			if v, ok := row[s.Where.Column]; ok && v == s.Where.Value {
				filtered = append(filtered, row)
			}
		}
		joined = filtered
	}

	var outputColumns []string
	if len(s.Columns) == 1 && s.Columns[0] == "*" {
		for _, col := range left.ColumnNames() {
			outputColumns = append(outputColumns, s.LeftTable+"."+col)
		}
		for _, col := range right.ColumnNames() {
			outputColumns = append(outputColumns, s.RightTable+"."+col)
		}
	} else {
		outputColumns = s.Columns
	}

	data := make([][]storage.Value, 0, len(joined))
	for _, row := range joined {
		projected := make([]storage.Value, len(outputColumns))
		for i, col := range outputColumns {
			if v, ok := row[col]; ok {
				projected[i] = v
			} else {
				projected[i] = storage.TextValue("")
			}
		}
		data = append(data, projected)
	}

	return storage.Result{
		Success: true,
		Message: fmt.Sprintf("Selected %d row(s) from JOIN", len(data)),
		Columns: outputColumns,
		Data:    data,
	}
}
