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
AST Overview:
=============

The parser produces a Statement: a closed tagged union with one struct
per statement kind. Each variant carries only the fields its executor
branch needs, so there is no stringly-typed field access anywhere
downstream of the parser.
*/
package sql

import (
	"minidb/internal/storage"
)

// Statement is the interface implemented by all parsed statement types.
// The six variants are CreateTableStmt, InsertStmt, SelectStmt,
// SelectJoinStmt, UpdateStmt, and DeleteStmt.
type Statement interface {
	statementNode()
}

// CreateTableStmt represents a CREATE TABLE statement.
//
// SQL Syntax:
//
//	CREATE TABLE <name> ( <col> <type> [PRIMARY KEY] [UNIQUE] {, ...} )
//
// Example:
//
//	CREATE TABLE users (id INT PRIMARY KEY, name TEXT, email TEXT UNIQUE)
//
// Exactly one primary key is honored; when several columns are marked,
// the last one wins. Unknown type names are accepted as declared.
type CreateTableStmt struct {
	TableName     string              // The table to create
	Columns       []storage.ColumnDef // Ordered column definitions
	PrimaryKey    string              // Name of the primary-key column
	UniqueColumns []string            // Columns carrying a UNIQUE constraint
}

// statementNode implements the Statement interface.
func (s CreateTableStmt) statementNode() {}

// InsertStmt represents an INSERT statement.
//
// SQL Syntax:
//
//	INSERT INTO <name> VALUES ( <v1>, <v2>, ... )
//
// Example:
//
//	INSERT INTO users VALUES (1, 'John Doe', 'john@example.com')
//
// Values are positional and must match the table's column count.
type InsertStmt struct {
	TableName string          // The target table
	Values    []storage.Value // Positional values, one per column
}

// statementNode implements the Statement interface.
func (s InsertStmt) statementNode() {}

// SelectStmt represents a SELECT statement without a join.
//
// SQL Syntax:
//
//	SELECT <* | col, col, ...> FROM <name> [WHERE <col> = <value>]
//
// The WHERE clause is restricted to a single equality predicate.
type SelectStmt struct {
	TableName string             // The table to read
	Columns   []string           // Requested columns, or ["*"]
	Where     *storage.Condition // Optional equality predicate (nil = all rows)
}

// statementNode implements the Statement interface.
func (s SelectStmt) statementNode() {}

// JoinClause is the ON condition of a join: one column from each table.
// The qualifying table names are recorded as written; the executor, not
// the parser, validates them against the joined tables.
type JoinClause struct {
	LeftTable   string
	LeftColumn  string
	RightTable  string
	RightColumn string
}

// SelectJoinStmt represents a SELECT with a single inner equi-join.
//
// SQL Syntax:
//
//	SELECT <* | col, ...> FROM <t1> [INNER] JOIN <t2> ON <t1>.<c1> = <t2>.<c2> [WHERE <col> = <value>]
//
// Example:
//
//	SELECT * FROM users JOIN orders ON users.id = orders.user_id
//
// Output columns are prefixed "<table>.<column>"; a WHERE predicate
// matches against those prefixed names.
type SelectJoinStmt struct {
	Columns    []string           // Requested columns, or ["*"]
	LeftTable  string             // First table named after FROM
	RightTable string             // Table named after JOIN
	Join       JoinClause         // The ON equality pair
	Where      *storage.Condition // Optional predicate on prefixed columns
}

// statementNode implements the Statement interface.
func (s SelectJoinStmt) statementNode() {}

// UpdateStmt represents an UPDATE statement.
//
// SQL Syntax:
//
//	UPDATE <name> SET <col>=<value> [, ...] [WHERE <col> = <value>]
//
// A missing WHERE clause parses but is rejected at execution time:
// blanket updates are disallowed.
type UpdateStmt struct {
	TableName string              // The target table
	Sets      []storage.SetClause // Ordered column assignments
	Where     *storage.Condition  // Optional equality predicate
}

// statementNode implements the Statement interface.
func (s UpdateStmt) statementNode() {}

// DeleteStmt represents a DELETE statement.
//
// SQL Syntax:
//
//	DELETE FROM <name> [WHERE <col> = <value>]
//
// Like UPDATE, execution refuses to run without a WHERE clause.
type DeleteStmt struct {
	TableName string             // The target table
	Where     *storage.Condition // Optional equality predicate
}

// statementNode implements the Statement interface.
func (s DeleteStmt) statementNode() {}
