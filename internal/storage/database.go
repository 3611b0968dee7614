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

package storage

import (
	"fmt"
	"sort"

	dberrors "minidb/internal/errors"
)

// Database owns the set of tables by name. It is an explicitly
// constructed object, not a singleton: every front end builds its own
// Database (or shares one by reference) and disposes of it with the
// process.
//
// A table is created once and lives until process end; there is no
// DROP TABLE. The design assumes single-caller, single-thread use; a
// multi-threaded embedding must add its own synchronization around the
// whole Database.
type Database struct {
	tables map[string]*Table
}

// NewDatabase constructs an empty database.
func NewDatabase() *Database {
	return &Database{tables: make(map[string]*Table)}
}

// CreateTable constructs and registers a new table.
// It fails if the name is taken or the primary key is not among the
// given columns.
func (db *Database) CreateTable(name string, columns []ColumnDef, primaryKey string, uniqueColumns []string) Result {
	if _, exists := db.tables[name]; exists {
		return failure(dberrors.TableAlreadyExists(name))
	}

	found := false
	for _, col := range columns {
		if col.Name == primaryKey {
			found = true
			break
		}
	}
	if !found {
		return failure(dberrors.PrimaryKeyMissing(primaryKey))
	}

	db.tables[name] = NewTable(name, columns, primaryKey, uniqueColumns)

	return Result{
		Success: true,
		Message: fmt.Sprintf("Table '%s' created successfully", name),
	}
}

// Table returns the named table, or false if it does not exist.
func (db *Database) Table(name string) (*Table, bool) {
	t, ok := db.tables[name]
	return t, ok
}

// TableNames returns all table names in sorted order.
func (db *Database) TableNames() []string {
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
