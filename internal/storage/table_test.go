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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newUsersTable builds the canonical test table:
// users(id INT PRIMARY KEY, name TEXT, email TEXT UNIQUE).
func newUsersTable() *Table {
	return NewTable("users",
		[]ColumnDef{
			{Name: "id", Type: "INT"},
			{Name: "name", Type: "TEXT"},
			{Name: "email", Type: "TEXT"},
		},
		"id",
		[]string{"email"},
	)
}

// assertIndexesExact verifies that the primary index and every unique
// index are exact bijective reflections of the current rows.
func assertIndexesExact(t *testing.T, tbl *Table) {
	t.Helper()

	require.Len(t, tbl.primaryIndex, len(tbl.rows))
	for pos, row := range tbl.rows {
		got, ok := tbl.primaryIndex[row[tbl.PrimaryKey]]
		require.True(t, ok, "primary index missing entry for row %d", pos)
		assert.Equal(t, pos, got, "primary index points at wrong position")
	}

	for col, index := range tbl.uniqueIndexes {
		require.Len(t, index, len(tbl.rows))
		for pos, row := range tbl.rows {
			got, ok := index[row[col]]
			require.True(t, ok, "unique index %q missing entry for row %d", col, pos)
			assert.Equal(t, pos, got)
		}
	}
}

func TestInsert(t *testing.T) {
	tbl := newUsersTable()

	result := tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")})
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Inserted 1 row into 'users'", result.Message)
	assert.Equal(t, 1, tbl.RowCount())
	assertIndexesExact(t, tbl)
}

func TestInsertConvertsByDeclaredType(t *testing.T) {
	tbl := newUsersTable()

	// "2" converts to Integer for the INT column; 42 stringifies for TEXT.
	result := tbl.Insert([]Value{TextValue("2"), IntValue(42), TextValue("a@x.com")})
	require.True(t, result.Success, result.Message)

	row := tbl.Rows()[0]
	assert.Equal(t, IntValue(2), row["id"])
	assert.Equal(t, TextValue("42"), row["name"])
}

func TestInsertColumnCountMismatch(t *testing.T) {
	tbl := newUsersTable()

	result := tbl.Insert([]Value{IntValue(1)})
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "Expected 3 values, got 1")
	assert.Equal(t, 0, tbl.RowCount())
}

func TestInsertTypeErrorNamesColumn(t *testing.T) {
	tbl := newUsersTable()

	result := tbl.Insert([]Value{TextValue("abc"), TextValue("John"), TextValue("j@x.com")})
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "column 'id'")
	assert.Equal(t, 0, tbl.RowCount())
}

func TestInsertPrimaryKeyViolation(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Insert([]Value{IntValue(1), TextValue("Jane"), TextValue("jane@x.com")})
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "Primary key violation")
	assert.Equal(t, 1, tbl.RowCount())
	assertIndexesExact(t, tbl)
}

func TestInsertUniqueViolation(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Insert([]Value{IntValue(2), TextValue("Jane"), TextValue("j@x.com")})
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "Unique constraint violation")
	assert.Equal(t, 1, tbl.RowCount())
	assertIndexesExact(t, tbl)
}

func TestInsertIsAtomic(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	pkSize := len(tbl.primaryIndex)
	uniqueSize := len(tbl.uniqueIndexes["email"])

	// Each failure mode must leave rows and index sizes untouched.
	failures := [][]Value{
		{IntValue(2)}, // count mismatch
		{TextValue("abc"), TextValue("x"), TextValue("y@x.com")}, // type error
		{IntValue(1), TextValue("x"), TextValue("y@x.com")},      // pk dup
		{IntValue(2), TextValue("x"), TextValue("j@x.com")},      // unique dup
	}
	for _, values := range failures {
		result := tbl.Insert(values)
		require.False(t, result.Success)
		assert.Equal(t, 1, tbl.RowCount())
		assert.Len(t, tbl.primaryIndex, pkSize)
		assert.Len(t, tbl.uniqueIndexes["email"], uniqueSize)
	}
}

func TestSelectAll(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)
	require.True(t, tbl.Insert([]Value{IntValue(2), TextValue("Jane"), TextValue("jane@x.com")}).Success)

	result := tbl.Select(nil, nil)
	require.True(t, result.Success)
	assert.Equal(t, "Selected 2 row(s)", result.Message)
	assert.Equal(t, []string{"id", "name", "email"}, result.Columns)
	require.Len(t, result.Data, 2)
	assert.Equal(t, []Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}, result.Data[0])
}

func TestSelectStarEqualsAll(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	star := tbl.Select([]string{"*"}, nil)
	all := tbl.Select(nil, nil)
	assert.Equal(t, all.Columns, star.Columns)
	assert.Equal(t, all.Data, star.Data)
}

func TestSelectByPrimaryKeyUsesIndex(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)
	require.True(t, tbl.Insert([]Value{IntValue(2), TextValue("Jane"), TextValue("jane@x.com")}).Success)

	result := tbl.Select(nil, &Condition{Column: "id", Value: IntValue(2)})
	require.True(t, result.Success)
	require.Len(t, result.Data, 1)
	assert.Equal(t, TextValue("Jane"), result.Data[0][1])

	// Missing key yields an empty, successful result.
	result = tbl.Select(nil, &Condition{Column: "id", Value: IntValue(99)})
	require.True(t, result.Success)
	assert.Empty(t, result.Data)
}

func TestSelectLinearScanOnNonIndexedColumn(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)
	require.True(t, tbl.Insert([]Value{IntValue(2), TextValue("John"), TextValue("jane@x.com")}).Success)

	// Duplicate matches all come back, in storage order.
	result := tbl.Select(nil, &Condition{Column: "name", Value: TextValue("John")})
	require.True(t, result.Success)
	assert.Len(t, result.Data, 2)
}

func TestSelectProjectionOrder(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Select([]string{"email", "id"}, nil)
	require.True(t, result.Success)
	assert.Equal(t, []string{"email", "id"}, result.Columns)
	assert.Equal(t, []Value{TextValue("j@x.com"), IntValue(1)}, result.Data[0])
}

func TestSelectNumericEqualityIsStrict(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	// Float 1.0 does not match Integer 1.
	result := tbl.Select(nil, &Condition{Column: "id", Value: FloatValue(1)})
	require.True(t, result.Success)
	assert.Empty(t, result.Data)
}

func TestSelectRoundTrip(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(7), TextValue("Ada"), TextValue("ada@x.com")}).Success)

	result := tbl.Select(nil, &Condition{Column: "id", Value: IntValue(7)})
	require.True(t, result.Success)
	require.Len(t, result.Data, 1)
	assert.Equal(t, []Value{IntValue(7), TextValue("Ada"), TextValue("ada@x.com")}, result.Data[0])
}

func TestUpdateRequiresWhere(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Update([]SetClause{{Column: "name", Value: TextValue("X")}}, nil)
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "UPDATE without WHERE clause")
	assert.Equal(t, TextValue("John"), tbl.Rows()[0]["name"])
}

func TestUpdate(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Update(
		[]SetClause{{Column: "name", Value: TextValue("Jonathan")}},
		&Condition{Column: "id", Value: IntValue(1)},
	)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Updated 1 row(s)", result.Message)
	assert.Equal(t, TextValue("Jonathan"), tbl.Rows()[0]["name"])
	assertIndexesExact(t, tbl)
}

func TestUpdateNoMatches(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Update(
		[]SetClause{{Column: "name", Value: TextValue("X")}},
		&Condition{Column: "id", Value: IntValue(99)},
	)
	require.True(t, result.Success)
	assert.Equal(t, "Updated 0 row(s)", result.Message)
}

func TestUpdateIgnoresUnknownColumns(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Update(
		[]SetClause{{Column: "nickname", Value: TextValue("Johnny")}},
		&Condition{Column: "id", Value: IntValue(1)},
	)
	require.True(t, result.Success)
	assert.Equal(t, "Updated 1 row(s)", result.Message)
	_, exists := tbl.Rows()[0]["nickname"]
	assert.False(t, exists)
}

func TestUpdateConversionFailureLeavesRowsUntouched(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	// The name assignment would succeed on its own, but the id
	// assignment cannot convert; nothing may change.
	result := tbl.Update(
		[]SetClause{
			{Column: "name", Value: TextValue("Changed")},
			{Column: "id", Value: TextValue("not-a-number")},
		},
		&Condition{Column: "id", Value: IntValue(1)},
	)
	require.False(t, result.Success)
	assert.Equal(t, TextValue("John"), tbl.Rows()[0]["name"])
	assert.Equal(t, IntValue(1), tbl.Rows()[0]["id"])
	assertIndexesExact(t, tbl)
}

func TestUpdatePrimaryKeyRebuildsIndex(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Update(
		[]SetClause{{Column: "id", Value: IntValue(10)}},
		&Condition{Column: "id", Value: IntValue(1)},
	)
	require.True(t, result.Success, result.Message)
	assertIndexesExact(t, tbl)

	// The new key resolves through the index; the old one is gone.
	found := tbl.Select(nil, &Condition{Column: "id", Value: IntValue(10)})
	assert.Len(t, found.Data, 1)
	gone := tbl.Select(nil, &Condition{Column: "id", Value: IntValue(1)})
	assert.Empty(t, gone.Data)
}

func TestUpdatePrimaryKeyCollisionRejected(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)
	require.True(t, tbl.Insert([]Value{IntValue(2), TextValue("Jane"), TextValue("jane@x.com")}).Success)

	result := tbl.Update(
		[]SetClause{{Column: "id", Value: IntValue(2)}},
		&Condition{Column: "id", Value: IntValue(1)},
	)
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "Primary key violation")
	assert.Equal(t, IntValue(1), tbl.Rows()[0]["id"])
	assertIndexesExact(t, tbl)
}

func TestUpdateUniqueCollisionRejected(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)
	require.True(t, tbl.Insert([]Value{IntValue(2), TextValue("Jane"), TextValue("jane@x.com")}).Success)

	result := tbl.Update(
		[]SetClause{{Column: "email", Value: TextValue("jane@x.com")}},
		&Condition{Column: "id", Value: IntValue(1)},
	)
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "Unique constraint violation")
	assertIndexesExact(t, tbl)
}

func TestUpdateUniqueToOwnValueAllowed(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	// Re-assigning a row's own unique value is not a collision.
	result := tbl.Update(
		[]SetClause{{Column: "email", Value: TextValue("j@x.com")}},
		&Condition{Column: "id", Value: IntValue(1)},
	)
	require.True(t, result.Success, result.Message)
	assertIndexesExact(t, tbl)
}

func TestUpdateMultiRowOntoUniqueValueRejected(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)
	require.True(t, tbl.Insert([]Value{IntValue(2), TextValue("John"), TextValue("jane@x.com")}).Success)

	// Both rows match the scan; funneling them into one unique value
	// would break the index invariant.
	result := tbl.Update(
		[]SetClause{{Column: "email", Value: TextValue("one@x.com")}},
		&Condition{Column: "name", Value: TextValue("John")},
	)
	require.False(t, result.Success)
	assertIndexesExact(t, tbl)
}

func TestDeleteRequiresWhere(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Delete(nil)
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "DELETE without WHERE clause")
	assert.Equal(t, 1, tbl.RowCount())
}

func TestDelete(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Delete(&Condition{Column: "id", Value: IntValue(1)})
	require.True(t, result.Success)
	assert.Equal(t, "Deleted 1 row(s)", result.Message)
	assert.Equal(t, 0, tbl.RowCount())
	assertIndexesExact(t, tbl)
}

func TestDeleteNoMatches(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)

	result := tbl.Delete(&Condition{Column: "id", Value: IntValue(99)})
	require.True(t, result.Success)
	assert.Equal(t, "Deleted 0 row(s)", result.Message)
	assert.Equal(t, 1, tbl.RowCount())
}

func TestDeleteMultipleMatchesRebuildsIndexes(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("a@x.com")}).Success)
	require.True(t, tbl.Insert([]Value{IntValue(2), TextValue("Jane"), TextValue("b@x.com")}).Success)
	require.True(t, tbl.Insert([]Value{IntValue(3), TextValue("John"), TextValue("c@x.com")}).Success)
	require.True(t, tbl.Insert([]Value{IntValue(4), TextValue("Jill"), TextValue("d@x.com")}).Success)

	result := tbl.Delete(&Condition{Column: "name", Value: TextValue("John")})
	require.True(t, result.Success)
	assert.Equal(t, "Deleted 2 row(s)", result.Message)
	assert.Equal(t, 2, tbl.RowCount())
	assertIndexesExact(t, tbl)

	// Surviving rows keep their relative order and stay reachable
	// through the rebuilt primary index.
	assert.Equal(t, IntValue(2), tbl.Rows()[0]["id"])
	assert.Equal(t, IntValue(4), tbl.Rows()[1]["id"])
	found := tbl.Select(nil, &Condition{Column: "id", Value: IntValue(4)})
	assert.Len(t, found.Data, 1)
}

func TestInsertAfterDeleteReusesKey(t *testing.T) {
	tbl := newUsersTable()
	require.True(t, tbl.Insert([]Value{IntValue(1), TextValue("John"), TextValue("j@x.com")}).Success)
	require.True(t, tbl.Delete(&Condition{Column: "id", Value: IntValue(1)}).Success)

	result := tbl.Insert([]Value{IntValue(1), TextValue("Johnny"), TextValue("j@x.com")})
	require.True(t, result.Success, result.Message)
	assertIndexesExact(t, tbl)
}
