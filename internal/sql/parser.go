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
Parser Overview:
================

The Parser turns a query string into one of six Statement variants, or
a syntax error. Dispatch is by case-insensitive leading keyword:

	CREATE TABLE  -> CreateTableStmt
	INSERT INTO   -> InsertStmt
	SELECT        -> SelectStmt, or SelectJoinStmt when the query
	                 contains a JOIN token anywhere
	UPDATE        -> UpdateStmt
	DELETE FROM   -> DeleteStmt

Anything else is an "unsupported query type" error.

Literal Rules:
==============

A quoted token (single or double quotes, matching) is Text, verbatim.
A bare token is tried as an integer, then as a float, and falls back to
Text. These rules are shared by INSERT value lists, SET clauses, and
WHERE predicates.

The parser is permissive the way the grammar demands: it does not
validate table or column existence (the executor does), the qualifying
table names in an ON clause are recorded unchecked, and trailing tokens
after a complete statement are ignored.
*/
package sql

import (
	"strconv"
	"strings"

	dberrors "minidb/internal/errors"
	"minidb/internal/storage"
)

// Parser consumes the token stream for a single query string.
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
}

// NewParser creates a Parser primed on the given input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Load cur and peek.
	p.advance()
	p.advance()
	return p
}

// advance shifts the token window forward by one.
func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

// expectKeyword consumes the current token if it is the given keyword.
func (p *Parser) expectKeyword(kw string) bool {
	if p.cur.Type == TokenKeyword && p.cur.Value == kw {
		p.advance()
		return true
	}
	return false
}

// Parse parses a query string into a Statement.
func Parse(input string) (Statement, error) {
	p := NewParser(input)

	if p.cur.Type != TokenKeyword {
		return nil, dberrors.UnsupportedQuery()
	}

	switch p.cur.Value {
	case "CREATE":
		p.advance()
		if !p.expectKeyword("TABLE") {
			return nil, dberrors.UnsupportedQuery()
		}
		return p.parseCreateTable()

	case "INSERT":
		p.advance()
		if !p.expectKeyword("INTO") {
			return nil, dberrors.UnsupportedQuery()
		}
		return p.parseInsert()

	case "SELECT":
		p.advance()
		if containsJoin(input) {
			return p.parseSelectJoin()
		}
		return p.parseSelect()

	case "UPDATE":
		p.advance()
		return p.parseUpdate()

	case "DELETE":
		p.advance()
		if !p.expectKeyword("FROM") {
			return nil, dberrors.UnsupportedQuery()
		}
		return p.parseDelete()

	default:
		return nil, dberrors.UnsupportedQuery()
	}
}

// containsJoin reports whether the query carries a JOIN token anywhere.
// This decides which SELECT grammar applies.
func containsJoin(input string) bool {
	l := NewLexer(input)
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			return false
		}
		if tok.Type == TokenKeyword && tok.Value == "JOIN" {
			return true
		}
	}
}

// parseCreateTable parses the column list of a CREATE TABLE statement.
//
// Each column definition needs at least a name and a type. The PRIMARY
// and KEY keywords anywhere in a definition mark that column as the
// primary key; assignment overwrites, so the last marked column wins.
// UNIQUE anywhere in a definition marks the column unique.
func (p *Parser) parseCreateTable() (Statement, error) {
	syntaxErr := dberrors.NewSyntaxError("Invalid CREATE TABLE syntax")

	if p.cur.Type != TokenIdent {
		return nil, syntaxErr
	}
	tableName := p.cur.Value
	p.advance()

	if p.cur.Type != TokenLParen {
		return nil, syntaxErr
	}
	p.advance()

	stmt := CreateTableStmt{TableName: tableName}

	for {
		// Collect the tokens of one column definition.
		var def []Token
		for p.cur.Type != TokenComma && p.cur.Type != TokenRParen {
			if p.cur.Type == TokenEOF {
				return nil, syntaxErr
			}
			def = append(def, p.cur)
			p.advance()
		}

		if len(def) < 2 {
			return nil, dberrors.InvalidColumnDef(defString(def))
		}

		colName := def[0].Value
		colType := strings.ToUpper(def[1].Value)
		stmt.Columns = append(stmt.Columns, storage.ColumnDef{Name: colName, Type: colType})

		hasPrimary, hasKey := false, false
		for _, tok := range def {
			if tok.Type != TokenKeyword {
				continue
			}
			switch tok.Value {
			case "PRIMARY":
				hasPrimary = true
			case "KEY":
				hasKey = true
			case "UNIQUE":
				stmt.UniqueColumns = append(stmt.UniqueColumns, colName)
			}
		}
		if hasPrimary && hasKey {
			stmt.PrimaryKey = colName
		}

		if p.cur.Type == TokenRParen {
			break
		}
		p.advance() // consume the comma
	}

	if stmt.PrimaryKey == "" {
		return nil, dberrors.PrimaryKeyMissing("")
	}

	return stmt, nil
}

// defString reassembles a column definition for an error message.
func defString(def []Token) string {
	parts := make([]string, len(def))
	for i, tok := range def {
		parts[i] = tok.Value
	}
	return strings.Join(parts, " ")
}

// parseInsert parses the table name and value list of an INSERT.
func (p *Parser) parseInsert() (Statement, error) {
	syntaxErr := dberrors.NewSyntaxError("Invalid INSERT syntax")

	if p.cur.Type != TokenIdent {
		return nil, syntaxErr
	}
	stmt := InsertStmt{TableName: p.cur.Value}
	p.advance()

	if !p.expectKeyword("VALUES") {
		return nil, syntaxErr
	}
	if p.cur.Type != TokenLParen {
		return nil, syntaxErr
	}
	p.advance()

	for p.cur.Type != TokenRParen {
		v, err := p.parseValueSegment()
		if err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, v)

		if p.cur.Type == TokenComma {
			p.advance()
			continue
		}
		if p.cur.Type != TokenRParen {
			return nil, syntaxErr
		}
	}

	return stmt, nil
}

// parseValueSegment consumes one value between commas. A single token
// goes through the shared literal rules; several bare tokens in a row
// (an unquoted string with spaces) collapse into one Text value.
func (p *Parser) parseValueSegment() (storage.Value, error) {
	var toks []Token
	for p.cur.Type != TokenComma && p.cur.Type != TokenRParen {
		if p.cur.Type == TokenEOF {
			return storage.Value{}, dberrors.NewSyntaxError("Invalid INSERT syntax")
		}
		toks = append(toks, p.cur)
		p.advance()
	}
	if len(toks) == 0 {
		return storage.Value{}, dberrors.NewSyntaxError("Invalid INSERT syntax")
	}
	if len(toks) == 1 {
		return literalValue(toks[0]), nil
	}

	parts := make([]string, len(toks))
	for i, tok := range toks {
		parts[i] = tok.Value
	}
	return storage.TextValue(strings.Join(parts, " ")), nil
}

// literalValue applies the shared single-value rules to one token.
func literalValue(tok Token) storage.Value {
	if tok.Type == TokenString {
		return storage.TextValue(tok.Value)
	}
	if i, err := strconv.ParseInt(tok.Value, 10, 64); err == nil {
		return storage.IntValue(i)
	}
	if f, err := strconv.ParseFloat(tok.Value, 64); err == nil {
		return storage.FloatValue(f)
	}
	return storage.TextValue(tok.Value)
}

// parseColumnList parses `*` or a comma-separated column list, up to
// the FROM keyword.
func parseColumnList(p *Parser) ([]string, bool) {
	var columns []string
	for {
		if p.cur.Type != TokenIdent {
			return nil, false
		}
		columns = append(columns, p.cur.Value)
		p.advance()

		if p.cur.Type == TokenComma {
			p.advance()
			continue
		}
		break
	}
	return columns, len(columns) > 0
}

// parseWhere parses an optional trailing WHERE equality predicate.
// Returns nil when no WHERE keyword is present.
func (p *Parser) parseWhere() (*storage.Condition, error) {
	if p.cur.Type != TokenKeyword || p.cur.Value != "WHERE" {
		return nil, nil
	}
	p.advance()

	if p.cur.Type != TokenIdent {
		return nil, dberrors.NewSyntaxError("Invalid WHERE clause")
	}
	column := p.cur.Value
	p.advance()

	if p.cur.Type != TokenEqual {
		return nil, dberrors.NewSyntaxError("Invalid WHERE clause")
	}
	p.advance()

	if p.cur.Type == TokenEOF {
		return nil, dberrors.NewSyntaxError("Invalid WHERE clause")
	}
	value := literalValue(p.cur)
	p.advance()

	return &storage.Condition{Column: column, Value: value}, nil
}

// parseSelect parses a SELECT without a join.
func (p *Parser) parseSelect() (Statement, error) {
	syntaxErr := dberrors.NewSyntaxError("Invalid SELECT syntax")

	columns, ok := parseColumnList(p)
	if !ok {
		return nil, syntaxErr
	}
	if !p.expectKeyword("FROM") {
		return nil, syntaxErr
	}
	if p.cur.Type != TokenIdent {
		return nil, syntaxErr
	}
	stmt := SelectStmt{TableName: p.cur.Value, Columns: columns}
	p.advance()

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	return stmt, nil
}

// parseSelectJoin parses a SELECT with a single inner equi-join.
// The ON clause's qualifying table names are recorded but not checked
// against the FROM/JOIN tables; that validation happens at execution.
func (p *Parser) parseSelectJoin() (Statement, error) {
	syntaxErr := dberrors.NewSyntaxError(
		"Invalid JOIN syntax. Expected: SELECT ... FROM table1 JOIN table2 ON table1.col = table2.col")

	columns, ok := parseColumnList(p)
	if !ok {
		return nil, syntaxErr
	}
	if !p.expectKeyword("FROM") {
		return nil, syntaxErr
	}
	if p.cur.Type != TokenIdent {
		return nil, syntaxErr
	}
	stmt := SelectJoinStmt{Columns: columns, LeftTable: p.cur.Value}
	p.advance()

	p.expectKeyword("INNER") // optional
	if !p.expectKeyword("JOIN") {
		return nil, syntaxErr
	}
	if p.cur.Type != TokenIdent {
		return nil, syntaxErr
	}
	stmt.RightTable = p.cur.Value
	p.advance()

	if !p.expectKeyword("ON") {
		return nil, syntaxErr
	}

	leftTable, leftCol, ok := splitQualified(p.cur)
	if !ok {
		return nil, syntaxErr
	}
	p.advance()

	if p.cur.Type != TokenEqual {
		return nil, syntaxErr
	}
	p.advance()

	rightTable, rightCol, ok := splitQualified(p.cur)
	if !ok {
		return nil, syntaxErr
	}
	p.advance()

	stmt.Join = JoinClause{
		LeftTable:   leftTable,
		LeftColumn:  leftCol,
		RightTable:  rightTable,
		RightColumn: rightCol,
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	return stmt, nil
}

// splitQualified splits a table.column identifier token.
func splitQualified(tok Token) (table, column string, ok bool) {
	if tok.Type != TokenIdent {
		return "", "", false
	}
	parts := strings.SplitN(tok.Value, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// parseUpdate parses the SET list and optional WHERE of an UPDATE.
// Each SET clause must carry an '='; the list runs non-greedily up to
// an optional trailing WHERE.
func (p *Parser) parseUpdate() (Statement, error) {
	syntaxErr := dberrors.NewSyntaxError("Invalid UPDATE syntax")

	if p.cur.Type != TokenIdent {
		return nil, syntaxErr
	}
	stmt := UpdateStmt{TableName: p.cur.Value}
	p.advance()

	if !p.expectKeyword("SET") {
		return nil, syntaxErr
	}

	for {
		if p.cur.Type != TokenIdent {
			return nil, dberrors.InvalidSetClause(p.cur.Value)
		}
		column := p.cur.Value
		p.advance()

		if p.cur.Type != TokenEqual {
			return nil, dberrors.InvalidSetClause(column)
		}
		p.advance()

		if p.cur.Type == TokenEOF {
			return nil, dberrors.InvalidSetClause(column)
		}
		stmt.Sets = append(stmt.Sets, storage.SetClause{
			Column: column,
			Value:  literalValue(p.cur),
		})
		p.advance()

		if p.cur.Type == TokenComma {
			p.advance()
			continue
		}
		break
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	return stmt, nil
}

// parseDelete parses the table name and optional WHERE of a DELETE.
func (p *Parser) parseDelete() (Statement, error) {
	if p.cur.Type != TokenIdent {
		return nil, dberrors.NewSyntaxError("Invalid DELETE syntax")
	}
	stmt := DeleteStmt{TableName: p.cur.Value}
	p.advance()

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	return stmt, nil
}
