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
Package sql contains the lexer, parser, and executor for MiniDB's
SQL-like query language.

Lexer Overview:
===============

The Lexer transforms a raw query string into a stream of tokens the
Parser consumes one at a time.

	Input: "SELECT name FROM users WHERE id = 1"

	Output Tokens:
	  1. {TokenKeyword, "SELECT"}
	  2. {TokenIdent, "name"}
	  3. {TokenKeyword, "FROM"}
	  4. {TokenIdent, "users"}
	  5. {TokenKeyword, "WHERE"}
	  6. {TokenIdent, "id"}
	  7. {TokenEqual, "="}
	  8. {TokenNumber, "1"}
	  9. {TokenEOF, ""}

Keywords are case-insensitive and limited to the grammar this engine
supports: CREATE, TABLE, INSERT, INTO, VALUES, SELECT, FROM, WHERE,
UPDATE, SET, DELETE, JOIN, INNER, ON, PRIMARY, KEY, UNIQUE. Type names
(INT, TEXT, FLOAT, ...) are deliberately NOT keywords: the grammar
accepts any word as a declared type, so they stay plain identifiers.

Identifiers are case-sensitive and may contain letters, digits,
underscores, dots (qualified names like users.id), and the asterisk.

String literals are enclosed in single OR double quotes; the closing
quote must match the opening one. Numbers may carry a leading minus and
a decimal fraction.
*/
package sql

import (
	"strings"
	"unicode"
)

// TokenType represents the type of a lexical token.
type TokenType int

// Token type constants.
const (
	TokenEOF     TokenType = iota // End of input
	TokenIdent                    // Identifier (table name, column name, type name)
	TokenString                   // String literal ('hello' or "hello")
	TokenNumber                   // Numeric literal (123, -4, 3.14)
	TokenKeyword                  // Grammar keyword (SELECT, FROM, ...)
	TokenComma                    // Comma (,)
	TokenLParen                   // Left parenthesis (()
	TokenRParen                   // Right parenthesis ())
	TokenEqual                    // Equals sign (=)
)

// Token represents a single lexical unit from the input.
type Token struct {
	Type  TokenType
	Value string
}

// keywords is the set of reserved words, compared uppercase.
var keywords = map[string]bool{
	"CREATE": true, "TABLE": true,
	"INSERT": true, "INTO": true, "VALUES": true,
	"SELECT": true, "FROM": true, "WHERE": true,
	"UPDATE": true, "SET": true, "DELETE": true,
	"JOIN": true, "INNER": true, "ON": true,
	"PRIMARY": true, "KEY": true, "UNIQUE": true,
}

// Lexer transforms an input string into a stream of tokens.
// It is stateful: each NextToken call advances the position.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new Lexer for the given input string.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken advances the lexer and returns the next token.
//
// Recognition order:
//  1. End of input (TokenEOF)
//  2. Identifier or keyword (starts with letter, underscore, or *)
//  3. Number (starts with digit, or minus followed by a digit)
//  4. String literal (starts with ' or ")
//  5. Single-character tokens (, ( ) =)
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF}
	}

	ch := l.input[l.pos]

	// Identifier or keyword.
	if unicode.IsLetter(rune(ch)) || ch == '_' || ch == '*' {
		start := l.pos
		for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
			l.pos++
		}

		lit := l.input[start:l.pos]
		upper := strings.ToUpper(lit)
		if keywords[upper] {
			return Token{Type: TokenKeyword, Value: upper}
		}
		return Token{Type: TokenIdent, Value: lit}
	}

	// Number: digits with optional fraction, optionally signed.
	if unicode.IsDigit(rune(ch)) ||
		(ch == '-' && l.pos+1 < len(l.input) && unicode.IsDigit(rune(l.input[l.pos+1]))) {
		start := l.pos
		if ch == '-' {
			l.pos++
		}
		for l.pos < len(l.input) && unicode.IsDigit(rune(l.input[l.pos])) {
			l.pos++
		}
		if l.pos+1 < len(l.input) && l.input[l.pos] == '.' &&
			unicode.IsDigit(rune(l.input[l.pos+1])) {
			l.pos++
			for l.pos < len(l.input) && unicode.IsDigit(rune(l.input[l.pos])) {
				l.pos++
			}
		}
		return Token{Type: TokenNumber, Value: l.input[start:l.pos]}
	}

	// String literal: single or double quoted; the closing quote must
	// match the opening one.
	if ch == '\'' || ch == '"' {
		quote := ch
		l.pos++
		start := l.pos
		for l.pos < len(l.input) && l.input[l.pos] != quote {
			l.pos++
		}
		lit := l.input[start:l.pos]
		if l.pos < len(l.input) {
			l.pos++ // closing quote
		}
		return Token{Type: TokenString, Value: lit}
	}

	l.pos++
	switch ch {
	case ',':
		return Token{Type: TokenComma, Value: ","}
	case '(':
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		return Token{Type: TokenRParen, Value: ")"}
	case '=':
		return Token{Type: TokenEqual, Value: "="}
	}

	// Unknown character: skip it and keep going.
	return l.NextToken()
}

// isIdentChar reports whether ch may appear inside an identifier.
func isIdentChar(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) ||
		ch == '_' || ch == '.' || ch == '*'
}

// skipWhitespace advances the position past any whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}
