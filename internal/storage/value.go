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
Package storage contains the typed value layer, the table engine, and the
database registry for MiniDB.

Value Layer Overview:
=====================

Every cell in a MiniDB table holds a Value: a tagged union over three
scalar kinds.

  - Integer: 64-bit signed integer
  - Float:   64-bit floating-point number
  - Text:    variable-length string

Value is a small comparable struct, so it can be used directly as a map
key. That property is what backs the primary-key and unique-column hash
indexes. Equality is structural and type-sensitive: Integer(1) and
Float(1.0) are distinct values, in indexes and in WHERE/join predicates
alike.

Conversion Rules:
=================

Declared column types drive conversion at INSERT/UPDATE time:

  - INT accepts an integer unchanged, truncates a float toward zero,
    and parses text as a base-10 integer.
  - FLOAT (and REAL, DOUBLE) accepts an integer or float literal, and
    parses text as a floating-point number.
  - TEXT (and VARCHAR, CHAR, STRING) stringifies any input.
  - Any other declared type passes the raw value through unchanged.
    Unknown types are accepted permissively, never rejected.
*/
package storage

import (
	"strconv"
	"strings"

	dberrors "minidb/internal/errors"
)

// ValueKind discriminates the scalar kinds a Value can hold.
type ValueKind int

// Value kind constants.
const (
	KindInteger ValueKind = iota // 64-bit signed integer
	KindFloat                    // 64-bit floating-point
	KindText                     // string
)

// String returns the kind name for display and error messages.
func (k ValueKind) String() string {
	switch k {
	case KindInteger:
		return "INTEGER"
	case KindFloat:
		return "FLOAT"
	case KindText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// Value is a typed scalar cell. Exactly one of the payload fields is
// meaningful, selected by Kind. The struct is comparable, so two Values
// are equal iff they have the same kind and the same payload.
type Value struct {
	Kind ValueKind
	Int  int64
	Flt  float64
	Str  string
}

// IntValue constructs an Integer value.
func IntValue(i int64) Value {
	return Value{Kind: KindInteger, Int: i}
}

// FloatValue constructs a Float value.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Flt: f}
}

// TextValue constructs a Text value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Str: s}
}

// Format renders the value the way it would appear in query output.
func (v Value) Format() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Flt, 'g', -1, 64)
	default:
		return v.Str
	}
}

// typeFamily groups the declared type synonyms the engine understands.
type typeFamily int

const (
	familyInt typeFamily = iota
	familyFloat
	familyText
	familyUnknown
)

// familyOf maps a declared column type to its conversion family.
// Synonyms: VARCHAR/CHAR/STRING behave as TEXT, REAL/DOUBLE as FLOAT.
// Anything unrecognized lands in familyUnknown and converts permissively.
func familyOf(declaredType string) typeFamily {
	switch strings.ToUpper(declaredType) {
	case "INT":
		return familyInt
	case "FLOAT", "REAL", "DOUBLE":
		return familyFloat
	case "TEXT", "VARCHAR", "CHAR", "STRING":
		return familyText
	default:
		return familyUnknown
	}
}

// Convert coerces a raw value to a column's declared type.
// Conversion is authoritative for storage: every cell that reaches a row
// has passed through Convert. Unknown declared types return the raw
// value unchanged.
func Convert(raw Value, declaredType string) (Value, error) {
	switch familyOf(declaredType) {
	case familyInt:
		switch raw.Kind {
		case KindInteger:
			return raw, nil
		case KindFloat:
			// Truncation toward zero, like integer coercion of a
			// numeric input.
			return IntValue(int64(raw.Flt)), nil
		default:
			i, err := strconv.ParseInt(strings.TrimSpace(raw.Str), 10, 64)
			if err != nil {
				return Value{}, dberrors.TypeMismatch(strings.ToUpper(declaredType), raw.Str)
			}
			return IntValue(i), nil
		}

	case familyFloat:
		switch raw.Kind {
		case KindInteger:
			return FloatValue(float64(raw.Int)), nil
		case KindFloat:
			return raw, nil
		default:
			f, err := strconv.ParseFloat(strings.TrimSpace(raw.Str), 64)
			if err != nil {
				return Value{}, dberrors.TypeMismatch(strings.ToUpper(declaredType), raw.Str)
			}
			return FloatValue(f), nil
		}

	case familyText:
		return TextValue(raw.Format()), nil

	default:
		return raw, nil
	}
}

// Validate reports whether a value already matches the declared type
// without converting it. Unknown declared types accept anything.
func Validate(v Value, declaredType string) bool {
	switch familyOf(declaredType) {
	case familyInt:
		return v.Kind == KindInteger
	case familyFloat:
		return v.Kind == KindInteger || v.Kind == KindFloat
	case familyText:
		return v.Kind == KindText
	default:
		return true
	}
}
