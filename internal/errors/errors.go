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
Package errors provides structured error handling for MiniDB.

The errors package implements a structured error system with:
  - Error categories (Syntax, Execution, Constraint, Validation)
  - Error codes for programmatic handling
  - User-friendly error messages
  - Contextual detail for debugging
  - Error wrapping for root cause analysis

Error Categories:
  - SyntaxError: query parsing and grammar errors
  - ExecutionError: runtime failures during statement execution
  - ConstraintError: primary key and unique constraint violations
  - ValidationError: type conversion and input validation failures

Every error raised by the core is caught at the operation boundary and
converted into a failed Result; callers never see an uncaught fault.
*/
package errors

import (
	"fmt"
)

// ErrorCode represents a unique error identifier.
type ErrorCode int

const (
	// Syntax errors (1000-1999)
	ErrCodeSyntax           ErrorCode = 1000
	ErrCodeUnexpectedToken  ErrorCode = 1001
	ErrCodeUnsupportedQuery ErrorCode = 1002
	ErrCodeInvalidColumnDef ErrorCode = 1003
	ErrCodeInvalidSetClause ErrorCode = 1004

	// Execution errors (2000-2999)
	ErrCodeExecution           ErrorCode = 2000
	ErrCodeTableNotFound       ErrorCode = 2001
	ErrCodeTableAlreadyExists  ErrorCode = 2002
	ErrCodeColumnNotFound      ErrorCode = 2003
	ErrCodePrimaryKeyMissing   ErrorCode = 2004
	ErrCodeColumnCountMismatch ErrorCode = 2005
	ErrCodeMissingWhereClause  ErrorCode = 2006

	// Constraint errors (3000-3999)
	ErrCodeConstraint      ErrorCode = 3000
	ErrCodeDuplicateKey    ErrorCode = 3001
	ErrCodeUniqueViolation ErrorCode = 3002

	// Validation errors (4000-4999)
	ErrCodeValidation   ErrorCode = 4000
	ErrCodeTypeMismatch ErrorCode = 4001
)

// Category represents the error category.
type Category string

const (
	CategorySyntax     Category = "SYNTAX"
	CategoryExecution  Category = "EXECUTION"
	CategoryConstraint Category = "CONSTRAINT"
	CategoryValidation Category = "VALIDATION"
)

// DBError represents a structured error in MiniDB.
type DBError struct {
	Code     ErrorCode
	Category Category
	Message  string
	Detail   string
	Hint     string
	Cause    error
}

// Error implements the error interface.
func (e *DBError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *DBError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly error message.
func (e *DBError) UserMessage() string {
	msg := e.Message
	if e.Detail != "" {
		msg += fmt.Sprintf(" (%s)", e.Detail)
	}
	if e.Hint != "" {
		msg += fmt.Sprintf("\nHINT: %s", e.Hint)
	}
	return msg
}

// WithDetail adds detail to the error.
func (e *DBError) WithDetail(detail string) *DBError {
	e.Detail = detail
	return e
}

// WithHint adds a hint to the error.
func (e *DBError) WithHint(hint string) *DBError {
	e.Hint = hint
	return e
}

// WithCause adds a cause to the error.
func (e *DBError) WithCause(cause error) *DBError {
	e.Cause = cause
	return e
}

// ============================================================================
// Syntax Error Constructors
// ============================================================================

// NewSyntaxError creates a new syntax error.
func NewSyntaxError(message string) *DBError {
	return &DBError{
		Code:     ErrCodeSyntax,
		Category: CategorySyntax,
		Message:  message,
	}
}

// UnexpectedToken creates an error for unexpected tokens.
func UnexpectedToken(expected, got string) *DBError {
	return &DBError{
		Code:     ErrCodeUnexpectedToken,
		Category: CategorySyntax,
		Message:  fmt.Sprintf("unexpected token: expected %s, got %s", expected, got),
	}
}

// UnsupportedQuery creates an error for an unrecognized leading keyword.
func UnsupportedQuery() *DBError {
	return &DBError{
		Code:     ErrCodeUnsupportedQuery,
		Category: CategorySyntax,
		Message:  "Unsupported query type",
		Hint:     "Supported statements: CREATE TABLE, INSERT, SELECT, UPDATE, DELETE",
	}
}

// InvalidColumnDef creates an error for a malformed column definition.
func InvalidColumnDef(def string) *DBError {
	return &DBError{
		Code:     ErrCodeInvalidColumnDef,
		Category: CategorySyntax,
		Message:  fmt.Sprintf("Invalid column definition: %s", def),
		Hint:     "Each column needs at least a name and a type",
	}
}

// InvalidSetClause creates an error for a SET clause without an assignment.
func InvalidSetClause(clause string) *DBError {
	return &DBError{
		Code:     ErrCodeInvalidSetClause,
		Category: CategorySyntax,
		Message:  fmt.Sprintf("Invalid SET clause: %s", clause),
	}
}

// ============================================================================
// Execution Error Constructors
// ============================================================================

// NewExecutionError creates a new execution error.
func NewExecutionError(message string) *DBError {
	return &DBError{
		Code:     ErrCodeExecution,
		Category: CategoryExecution,
		Message:  message,
	}
}

// TableNotFound creates an error for missing tables.
func TableNotFound(table string) *DBError {
	return &DBError{
		Code:     ErrCodeTableNotFound,
		Category: CategoryExecution,
		Message:  fmt.Sprintf("Table '%s' does not exist", table),
	}
}

// TableAlreadyExists creates an error for duplicate table creation.
func TableAlreadyExists(table string) *DBError {
	return &DBError{
		Code:     ErrCodeTableAlreadyExists,
		Category: CategoryExecution,
		Message:  fmt.Sprintf("Table '%s' already exists", table),
	}
}

// ColumnNotFound creates an error for missing columns.
func ColumnNotFound(column, table string) *DBError {
	return &DBError{
		Code:     ErrCodeColumnNotFound,
		Category: CategoryExecution,
		Message:  fmt.Sprintf("Column '%s' not found in table '%s'", column, table),
	}
}

// PrimaryKeyMissing creates an error for a CREATE TABLE without a usable
// primary key, or one that names a column outside the column list.
func PrimaryKeyMissing(key string) *DBError {
	e := &DBError{
		Code:     ErrCodePrimaryKeyMissing,
		Category: CategoryExecution,
		Message:  "No PRIMARY KEY specified",
	}
	if key != "" {
		e.Message = fmt.Sprintf("Primary key '%s' not found in columns", key)
	}
	return e
}

// ColumnCountMismatch creates an error for INSERT with the wrong arity.
func ColumnCountMismatch(expected, got int) *DBError {
	return &DBError{
		Code:     ErrCodeColumnCountMismatch,
		Category: CategoryExecution,
		Message:  fmt.Sprintf("Expected %d values, got %d", expected, got),
	}
}

// MissingWhereClause creates an error for UPDATE/DELETE without a predicate.
func MissingWhereClause(statement string) *DBError {
	return &DBError{
		Code:     ErrCodeMissingWhereClause,
		Category: CategoryExecution,
		Message:  fmt.Sprintf("%s without WHERE clause is not supported", statement),
	}
}

// ============================================================================
// Constraint Error Constructors
// ============================================================================

// DuplicateKey creates an error for primary key violations.
func DuplicateKey(key string) *DBError {
	return &DBError{
		Code:     ErrCodeDuplicateKey,
		Category: CategoryConstraint,
		Message:  fmt.Sprintf("Primary key violation: '%s' already exists", key),
	}
}

// UniqueViolation creates an error for unique column violations.
func UniqueViolation(column, value string) *DBError {
	return &DBError{
		Code:     ErrCodeUniqueViolation,
		Category: CategoryConstraint,
		Message:  fmt.Sprintf("Unique constraint violation: '%s' = '%s' already exists", column, value),
	}
}

// ============================================================================
// Validation Error Constructors
// ============================================================================

// TypeMismatch creates an error for failed type conversions.
func TypeMismatch(targetType, value string) *DBError {
	return &DBError{
		Code:     ErrCodeTypeMismatch,
		Category: CategoryValidation,
		Message:  fmt.Sprintf("Cannot convert '%s' to %s", value, targetType),
	}
}

// TypeMismatchForColumn wraps a conversion failure with the column it hit.
func TypeMismatchForColumn(column string, cause error) *DBError {
	return &DBError{
		Code:     ErrCodeTypeMismatch,
		Category: CategoryValidation,
		Message:  fmt.Sprintf("Type error for column '%s': %v", column, cause),
		Cause:    cause,
	}
}

// ============================================================================
// Helper Functions
// ============================================================================

// IsSyntaxError checks if an error is a syntax error.
func IsSyntaxError(err error) bool {
	if e, ok := err.(*DBError); ok {
		return e.Category == CategorySyntax
	}
	return false
}

// IsConstraintError checks if an error is a constraint violation.
func IsConstraintError(err error) bool {
	if e, ok := err.(*DBError); ok {
		return e.Category == CategoryConstraint
	}
	return false
}

// GetCode returns the error code if it's a DBError, or 0 otherwise.
func GetCode(err error) ErrorCode {
	if e, ok := err.(*DBError); ok {
		return e.Code
	}
	return 0
}

// FormatError formats an error for user display.
func FormatError(err error) string {
	if e, ok := err.(*DBError); ok {
		return e.UserMessage()
	}
	return fmt.Sprintf("ERROR: %v", err)
}
