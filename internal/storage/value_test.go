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

func TestConvertInt(t *testing.T) {
	v, err := Convert(IntValue(42), "INT")
	require.NoError(t, err)
	assert.Equal(t, IntValue(42), v)

	// Float input truncates toward zero.
	v, err = Convert(FloatValue(3.9), "INT")
	require.NoError(t, err)
	assert.Equal(t, IntValue(3), v)

	v, err = Convert(FloatValue(-3.9), "INT")
	require.NoError(t, err)
	assert.Equal(t, IntValue(-3), v)

	v, err = Convert(TextValue("17"), "INT")
	require.NoError(t, err)
	assert.Equal(t, IntValue(17), v)

	_, err = Convert(TextValue("abc"), "INT")
	require.Error(t, err)

	// Text holding a float literal is not an integer.
	_, err = Convert(TextValue("3.5"), "INT")
	require.Error(t, err)
}

func TestConvertFloat(t *testing.T) {
	for _, typeName := range []string{"FLOAT", "REAL", "DOUBLE"} {
		v, err := Convert(IntValue(2), typeName)
		require.NoError(t, err)
		assert.Equal(t, FloatValue(2), v)

		v, err = Convert(FloatValue(2.5), typeName)
		require.NoError(t, err)
		assert.Equal(t, FloatValue(2.5), v)

		v, err = Convert(TextValue("2.5"), typeName)
		require.NoError(t, err)
		assert.Equal(t, FloatValue(2.5), v)

		_, err = Convert(TextValue("abc"), typeName)
		require.Error(t, err)
	}
}

func TestConvertText(t *testing.T) {
	for _, typeName := range []string{"TEXT", "VARCHAR", "CHAR", "STRING"} {
		v, err := Convert(TextValue("hello"), typeName)
		require.NoError(t, err)
		assert.Equal(t, TextValue("hello"), v)
	}

	// TEXT stringifies any input.
	v, err := Convert(IntValue(5), "TEXT")
	require.NoError(t, err)
	assert.Equal(t, TextValue("5"), v)

	v, err = Convert(FloatValue(999.99), "TEXT")
	require.NoError(t, err)
	assert.Equal(t, TextValue("999.99"), v)
}

func TestConvertUnknownTypePassesThrough(t *testing.T) {
	// Unknown declared types are permissive: the raw value survives.
	v, err := Convert(TextValue("anything"), "GEOMETRY")
	require.NoError(t, err)
	assert.Equal(t, TextValue("anything"), v)

	v, err = Convert(FloatValue(1.5), "GEOMETRY")
	require.NoError(t, err)
	assert.Equal(t, FloatValue(1.5), v)
}

func TestConvertTypeNamesCaseInsensitive(t *testing.T) {
	v, err := Convert(TextValue("7"), "int")
	require.NoError(t, err)
	assert.Equal(t, IntValue(7), v)
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate(IntValue(1), "INT"))
	assert.False(t, Validate(TextValue("1"), "INT"))

	assert.True(t, Validate(TextValue("x"), "TEXT"))
	assert.False(t, Validate(IntValue(1), "VARCHAR"))

	// FLOAT accepts integers without conversion.
	assert.True(t, Validate(IntValue(1), "FLOAT"))
	assert.True(t, Validate(FloatValue(1.5), "DOUBLE"))
	assert.False(t, Validate(TextValue("1.5"), "REAL"))

	// Unknown types accept anything.
	assert.True(t, Validate(TextValue("?"), "GEOMETRY"))
}

func TestValueEqualityIsTypeSensitive(t *testing.T) {
	// Integer 1 and Float 1.0 are distinct values.
	assert.NotEqual(t, IntValue(1), FloatValue(1))
	assert.Equal(t, IntValue(1), IntValue(1))
	assert.NotEqual(t, TextValue("1"), IntValue(1))
}

func TestValueFormat(t *testing.T) {
	assert.Equal(t, "42", IntValue(42).Format())
	assert.Equal(t, "-3", IntValue(-3).Format())
	assert.Equal(t, "2.5", FloatValue(2.5).Format())
	assert.Equal(t, "hello", TextValue("hello").Format())
}
