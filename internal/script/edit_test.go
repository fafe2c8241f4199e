// internal/script/edit_test.go
package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, name, input string) *SourceFile {
	t.Helper()
	sf, err := Parse(name, []byte(input))
	require.NoError(t, err)
	return sf
}

func TestSetValues_ParamSplice(t *testing.T) {
	// Only the value text may change; every surrounding byte stays.
	input := "// keep me\nParam(damage, 10)\n// and me\n"
	sf := mustParse(t, "weapons.scr", input)

	err := sf.SetValues(mustParseAddr(t, "damage"), []Literal{NewNumber(25)})
	require.NoError(t, err)

	assert.Equal(t, "// keep me\nParam(damage, 25)\n// and me\n", string(sf.Render()))
}

func TestDelete_AssignmentInsideBlock(t *testing.T) {
	sf := mustParse(t, "config.ini", "Tuning { speed = 5 }")

	err := sf.Delete(mustParseAddr(t, "Tuning.speed"))
	require.NoError(t, err)

	assert.Equal(t, "Tuning {  }", string(sf.Render()))
}

func TestDelete_Idempotence(t *testing.T) {
	sf := mustParse(t, "config.ini", "Tuning { speed = 5 }")
	addr := mustParseAddr(t, "Tuning.speed")

	require.NoError(t, sf.Delete(addr))

	err := sf.Delete(addr)
	require.ErrorIs(t, err, ErrAddressNotFound)

	err = sf.SetValues(addr, []Literal{NewNumber(9)})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestDelete_BlockRemovesSubtree(t *testing.T) {
	input := "before = 1\nTuning {\n\tspeed = 5\n}\nafter = 2\n"
	sf := mustParse(t, "config.ini", input)

	require.NoError(t, sf.Delete(mustParseAddr(t, "Tuning")))
	assert.Equal(t, "before = 1\n\nafter = 2\n", string(sf.Render()))

	// Children of a deleted block are gone with it.
	err := sf.SetValues(mustParseAddr(t, "Tuning.speed"), []Literal{NewNumber(9)})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestSetValues_TypeMismatch(t *testing.T) {
	sf := mustParse(t, "config.ini", "Tuning {\n\tspeed = 5\n}\n")

	testCases := []struct {
		name   string
		addr   string
		values []Literal
	}{
		{"list into scalar property", "Tuning.speed", []Literal{NewNumber(1), NewNumber(2)}},
		{"empty values into scalar property", "Tuning.speed", nil},
		{"values onto a block", "Tuning", []Literal{NewNumber(1)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := sf.SetValues(mustParseAddr(t, tc.addr), tc.values)
			assert.ErrorIs(t, err, ErrTypeMismatch)
		})
	}

	// Nothing may have leaked into the rendering.
	assert.Equal(t, "Tuning {\n\tspeed = 5\n}\n", string(sf.Render()))
}

func TestSetValues_LastWriteWins(t *testing.T) {
	sf := mustParse(t, "weapons.scr", "Param(damage, 10)\n")
	addr := mustParseAddr(t, "damage")

	require.NoError(t, sf.SetValues(addr, []Literal{NewNumber(20)}))
	require.NoError(t, sf.SetValues(addr, []Literal{NewNumber(25)}))

	assert.Equal(t, "Param(damage, 25)\n", string(sf.Render()))
}

func TestSetValues_KeepsQuotingShape(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		addr     string
		value    Literal
		expected string
	}{
		{
			name:     "string over bare identifier stays bare",
			input:    `Param("CatSlot", CategoryType_Melee);`,
			addr:     "CatSlot",
			value:    NewString("CategoryType_Fire"),
			expected: `Param("CatSlot", CategoryType_Fire);`,
		},
		{
			name:     "string over quoted original stays quoted",
			input:    `name = "Axe"`,
			addr:     "name",
			value:    NewString("Hatchet"),
			expected: `name = "Hatchet"`,
		},
		{
			name:     "number keeps plain spelling",
			input:    "ratio = 1.50",
			addr:     "ratio",
			value:    NewNumber(2),
			expected: "ratio = 2",
		},
		{
			name:     "string with spaces over identifier needs quotes",
			input:    `slot = Primary`,
			addr:     "slot",
			value:    NewString("Primary Slot"),
			expected: `slot = "Primary Slot"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sf := mustParse(t, "a.scr", tc.input)
			require.NoError(t, sf.SetValues(mustParseAddr(t, tc.addr), []Literal{tc.value}))
			assert.Equal(t, tc.expected, string(sf.Render()))
		})
	}
}

func TestSetValues_ResizedArguments(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		addr     string
		values   []Literal
		expected string
	}{
		{
			name:     "param grows an argument",
			input:    "Param(flags, 1)\n",
			addr:     "flags",
			values:   []Literal{NewNumber(1), NewNumber(2)},
			expected: "Param(flags, 1, 2)\n",
		},
		{
			name:     "param loses all values",
			input:    "Param(flags, 1, 2)\n",
			addr:     "flags",
			values:   nil,
			expected: "Param(flags)\n",
		},
		{
			name:     "call style property rewrites its arguments",
			input:    "Durability(80, 90);\n",
			addr:     "Durability",
			values:   []Literal{NewNumber(50)},
			expected: "Durability(50);\n",
		},
		{
			name:     "list shrinks",
			input:    "tags = [1, 2, 3]\n",
			addr:     "tags",
			values:   []Literal{NewNumber(9)},
			expected: "tags = [9]\n",
		},
		{
			name:     "list empties",
			input:    "tags = [1, 2]\n",
			addr:     "tags",
			values:   nil,
			expected: "tags = []\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sf := mustParse(t, "a.scr", tc.input)
			require.NoError(t, sf.SetValues(mustParseAddr(t, tc.addr), tc.values))
			assert.Equal(t, tc.expected, string(sf.Render()))
		})
	}
}

func TestSetValues_SameAritySpliceKeepsSeparators(t *testing.T) {
	// Odd spacing between arguments must survive a same-arity edit.
	sf := mustParse(t, "a.scr", "Param(spread ,  1 ,2 )\n")

	err := sf.SetValues(mustParseAddr(t, "spread"), []Literal{NewNumber(3), NewNumber(4)})
	require.NoError(t, err)

	assert.Equal(t, "Param(spread ,  3 ,4 )\n", string(sf.Render()))
}

func TestSetValues_UnknownAddress(t *testing.T) {
	sf := mustParse(t, "a.scr", "speed = 5\n")

	err := sf.SetValues(mustParseAddr(t, "agility"), []Literal{NewNumber(1)})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}
