package guesswho

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueCanonicalisesBooleanStrings(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "bool true", in: true, want: Bool(true)},
		{name: "string true", in: "true", want: Bool(true)},
		{name: "mixed case false", in: " False ", want: Bool(false)},
		{name: "plain string", in: "blonde", want: String("blonde")},
		{name: "int", in: 3, want: String("3")},
		{name: "float from json", in: float64(2), want: String("2")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got == tt.want, "values must compare equal with ==")
		})
	}
}

func TestNewValueRejectsNonScalars(t *testing.T) {
	for _, in := range []any{nil, []string{"a"}, map[string]any{}} {
		_, err := NewValue(in)
		assert.Error(t, err, "%T", in)
	}
}

func TestValueCompareIsTotal(t *testing.T) {
	ordered := []Value{Undefined, Bool(false), Bool(true), String("a"), String("b")}
	for i := range ordered {
		for j := range ordered {
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			assert.Equal(t, want, ordered[i].Compare(ordered[j]), "%v vs %v", ordered[i], ordered[j])
		}
	}
}

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal([]Value{Bool(true), String("red"), Undefined})
	require.NoError(t, err)
	assert.JSONEq(t, `[true, "red", null]`, string(data))

	var back []Value
	require.NoError(t, json.Unmarshal([]byte(`[true, "red", "FALSE", 4]`), &back))
	assert.Equal(t, []Value{Bool(true), String("red"), Bool(false), String("4")}, back)

	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
}

func TestTraitCatalog(t *testing.T) {
	traits := Traits()
	require.Len(t, traits, 9)
	assert.Equal(t, Gender, traits[0])
	assert.Equal(t, ThickEyebrows, traits[8])

	for _, tr := range traits {
		parsed, ok := ParseTrait(tr.String())
		require.True(t, ok, tr.String())
		assert.Equal(t, tr, parsed)
	}

	_, ok := ParseTrait("shoe_size")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Trait(42).String())

	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"trait":"thick_eyebrows","value":"true"}`), &q))
	assert.Equal(t, Question{Trait: ThickEyebrows, Value: Bool(true)}, q)
	assert.Error(t, json.Unmarshal([]byte(`{"trait":"shoe_size","value":1}`), &q))
}
