package guesswho

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// record builds a roster record with every catalog trait set to a shared
// default, overridden by traits.
func record(name string, traits map[string]any) Record {
	all := map[string]any{
		"gender":         "male",
		"eyes":           "brown",
		"hair":           "black",
		"beard":          false,
		"moustache":      false,
		"nose":           "small",
		"glasses":        false,
		"hat":            false,
		"thick_eyebrows": false,
	}
	for k, v := range traits {
		all[k] = v
	}
	return Record{Name: name, Traits: all}
}

func newRoster(t *testing.T, records ...Record) *Roster {
	t.Helper()
	r, err := NewRoster(records)
	require.NoError(t, err)
	return r
}

// scenarioRoster is Alex, Sam and Lee, who differ only in hair and glasses.
func scenarioRoster(t *testing.T) *Roster {
	return newRoster(t,
		record("Alex", map[string]any{"hair": "blonde", "glasses": false}),
		record("Sam", map[string]any{"hair": "brown", "glasses": false}),
		record("Lee", map[string]any{"hair": "blonde", "glasses": true}),
	)
}

func names(characters []*Character) []string {
	out := make([]string, 0, len(characters))
	for _, c := range characters {
		out = append(out, c.Name())
	}
	return out
}

// classicRoster is a larger roster in the style of the board game.
func classicRoster(t *testing.T) *Roster {
	type row struct {
		name                                     string
		gender, eyes, hair, nose                 string
		beard, moustache, glasses, hat, eyebrows bool
	}
	rows := []row{
		{"Alex", "male", "brown", "black", "small", false, true, false, false, true},
		{"Anita", "female", "blue", "blonde", "small", false, false, false, false, false},
		{"Bernard", "male", "brown", "brown", "big", false, false, false, true, false},
		{"Bill", "male", "brown", "red", "small", true, false, false, false, false},
		{"Claire", "female", "brown", "red", "small", false, false, true, true, false},
		{"Eric", "male", "brown", "blonde", "small", false, false, false, true, false},
		{"Maria", "female", "brown", "brown", "small", false, false, false, true, false},
		{"Tom", "male", "blue", "bald", "small", false, false, true, false, false},
	}

	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, Record{
			Name: r.name,
			Traits: map[string]any{
				"gender":         r.gender,
				"eyes":           r.eyes,
				"hair":           r.hair,
				"nose":           r.nose,
				"beard":          r.beard,
				"moustache":      r.moustache,
				"glasses":        r.glasses,
				"hat":            r.hat,
				"thick_eyebrows": r.eyebrows,
			},
		})
	}
	return newRoster(t, records...)
}
