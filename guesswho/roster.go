/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"fmt"
	"slices"
)

// Roster is the full, immutable universe of characters for a game.
type Roster struct {
	characters []*Character
	byName     map[string]*Character
}

// NewRoster validates every record and keeps them in the given order.
// Any malformed record rejects the whole roster.
func NewRoster(records []Record) (*Roster, error) {
	if len(records) == 0 {
		return nil, ErrEmptyRoster
	}

	r := &Roster{
		characters: make([]*Character, 0, len(records)),
		byName:     make(map[string]*Character, len(records)),
	}

	for i, rec := range records {
		c, err := NewCharacter(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, exists := r.byName[c.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCharacter, c.Name())
		}
		r.byName[c.Name()] = c
		r.characters = append(r.characters, c)
	}

	return r, nil
}

// Characters returns a copy of the roster in load order.
func (r *Roster) Characters() []*Character {
	return slices.Clone(r.characters)
}

func (r *Roster) Len() int {
	return len(r.characters)
}

func (r *Roster) Get(name string) (*Character, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// DomainValues lists every value t takes across the whole roster, sorted.
func (r *Roster) DomainValues(t Trait) []Value {
	return distinctValues(r.characters, t)
}

// Questions lists every askable question over the whole roster, in catalog
// order and then value order.
func (r *Roster) Questions() []Question {
	var out []Question
	for _, t := range Traits() {
		for _, v := range r.DomainValues(t) {
			out = append(out, Question{Trait: t, Value: v})
		}
	}
	return out
}

func distinctValues(characters []*Character, t Trait) []Value {
	seen := make(map[Value]struct{})
	values := make([]Value, 0, 4)
	for _, c := range characters {
		v := c.Trait(t)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.SortFunc(values, Value.Compare)
	return values
}
