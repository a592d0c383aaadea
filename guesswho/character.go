/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"fmt"
	"strings"
)

// Record is what a roster loader hands to NewCharacter. Traits is keyed by
// wire name; keys outside the catalog are ignored.
type Record struct {
	Name   string         `json:"name" yaml:"name"`
	Asset  string         `json:"filename,omitempty" yaml:"filename,omitempty"`
	Traits map[string]any `json:"traits" yaml:"traits"`
}

// Character is one immutable roster entry.
type Character struct {
	name   string
	asset  string
	traits [numTraits]Value
}

func NewCharacter(rec Record) (*Character, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrMalformedCharacter)
	}

	c := &Character{
		name:  name,
		asset: rec.Asset,
	}
	if c.asset == "" {
		c.asset = strings.ToLower(name) + ".png"
	}

	for _, t := range Traits() {
		raw, ok := rec.Traits[t.String()]
		if !ok {
			return nil, fmt.Errorf("%w: %q is missing trait %q", ErrMalformedCharacter, name, t)
		}
		v, err := NewValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q trait %q: %w", ErrMalformedCharacter, name, t, err)
		}
		c.traits[t] = v
	}

	return c, nil
}

func (c *Character) Name() string {
	return c.name
}

// Asset is the display reference (an image file name) for the character.
func (c *Character) Asset() string {
	return c.asset
}

// Trait returns the value of t, or Undefined if t is outside the catalog.
func (c *Character) Trait(t Trait) Value {
	if !t.Valid() {
		return Undefined
	}
	return c.traits[t]
}

// Lookup is Trait by wire name.
func (c *Character) Lookup(name string) Value {
	t, ok := ParseTrait(name)
	if !ok {
		return Undefined
	}
	return c.traits[t]
}

// Traits returns every catalog trait keyed by wire name.
func (c *Character) Traits() map[string]Value {
	m := make(map[string]Value, numTraits)
	for i, v := range c.traits {
		m[traitNames[i]] = v
	}
	return m
}

func (c *Character) String() string {
	var b strings.Builder
	b.WriteString(c.name)
	b.WriteString(":")
	for i, v := range c.traits {
		fmt.Fprintf(&b, " %s=%s", traitNames[i], v)
	}
	return b.String()
}
