/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import "fmt"

// Trait identifies one askable attribute in the fixed catalog.
type Trait int

const (
	Gender Trait = iota
	Eyes
	Hair
	Beard
	Moustache
	Nose
	Glasses
	Hat
	ThickEyebrows

	numTraits int = iota
)

var traitNames = [numTraits]string{
	Gender:        "gender",
	Eyes:          "eyes",
	Hair:          "hair",
	Beard:         "beard",
	Moustache:     "moustache",
	Nose:          "nose",
	Glasses:       "glasses",
	Hat:           "hat",
	ThickEyebrows: "thick_eyebrows",
}

var traitsByName = func() map[string]Trait {
	m := make(map[string]Trait, numTraits)
	for i, name := range traitNames {
		m[name] = Trait(i)
	}
	return m
}()

// Traits returns the catalog in its fixed order, which is also the
// tie-break order used when recommending questions.
func Traits() []Trait {
	out := make([]Trait, numTraits)
	for i := range out {
		out[i] = Trait(i)
	}
	return out
}

// ParseTrait maps a wire name like "thick_eyebrows" to its Trait.
func ParseTrait(name string) (Trait, bool) {
	t, ok := traitsByName[name]
	return t, ok
}

func (t Trait) Valid() bool {
	return t >= 0 && int(t) < numTraits
}

func (t Trait) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return traitNames[t]
}

func (t Trait) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown trait %d", int(t))
	}
	return []byte(traitNames[t]), nil
}

func (t *Trait) UnmarshalText(text []byte) error {
	parsed, ok := ParseTrait(string(text))
	if !ok {
		return fmt.Errorf("unknown trait %q", text)
	}
	*t = parsed
	return nil
}
