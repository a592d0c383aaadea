/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import "slices"

// Outcome describes where a narrowing session stands.
type Outcome int

const (
	// Undecided means two or more candidates remain.
	Undecided Outcome = iota
	// Solved means exactly one candidate remains.
	Solved
	// NoMatch means the answers eliminated every candidate.
	NoMatch
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case NoMatch:
		return "no_match"
	default:
		return "undecided"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Engine holds the candidate set for one deduction session. It is not safe
// for concurrent use; give every session its own Engine.
type Engine struct {
	roster     *Roster
	candidates []*Character
}

func NewEngine(r *Roster) *Engine {
	e := &Engine{roster: r}
	e.Reset()
	return e
}

// Reset restores the full roster as the candidate set.
func (e *Engine) Reset() {
	e.candidates = e.roster.Characters()
}

// ApplyAnswer keeps the candidates consistent with answering yes or no to q
// and returns the new candidate set. A question about a trait outside the
// catalog leaves no candidates.
func (e *Engine) ApplyAnswer(q Question, yes bool) []*Character {
	if !q.Trait.Valid() {
		e.candidates = e.candidates[:0]
		return e.Candidates()
	}

	kept := e.candidates[:0]
	for _, c := range e.candidates {
		if q.Matches(c) == yes {
			kept = append(kept, c)
		}
	}
	clear(e.candidates[len(kept):])
	e.candidates = kept

	return e.Candidates()
}

// Candidates returns a copy of the remaining candidates in roster order.
func (e *Engine) Candidates() []*Character {
	return slices.Clone(e.candidates)
}

func (e *Engine) Len() int {
	return len(e.candidates)
}

// Contains reports whether the named character is still a candidate.
func (e *Engine) Contains(name string) bool {
	return slices.ContainsFunc(e.candidates, func(c *Character) bool {
		return c.Name() == name
	})
}

// IsTerminal reports whether at most one candidate remains.
func (e *Engine) IsTerminal() bool {
	return len(e.candidates) <= 1
}

// Guess returns the sole remaining candidate. It never guesses while two or
// more candidates remain, nor when none do.
func (e *Engine) Guess() (*Character, bool) {
	if len(e.candidates) != 1 {
		return nil, false
	}
	return e.candidates[0], true
}

func (e *Engine) Outcome() Outcome {
	switch len(e.candidates) {
	case 0:
		return NoMatch
	case 1:
		return Solved
	default:
		return Undecided
	}
}

// Recommend asks s for the next question over the current candidates.
func (e *Engine) Recommend(s Strategy) (Question, bool) {
	return s.Recommend(e.candidates)
}
