/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"fmt"
)

// Question asks whether a character's Trait equals Value.
type Question struct {
	Trait Trait `json:"trait"`
	Value Value `json:"value"`
}

// Matches is the one equality rule used both to pick questions and to
// apply answers.
func (q Question) Matches(c *Character) bool {
	if !q.Trait.Valid() {
		return false
	}
	return c.Trait(q.Trait) == q.Value
}

// Split partitions candidates into those answering yes and those answering
// no, preserving order within each side.
func (q Question) Split(candidates []*Character) (yes, no []*Character) {
	for _, c := range candidates {
		if q.Matches(c) {
			yes = append(yes, c)
		} else {
			no = append(no, c)
		}
	}
	return yes, no
}

func (q Question) String() string {
	return q.Trait.String() + "=" + q.Value.String()
}

// Strategy proposes the next question for a candidate set. The boolean is
// false when no question splits the set.
//
// Implementations hold no per-session state and may be shared between games.
type Strategy interface {
	Recommend(candidates []*Character) (Question, bool)
}

const (
	StrategyBalance = "balance"
	StrategyTree    = "tree"
)

// StrategyNames lists the names accepted by NewStrategy.
func StrategyNames() []string {
	return []string{StrategyBalance, StrategyTree}
}

// NewStrategy builds a strategy by name. The tree strategy is trained on r.
func NewStrategy(name string, r *Roster) (Strategy, error) {
	switch name {
	case StrategyBalance, "":
		return SplitBalance{}, nil
	case StrategyTree:
		return TrainDecisionTree(r), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// SplitBalance picks the question whose yes and no groups are closest in
// size. Traits are tried in catalog order and values in Value.Compare order;
// on equal imbalance the first question found wins.
type SplitBalance struct{}

func (SplitBalance) Recommend(candidates []*Character) (Question, bool) {
	var (
		best    Question
		found   bool
		minDiff int
	)

	n := len(candidates)
	if n == 0 {
		return best, false
	}

	for _, t := range Traits() {
		for _, v := range distinctValues(candidates, t) {
			q := Question{Trait: t, Value: v}

			yes := 0
			for _, c := range candidates {
				if q.Matches(c) {
					yes++
				}
			}
			if yes == 0 || yes == n {
				continue
			}

			diff := abs(yes - (n - yes))
			if !found || diff < minDiff {
				best, minDiff, found = q, diff, true
			}
		}
	}

	return best, found
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
