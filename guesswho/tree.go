/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"math"
)

// DecisionTree is a precomputed hierarchy of questions learned from a
// roster by maximising information gain at each split.
//
// Recommend walks the hierarchy from the root. A node whose question splits
// the live candidates is returned; a node every candidate answers the same
// way is passed through along that branch. Reaching a leaf means the tree
// has no further question for these candidates.
type DecisionTree struct {
	root *treeNode
}

type treeNode struct {
	question Question
	yes, no  *treeNode

	// names is set on leaves only.
	names []string
}

func (n *treeNode) leaf() bool {
	return n.yes == nil && n.no == nil
}

// TrainDecisionTree builds the tree over every (trait, value) pair present in
// the roster. Features are considered in catalog then value order, and the
// first feature reaching the best gain is kept.
func TrainDecisionTree(r *Roster) *DecisionTree {
	return &DecisionTree{root: grow(r.Characters(), r.Questions())}
}

func grow(set []*Character, features []Question) *treeNode {
	if len(set) <= 1 {
		return newLeaf(set)
	}

	var (
		best     Question
		bestGain float64
		found    bool
	)

	parent := entropy(len(set))
	for _, q := range features {
		yes, no := q.Split(set)
		if len(yes) == 0 || len(no) == 0 {
			continue
		}

		total := float64(len(set))
		gain := parent -
			float64(len(yes))/total*entropy(len(yes)) -
			float64(len(no))/total*entropy(len(no))

		if !found || gain > bestGain+1e-12 {
			best, bestGain, found = q, gain, true
		}
	}

	if !found {
		return newLeaf(set)
	}

	yes, no := best.Split(set)
	return &treeNode{
		question: best,
		yes:      grow(yes, features),
		no:       grow(no, features),
	}
}

func newLeaf(set []*Character) *treeNode {
	names := make([]string, 0, len(set))
	for _, c := range set {
		names = append(names, c.Name())
	}
	return &treeNode{names: names}
}

// entropy of n equally likely, distinct classes. Roster names are unique,
// so every node's class distribution is uniform.
func entropy(n int) float64 {
	if n <= 1 {
		return 0
	}
	return math.Log2(float64(n))
}

func (d *DecisionTree) Recommend(candidates []*Character) (Question, bool) {
	if len(candidates) == 0 || d.root == nil {
		return Question{}, false
	}

	node := d.root
	for !node.leaf() {
		yes, no := node.question.Split(candidates)
		switch {
		case len(yes) > 0 && len(no) > 0:
			return node.question, true
		case len(yes) > 0:
			node = node.yes
		default:
			node = node.no
		}
	}

	return Question{}, false
}

// Depth reports the longest question path from the root to a leaf.
func (d *DecisionTree) Depth() int {
	return depth(d.root)
}

func depth(n *treeNode) int {
	if n == nil || n.leaf() {
		return 0
	}
	return 1 + max(depth(n.yes), depth(n.no))
}

// Leaf returns the leaf names a fully answered walk for c ends at.
func (d *DecisionTree) Leaf(c *Character) []string {
	node := d.root
	for node != nil && !node.leaf() {
		if node.question.Matches(c) {
			node = node.yes
		} else {
			node = node.no
		}
	}
	if node == nil {
		return nil
	}
	return node.names
}
