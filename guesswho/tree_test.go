package guesswho

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionTreeSeparatesEveryCharacter(t *testing.T) {
	r := classicRoster(t)
	tree := TrainDecisionTree(r)

	for _, c := range r.Characters() {
		assert.Equal(t, []string{c.Name()}, tree.Leaf(c))
	}

	// Eight distinct characters need at least three questions on some path.
	assert.GreaterOrEqual(t, tree.Depth(), 3)
	assert.LessOrEqual(t, tree.Depth(), r.Len()-1)
}

func TestDecisionTreeScenario(t *testing.T) {
	r := scenarioRoster(t)
	tree := TrainDecisionTree(r)

	q, ok := tree.Recommend(r.Characters())
	require.True(t, ok)
	// Both hair=blonde and glasses=false gain the same; the earlier trait wins.
	assert.Equal(t, Question{Trait: Hair, Value: String("blonde")}, q)

	e := NewEngine(r)
	e.ApplyAnswer(q, true)
	q, ok = tree.Recommend(e.Candidates())
	require.True(t, ok)
	assert.Equal(t, Glasses, q.Trait)

	e.ApplyAnswer(q, true)
	_, ok = tree.Recommend(e.Candidates())
	assert.False(t, ok)
}

func TestDecisionTreeWalksPastNonSplittingNodes(t *testing.T) {
	r := scenarioRoster(t)
	tree := TrainDecisionTree(r)

	// Narrowed by a question the tree never asks at the root.
	e := NewEngine(r)
	e.ApplyAnswer(Question{Trait: Glasses, Value: Bool(false)}, true)
	require.Equal(t, []string{"Alex", "Sam"}, names(e.Candidates()))

	q, ok := tree.Recommend(e.Candidates())
	require.True(t, ok)
	assert.Equal(t, Question{Trait: Hair, Value: String("blonde")}, q)

	// Only Lee left on the blonde side: the walk reaches Lee's leaf.
	lee, _ := r.Get("Lee")
	_, ok = tree.Recommend([]*Character{lee})
	assert.False(t, ok)
}

func TestDecisionTreeIdenticalCharactersShareALeaf(t *testing.T) {
	r := newRoster(t,
		record("Ann", nil),
		record("Bea", nil),
		record("Cat", map[string]any{"hat": true}),
	)
	tree := TrainDecisionTree(r)

	ann, _ := r.Get("Ann")
	assert.Equal(t, []string{"Ann", "Bea"}, tree.Leaf(ann))

	bea, _ := r.Get("Bea")
	_, ok := tree.Recommend([]*Character{ann, bea})
	assert.False(t, ok)
}
