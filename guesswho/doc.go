/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package guesswho is the deduction engine behind the guess-the-character
// game.
//
// A Roster holds immutable Characters, each described by the nine traits of
// the fixed catalog. A Strategy recommends the next yes/no Question for a
// candidate set, and an Engine narrows one session's candidate set as
// answers arrive, until a single character (Solved) or none (NoMatch) is
// left.
//
// Two strategies are provided:
//   - SplitBalance, the default, picks the question whose yes and no groups
//     differ least in size, with ties broken by catalog then value order.
//   - DecisionTree is trained once per roster by information gain and
//     answers by walking its precomputed hierarchy.
//
// The two can disagree; pick one per game.
package guesswho
