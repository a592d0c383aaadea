/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import "errors"

var (
	// ErrMalformedCharacter is returned when a roster record lacks a name or
	// one of the catalog traits, or carries a value that is not a scalar.
	ErrMalformedCharacter = errors.New("malformed character")
	ErrDuplicateCharacter = errors.New("duplicate character name")
	ErrEmptyRoster        = errors.New("roster has no characters")
	ErrUnknownStrategy    = errors.New("unknown question strategy")
)
