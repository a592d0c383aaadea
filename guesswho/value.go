/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindUndefined valueKind = iota
	kindBool
	kindString
)

// Value is a single trait value: a boolean or a short string.
//
// Strings spelling a boolean ("true", "False", " TRUE ") are stored as
// booleans, so a value read from a roster file and the same value sent by a
// client always compare equal with ==.
type Value struct {
	kind valueKind
	b    bool
	s    string
}

// Undefined is returned for lookups of traits outside the catalog.
var Undefined Value

func Bool(b bool) Value {
	return Value{kind: kindBool, b: b}
}

func String(s string) Value {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return Value{kind: kindString, s: trimmed}
}

// NewValue converts a decoded scalar into a Value.
func NewValue(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return String(strconv.Itoa(x)), nil
	case int64:
		return String(strconv.FormatInt(x, 10)), nil
	case uint64:
		return String(strconv.FormatUint(x, 10)), nil
	case float64:
		return String(strconv.FormatFloat(x, 'f', -1, 64)), nil
	case nil:
		return Undefined, errors.New("value is null")
	default:
		return Undefined, fmt.Errorf("unsupported value type %T", v)
	}
}

func (v Value) IsDefined() bool {
	return v.kind != kindUndefined
}

// IsBool reports whether v holds a boolean, and which one.
func (v Value) IsBool() (value, ok bool) {
	return v.b, v.kind == kindBool
}

func (v Value) String() string {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindString:
		return v.s
	default:
		return ""
	}
}

// Compare orders undefined before booleans (false before true) before
// strings (lexicographic). It returns -1, 0 or +1.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		if v.kind < o.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case kindBool:
		switch {
		case v.b == o.b:
			return 0
		case !v.b:
			return -1
		default:
			return 1
		}
	case kindString:
		return strings.Compare(v.s, o.s)
	}
	return 0
}

// MarshalJSON keeps booleans as JSON booleans on the wire.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case kindString:
		return json.Marshal(v.s)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = Undefined
		return nil
	}
	parsed, err := NewValue(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
