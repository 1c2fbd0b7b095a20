package lang

//go:generate go tool stringer --linecomment --type ValueKind,Kind,Format --output kind_string.go

import (
	"slices"
	"strconv"
	"strings"
)

// ValueKind identifies which field of a [Value] is populated: a signed
// 64-bit integer, an ordered sequence of fully evaluated values, or text
// produced by concat.
type ValueKind int

const (
	KindInt    ValueKind = iota // int
	KindList                    // list
	KindString                  // string
)

// Value is a fully evaluated value. Exactly one of Int, List or Str is
// meaningful, selected by Kind.
type Value struct {
	Kind ValueKind
	Int  int64
	List []Value
	Str  string
}

// Int returns an integer value.
func Int(n int64) Value { return Value{Kind: KindInt, Int: n} }

// List returns a list value holding elems.
func List(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}

	return Value{Kind: KindList, List: elems}
}

// Str returns a string value.
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// Native converts the value to plain Go types: int64, []any or string.
func (v Value) Native() any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindList:
		out := make([]any, len(v.List))
		for i, e := range v.List {
			out[i] = e.Native()
		}

		return out
	case KindString:
		return v.Str
	default:
		return nil
	}
}

// String renders the value as text. Integers are decimal, strings are
// verbatim and lists are bracketed with comma-separated elements.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindString:
		return v.Str
	case KindList:
		var sb strings.Builder
		v.writeList(&sb)

		return sb.String()
	default:
		return ""
	}
}

func (v Value) writeList(sb *strings.Builder) {
	sb.WriteByte('[')

	for i, e := range v.List {
		if i > 0 {
			sb.WriteString(", ")
		}

		switch e.Kind {
		case KindList:
			e.writeList(sb)
		case KindString:
			sb.WriteString(strconv.Quote(e.Str))
		default:
			sb.WriteString(e.String())
		}
	}

	sb.WriteByte(']')
}

// Equal reports whether v and w have the same kind and contents.
func (v Value) Equal(w Value) bool {
	if v.Kind != w.Kind {
		return false
	}

	switch v.Kind {
	case KindInt:
		return v.Int == w.Int
	case KindString:
		return v.Str == w.Str
	case KindList:
		return slices.EqualFunc(v.List, w.List, Value.Equal)
	default:
		return true
	}
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	if v.Kind != KindList {
		return v
	}

	elems := make([]Value, len(v.List))
	for i, e := range v.List {
		elems[i] = e.Clone()
	}

	return Value{Kind: KindList, List: elems}
}
