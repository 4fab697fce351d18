// Package value defines the tree produced by the JSON grammar.
package value

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Member is a key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON-like value. The zero Value is null.
//
// Objects keep their members sorted by key with no duplicates, so the order
// in which members appeared in the source is not preserved.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	array   []Value
	members []Member
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Number wraps a number.
func Number(f float64) Value {
	return Value{kind: KindNumber, number: f}
}

// String wraps a string.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array builds an array holding elems in order.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, array: elems}
}

// Object builds an object from members. When a key repeats, the member that
// comes later wins.
func Object(members ...Member) Value {
	byKey := make(map[string]Value, len(members))
	for _, m := range members {
		byKey[m.Key] = m.Value
	}
	sorted := make([]Member, 0, len(byKey))
	for k, v := range byKey {
		sorted = append(sorted, Member{Key: k, Value: v})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	return Value{kind: KindObject, members: sorted}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

func (v Value) AsNumber() (float64, bool) {
	return v.number, v.kind == KindNumber
}

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsArray returns a copy of the elements of an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return slices.Clone(v.array), true
}

// AsObject returns a copy of the members of an object, sorted by key.
func (v Value) AsObject() ([]Member, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return slices.Clone(v.members), true
}

// Len returns the number of elements of an array or members of an object,
// and 0 for everything else.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.array)
	case KindObject:
		return len(v.members)
	}
	return 0
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.array) {
		return Value{}, false
	}
	return v.array[i], true
}

// Get looks up key in an object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	i, found := sort.Find(len(v.members), func(i int) int {
		return strings.Compare(key, v.members[i].Key)
	})
	if !found {
		return Value{}, false
	}
	return v.members[i].Value, true
}

// Keys returns the keys of an object in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns the members of an object in key order. The slice must
// not be modified.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.members
}

// Elements iterates over the elements of an array.
func (v Value) Elements() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.kind != KindArray {
			return
		}
		for i, e := range v.array {
			if !yield(i, e) {
				return
			}
		}
	}
}

// All iterates over the members of an object in key order.
func (v Value) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if v.kind != KindObject {
			return
		}
		for _, m := range v.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Equal reports whether v and other hold the same tree.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		return v.number == other.number
	case KindString:
		return v.str == other.str
	case KindArray:
		return slices.EqualFunc(v.array, other.array, Value.Equal)
	case KindObject:
		return slices.EqualFunc(v.members, other.members, func(a, b Member) bool {
			return a.Key == b.Key && a.Value.Equal(b.Value)
		})
	}
	return false
}

// GoString renders v as Go-like constructor calls, which keeps test
// failures readable.
func (v Value) GoString() string {
	var sb strings.Builder
	v.writeGo(&sb)
	return sb.String()
}

func (v Value) writeGo(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("Null()")
	case KindBool:
		fmt.Fprintf(sb, "Bool(%t)", v.boolean)
	case KindNumber:
		fmt.Fprintf(sb, "Number(%v)", v.number)
	case KindString:
		fmt.Fprintf(sb, "String(%q)", v.str)
	case KindArray:
		sb.WriteString("Array(")
		for i, e := range v.array {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeGo(sb)
		}
		sb.WriteString(")")
	case KindObject:
		sb.WriteString("Object(")
		for i, m := range v.members {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%q: ", m.Key)
			m.Value.writeGo(sb)
		}
		sb.WriteString(")")
	}
}
