package ast

import "strings"

// FieldPath is a dotted field reference such as "user.profile.age",
// represented as its dot-separated segments.
type FieldPath []string

// ParsePath splits a dotted string into a FieldPath. The builder's
// Field goes through here; the parser assembles the same segments from
// its tokens, so a path written either way interns identically.
func ParsePath(s string) FieldPath {
	return FieldPath(strings.Split(s, "."))
}

func (p FieldPath) String() string {
	return strings.Join(p, ".")
}

func (p FieldPath) Equal(o FieldPath) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}
