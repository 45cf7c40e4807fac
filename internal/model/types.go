// Package model defines the data structures for statement construction.
package model

import (
	"sort"
	"strings"
)

// TypeKind discriminates the variants of a declared parameter type.
type TypeKind int

const (
	// KindConcrete is a single named type.
	KindConcrete TypeKind = iota
	// KindUnion is an ordered list of two or more concrete alternatives.
	KindUnion
	// KindNone is an explicitly declared "no type" (an untyped parameter).
	KindNone
	// KindUnknown is an absent or uninferrable type.
	KindUnknown
)

// TypeName is the semantic name of a concrete type in the subject program.
type TypeName string

// Names of the built-in primitive types.
const (
	TypeInt    TypeName = "int"
	TypeFloat  TypeName = "float"
	TypeBool   TypeName = "bool"
	TypeString TypeName = "string"
)

// PrimitiveTypes returns the fixed, ordered set of primitive types.
func PrimitiveTypes() []Type {
	return []Type{
		Concrete(TypeInt),
		Concrete(TypeFloat),
		Concrete(TypeBool),
		Concrete(TypeString),
	}
}

// Type is a tagged description of a declared parameter or return type:
// concrete, union of concretes, none, or unknown.
type Type struct {
	kind TypeKind
	name TypeName
	arms []Type
}

// Concrete builds a type with the given name.
func Concrete(name TypeName) Type {
	return Type{kind: KindConcrete, name: name}
}

// Union builds an ordered union over the given alternatives. A union of a
// single type collapses to that type; an empty union is the unknown type.
func Union(arms ...Type) Type {
	switch len(arms) {
	case 0:
		return Unknown()
	case 1:
		return arms[0]
	}

	return Type{kind: KindUnion, arms: arms}
}

// None builds the explicit none type.
func None() Type {
	return Type{kind: KindNone}
}

// Unknown builds the unknown type.
func Unknown() Type {
	return Type{kind: KindUnknown}
}

// Kind returns the variant tag of this type.
func (t Type) Kind() TypeKind {
	return t.kind
}

// Name returns the type name; it is only meaningful for concrete types.
func (t Type) Name() TypeName {
	return t.name
}

// Arms returns the alternatives of a union type, nil otherwise.
func (t Type) Arms() []Type {
	return t.arms
}

// IsPrimitive reports whether this is one of the built-in primitive types.
func (t Type) IsPrimitive() bool {
	if t.kind != KindConcrete {
		return false
	}

	switch t.name {
	case TypeInt, TypeFloat, TypeBool, TypeString:
		return true
	}

	return false
}

// IsNone reports whether this is the explicit none type.
func (t Type) IsNone() bool {
	return t.kind == KindNone
}

// IsUnknown reports whether this type is unknown.
func (t Type) IsUnknown() bool {
	return t.kind == KindUnknown
}

// IsUnion reports whether this type is a union.
func (t Type) IsUnion() bool {
	return t.kind == KindUnion
}

// Equal reports whether two types are structurally identical, including the
// order of union alternatives.
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind {
		return false
	}

	switch t.kind {
	case KindConcrete:
		return t.name == other.name
	case KindUnion:
		if len(t.arms) != len(other.arms) {
			return false
		}

		for i := range t.arms {
			if !t.arms[i].Equal(other.arms[i]) {
				return false
			}
		}

		return true
	case KindNone, KindUnknown:
		return true
	}

	return false
}

func (t Type) String() string {
	switch t.kind {
	case KindConcrete:
		return string(t.name)
	case KindUnion:
		parts := make([]string, 0, len(t.arms))
		for _, arm := range t.arms {
			parts = append(parts, arm.String())
		}

		return strings.Join(parts, "|")
	case KindNone:
		return "none"
	case KindUnknown:
		return "unknown"
	}

	return "invalid"
}

// SortTypes orders types by their string form, for stable display output.
func SortTypes(types []Type) {
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
}
