package model

import "fmt"

// VariableReference is a handle to the value produced by exactly one
// statement of a test case. Its identity is the defining statement; the
// recorded type and the distance are mutable.
type VariableReference struct {
	typ      Type
	testCase *TestCase

	// Distance is the recursion depth at which the defining statement was
	// created. Mutation operators use it to target deeply nested values.
	Distance int
}

// NewVariableReference creates a reference owned by the given test case with
// the given recorded type.
func NewVariableReference(testCase *TestCase, typ Type) *VariableReference {
	return &VariableReference{typ: typ, testCase: testCase}
}

// Type returns the recorded semantic type.
func (v *VariableReference) Type() Type {
	return v.typ
}

// SetType updates the recorded semantic type.
func (v *VariableReference) SetType(typ Type) {
	v.typ = typ
}

// TestCase returns the test case this reference belongs to.
func (v *VariableReference) TestCase() *TestCase {
	return v.testCase
}

// IsPrimitive reports whether the recorded type is a primitive.
func (v *VariableReference) IsPrimitive() bool {
	return v.typ.IsPrimitive()
}

// IsNone reports whether the recorded type is the none type.
func (v *VariableReference) IsNone() bool {
	return v.typ.IsNone()
}

// IsUnknown reports whether the recorded type is unknown.
func (v *VariableReference) IsUnknown() bool {
	return v.typ.IsUnknown()
}

// StatementPosition returns the position of the defining statement within
// the owning test case. A reference that is not declared in its test case is
// a broken invariant and yields an error.
func (v *VariableReference) StatementPosition() (int, error) {
	for idx, stmt := range v.testCase.Statements() {
		if stmt.Ret() == v {
			return idx, nil
		}
	}

	return 0, fmt.Errorf("variable of type %s is not declared in its test case", v.typ)
}

// Clone resolves this reference in a cloned test case. The reference itself
// is never copied; cloning happens at statement level and the memo maps old
// references to their counterparts.
func (v *VariableReference) Clone(memo map[*VariableReference]*VariableReference) *VariableReference {
	return memo[v]
}

// StructuralEq reports whether this reference and other denote the same
// variable across a clone boundary: the recorded types must be equal and the
// remap of this reference must be other.
func (v *VariableReference) StructuralEq(other *VariableReference, memo map[*VariableReference]*VariableReference) bool {
	if other == nil {
		return false
	}

	return v.typ.Equal(other.typ) && memo[v] == other
}

func (v *VariableReference) String() string {
	return v.typ.String()
}
