package model

import "fmt"

// TestCase is an ordered, positionally indexed sequence of statements. The
// sequence is always a valid dependency order: every reference a statement
// owns resolves to an earlier position. A test case is exclusively owned by
// one writer; it performs no internal locking.
type TestCase struct {
	statements []Statement
}

// NewTestCase creates an empty test case.
func NewTestCase() *TestCase {
	return &TestCase{}
}

// Size returns the number of statements.
func (tc *TestCase) Size() int {
	return len(tc.statements)
}

// Statements returns the underlying statement sequence. Callers must treat
// it as read-only.
func (tc *TestCase) Statements() []Statement {
	return tc.statements
}

// GetStatement returns the statement at the given position.
func (tc *TestCase) GetStatement(position int) (Statement, error) {
	if position < 0 || position >= len(tc.statements) {
		return nil, fmt.Errorf("position %d out of bounds (size %d)", position, len(tc.statements))
	}

	return tc.statements[position], nil
}

// SetStatement replaces the statement at the given position.
func (tc *TestCase) SetStatement(statement Statement, position int) error {
	if position < 0 || position >= len(tc.statements) {
		return fmt.Errorf("position %d out of bounds (size %d)", position, len(tc.statements))
	}

	tc.statements[position] = statement

	return nil
}

// AddStatement inserts a statement at the given position, shifting later
// statements. A negative position or one past the end appends. Callers only
// ever request positions at or after all of the statement's argument
// positions, which preserves the no-forward-reference invariant.
func (tc *TestCase) AddStatement(statement Statement, position int) *VariableReference {
	if position < 0 || position >= len(tc.statements) {
		tc.statements = append(tc.statements, statement)
		return statement.Ret()
	}

	tc.statements = append(tc.statements[:position], append([]Statement{statement}, tc.statements[position:]...)...)

	return statement.Ret()
}

// GetObjects returns the references defined before the given position whose
// recorded type matches the requested one. A none or unknown request yields
// nil; untyped parameters are satisfied elsewhere by walking the statements
// directly.
func (tc *TestCase) GetObjects(typ Type, position int) []*VariableReference {
	if typ.IsNone() || typ.IsUnknown() {
		return nil
	}

	if position > len(tc.statements) {
		position = len(tc.statements)
	}

	var objects []*VariableReference

	for _, stmt := range tc.statements[:position] {
		if stmt.Ret().Type().Equal(typ) {
			objects = append(objects, stmt.Ret())
		}
	}

	return objects
}

// VariablesBefore returns every reference defined before the given position,
// regardless of type.
func (tc *TestCase) VariablesBefore(position int) []*VariableReference {
	if position > len(tc.statements) {
		position = len(tc.statements)
	}

	variables := make([]*VariableReference, 0, position)
	for _, stmt := range tc.statements[:position] {
		variables = append(variables, stmt.Ret())
	}

	return variables
}

// Chop truncates the test case back to the given length. Statements past the
// length are dropped together with the references they define.
func (tc *TestCase) Chop(length int) {
	if length < 0 {
		length = 0
	}

	if length < len(tc.statements) {
		tc.statements = tc.statements[:length]
	}
}

// Clone deep-copies the test case. Statements are cloned in order and their
// references remapped, so the clone never shares references with the
// original. The returned memo maps old references to new ones and is the
// remap expected by StructuralEq.
func (tc *TestCase) Clone() (*TestCase, map[*VariableReference]*VariableReference) {
	clone := NewTestCase()
	memo := make(map[*VariableReference]*VariableReference, len(tc.statements))

	for _, stmt := range tc.statements {
		cloned := stmt.Clone(clone, memo)
		memo[stmt.Ret()] = cloned.Ret()
		clone.statements = append(clone.statements, cloned)
	}

	return clone, memo
}
