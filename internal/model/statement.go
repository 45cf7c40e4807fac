package model

// Statement is one step of a test case. Every statement produces exactly one
// variable reference; parametrized statements additionally own the references
// they consume, all of which must be defined at strictly smaller positions in
// the same test case.
type Statement interface {
	// Ret is the variable reference this statement defines.
	Ret() *VariableReference
	// References returns the argument and receiver references this statement
	// owns, in consumption order. The returned slice excludes Ret.
	References() []*VariableReference
	// Clone copies this statement into the target test case, resolving owned
	// references through the old-to-new memo.
	Clone(target *TestCase, memo map[*VariableReference]*VariableReference) Statement
}

// PrimitiveStatement is implemented by the literal statement variants. They
// own no references and can be cloned without a memo.
type PrimitiveStatement interface {
	Statement

	primitive()
}

// ConstructorStatement instantiates a type via one of its constructors.
type ConstructorStatement struct {
	constructor *Constructor
	args        []*VariableReference
	ret         *VariableReference
}

// NewConstructorStatement creates a constructor call with the given argument
// references, owned by the given test case.
func NewConstructorStatement(testCase *TestCase, constructor *Constructor, args []*VariableReference) *ConstructorStatement {
	return &ConstructorStatement{
		constructor: constructor,
		args:        args,
		ret:         NewVariableReference(testCase, constructor.GeneratedType()),
	}
}

// Constructor returns the constructor being called.
func (s *ConstructorStatement) Constructor() *Constructor {
	return s.constructor
}

// Args returns the argument references in declaration order.
func (s *ConstructorStatement) Args() []*VariableReference {
	return s.args
}

// Ret implements Statement.
func (s *ConstructorStatement) Ret() *VariableReference {
	return s.ret
}

// References implements Statement.
func (s *ConstructorStatement) References() []*VariableReference {
	refs := make([]*VariableReference, len(s.args))
	copy(refs, s.args)

	return refs
}

// Clone implements Statement.
func (s *ConstructorStatement) Clone(target *TestCase, memo map[*VariableReference]*VariableReference) Statement {
	return NewConstructorStatement(target, s.constructor, remapAll(s.args, memo))
}

// MethodStatement calls a method on a receiver.
type MethodStatement struct {
	method *Method
	callee *VariableReference
	args   []*VariableReference
	ret    *VariableReference
}

// NewMethodStatement creates a method call on the given receiver with the
// given argument references.
func NewMethodStatement(testCase *TestCase, method *Method, callee *VariableReference, args []*VariableReference) *MethodStatement {
	return &MethodStatement{
		method: method,
		callee: callee,
		args:   args,
		ret:    NewVariableReference(testCase, method.GeneratedType()),
	}
}

// Method returns the method being called.
func (s *MethodStatement) Method() *Method {
	return s.method
}

// Callee returns the receiver reference.
func (s *MethodStatement) Callee() *VariableReference {
	return s.callee
}

// Args returns the argument references in declaration order.
func (s *MethodStatement) Args() []*VariableReference {
	return s.args
}

// Ret implements Statement.
func (s *MethodStatement) Ret() *VariableReference {
	return s.ret
}

// References implements Statement.
func (s *MethodStatement) References() []*VariableReference {
	refs := make([]*VariableReference, 0, len(s.args)+1)
	refs = append(refs, s.callee)
	refs = append(refs, s.args...)

	return refs
}

// Clone implements Statement.
func (s *MethodStatement) Clone(target *TestCase, memo map[*VariableReference]*VariableReference) Statement {
	return NewMethodStatement(target, s.method, memo[s.callee], remapAll(s.args, memo))
}

// FunctionStatement calls a free function.
type FunctionStatement struct {
	function *Function
	args     []*VariableReference
	ret      *VariableReference
}

// NewFunctionStatement creates a function call with the given argument
// references.
func NewFunctionStatement(testCase *TestCase, function *Function, args []*VariableReference) *FunctionStatement {
	return &FunctionStatement{
		function: function,
		args:     args,
		ret:      NewVariableReference(testCase, function.GeneratedType()),
	}
}

// Function returns the function being called.
func (s *FunctionStatement) Function() *Function {
	return s.function
}

// Args returns the argument references in declaration order.
func (s *FunctionStatement) Args() []*VariableReference {
	return s.args
}

// Ret implements Statement.
func (s *FunctionStatement) Ret() *VariableReference {
	return s.ret
}

// References implements Statement.
func (s *FunctionStatement) References() []*VariableReference {
	refs := make([]*VariableReference, len(s.args))
	copy(refs, s.args)

	return refs
}

// Clone implements Statement.
func (s *FunctionStatement) Clone(target *TestCase, memo map[*VariableReference]*VariableReference) Statement {
	return NewFunctionStatement(target, s.function, remapAll(s.args, memo))
}

// FieldStatement reads a field off an owner reference.
type FieldStatement struct {
	field *Field
	owner *VariableReference
	ret   *VariableReference
}

// NewFieldStatement creates a field access on the given owner reference.
func NewFieldStatement(testCase *TestCase, field *Field, owner *VariableReference) *FieldStatement {
	return &FieldStatement{
		field: field,
		owner: owner,
		ret:   NewVariableReference(testCase, field.GeneratedType()),
	}
}

// Field returns the field being read.
func (s *FieldStatement) Field() *Field {
	return s.field
}

// Owner returns the owner reference.
func (s *FieldStatement) Owner() *VariableReference {
	return s.owner
}

// Ret implements Statement.
func (s *FieldStatement) Ret() *VariableReference {
	return s.ret
}

// References implements Statement.
func (s *FieldStatement) References() []*VariableReference {
	return []*VariableReference{s.owner}
}

// Clone implements Statement.
func (s *FieldStatement) Clone(target *TestCase, memo map[*VariableReference]*VariableReference) Statement {
	return NewFieldStatement(target, s.field, memo[s.owner])
}

// IntStatement is an integer literal.
type IntStatement struct {
	value int64
	ret   *VariableReference
}

// NewIntStatement creates an integer literal statement.
func NewIntStatement(testCase *TestCase, value int64) *IntStatement {
	return &IntStatement{value: value, ret: NewVariableReference(testCase, Concrete(TypeInt))}
}

func (s *IntStatement) primitive() {}

// Value returns the literal value.
func (s *IntStatement) Value() int64 {
	return s.value
}

// Ret implements Statement.
func (s *IntStatement) Ret() *VariableReference {
	return s.ret
}

// References implements Statement.
func (s *IntStatement) References() []*VariableReference {
	return nil
}

// Clone implements Statement.
func (s *IntStatement) Clone(target *TestCase, _ map[*VariableReference]*VariableReference) Statement {
	return NewIntStatement(target, s.value)
}

// FloatStatement is a floating-point literal.
type FloatStatement struct {
	value float64
	ret   *VariableReference
}

// NewFloatStatement creates a float literal statement.
func NewFloatStatement(testCase *TestCase, value float64) *FloatStatement {
	return &FloatStatement{value: value, ret: NewVariableReference(testCase, Concrete(TypeFloat))}
}

func (s *FloatStatement) primitive() {}

// Value returns the literal value.
func (s *FloatStatement) Value() float64 {
	return s.value
}

// Ret implements Statement.
func (s *FloatStatement) Ret() *VariableReference {
	return s.ret
}

// References implements Statement.
func (s *FloatStatement) References() []*VariableReference {
	return nil
}

// Clone implements Statement.
func (s *FloatStatement) Clone(target *TestCase, _ map[*VariableReference]*VariableReference) Statement {
	return NewFloatStatement(target, s.value)
}

// BoolStatement is a boolean literal.
type BoolStatement struct {
	value bool
	ret   *VariableReference
}

// NewBoolStatement creates a boolean literal statement.
func NewBoolStatement(testCase *TestCase, value bool) *BoolStatement {
	return &BoolStatement{value: value, ret: NewVariableReference(testCase, Concrete(TypeBool))}
}

func (s *BoolStatement) primitive() {}

// Value returns the literal value.
func (s *BoolStatement) Value() bool {
	return s.value
}

// Ret implements Statement.
func (s *BoolStatement) Ret() *VariableReference {
	return s.ret
}

// References implements Statement.
func (s *BoolStatement) References() []*VariableReference {
	return nil
}

// Clone implements Statement.
func (s *BoolStatement) Clone(target *TestCase, _ map[*VariableReference]*VariableReference) Statement {
	return NewBoolStatement(target, s.value)
}

// StringStatement is a string literal.
type StringStatement struct {
	value string
	ret   *VariableReference
}

// NewStringStatement creates a string literal statement.
func NewStringStatement(testCase *TestCase, value string) *StringStatement {
	return &StringStatement{value: value, ret: NewVariableReference(testCase, Concrete(TypeString))}
}

func (s *StringStatement) primitive() {}

// Value returns the literal value.
func (s *StringStatement) Value() string {
	return s.value
}

// Ret implements Statement.
func (s *StringStatement) Ret() *VariableReference {
	return s.ret
}

// References implements Statement.
func (s *StringStatement) References() []*VariableReference {
	return nil
}

// Clone implements Statement.
func (s *StringStatement) Clone(target *TestCase, _ map[*VariableReference]*VariableReference) Statement {
	return NewStringStatement(target, s.value)
}

// NoneStatement is an explicit "no value" literal. Its reference records the
// type that was originally requested, so later reuse queries still match.
type NoneStatement struct {
	ret *VariableReference
}

// NewNoneStatement creates a none literal whose reference records the
// requested type.
func NewNoneStatement(testCase *TestCase, requested Type) *NoneStatement {
	return &NoneStatement{ret: NewVariableReference(testCase, requested)}
}

func (s *NoneStatement) primitive() {}

// Ret implements Statement.
func (s *NoneStatement) Ret() *VariableReference {
	return s.ret
}

// References implements Statement.
func (s *NoneStatement) References() []*VariableReference {
	return nil
}

// Clone implements Statement.
func (s *NoneStatement) Clone(target *TestCase, _ map[*VariableReference]*VariableReference) Statement {
	return NewNoneStatement(target, s.ret.Type())
}

func remapAll(refs []*VariableReference, memo map[*VariableReference]*VariableReference) []*VariableReference {
	remapped := make([]*VariableReference, len(refs))
	for i, ref := range refs {
		remapped[i] = memo[ref]
	}

	return remapped
}
