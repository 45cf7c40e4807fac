package model

import (
	"fmt"
	"strings"
)

// Parameter is one declared parameter of an inferred signature.
type Parameter struct {
	Name string
	Type Type
}

// Signature is the inferred signature of a callable accessible object. The
// parameter order is the declaration order.
type Signature struct {
	Parameters []Parameter
	Returns    Type
}

func (s Signature) String() string {
	parts := make([]string, 0, len(s.Parameters))
	for _, p := range s.Parameters {
		parts = append(parts, fmt.Sprintf("%s %s", p.Name, p.Type))
	}

	if s.Returns.IsUnknown() || s.Returns.IsNone() {
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	}

	return fmt.Sprintf("(%s) %s", strings.Join(parts, ", "), s.Returns)
}

// Accessible is a callable member of the subject program known to produce a
// value of some type: a constructor, a method, a free function, or a field
// access. It is a closed variant; the construction engine dispatches on the
// concrete type.
type Accessible interface {
	// GeneratedType is the type of the value this accessible produces.
	GeneratedType() Type
	// Describe returns a short human-readable description for logs and errors.
	Describe() string

	accessible()
}

// Constructor builds an instance of its declaring type.
type Constructor struct {
	Declaring TypeName
	Signature Signature
}

func (c *Constructor) accessible() {}

// GeneratedType implements Accessible.
func (c *Constructor) GeneratedType() Type {
	return Concrete(c.Declaring)
}

// Describe implements Accessible.
func (c *Constructor) Describe() string {
	return fmt.Sprintf("constructor %s%s", c.Declaring, c.Signature)
}

// Method is called on a receiver of its owner type.
type Method struct {
	OwnerType TypeName
	Name      string
	Signature Signature
}

func (m *Method) accessible() {}

// Owner is the type a receiver must have for this method to be callable.
func (m *Method) Owner() Type {
	return Concrete(m.OwnerType)
}

// GeneratedType implements Accessible.
func (m *Method) GeneratedType() Type {
	return m.Signature.Returns
}

// Describe implements Accessible.
func (m *Method) Describe() string {
	return fmt.Sprintf("method %s.%s%s", m.OwnerType, m.Name, m.Signature)
}

// Function is a free function of the subject program.
type Function struct {
	Name      string
	Signature Signature
}

func (f *Function) accessible() {}

// GeneratedType implements Accessible.
func (f *Function) GeneratedType() Type {
	return f.Signature.Returns
}

// Describe implements Accessible.
func (f *Function) Describe() string {
	return fmt.Sprintf("function %s%s", f.Name, f.Signature)
}

// Field is a readable field on an owner type.
type Field struct {
	OwnerType TypeName
	Name      string
	Type      Type
}

func (f *Field) accessible() {}

// Owner is the type an instance must have for this field to be readable.
func (f *Field) Owner() Type {
	return Concrete(f.OwnerType)
}

// GeneratedType implements Accessible.
func (f *Field) GeneratedType() Type {
	return f.Type
}

// Describe implements Accessible.
func (f *Field) Describe() string {
	return fmt.Sprintf("field %s.%s %s", f.OwnerType, f.Name, f.Type)
}
