package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeConstructors(t *testing.T) {
	t.Run("concrete", func(t *testing.T) {
		typ := Concrete("Foo")
		assert.Equal(t, KindConcrete, typ.Kind())
		assert.Equal(t, TypeName("Foo"), typ.Name())
		assert.Equal(t, "Foo", typ.String())
	})

	t.Run("union of two", func(t *testing.T) {
		typ := Union(Concrete(TypeInt), Concrete(TypeString))
		assert.Equal(t, KindUnion, typ.Kind())
		assert.Len(t, typ.Arms(), 2)
		assert.Equal(t, "int|string", typ.String())
	})

	t.Run("union of one collapses", func(t *testing.T) {
		typ := Union(Concrete(TypeInt))
		assert.Equal(t, KindConcrete, typ.Kind())
		assert.Equal(t, TypeInt, typ.Name())
	})

	t.Run("empty union is unknown", func(t *testing.T) {
		typ := Union()
		assert.Equal(t, KindUnknown, typ.Kind())
	})

	t.Run("none and unknown", func(t *testing.T) {
		assert.True(t, None().IsNone())
		assert.True(t, Unknown().IsUnknown())
		assert.Equal(t, "none", None().String())
		assert.Equal(t, "unknown", Unknown().String())
	})
}

func TestTypeIsPrimitive(t *testing.T) {
	for _, typ := range PrimitiveTypes() {
		assert.True(t, typ.IsPrimitive(), typ.String())
	}

	assert.False(t, Concrete("Foo").IsPrimitive())
	assert.False(t, None().IsPrimitive())
	assert.False(t, Unknown().IsPrimitive())
	assert.False(t, Union(Concrete(TypeInt), Concrete(TypeBool)).IsPrimitive())
}

func TestTypeEqual(t *testing.T) {
	tests := []struct {
		name string
		a    Type
		b    Type
		want bool
	}{
		{"same concrete", Concrete("Foo"), Concrete("Foo"), true},
		{"different concrete", Concrete("Foo"), Concrete("Bar"), false},
		{"none vs none", None(), None(), true},
		{"unknown vs unknown", Unknown(), Unknown(), true},
		{"none vs unknown", None(), Unknown(), false},
		{"concrete vs none", Concrete("Foo"), None(), false},
		{
			"same union",
			Union(Concrete(TypeInt), Concrete(TypeString)),
			Union(Concrete(TypeInt), Concrete(TypeString)),
			true,
		},
		{
			"union arm order matters",
			Union(Concrete(TypeInt), Concrete(TypeString)),
			Union(Concrete(TypeString), Concrete(TypeInt)),
			false,
		},
		{
			"union arity differs",
			Union(Concrete(TypeInt), Concrete(TypeString)),
			Union(Concrete(TypeInt), Concrete(TypeString), Concrete(TypeBool)),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestSortTypes(t *testing.T) {
	types := []Type{Concrete("b"), Concrete("a"), None(), Concrete("c")}
	SortTypes(types)

	require.Len(t, types, 4)
	assert.Equal(t, "a", types[0].String())
	assert.Equal(t, "b", types[1].String())
	assert.Equal(t, "c", types[2].String())
	assert.Equal(t, "none", types[3].String())
}

func TestSignatureString(t *testing.T) {
	sig := Signature{
		Parameters: []Parameter{
			{Name: "a", Type: Concrete(TypeInt)},
			{Name: "b", Type: Union(Concrete(TypeInt), Concrete(TypeString))},
		},
		Returns: Concrete("Foo"),
	}
	assert.Equal(t, "(a int, b int|string) Foo", sig.String())

	void := Signature{Returns: None()}
	assert.Equal(t, "()", void.String())
}

func TestAccessibleDescribe(t *testing.T) {
	ctor := &Constructor{Declaring: "Foo", Signature: Signature{Returns: Concrete("Foo")}}
	assert.Equal(t, "constructor Foo() Foo", ctor.Describe())
	assert.True(t, ctor.GeneratedType().Equal(Concrete("Foo")))

	method := &Method{OwnerType: "Foo", Name: "Bar", Signature: Signature{Returns: Concrete(TypeInt)}}
	assert.Equal(t, "method Foo.Bar() int", method.Describe())
	assert.True(t, method.Owner().Equal(Concrete("Foo")))

	fn := &Function{Name: "baz", Signature: Signature{Returns: None()}}
	assert.Equal(t, "function baz()", fn.Describe())

	field := &Field{OwnerType: "Foo", Name: "Size", Type: Concrete(TypeInt)}
	assert.Equal(t, "field Foo.Size int", field.Describe())
	assert.True(t, field.Owner().Equal(Concrete("Foo")))
}
