package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "stitch.dev/pkg/stitch/internal/model"
)

func TestRenderTestCase(t *testing.T) {
	t.Run("renders every statement variant", func(t *testing.T) {
		tc := m.NewTestCase()

		num := tc.AddStatement(m.NewIntStatement(tc, -5), -1)
		tc.AddStatement(m.NewFloatStatement(tc, 1.5), -1)
		tc.AddStatement(m.NewBoolStatement(tc, true), -1)
		tc.AddStatement(m.NewStringStatement(tc, "hi"), -1)
		tc.AddStatement(m.NewNoneStatement(tc, m.Concrete("Gadget")), -1)

		ctor := &m.Constructor{
			Declaring: "Foo",
			Signature: m.Signature{
				Parameters: []m.Parameter{{Name: "n", Type: m.Concrete(m.TypeInt)}},
				Returns:    m.Concrete("Foo"),
			},
		}
		owner := tc.AddStatement(m.NewConstructorStatement(tc, ctor, []*m.VariableReference{num}), -1)

		method := &m.Method{OwnerType: "Foo", Name: "Bar", Signature: m.Signature{Returns: m.Concrete(m.TypeInt)}}
		tc.AddStatement(m.NewMethodStatement(tc, method, owner, []*m.VariableReference{num}), -1)

		fn := &m.Function{Name: "baz", Signature: m.Signature{Returns: m.Concrete(m.TypeBool)}}
		tc.AddStatement(m.NewFunctionStatement(tc, fn, nil), -1)

		field := &m.Field{OwnerType: "Foo", Name: "Size", Type: m.Concrete(m.TypeInt)}
		tc.AddStatement(m.NewFieldStatement(tc, field, owner), -1)

		rendered, err := RenderTestCase(tc)
		require.NoError(t, err)

		expected := `v0 := -5
v1 := 1.5
v2 := true
v3 := "hi"
v4 := none /* Gadget */
v5 := NewFoo(v0)
v6 := v5.Bar(v0)
v7 := baz()
v8 := v5.Size
`
		assert.Equal(t, expected, rendered)
	})

	t.Run("empty test case renders empty", func(t *testing.T) {
		rendered, err := RenderTestCase(m.NewTestCase())
		require.NoError(t, err)
		assert.Empty(t, rendered)
	})

	t.Run("forward reference is an error", func(t *testing.T) {
		tc := m.NewTestCase()

		dangling := m.NewVariableReference(tc, m.Concrete("Foo"))
		method := &m.Method{OwnerType: "Foo", Name: "Bar", Signature: m.Signature{Returns: m.Concrete(m.TypeInt)}}
		tc.AddStatement(m.NewMethodStatement(tc, method, dangling, nil), -1)

		_, err := RenderTestCase(tc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "statement 0")
		assert.Contains(t, err.Error(), "undefined")
	})

	t.Run("undefined argument is an error", func(t *testing.T) {
		tc := m.NewTestCase()

		dangling := m.NewVariableReference(tc, m.Concrete(m.TypeInt))
		fn := &m.Function{Name: "f", Signature: m.Signature{Returns: m.Concrete(m.TypeInt)}}
		tc.AddStatement(m.NewFunctionStatement(tc, fn, []*m.VariableReference{dangling}), -1)

		_, err := RenderTestCase(tc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "argument of type int is undefined")
	})
}
