// Package adapter provides catalog loading, corpus persistence, and test
// case rendering.
package adapter

import (
	m "stitch.dev/pkg/stitch/internal/model"
)

// Catalog exposes the accessible objects of a subject program.
type Catalog interface {
	// GeneratorsFor returns the known generators producing a value of the
	// given type. The result may be empty.
	GeneratorsFor(typ m.Type) []m.Accessible
	// AllGeneratorTypes enumerates every type with at least one generator,
	// in registration order.
	AllGeneratorTypes() []m.Type
	// Accessibles returns every registered accessible, in registration order.
	Accessibles() []m.Accessible
}

// MemoryCatalog is an insertion-ordered, in-memory Catalog.
type MemoryCatalog struct {
	accessibles []m.Accessible
	generators  map[m.TypeName][]m.Accessible
	order       []m.TypeName
}

// NewMemoryCatalog creates an empty catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{generators: make(map[m.TypeName][]m.Accessible)}
}

// Add registers an accessible. When its generated type is concrete, the
// accessible is indexed as a generator for that type.
func (c *MemoryCatalog) Add(accessible m.Accessible) {
	c.accessibles = append(c.accessibles, accessible)

	generated := accessible.GeneratedType()
	if generated.Kind() != m.KindConcrete {
		return
	}

	name := generated.Name()
	if _, seen := c.generators[name]; !seen {
		c.order = append(c.order, name)
	}

	c.generators[name] = append(c.generators[name], accessible)
}

// GeneratorsFor implements Catalog. Only concrete types have generators.
func (c *MemoryCatalog) GeneratorsFor(typ m.Type) []m.Accessible {
	if typ.Kind() != m.KindConcrete {
		return nil
	}

	return c.generators[typ.Name()]
}

// AllGeneratorTypes implements Catalog.
func (c *MemoryCatalog) AllGeneratorTypes() []m.Type {
	types := make([]m.Type, 0, len(c.order))
	for _, name := range c.order {
		types = append(types, m.Concrete(name))
	}

	return types
}

// Accessibles implements Catalog.
func (c *MemoryCatalog) Accessibles() []m.Accessible {
	return c.accessibles
}
