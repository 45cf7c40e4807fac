package domain

import (
	"log/slog"

	"stitch.dev/pkg/stitch/internal/adapter"
	m "stitch.dev/pkg/stitch/internal/model"
)

// unrelatedTypeFallbackProbability is the chance of constructing a value of a
// random unrelated type when the requested type cannot be built and nothing
// is available for reuse.
const unrelatedTypeFallbackProbability = 0.85

// Config carries the probability table and recursion ceiling for one
// construction stream. The ceiling is fixed for the duration of a top-level
// request.
type Config struct {
	MaxRecursion              int
	PrimitiveReuseProbability float64
	ObjectReuseProbability    float64
	NoneProbability           float64

	// Transactional chops a test case back to its pre-call length when a
	// later parameter of the same call cannot be satisfied. The default
	// keeps earlier dependency statements in place and leaves pruning to
	// the caller, matching the best-effort behavior the search loop expects.
	Transactional bool
}

// DefaultConfig returns the default construction configuration.
func DefaultConfig() Config {
	return Config{
		MaxRecursion:              10,
		PrimitiveReuseProbability: 0.5,
		ObjectReuseProbability:    0.9,
		NoneProbability:           0.08,
		Transactional:             false,
	}
}

// Factory constructs statements that produce values of requested types,
// recursively satisfying each parameter by reusing an already visible value
// or building a fresh one. It holds no state beyond its injected
// collaborators; a test case is mutated in place by exactly one factory call
// at a time.
type Factory struct {
	config  Config
	random  Randomness
	catalog adapter.Catalog
}

// NewFactory creates a factory with the given configuration, randomness
// source, and catalog.
func NewFactory(config Config, random Randomness, catalog adapter.Catalog) *Factory {
	return &Factory{config: config, random: random, catalog: catalog}
}

// AppendStatement dispatches an already-built statement template to the
// matching add operation and appends at the end of the test case.
func (f *Factory) AppendStatement(testCase *m.TestCase, statement m.Statement, allowNone bool) error {
	switch s := statement.(type) {
	case *m.ConstructorStatement:
		_, err := f.AddConstructor(testCase, s.Constructor(), testCase.Size(), 0, allowNone)
		return err
	case *m.MethodStatement:
		_, err := f.AddMethod(testCase, s.Method(), testCase.Size(), 0, allowNone)
		return err
	case *m.FunctionStatement:
		_, err := f.AddFunction(testCase, s.Function(), testCase.Size(), 0, allowNone)
		return err
	case *m.FieldStatement:
		_, err := f.AddField(testCase, s.Field(), testCase.Size(), 0)
		return err
	case m.PrimitiveStatement:
		f.AddPrimitive(testCase, s, testCase.Size())
		return nil
	default:
		return newConstructionError(ErrUnknownVariant, "unknown statement type %T", statement)
	}
}

// AppendAccessible dispatches an accessible object to the matching add
// operation. A negative position means the end of the test case. It returns
// the reference to the produced value.
func (f *Factory) AppendAccessible(testCase *m.TestCase, accessible m.Accessible, position, depth int, allowNone bool) (*m.VariableReference, error) {
	if position < 0 {
		position = testCase.Size()
	}

	switch a := accessible.(type) {
	case *m.Constructor:
		return f.AddConstructor(testCase, a, position, depth, allowNone)
	case *m.Method:
		return f.AddMethod(testCase, a, position, depth, allowNone)
	case *m.Function:
		return f.AddFunction(testCase, a, position, depth, allowNone)
	case *m.Field:
		return f.AddField(testCase, a, position, depth)
	default:
		return nil, newConstructionError(ErrUnknownVariant, "unknown accessible type %T", accessible)
	}
}

// AddConstructor adds a constructor call at the given position, building its
// arguments first. Any failure during its own construction is rewrapped to
// name the constructor, with the underlying cause chained.
func (f *Factory) AddConstructor(testCase *m.TestCase, constructor *m.Constructor, position, depth int, allowNone bool) (*m.VariableReference, error) {
	slog.Debug("adding constructor", "constructor", constructor.Describe(), "position", position, "depth", depth)

	if depth > f.config.MaxRecursion {
		return nil, newConstructionError(ErrRecursionLimit, "max recursion depth reached for %s", constructor.Describe())
	}

	if position < 0 {
		position = testCase.Size()
	}

	length := testCase.Size()

	parameters, err := f.SatisfyParameters(testCase, constructor.Signature.Parameters, nil, position, depth+1, allowNone, true)
	if err != nil {
		return nil, wrapConstructionError(ErrUnsatisfiable, err, "failed to add %s", constructor.Describe())
	}

	position += testCase.Size() - length

	statement := m.NewConstructorStatement(testCase, constructor, parameters)

	return testCase.AddStatement(statement, position), nil
}

// AddMethod adds a method call at the given position. The receiver is
// resolved before the arguments; resolving no receiver is a contract break
// and fails loudly.
func (f *Factory) AddMethod(testCase *m.TestCase, method *m.Method, position, depth int, allowNone bool) (*m.VariableReference, error) {
	slog.Debug("adding method", "method", method.Describe(), "position", position, "depth", depth)

	if depth > f.config.MaxRecursion {
		return nil, newConstructionError(ErrRecursionLimit, "max recursion depth reached for %s", method.Describe())
	}

	if position < 0 {
		position = testCase.Size()
	}

	length := testCase.Size()

	callee, err := f.createOrReuseVariable(testCase, method.Owner(), position, depth, true, nil)
	if err != nil {
		return nil, err
	}

	if callee == nil {
		return nil, newConstructionError(ErrNoReceiver, "no receiver of type %s for %s", method.Owner(), method.Describe())
	}

	parameters, err := f.SatisfyParameters(testCase, method.Signature.Parameters, callee, position, depth+1, allowNone, true)
	if err != nil {
		return nil, err
	}

	position += testCase.Size() - length

	statement := m.NewMethodStatement(testCase, method, callee, parameters)

	return testCase.AddStatement(statement, position), nil
}

// AddFunction adds a free function call at the given position, building its
// arguments first.
func (f *Factory) AddFunction(testCase *m.TestCase, function *m.Function, position, depth int, allowNone bool) (*m.VariableReference, error) {
	slog.Debug("adding function", "function", function.Describe(), "position", position, "depth", depth)

	if depth > f.config.MaxRecursion {
		return nil, newConstructionError(ErrRecursionLimit, "max recursion depth reached for %s", function.Describe())
	}

	if position < 0 {
		position = testCase.Size()
	}

	length := testCase.Size()

	parameters, err := f.SatisfyParameters(testCase, function.Signature.Parameters, nil, position, depth+1, allowNone, true)
	if err != nil {
		return nil, err
	}

	position += testCase.Size() - length

	statement := m.NewFunctionStatement(testCase, function, parameters)

	return testCase.AddStatement(statement, position), nil
}

// AddField adds a field access at the given position. A none value cannot
// carry a field, so owner resolution never falls back to a none literal.
func (f *Factory) AddField(testCase *m.TestCase, field *m.Field, position, depth int) (*m.VariableReference, error) {
	slog.Debug("adding field", "field", field.Describe(), "position", position, "depth", depth)

	if depth > f.config.MaxRecursion {
		return nil, newConstructionError(ErrRecursionLimit, "max recursion depth reached for %s", field.Describe())
	}

	if position < 0 {
		position = testCase.Size()
	}

	length := testCase.Size()

	owner, err := f.createOrReuseVariable(testCase, field.Owner(), position, depth, false, nil)
	if err != nil {
		return nil, err
	}

	if owner == nil {
		return nil, newConstructionError(ErrNoReceiver, "no owner of type %s for %s", field.Owner(), field.Describe())
	}

	position += testCase.Size() - length

	statement := m.NewFieldStatement(testCase, field, owner)

	return testCase.AddStatement(statement, position), nil
}

// AddPrimitive clones a primitive literal template into the test case at the
// given position. It has no failure path.
func (f *Factory) AddPrimitive(testCase *m.TestCase, primitive m.PrimitiveStatement, position int) *m.VariableReference {
	if position < 0 {
		position = testCase.Size()
	}

	slog.Debug("adding primitive", "position", position)

	statement := primitive.Clone(testCase, nil)

	return testCase.AddStatement(statement, position)
}

// SatisfyParameters obtains one reference per parameter type, in declaration
// order, either by reuse-or-create or by forced creation. The insertion
// position advances by the net growth each recursive construction causes.
// On failure the already-inserted dependency statements stay in the test
// case unless the factory is configured transactional.
func (f *Factory) SatisfyParameters(
	testCase *m.TestCase,
	parameters []m.Parameter,
	callee *m.VariableReference,
	position, depth int,
	allowNone, canReuseExistingVariables bool,
) ([]*m.VariableReference, error) {
	if position < 0 {
		position = testCase.Size()
	}

	initialLength := testCase.Size()
	references := make([]*m.VariableReference, 0, len(parameters))

	slog.Debug("satisfying parameters", "count", len(parameters), "position", position)

	for _, parameter := range parameters {
		previousLength := testCase.Size()

		var (
			ref *m.VariableReference
			err error
		)

		if canReuseExistingVariables {
			ref, err = f.createOrReuseVariable(testCase, parameter.Type, position, depth, allowNone, callee)
		} else {
			ref, err = f.createVariable(testCase, parameter.Type, position, depth, allowNone, callee)
		}

		if err == nil && ref == nil {
			err = newConstructionError(ErrUnsatisfiable, "failed to create variable for type %s at position %d", parameter.Type, position)
		}

		if err != nil {
			if f.config.Transactional {
				testCase.Chop(initialLength)
			}

			return nil, err
		}

		references = append(references, ref)
		position += testCase.Size() - previousLength
	}

	slog.Debug("satisfied parameters", "count", len(references))

	return references, nil
}

// createOrReuseVariable resolves one requested type into a reference, first
// considering values already visible before the position, then fresh
// construction, then the fallback chain.
func (f *Factory) createOrReuseVariable(
	testCase *m.TestCase,
	typ m.Type,
	position, depth int,
	allowNone bool,
	exclude *m.VariableReference,
) (*m.VariableReference, error) {
	if typ.IsUnion() {
		typ = Choice(f.random, typ.Arms())
	}

	reuse := f.random.NextFloat()
	objects := testCase.GetObjects(typ, position)
	isPrimitive := typ.IsPrimitive()

	if isPrimitive && len(objects) > 0 && reuse <= f.config.PrimitiveReuseProbability {
		return Choice(f.random, objects), nil
	}

	if !isPrimitive && len(objects) > 0 && reuse <= f.config.ObjectReuseProbability {
		slog.Debug("reusing existing object", "type", typ, "candidates", len(objects))
		return Choice(f.random, objects), nil
	}

	if testCase.Size() > 0 && typ.IsNone() && len(objects) == 0 {
		// An untyped parameter accepts any visible value.
		if ref := f.anyVisibleVariable(testCase, position, exclude); ref != nil {
			return ref, nil
		}
	}

	created, err := f.createVariable(testCase, typ, position, depth, allowNone, exclude)
	if err != nil {
		return nil, err
	}

	if created != nil {
		return created, nil
	}

	if len(objects) == 0 {
		if f.random.NextFloat() <= unrelatedTypeFallbackProbability {
			return f.createRandomTypeVariable(testCase, position, depth, allowNone)
		}

		if allowNone {
			return f.createNone(testCase, typ, position, depth), nil
		}

		return nil, newConstructionError(ErrUnsatisfiable, "no objects for type %s at position %d", typ, position)
	}

	slog.Debug("falling back to existing object", "type", typ, "candidates", len(objects))

	return Choice(f.random, objects), nil
}

// createVariable attempts fresh construction of a value of the requested
// type. A nil result without an error means no value is obtainable at this
// level; the caller's fallback chain decides what happens next. None and
// unknown types yield no value here, they cannot be constructed directly.
func (f *Factory) createVariable(
	testCase *m.TestCase,
	typ m.Type,
	position, depth int,
	allowNone bool,
	exclude *m.VariableReference,
) (*m.VariableReference, error) {
	if typ.IsUnion() {
		typ = Choice(f.random, typ.Arms())
	}

	if typ.IsUnknown() || typ.IsNone() {
		return nil, nil
	}

	if typ.IsPrimitive() {
		return f.createPrimitive(testCase, typ, position, depth), nil
	}

	if generators := f.catalog.GeneratorsFor(typ); len(generators) > 0 {
		generator := Choice(f.random, generators)
		return f.AppendAccessible(testCase, generator, position, depth+1, allowNone)
	}

	if allowNone && f.random.NextFloat() <= f.config.NoneProbability {
		return f.createNone(testCase, typ, position, depth), nil
	}

	return nil, nil
}

// createRandomTypeVariable resolves a value of a uniformly random known type,
// drawn from the generator-bearing types plus the primitives, one recursion
// level deeper.
func (f *Factory) createRandomTypeVariable(testCase *m.TestCase, position, depth int, allowNone bool) (*m.VariableReference, error) {
	types := append(f.catalog.AllGeneratorTypes(), m.PrimitiveTypes()...)
	typ := Choice(f.random, types)

	slog.Debug("falling back to random unrelated type", "type", typ)

	return f.createOrReuseVariable(testCase, typ, position, depth+1, allowNone, nil)
}

// createNone inserts a none literal whose reference records the requested
// type.
func (f *Factory) createNone(testCase *m.TestCase, requested m.Type, position, depth int) *m.VariableReference {
	statement := m.NewNoneStatement(testCase, requested)
	ref := testCase.AddStatement(statement, position)
	ref.Distance = depth

	return ref
}

// createPrimitive synthesizes a literal with a fresh random value. Type
// names outside the primitive set fall back to a string literal.
func (f *Factory) createPrimitive(testCase *m.TestCase, typ m.Type, position, depth int) *m.VariableReference {
	var statement m.Statement

	switch typ.Name() {
	case m.TypeInt:
		statement = m.NewIntStatement(testCase, randomInt(f.random))
	case m.TypeFloat:
		statement = m.NewFloatStatement(testCase, randomFloat(f.random))
	case m.TypeBool:
		statement = m.NewBoolStatement(testCase, randomBool(f.random))
	default:
		statement = m.NewStringStatement(testCase, randomString(f.random))
	}

	ref := testCase.AddStatement(statement, position)
	ref.Distance = depth

	return ref
}

// anyVisibleVariable returns a random reference defined before the position,
// skipping the excluded one.
func (f *Factory) anyVisibleVariable(testCase *m.TestCase, position int, exclude *m.VariableReference) *m.VariableReference {
	variables := testCase.VariablesBefore(position)

	if exclude != nil {
		filtered := variables[:0:0]

		for _, v := range variables {
			if v != exclude {
				filtered = append(filtered, v)
			}
		}

		variables = filtered
	}

	if len(variables) == 0 {
		return nil
	}

	return Choice(f.random, variables)
}
