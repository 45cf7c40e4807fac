package adapter

import (
	"fmt"
	"strconv"
	"strings"

	m "stitch.dev/pkg/stitch/internal/model"
)

// RenderTestCase renders a test case as readable pseudo code, one statement
// per line, with variables named by position. A statement referring to a
// variable that is not yet defined is a broken ordering invariant and yields
// an error.
func RenderTestCase(testCase *m.TestCase) (string, error) {
	var b strings.Builder

	names := make(map[*m.VariableReference]string, testCase.Size())

	for position, statement := range testCase.Statements() {
		name := fmt.Sprintf("v%d", position)

		line, err := renderStatement(statement, names)
		if err != nil {
			return "", fmt.Errorf("statement %d: %w", position, err)
		}

		fmt.Fprintf(&b, "%s := %s\n", name, line)

		names[statement.Ret()] = name
	}

	return b.String(), nil
}

func renderStatement(statement m.Statement, names map[*m.VariableReference]string) (string, error) {
	switch s := statement.(type) {
	case *m.ConstructorStatement:
		args, err := renderRefs(s.Args(), names)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("New%s(%s)", s.Constructor().Declaring, args), nil
	case *m.MethodStatement:
		callee, ok := names[s.Callee()]
		if !ok {
			return "", fmt.Errorf("receiver of %s is undefined", s.Method().Describe())
		}

		args, err := renderRefs(s.Args(), names)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s.%s(%s)", callee, s.Method().Name, args), nil
	case *m.FunctionStatement:
		args, err := renderRefs(s.Args(), names)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s(%s)", s.Function().Name, args), nil
	case *m.FieldStatement:
		owner, ok := names[s.Owner()]
		if !ok {
			return "", fmt.Errorf("owner of %s is undefined", s.Field().Describe())
		}

		return fmt.Sprintf("%s.%s", owner, s.Field().Name), nil
	case *m.IntStatement:
		return strconv.FormatInt(s.Value(), 10), nil
	case *m.FloatStatement:
		return strconv.FormatFloat(s.Value(), 'g', -1, 64), nil
	case *m.BoolStatement:
		return strconv.FormatBool(s.Value()), nil
	case *m.StringStatement:
		return strconv.Quote(s.Value()), nil
	case *m.NoneStatement:
		return fmt.Sprintf("none /* %s */", s.Ret().Type()), nil
	default:
		return "", fmt.Errorf("unknown statement type %T", statement)
	}
}

func renderRefs(refs []*m.VariableReference, names map[*m.VariableReference]string) (string, error) {
	parts := make([]string, 0, len(refs))

	for _, ref := range refs {
		name, ok := names[ref]
		if !ok {
			return "", fmt.Errorf("argument of type %s is undefined", ref.Type())
		}

		parts = append(parts, name)
	}

	return strings.Join(parts, ", "), nil
}
