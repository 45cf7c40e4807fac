package adapter

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	m "stitch.dev/pkg/stitch/internal/model"
)

// catalogFile is the on-disk YAML description of a subject program's
// accessible objects.
type catalogFile struct {
	Subject   string             `yaml:"subject"`
	Types     []catalogType      `yaml:"types"`
	Functions []catalogSignature `yaml:"functions"`
}

type catalogType struct {
	Name         string             `yaml:"name"`
	Constructors []catalogSignature `yaml:"constructors"`
	Methods      []catalogSignature `yaml:"methods"`
	Fields       []catalogField     `yaml:"fields"`
}

type catalogSignature struct {
	Name    string         `yaml:"name"`
	Params  []catalogParam `yaml:"params"`
	Returns string         `yaml:"returns"`
}

type catalogParam struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type catalogField struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadCatalog reads a YAML catalog file and builds an in-memory catalog.
// Validation errors name the offending entry.
func LoadCatalog(path string) (*MemoryCatalog, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, "", fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	catalog, err := buildCatalog(file)
	if err != nil {
		return nil, "", fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	return catalog, file.Subject, nil
}

func buildCatalog(file catalogFile) (*MemoryCatalog, error) {
	catalog := NewMemoryCatalog()

	for _, typ := range file.Types {
		if strings.TrimSpace(typ.Name) == "" {
			return nil, fmt.Errorf("type with empty name")
		}

		for i, ctor := range typ.Constructors {
			signature, err := buildSignature(ctor.Params, string(typ.Name))
			if err != nil {
				return nil, fmt.Errorf("constructor %d of type %s: %w", i, typ.Name, err)
			}

			catalog.Add(&m.Constructor{Declaring: m.TypeName(typ.Name), Signature: signature})
		}

		for _, method := range typ.Methods {
			if strings.TrimSpace(method.Name) == "" {
				return nil, fmt.Errorf("method with empty name on type %s", typ.Name)
			}

			signature, err := buildSignature(method.Params, method.Returns)
			if err != nil {
				return nil, fmt.Errorf("method %s.%s: %w", typ.Name, method.Name, err)
			}

			catalog.Add(&m.Method{OwnerType: m.TypeName(typ.Name), Name: method.Name, Signature: signature})
		}

		for _, field := range typ.Fields {
			if strings.TrimSpace(field.Name) == "" {
				return nil, fmt.Errorf("field with empty name on type %s", typ.Name)
			}

			catalog.Add(&m.Field{OwnerType: m.TypeName(typ.Name), Name: field.Name, Type: ParseTypeSpec(field.Type)})
		}
	}

	for _, function := range file.Functions {
		if strings.TrimSpace(function.Name) == "" {
			return nil, fmt.Errorf("function with empty name")
		}

		signature, err := buildSignature(function.Params, function.Returns)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", function.Name, err)
		}

		catalog.Add(&m.Function{Name: function.Name, Signature: signature})
	}

	return catalog, nil
}

func buildSignature(params []catalogParam, returns string) (m.Signature, error) {
	parameters := make([]m.Parameter, 0, len(params))

	for i, param := range params {
		name := param.Name
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("arg%d", i)
		}

		typ, err := parseParamType(param.Type)
		if err != nil {
			return m.Signature{}, fmt.Errorf("parameter %s: %w", name, err)
		}

		parameters = append(parameters, m.Parameter{Name: name, Type: typ})
	}

	return m.Signature{Parameters: parameters, Returns: ParseTypeSpec(returns)}, nil
}

// parseParamType parses a parameter type and enforces that union
// alternatives are concrete named types.
func parseParamType(spec string) (m.Type, error) {
	typ := ParseTypeSpec(spec)

	if typ.IsUnion() {
		for _, arm := range typ.Arms() {
			if arm.Kind() != m.KindConcrete {
				return m.Type{}, fmt.Errorf("union type %q has a non-concrete alternative", strings.TrimSpace(spec))
			}
		}
	}

	return typ, nil
}

// ParseTypeSpec converts a type string from the catalog format into a typed
// variant. Alternatives are separated by "|"; the literals "none" and
// "unknown" (or an empty string) map to the none and unknown types.
func ParseTypeSpec(spec string) m.Type {
	spec = strings.TrimSpace(spec)

	switch spec {
	case "", "unknown":
		return m.Unknown()
	case "none":
		return m.None()
	}

	if strings.Contains(spec, "|") {
		parts := strings.Split(spec, "|")
		arms := make([]m.Type, 0, len(parts))

		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			arms = append(arms, ParseTypeSpec(part))
		}

		return m.Union(arms...)
	}

	return m.Concrete(m.TypeName(spec))
}
