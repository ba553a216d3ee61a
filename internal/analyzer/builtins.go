package analyzer

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/sindarin/internal/config"
	"github.com/funvibe/sindarin/internal/symbols"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// The built-in method and static tables are data, not code: they are
// authored in builtins.yaml and decoded once at first use. Adding a method
// to a built-in class is a one-line YAML edit.

//go:embed builtins.yaml
var builtinsYAML []byte

type memberSpec struct {
	Name     string `yaml:"name"`
	Sig      string `yaml:"sig"`
	Prop     string `yaml:"prop"`
	Mutating bool   `yaml:"mutating"`
}

type tablesFile struct {
	Methods map[string][]memberSpec `yaml:"methods"`
	Statics map[string][]memberSpec `yaml:"statics"`
}

// typeRef is one surface-grammar type in a table entry: a base name plus an
// array depth ("string[]" is {string, 1}). The base "T" stands for the
// receiver array's element type.
type typeRef struct {
	base  string
	depth int
}

type signature struct {
	params   []typeRef
	variadic bool
	ret      typeRef
}

// memberEntry is one resolved table row. Exactly one of sig / prop is set.
type memberEntry struct {
	name     string
	sig      *signature
	prop     *typeRef
	mutating bool
}

var (
	tablesOnce   sync.Once
	methodTables map[string][]memberEntry
	staticTables map[string][]memberEntry
)

func loadTables() {
	tablesOnce.Do(func() {
		var file tablesFile
		if err := yaml.Unmarshal(builtinsYAML, &file); err != nil {
			panic(fmt.Sprintf("builtins.yaml: %v", err))
		}
		methodTables = make(map[string][]memberEntry, len(file.Methods))
		for family, specs := range file.Methods {
			methodTables[family] = compileEntries(family, specs)
		}
		staticTables = make(map[string][]memberEntry, len(file.Statics))
		for typeName, specs := range file.Statics {
			staticTables[typeName] = compileEntries(typeName, specs)
		}
	})
}

func compileEntries(owner string, specs []memberSpec) []memberEntry {
	entries := make([]memberEntry, 0, len(specs))
	for _, spec := range specs {
		entry := memberEntry{name: spec.Name, mutating: spec.Mutating}
		switch {
		case spec.Prop != "":
			ref, err := parseTypeRef(spec.Prop)
			if err != nil {
				panic(fmt.Sprintf("builtins.yaml: %s.%s: %v", owner, spec.Name, err))
			}
			entry.prop = &ref
		case spec.Sig != "":
			sig, err := parseSignature(spec.Sig)
			if err != nil {
				panic(fmt.Sprintf("builtins.yaml: %s.%s: %v", owner, spec.Name, err))
			}
			entry.sig = sig
		default:
			panic(fmt.Sprintf("builtins.yaml: %s.%s: neither sig nor prop", owner, spec.Name))
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseSignature parses "(a, b) -> r".
func parseSignature(s string) (*signature, error) {
	open := strings.Index(s, "(")
	close_ := strings.LastIndex(s, ")")
	arrow := strings.LastIndex(s, "->")
	if open != 0 || close_ < 0 || arrow < close_ {
		return nil, fmt.Errorf("malformed signature %q", s)
	}
	sig := &signature{}
	ret, err := parseTypeRef(s[arrow+2:])
	if err != nil {
		return nil, err
	}
	sig.ret = ret

	inner := strings.TrimSpace(s[open+1 : close_])
	if inner == "" {
		return sig, nil
	}
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "..." {
			sig.variadic = true
			continue
		}
		ref, err := parseTypeRef(part)
		if err != nil {
			return nil, err
		}
		sig.params = append(sig.params, ref)
	}
	return sig, nil
}

func parseTypeRef(s string) (typeRef, error) {
	s = strings.TrimSpace(s)
	ref := typeRef{}
	for strings.HasSuffix(s, "[]") {
		ref.depth++
		s = s[:len(s)-2]
	}
	if s == "" {
		return ref, fmt.Errorf("empty type")
	}
	ref.base = s
	return ref, nil
}

// resolve maps a typeRef to a concrete type. elem is the receiver array's
// element type, substituted for T; it is nil outside array-method context.
func (r typeRef) resolve(elem typesystem.Type) (typesystem.Type, bool) {
	var base typesystem.Type
	switch r.base {
	case "T":
		if elem == nil {
			return nil, false
		}
		base = elem
	case "int":
		base = typesystem.Int
	case "long":
		base = typesystem.Long
	case "double":
		base = typesystem.Double
	case "float":
		base = typesystem.Float
	case "char":
		base = typesystem.Char
	case "byte":
		base = typesystem.Byte
	case "bool":
		base = typesystem.Bool
	case "string":
		base = typesystem.String
	case "void":
		base = typesystem.Void
	case "any":
		base = typesystem.Any
	default:
		cls, ok := typesystem.ClassByName(r.base)
		if !ok {
			return nil, false
		}
		base = cls
	}
	for i := 0; i < r.depth; i++ {
		base = typesystem.NewArray(base)
	}
	return base, true
}

// funcType materializes a signature against a receiver element type.
func (s *signature) funcType(elem typesystem.Type) (*typesystem.Func, bool) {
	ft := &typesystem.Func{Variadic: s.variadic}
	for _, p := range s.params {
		pt, ok := p.resolve(elem)
		if !ok {
			return nil, false
		}
		ft.Params = append(ft.Params, pt)
		ft.Quals = append(ft.Quals, typesystem.QualDefault)
	}
	ret, ok := s.ret.resolve(elem)
	if !ok {
		return nil, false
	}
	ft.Return = ret
	return ft, true
}

// methodFamilies returns the table keys consulted for a receiver type, most
// specific first, along with the element type bound to T.
func methodFamilies(recv typesystem.Type) ([]string, typesystem.Type) {
	switch t := recv.(type) {
	case *typesystem.Array:
		if typesystem.IsKind(t.Elem, typesystem.KindByte) {
			return []string{"bytearray", "array"}, t.Elem
		}
		return []string{"array"}, t.Elem
	case *typesystem.Primitive:
		if t.K == typesystem.KindString {
			return []string{"string"}, nil
		}
	case *typesystem.Class:
		return []string{t.String()}, nil
	}
	return nil, nil
}

// lookupMember finds the table entry for (receiver, name). The boolean
// reports a hit; the returned type is the member's function type or the
// property's bare type.
func lookupMember(recv typesystem.Type, name string) (typesystem.Type, *memberEntry, bool) {
	loadTables()
	families, elem := methodFamilies(recv)
	for _, family := range families {
		for i := range methodTables[family] {
			entry := &methodTables[family][i]
			if entry.name != name {
				continue
			}
			if entry.prop != nil {
				pt, ok := entry.prop.resolve(elem)
				if !ok {
					return nil, nil, false
				}
				return pt, entry, true
			}
			ft, ok := entry.sig.funcType(elem)
			if !ok {
				return nil, nil, false
			}
			return ft, entry, true
		}
	}
	return nil, nil, false
}

// memberCandidates lists the member names offered on a receiver type, for
// "did you mean" suggestions.
func memberCandidates(recv typesystem.Type) []string {
	loadTables()
	families, _ := methodFamilies(recv)
	var names []string
	for _, family := range families {
		for _, entry := range methodTables[family] {
			names = append(names, entry.name)
		}
	}
	if cls, ok := recv.(*typesystem.Class); ok && cls.K == typesystem.ClassRandom {
		names = append(names, randomCollectionMethods...)
	}
	return names
}

// staticEntries returns the static-call table for a type name.
func staticEntries(typeName string) ([]memberEntry, bool) {
	loadTables()
	entries, ok := staticTables[typeName]
	return entries, ok
}

// isStaticTypeName reports whether name heads a static-call table.
func isStaticTypeName(name string) bool {
	loadTables()
	_, ok := staticTables[name]
	return ok
}

// RegisterBuiltins seeds the table with the built-in free functions. The
// len rule itself is parametric and hard-coded in the call checker; the
// symbol here only makes the name resolvable.
func RegisterBuiltins(table *symbols.SymbolTable) {
	seed := func(name string, typ *typesystem.Func) {
		if sym := table.Declare(name, typ); sym != nil {
			sym.IsFunction = true
		}
	}
	seed(config.LenFuncName, typesystem.NewFunc(typesystem.Int, typesystem.Any))
	seed(config.PrintFuncName, typesystem.NewVariadicFunc(typesystem.Void))
	seed(config.PrintlnFuncName, typesystem.NewVariadicFunc(typesystem.Void))
}
