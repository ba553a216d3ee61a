package modules

import (
	"fmt"

	"github.com/funvibe/sindarin/internal/analyzer"
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/symbols"
)

// Module is one registered, pre-parsed compilation unit. Reading source and
// parsing happen in the containing program; the registry only sees finished
// ASTs.
type Module struct {
	Name    string
	Program *ast.Program
	Exports map[string]*symbols.Symbol

	analyzed  bool
	analyzing bool
}

// Registry resolves imports against the set of registered modules. It
// implements analyzer.Loader. Each module is analyzed at most once, into
// the shared diagnostics bag; re-entrant resolution is an import cycle.
type Registry struct {
	modules map[string]*Module
	diags   *diagnostics.Bag
}

func NewRegistry(diags *diagnostics.Bag) *Registry {
	return &Registry{
		modules: make(map[string]*Module),
		diags:   diags,
	}
}

// Register adds a parsed module under its import name.
func (r *Registry) Register(name string, program *ast.Program) *Module {
	m := &Module{Name: name, Program: program}
	r.modules[name] = m
	return m
}

// Names returns the registered module names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	return names
}

// Resolve analyzes the named module on first use and returns its exported
// top-level symbols.
func (r *Registry) Resolve(name string) (map[string]*symbols.Symbol, error) {
	m, ok := r.modules[name]
	if !ok {
		return nil, fmt.Errorf("unknown module '%s'", name)
	}
	if m.analyzing {
		return nil, fmt.Errorf("import cycle through module '%s'", name)
	}
	if m.analyzed {
		return m.Exports, nil
	}

	m.analyzing = true
	table := symbols.NewSymbolTable()
	analyzer.RegisterBuiltins(table)
	checker := analyzer.New(table, r.diags)
	checker.SetLoader(r)
	checker.Check(m.Program)
	m.Exports = collectExports(m.Program, table)
	m.analyzing = false
	m.analyzed = true

	return m.Exports, nil
}

// collectExports gathers the module's top-level declarations. Every
// top-level function and variable is exported; built-ins seeded into the
// table are not, since they exist in every module already.
func collectExports(program *ast.Program, table *symbols.SymbolTable) map[string]*symbols.Symbol {
	exports := make(map[string]*symbols.Symbol)
	for _, stmt := range program.Statements {
		var name string
		switch node := stmt.(type) {
		case *ast.FunctionStatement:
			name = node.Name.Value
		case *ast.VarDeclaration:
			name = node.Name.Value
		default:
			continue
		}
		if sym := table.Lookup(name); sym != nil {
			exports[name] = sym
		}
	}
	return exports
}
