package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/symbols"
	"github.com/funvibe/sindarin/internal/token"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// Loader resolves an imported module by name and returns its exported
// symbols. Implemented by internal/modules; declared here to break the
// dependency cycle.
type Loader interface {
	Resolve(name string) (map[string]*symbols.Symbol, error)
}

// Checker performs semantic analysis on a parsed module: type checking,
// escape analysis for private scopes, and thread-state analysis for
// spawn/sync.
type Checker struct {
	table  *symbols.SymbolTable
	diags  *diagnostics.Bag
	loader Loader

	// Stack of enclosing function return types; top is the current one.
	returnTypes []typesystem.Type
	// Nesting count of private blocks/functions. Escape analysis is active
	// while > 0.
	privateDepth int
	loopDepth    int
}

// New creates a Checker over the given symbol table and diagnostics bag.
// The table is expected to be seeded with the built-in free functions
// (RegisterBuiltins).
func New(table *symbols.SymbolTable, diags *diagnostics.Bag) *Checker {
	return &Checker{table: table, diags: diags}
}

// SetLoader installs the import resolver.
func (c *Checker) SetLoader(l Loader) {
	c.loader = l
}

// Table exposes the symbol table, mainly for the module registry which
// extracts exports after analysis.
func (c *Checker) Table() *symbols.SymbolTable {
	return c.table
}

// Diagnostics returns the bag this checker reports into.
func (c *Checker) Diagnostics() *diagnostics.Bag {
	return c.diags
}

// Check analyzes a whole module: first a hoisting pass registering top-level
// function signatures so definition order does not matter, then the body
// pass. It never aborts on the first error; failed sub-expressions
// propagate nil upward and checking continues.
func (c *Checker) Check(program *ast.Program) {
	if program.File != "" {
		c.diags.SetFile(program.File)
	}
	c.hoistFunctions(program)
	for _, stmt := range program.Statements {
		c.checkStatement(stmt)
	}
}

// CheckExpression analyzes a bare expression against the current table
// state. The inferred type is cached on the node; re-checking a node
// returns the cached result without re-walking it.
func (c *Checker) CheckExpression(expr ast.Expression) typesystem.Type {
	return c.checkExpression(expr)
}

// CheckStatement analyzes a single statement outside whole-module checking.
func (c *Checker) CheckStatement(stmt ast.Statement) {
	c.checkStatement(stmt)
}

// hoistFunctions registers the signatures of top-level function
// declarations ahead of body checking.
func (c *Checker) hoistFunctions(program *ast.Program) {
	for _, stmt := range program.Statements {
		fn, ok := stmt.(*ast.FunctionStatement)
		if !ok {
			continue
		}
		ft := c.buildFunctionType(fn)
		sym := c.table.Declare(fn.Name.Value, ft)
		if sym == nil {
			c.diags.Addf(diagnostics.Redeclaration, fn.Name.Token,
				"'%s' is already declared in this scope", fn.Name.Value)
			continue
		}
		sym.IsFunction = true
		sym.FuncMod = fn.Modifier
	}
}

// buildFunctionType constructs the FUNCTION type from a declaration's
// parameter and return annotations.
func (c *Checker) buildFunctionType(fn *ast.FunctionStatement) *typesystem.Func {
	ft := &typesystem.Func{Return: typesystem.Void}
	if fn.ReturnType != nil {
		ft.Return = fn.ReturnType
	}
	for _, p := range fn.Parameters {
		if p.Variadic {
			ft.Variadic = true
			continue
		}
		pt := p.Type
		if pt == nil {
			pt = typesystem.Any
		}
		ft.Params = append(ft.Params, pt)
		ft.Quals = append(ft.Quals, p.Qual)
	}
	if fn.IsNative && fn.ReturnType == nil {
		ft.Return = &typesystem.Opaque{Name: fn.Name.Value}
	}
	return ft
}

// exitScope pops the current scope and flags task handles that leave it
// still pending.
func (c *Checker) exitScope(closing token.Token) {
	for _, sym := range c.table.ExitScope() {
		if sym.Pending() {
			c.diags.Addf(diagnostics.PendingAccess, closing,
				"task handle '%s' leaves scope without synchronization", sym.Name)
		}
	}
}

// currentReturnType returns the return type of the enclosing function, or
// nil at top level.
func (c *Checker) currentReturnType() typesystem.Type {
	if len(c.returnTypes) == 0 {
		return nil
	}
	return c.returnTypes[len(c.returnTypes)-1]
}

// getToken extracts the primary token of a node for error reporting.
func getToken(node ast.Node) token.Token {
	if node == nil {
		return token.Token{}
	}
	if provider, ok := node.(ast.TokenProvider); ok {
		return provider.GetToken()
	}
	return token.Token{}
}
