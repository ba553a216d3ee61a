package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/config"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/symbols"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// checkStatement walks one statement, managing scopes and symbol metadata.
func (c *Checker) checkStatement(stmt ast.Statement) {
	switch node := stmt.(type) {
	case *ast.VarDeclaration:
		c.checkVarDecl(node)
	case *ast.ExpressionStatement:
		if spawn, ok := node.Expression.(*ast.SpawnExpression); ok {
			// A spawn whose result is never bound is fire-and-forget.
			c.checkSpawnBinding(spawn, nil)
			return
		}
		c.checkExpression(node.Expression)
	case *ast.BlockStatement:
		c.checkBlock(node)
	case *ast.IfStatement:
		c.checkIf(node)
	case *ast.WhileStatement:
		c.checkWhile(node)
	case *ast.ForStatement:
		c.checkFor(node)
	case *ast.ForEachStatement:
		c.checkForEach(node)
	case *ast.FunctionStatement:
		c.checkFunction(node)
	case *ast.ReturnStatement:
		c.checkReturn(node)
	case *ast.BreakStatement:
		if c.loopDepth == 0 {
			c.errorf(diagnostics.InvalidStatement, node, "break outside of a loop")
		}
	case *ast.ContinueStatement:
		if c.loopDepth == 0 {
			c.errorf(diagnostics.InvalidStatement, node, "continue outside of a loop")
		}
	case *ast.ImportStatement:
		c.checkImport(node)
	default:
		c.errorf(diagnostics.InvalidStatement, stmt, "unsupported statement")
	}
}

// checkVarDecl determines the declared type from the annotation or the
// initializer, binds the symbol, and runs the escape and concurrency
// analyses on the initializer.
func (c *Checker) checkVarDecl(vd *ast.VarDeclaration) {
	// Spawn initializers bind a task handle; the symbol must exist before
	// the bookkeeping runs.
	if spawn, ok := vd.Value.(*ast.SpawnExpression); ok {
		sym := c.table.Declare(vd.Name.Value, vd.TypeAnnotation)
		if sym == nil {
			c.diags.Addf(diagnostics.Redeclaration, vd.Name.Token,
				"'%s' is already declared in this scope", vd.Name.Value)
			return
		}
		sym.Qual = vd.Qual
		ret := c.checkSpawnBinding(spawn, sym)
		if ret == nil {
			return
		}
		if vd.TypeAnnotation != nil && !typesystem.Equal(vd.TypeAnnotation, ret) {
			c.typeMismatch(vd.Value, vd.TypeAnnotation, ret)
			return
		}
		sym.Type = ret
		return
	}

	var valueType typesystem.Type
	if vd.Value != nil {
		if lambda, ok := vd.Value.(*ast.FunctionLiteral); ok {
			expected, _ := vd.TypeAnnotation.(*typesystem.Func)
			valueType = c.checkLambda(lambda, expected)
			if valueType != nil {
				lambda.SetInferredType(valueType)
			}
		} else {
			valueType = c.checkExpression(vd.Value)
		}
	}

	declared := vd.TypeAnnotation
	switch {
	case declared == nil && valueType == nil:
		if vd.Value == nil {
			c.errorf(diagnostics.TypeMismatch, vd,
				"declaration of '%s' needs a type annotation or an initializer", vd.Name.Value)
		}
		// Initializer failed; bind the name anyway so later uses do not
		// cascade into undefined-variable noise.
		c.declareVar(vd, typesystem.Nil)
		return
	case declared == nil:
		if typesystem.IsKind(valueType, typesystem.KindVoid) {
			c.errorf(diagnostics.TypeMismatch, vd.Value,
				"cannot bind a void expression to '%s'", vd.Name.Value)
			return
		}
		declared = valueType
	case valueType != nil:
		if !bindCompatible(declared, valueType) {
			c.typeMismatch(vd.Value, declared, valueType)
			c.declareVar(vd, declared)
			return
		}
	}

	sym := c.declareVar(vd, declared)
	if sym != nil && vd.Value != nil && valueType != nil {
		c.checkEscape(vd, sym, valueType)
	}
}

func (c *Checker) declareVar(vd *ast.VarDeclaration, typ typesystem.Type) *symbols.Symbol {
	sym := c.table.Declare(vd.Name.Value, typ)
	if sym == nil {
		c.diags.Addf(diagnostics.Redeclaration, vd.Name.Token,
			"'%s' is already declared in this scope", vd.Name.Value)
		return nil
	}
	sym.Qual = vd.Qual
	return sym
}

// bindCompatible reports whether an initializer of type value satisfies a
// declared annotation. Numeric initializers widen along the promotion
// lattice; an empty array literal adopts the annotated element type.
func bindCompatible(declared, value typesystem.Type) bool {
	if typesystem.Equal(declared, value) {
		return true
	}
	if typesystem.Promotable(value, declared) {
		return true
	}
	if _, ok := declared.(*typesystem.Array); ok {
		if valArr, ok := value.(*typesystem.Array); ok && typesystem.IsKind(valArr.Elem, typesystem.KindNil) {
			return true
		}
	}
	return false
}

// checkBlock pushes a scope at a new arena depth; a private modifier
// activates escape analysis for the block's duration.
func (c *Checker) checkBlock(block *ast.BlockStatement) {
	c.table.EnterScope()
	if block.Modifier == ast.ModPrivate {
		c.privateDepth++
	}
	for _, stmt := range block.Statements {
		c.checkStatement(stmt)
	}
	if block.Modifier == ast.ModPrivate {
		c.privateDepth--
	}
	c.exitScope(getToken(block))
}

func (c *Checker) checkCondition(cond ast.Expression) {
	ct := c.checkExpression(cond)
	if ct != nil && !typesystem.IsKind(ct, typesystem.KindBool) {
		c.errorf(diagnostics.TypeMismatch, cond,
			"condition must be bool, got %s", ct.String())
	}
}

func (c *Checker) checkIf(node *ast.IfStatement) {
	c.checkCondition(node.Condition)
	c.checkBlock(node.Consequence)
	if node.Alternative != nil {
		c.checkStatement(node.Alternative)
	}
}

func (c *Checker) checkWhile(node *ast.WhileStatement) {
	c.checkCondition(node.Condition)
	c.loopDepth++
	c.checkBlock(node.Body)
	c.loopDepth--
}

func (c *Checker) checkFor(node *ast.ForStatement) {
	// The init clause scopes to the whole loop.
	c.table.EnterScope()
	if node.Init != nil {
		c.checkStatement(node.Init)
	}
	if node.Condition != nil {
		c.checkCondition(node.Condition)
	}
	if node.Post != nil {
		c.checkExpression(node.Post)
	}
	c.loopDepth++
	c.checkBlock(node.Body)
	c.loopDepth--
	c.exitScope(getToken(node))
}

func (c *Checker) checkForEach(node *ast.ForEachStatement) {
	iter := c.checkExpression(node.Iterable)
	var elem typesystem.Type
	if iter != nil {
		switch it := iter.(type) {
		case *typesystem.Array:
			elem = it.Elem
		case *typesystem.Primitive:
			if it.K == typesystem.KindString {
				elem = typesystem.Char
			}
		}
		if elem == nil {
			c.errorf(diagnostics.TypeMismatch, node.Iterable,
				"cannot iterate over %s", iter.String())
		}
	}
	if elem == nil {
		elem = typesystem.Nil
	}

	c.table.EnterScope()
	if sym := c.table.Declare(node.Name.Value, elem); sym == nil {
		c.diags.Addf(diagnostics.Redeclaration, node.Name.Token,
			"'%s' is already declared in this scope", node.Name.Value)
	}
	c.loopDepth++
	c.checkBlock(node.Body)
	c.loopDepth--
	c.exitScope(getToken(node))
}

// checkFunction registers a function (top-level declarations were hoisted
// earlier) and checks its body under the declared return type.
func (c *Checker) checkFunction(fn *ast.FunctionStatement) {
	ft := c.buildFunctionType(fn)

	sym := c.table.Lookup(fn.Name.Value)
	hoisted := sym != nil && sym.IsFunction && sym.ArenaDepth == 0 && c.table.ArenaDepth() == 0
	if !hoisted {
		sym = c.table.Declare(fn.Name.Value, ft)
		if sym == nil {
			c.diags.Addf(diagnostics.Redeclaration, fn.Name.Token,
				"'%s' is already declared in this scope", fn.Name.Value)
			return
		}
		sym.IsFunction = true
		sym.FuncMod = fn.Modifier
	}

	if fn.IsNative || fn.Body == nil {
		return
	}

	c.table.EnterScope()
	if fn.Modifier == ast.ModPrivate {
		c.privateDepth++
	}
	for _, p := range fn.Parameters {
		pt := p.Type
		if pt == nil {
			pt = typesystem.Any
		}
		if p.Variadic {
			// The body sees the collected tail as an array.
			pt = typesystem.NewArray(pt)
		}
		if psym := c.table.Declare(p.Name.Value, pt); psym != nil {
			psym.Qual = p.Qual
		} else {
			c.diags.Addf(diagnostics.Redeclaration, p.Name.Token,
				"duplicate parameter '%s'", p.Name.Value)
		}
	}
	c.returnTypes = append(c.returnTypes, ft.Return)
	for _, stmt := range fn.Body.Statements {
		c.checkStatement(stmt)
	}
	c.returnTypes = c.returnTypes[:len(c.returnTypes)-1]
	if fn.Modifier == ast.ModPrivate {
		c.privateDepth--
	}
	c.exitScope(getToken(fn.Body))
}

func (c *Checker) checkReturn(rs *ast.ReturnStatement) {
	want := c.currentReturnType()
	if want == nil {
		c.errorf(diagnostics.InvalidStatement, rs, "return outside of a function")
		return
	}
	if rs.Value == nil {
		if !typesystem.IsKind(want, typesystem.KindVoid) {
			c.errorf(diagnostics.TypeMismatch, rs,
				"missing return value: function returns %s", want.String())
		}
		return
	}
	got := c.checkExpression(rs.Value)
	if got == nil {
		return
	}
	if typesystem.IsKind(want, typesystem.KindVoid) {
		c.errorf(diagnostics.TypeMismatch, rs.Value,
			"void function cannot return a value")
		return
	}
	if !typesystem.Equal(want, got) {
		c.typeMismatch(rs.Value, want, got)
	}
}

// checkImport resolves a module by name and installs its exports, either
// spliced into the current scope or behind a namespace symbol.
func (c *Checker) checkImport(is *ast.ImportStatement) {
	if c.loader == nil {
		c.errorf(diagnostics.ImportError, is, "no module loader available for '%s'", is.Module)
		return
	}
	if is.Alias != nil && config.IsReservedKeyword(is.Alias.Value) {
		c.errorf(diagnostics.ImportError, is.Alias,
			"import namespace '%s' collides with a reserved keyword", is.Alias.Value)
		return
	}

	exports, err := c.loader.Resolve(is.Module)
	if err != nil {
		c.errorf(diagnostics.ImportError, is, "cannot import '%s': %v", is.Module, err)
		return
	}

	if is.Alias != nil {
		if c.table.DeclareNamespace(is.Alias.Value, exports) == nil {
			c.diags.Addf(diagnostics.Redeclaration, is.Alias.Token,
				"'%s' is already declared in this scope", is.Alias.Value)
		}
		return
	}

	for name, exported := range exports {
		sym := c.table.Declare(name, exported.Type)
		if sym == nil {
			c.errorf(diagnostics.Redeclaration, is,
				"imported symbol '%s' collides with an existing declaration", name)
			continue
		}
		sym.IsFunction = exported.IsFunction
		sym.FuncMod = exported.FuncMod
	}
}
