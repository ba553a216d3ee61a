package analyzer

import (
	"github.com/google/uuid"

	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/symbols"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// baseSymbolOf resolves the identifier at the root of an access chain
// (a.b[i].c has base a). Freeze bookkeeping always targets the base symbol.
func baseSymbolOf(expr ast.Expression, table *symbols.SymbolTable) *symbols.Symbol {
	for {
		switch node := expr.(type) {
		case *ast.Identifier:
			sym := table.Lookup(node.Value)
			if sym != nil && sym.IsNamespace {
				return nil
			}
			return sym
		case *ast.MemberExpression:
			expr = node.Left
		case *ast.IndexExpression:
			expr = node.Left
		case *ast.SliceExpression:
			expr = node.Left
		case *ast.SpreadExpression:
			expr = node.Expression
		default:
			return nil
		}
	}
}

// checkSpawn handles a spawn in plain expression position: there is no
// handle to sync, so it is a fire-and-forget and the callee must produce
// void.
func (c *Checker) checkSpawn(node *ast.SpawnExpression) typesystem.Type {
	return c.checkSpawnBinding(node, nil)
}

// checkSpawnTarget validates the spawn shape and types the enclosed call.
// Returns the result type, or nil after reporting.
func (c *Checker) checkSpawnTarget(node *ast.SpawnExpression) typesystem.Type {
	call, ok := node.Call.(*ast.CallExpression)
	if !ok {
		c.errorf(diagnostics.SpawnShape, node, "spawn target must be a direct call")
		return nil
	}
	if ident, isIdent := call.Function.(*ast.Identifier); isIdent {
		if sym := c.table.Lookup(ident.Value); sym != nil && !sym.IsNamespace {
			if _, isFunc := sym.Type.(*typesystem.Func); !isFunc {
				c.errorf(diagnostics.SpawnShape, node,
					"spawn target '%s' is not a function", ident.Value)
				return nil
			}
		}
	}
	ret := c.checkCall(call)
	if ret == nil {
		return nil
	}
	if node.Modifier == ast.ModPrivate {
		// A private task's region dies at sync; a non-primitive result
		// would escape it.
		if !typesystem.IsValuePrimitive(ret) && !typesystem.IsKind(ret, typesystem.KindVoid) {
			c.errorf(diagnostics.PrivateSpawnReturn, node,
				"private spawn cannot return non-primitive type %s", ret.String())
			return nil
		}
	}
	return ret
}

// checkSpawnBinding performs thread-state bookkeeping for a spawn bound to
// handle (nil for fire-and-forget positions: bare statements and index
// assignment targets).
func (c *Checker) checkSpawnBinding(node *ast.SpawnExpression, handle *symbols.Symbol) typesystem.Type {
	ret := c.checkSpawnTarget(node)
	if ret == nil {
		return nil
	}
	node.TaskID = uuid.New()

	if handle == nil {
		if !typesystem.IsKind(ret, typesystem.KindVoid) {
			c.errorf(diagnostics.TypeMismatch, node,
				"spawn result of type %s must be bound to a variable", ret.String())
			return nil
		}
		node.SetInferredType(typesystem.Void)
		return typesystem.Void
	}

	if typesystem.IsKind(ret, typesystem.KindVoid) {
		// There is no result to wait for; a handle would be useless.
		c.errorf(diagnostics.TypeMismatch, node,
			"void-returning spawn cannot be bound to a variable")
		return nil
	}

	call := node.Call.(*ast.CallExpression)
	var callee *typesystem.Func
	if ft, ok := call.Function.InferredType().(*typesystem.Func); ok {
		callee = ft
	}

	var frozen []*symbols.Symbol
	seen := make(map[*symbols.Symbol]bool)
	for i, arg := range call.Arguments {
		qual := typesystem.QualDefault
		if callee != nil && i < len(callee.Quals) {
			qual = callee.Quals[i]
		}
		argType := arg.InferredType()
		if argType == nil {
			continue
		}
		if qual != typesystem.QualRef && !typesystem.IsReference(argType) {
			continue
		}
		if qual == typesystem.QualVal {
			// Explicit by-value capture copies the snapshot eagerly.
			continue
		}
		base := baseSymbolOf(arg, c.table)
		if base == nil || seen[base] {
			continue
		}
		seen[base] = true
		c.table.Freeze(base)
		frozen = append(frozen, base)
	}

	c.table.MarkPending(handle)
	c.table.SetFrozenArgs(handle, frozen)
	handle.TaskID = node.TaskID

	node.SetInferredType(ret)
	return ret
}

// checkSync handles h! and {h1, h2}!.
func (c *Checker) checkSync(node *ast.SyncExpression) typesystem.Type {
	switch handle := node.Handle.(type) {
	case *ast.Identifier:
		sym := c.table.Lookup(handle.Value)
		if sym == nil {
			c.undefinedName(handle, handle.Value)
			return nil
		}
		if !c.syncSymbol(node, sym) {
			return nil
		}
		return sym.Type

	case *ast.ArrayLiteral:
		ok := true
		for _, elem := range handle.Elements {
			ident, isIdent := elem.(*ast.Identifier)
			if !isIdent {
				c.errorf(diagnostics.SpawnShape, elem, "sync list elements must be variables")
				ok = false
				continue
			}
			sym := c.table.Lookup(ident.Value)
			if sym == nil {
				c.undefinedName(ident, ident.Value)
				ok = false
				continue
			}
			// Already-synchronized handles are silently skipped; mixed
			// states in one list are fine.
			if sym.ThreadState == symbols.StateSynchronized {
				continue
			}
			if !c.syncSymbol(elem, sym) {
				ok = false
			}
		}
		if !ok {
			return nil
		}
		return typesystem.Void
	}

	c.errorf(diagnostics.SpawnShape, node.Handle,
		"sync target must be a task handle or a list of task handles")
	return nil
}

// syncSymbol releases one pending handle: every frozen base symbol is
// unfrozen once and the handle transitions to SYNCHRONIZED.
func (c *Checker) syncSymbol(node ast.Node, sym *symbols.Symbol) bool {
	if !sym.Pending() {
		c.errorf(diagnostics.PendingAccess, node,
			"'%s' is not a pending task handle", sym.Name)
		return false
	}
	for _, frozen := range sym.FrozenArgs {
		c.table.Unfreeze(frozen)
	}
	c.table.MarkSynchronized(sym)
	return true
}
