package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// checkExpression infers the type of expr, caches it on the node, and
// returns it. A nil result means the expression (or one of its children)
// failed; the failure has already been reported, so callers degrade
// gracefully instead of piling on.
func (c *Checker) checkExpression(expr ast.Expression) typesystem.Type {
	if expr == nil {
		return nil
	}
	if cached := expr.InferredType(); cached != nil {
		return cached
	}

	var result typesystem.Type
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		result = typesystem.Int
	case *ast.LongLiteral:
		result = typesystem.Long
	case *ast.DoubleLiteral:
		result = typesystem.Double
	case *ast.FloatLiteral:
		result = typesystem.Float
	case *ast.CharLiteral:
		result = typesystem.Char
	case *ast.ByteLiteral:
		result = typesystem.Byte
	case *ast.BooleanLiteral:
		result = typesystem.Bool
	case *ast.StringLiteral:
		result = typesystem.String
	case *ast.NilLiteral:
		result = typesystem.Nil
	case *ast.Identifier:
		result = c.checkIdentifier(node)
	case *ast.InterpolatedString:
		result = c.checkInterpolatedString(node)
	case *ast.PrefixExpression:
		result = c.checkPrefix(node)
	case *ast.InfixExpression:
		result = c.checkInfix(node)
	case *ast.PostfixExpression:
		result = c.checkPostfix(node)
	case *ast.AssignExpression:
		result = c.checkAssign(node)
	case *ast.CallExpression:
		result = c.checkCall(node)
	case *ast.MemberExpression:
		result = c.checkMember(node)
	case *ast.ArrayLiteral:
		result = c.checkArrayLiteral(node)
	case *ast.IndexExpression:
		result = c.checkIndex(node)
	case *ast.SliceExpression:
		result = c.checkSlice(node)
	case *ast.RangeExpression:
		result = c.checkRange(node)
	case *ast.SpreadExpression:
		// A bare spread outside an array literal has no meaning of its own.
		c.errorf(diagnostics.InvalidOperator, node, "spread is only valid inside an array literal")
		return nil
	case *ast.SizedArrayExpression:
		result = c.checkSizedArray(node)
	case *ast.FunctionLiteral:
		result = c.checkLambda(node, nil)
	case *ast.SpawnExpression:
		result = c.checkSpawn(node)
	case *ast.SyncExpression:
		result = c.checkSync(node)
	default:
		c.errorf(diagnostics.TypeMismatch, expr, "unsupported expression")
		return nil
	}

	if result != nil {
		expr.SetInferredType(result)
	}
	return result
}

// checkIdentifier resolves a variable reference.
func (c *Checker) checkIdentifier(node *ast.Identifier) typesystem.Type {
	sym := c.table.Lookup(node.Value)
	if sym == nil {
		c.undefinedName(node, node.Value)
		return nil
	}
	if sym.IsNamespace {
		c.errorf(diagnostics.UndefinedName, node,
			"'%s' is a namespace, not a value", node.Value)
		return nil
	}
	if sym.Pending() {
		c.pendingAccess(node, node.Value)
		return nil
	}
	return sym.Type
}

// checkInterpolatedString requires every embedded expression to be
// printable; the result is always string.
func (c *Checker) checkInterpolatedString(node *ast.InterpolatedString) typesystem.Type {
	ok := true
	for _, part := range node.Parts {
		pt := c.checkExpression(part)
		if pt == nil {
			ok = false
			continue
		}
		if !typesystem.IsPrintable(pt) {
			c.errorf(diagnostics.TypeMismatch, part,
				"cannot interpolate value of type %s", pt.String())
			ok = false
		}
	}
	if !ok {
		return nil
	}
	return typesystem.String
}
