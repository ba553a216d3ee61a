package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/symbols"
	"github.com/funvibe/sindarin/internal/typesystem"
)

func isComparisonOp(op string) bool {
	switch op {
	case "<", "<=", ">", ">=", "==", "!=":
		return true
	}
	return false
}

func isArithmeticOp(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%":
		return true
	}
	return false
}

// checkInfix handles comparisons, arithmetic (with string concatenation on
// +), and the boolean connectives.
func (c *Checker) checkInfix(node *ast.InfixExpression) typesystem.Type {
	left := c.checkExpression(node.Left)
	right := c.checkExpression(node.Right)
	if left == nil || right == nil {
		return nil
	}

	switch {
	case isComparisonOp(node.Operator):
		if typesystem.IsKind(left, typesystem.KindVoid) || typesystem.IsKind(left, typesystem.KindNil) {
			c.errorf(diagnostics.InvalidOperator, node,
				"operator '%s' cannot be applied to %s", node.Operator, left.String())
			return nil
		}
		if typesystem.Equal(left, right) {
			return typesystem.Bool
		}
		if _, ok := typesystem.Promote(left, right); ok {
			return typesystem.Bool
		}
		c.errorf(diagnostics.InvalidOperator, node,
			"operator '%s' cannot compare %s and %s", node.Operator, left.String(), right.String())
		return nil

	case node.Operator == "&&" || node.Operator == "||":
		ok := true
		if !typesystem.IsKind(left, typesystem.KindBool) {
			c.errorf(diagnostics.InvalidOperator, node.Left,
				"operator '%s' requires bool operands, got %s", node.Operator, left.String())
			ok = false
		}
		if !typesystem.IsKind(right, typesystem.KindBool) {
			c.errorf(diagnostics.InvalidOperator, node.Right,
				"operator '%s' requires bool operands, got %s", node.Operator, right.String())
			ok = false
		}
		if !ok {
			return nil
		}
		return typesystem.Bool

	case node.Operator == "+":
		// + extends arithmetic with string concatenation.
		if typesystem.IsKind(left, typesystem.KindString) || typesystem.IsKind(right, typesystem.KindString) {
			other := left
			if typesystem.IsKind(left, typesystem.KindString) {
				other = right
			}
			if !typesystem.IsPrintable(other) {
				c.errorf(diagnostics.InvalidOperator, node,
					"cannot concatenate string with %s", other.String())
				return nil
			}
			return typesystem.String
		}
		fallthrough

	case isArithmeticOp(node.Operator):
		promoted, ok := typesystem.Promote(left, right)
		if !ok {
			c.errorf(diagnostics.InvalidOperator, node,
				"operator '%s' requires numeric operands, got %s and %s",
				node.Operator, left.String(), right.String())
			return nil
		}
		return promoted
	}

	c.errorf(diagnostics.InvalidOperator, node, "unknown operator '%s'", node.Operator)
	return nil
}

// checkPrefix handles unary minus and logical not.
func (c *Checker) checkPrefix(node *ast.PrefixExpression) typesystem.Type {
	operand := c.checkExpression(node.Right)
	if operand == nil {
		return nil
	}
	switch node.Operator {
	case "-":
		if !typesystem.IsNumeric(operand) {
			c.errorf(diagnostics.InvalidOperator, node,
				"unary '-' requires a numeric operand, got %s", operand.String())
			return nil
		}
		return operand
	case "!":
		if !typesystem.IsKind(operand, typesystem.KindBool) {
			c.errorf(diagnostics.InvalidOperator, node,
				"unary '!' requires a bool operand, got %s", operand.String())
			return nil
		}
		return typesystem.Bool
	}
	c.errorf(diagnostics.InvalidOperator, node, "unknown prefix operator '%s'", node.Operator)
	return nil
}

// checkPostfix handles ++ and --: numeric lvalue, not frozen.
func (c *Checker) checkPostfix(node *ast.PostfixExpression) typesystem.Type {
	base := baseSymbolOf(node.Operand, c.table)
	switch node.Operand.(type) {
	case *ast.Identifier, *ast.IndexExpression:
		// lvalues
	default:
		c.errorf(diagnostics.InvalidOperator, node,
			"'%s' requires an assignable operand", node.Operator)
		return nil
	}
	operand := c.checkExpression(node.Operand)
	if operand == nil {
		return nil
	}
	if !typesystem.IsNumeric(operand) {
		c.errorf(diagnostics.InvalidOperator, node,
			"'%s' requires a numeric operand, got %s", node.Operator, operand.String())
		return nil
	}
	if base != nil && base.Frozen() {
		c.frozenMutation(node, base.Name)
		return nil
	}
	return operand
}

// checkAssign handles x = v and a[i] = v.
func (c *Checker) checkAssign(node *ast.AssignExpression) typesystem.Type {
	switch target := node.Target.(type) {
	case *ast.Identifier:
		return c.checkVarAssign(node, target)
	case *ast.IndexExpression:
		return c.checkIndexAssign(node, target)
	}
	c.errorf(diagnostics.InvalidOperator, node.Target, "invalid assignment target")
	return nil
}

func (c *Checker) checkVarAssign(node *ast.AssignExpression, target *ast.Identifier) typesystem.Type {
	sym := c.table.Lookup(target.Value)
	if sym == nil {
		c.undefinedName(target, target.Value)
		return nil
	}
	if sym.IsNamespace {
		c.errorf(diagnostics.UndefinedName, target, "cannot assign to namespace '%s'", target.Value)
		return nil
	}
	if sym.Pending() {
		c.pendingAccess(target, target.Value)
		return nil
	}
	if sym.Frozen() {
		c.frozenMutation(target, target.Value)
		return nil
	}

	// Rebinding a handle to a fresh spawn restarts its thread-state
	// lifecycle.
	if spawn, ok := node.Value.(*ast.SpawnExpression); ok {
		ret := c.checkSpawnBinding(spawn, sym)
		if ret == nil {
			return nil
		}
		if !typesystem.Equal(sym.Type, ret) {
			c.typeMismatch(node.Value, sym.Type, ret)
			return nil
		}
		return sym.Type
	}

	// A lambda on the right-hand side fills its empty slots from the
	// target's function type, same as in argument position.
	if lambdaNode, ok := node.Value.(*ast.FunctionLiteral); ok {
		if expected, isFunc := sym.Type.(*typesystem.Func); isFunc {
			value := c.checkLambda(lambdaNode, expected)
			if value == nil {
				return nil
			}
			lambdaNode.SetInferredType(value)
			c.checkEscape(node, sym, value)
			return sym.Type
		}
	}

	value := c.checkExpression(node.Value)
	if value == nil {
		return nil
	}
	if !c.assignCompatible(sym, value) {
		c.typeMismatch(node.Value, sym.Type, value)
		return nil
	}
	c.checkEscape(node, sym, value)
	return sym.Type
}

func (c *Checker) checkIndexAssign(node *ast.AssignExpression, target *ast.IndexExpression) typesystem.Type {
	// Spawn results cannot land in an element slot; the handle would be
	// untrackable. Treat as fire-and-forget.
	if spawn, ok := node.Value.(*ast.SpawnExpression); ok {
		return c.checkSpawnBinding(spawn, nil)
	}

	arrType := c.checkExpression(target.Left)
	if arrType == nil {
		return nil
	}
	arr, ok := arrType.(*typesystem.Array)
	if !ok {
		c.errorf(diagnostics.TypeMismatch, target.Left,
			"cannot index into %s", arrType.String())
		return nil
	}
	idx := c.checkExpression(target.Index)
	if idx != nil && !typesystem.IsKind(idx, typesystem.KindInt) {
		c.errorf(diagnostics.TypeMismatch, target.Index,
			"array index must be int, got %s", idx.String())
	}
	if base := baseSymbolOf(target.Left, c.table); base != nil && base.Frozen() {
		c.frozenMutation(node, base.Name)
		return nil
	}
	value := c.checkExpression(node.Value)
	if value == nil {
		return nil
	}
	if !typesystem.Equal(value, arr.Elem) {
		c.typeMismatch(node.Value, arr.Elem, value)
		return nil
	}
	target.SetInferredType(arr.Elem)
	return arr.Elem
}

// assignCompatible reports whether value may be bound to sym. Assignment
// requires structural equality, same as index assignment and call
// arguments; the one exception adopts the element type of a previously
// empty array literal on first assignment.
func (c *Checker) assignCompatible(sym *symbols.Symbol, value typesystem.Type) bool {
	if typesystem.Equal(sym.Type, value) {
		return true
	}
	// var a = {} gives a the transient type nil[]; the first concrete
	// assignment fixes the element type.
	if symArr, ok := sym.Type.(*typesystem.Array); ok && typesystem.IsKind(symArr.Elem, typesystem.KindNil) {
		if valArr, ok := value.(*typesystem.Array); ok {
			sym.Type = valArr
			return true
		}
	}
	return false
}
