package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// checkArrayLiteral infers {e1, ..., en}. Range elements contribute their
// int element type, spread elements contribute the spread array's element
// type, and everything must agree structurally. An empty literal gets the
// transient element type nil, unified on first assignment.
func (c *Checker) checkArrayLiteral(node *ast.ArrayLiteral) typesystem.Type {
	if len(node.Elements) == 0 {
		return typesystem.NewArray(typesystem.Nil)
	}

	var elem typesystem.Type
	failed := false
	for _, e := range node.Elements {
		var et typesystem.Type
		switch inner := e.(type) {
		case *ast.SpreadExpression:
			spread := c.checkExpression(inner.Expression)
			if spread == nil {
				failed = true
				continue
			}
			arr, ok := spread.(*typesystem.Array)
			if !ok {
				c.errorf(diagnostics.TypeMismatch, inner,
					"can only spread arrays, got %s", spread.String())
				failed = true
				continue
			}
			et = arr.Elem
			inner.SetInferredType(spread)
		case *ast.RangeExpression:
			if c.checkExpression(inner) == nil {
				failed = true
				continue
			}
			et = typesystem.Int
		default:
			et = c.checkExpression(e)
			if et == nil {
				failed = true
				continue
			}
		}

		if elem == nil {
			elem = et
			continue
		}
		if !typesystem.Equal(elem, et) {
			c.errorf(diagnostics.TypeMismatch, e,
				"array element type mismatch: expected %s, got %s", elem.String(), et.String())
			failed = true
		}
	}
	if failed || elem == nil {
		return nil
	}
	return typesystem.NewArray(elem)
}

// checkIndex infers a[i].
func (c *Checker) checkIndex(node *ast.IndexExpression) typesystem.Type {
	left := c.checkExpression(node.Left)
	if left == nil {
		return nil
	}
	arr, ok := left.(*typesystem.Array)
	if !ok {
		c.errorf(diagnostics.TypeMismatch, node.Left, "cannot index into %s", left.String())
		return nil
	}
	idx := c.checkExpression(node.Index)
	if idx == nil {
		return nil
	}
	if !typesystem.IsNumeric(idx) {
		c.errorf(diagnostics.TypeMismatch, node.Index,
			"array index must be numeric, got %s", idx.String())
		return nil
	}
	return arr.Elem
}

// checkSlice infers a[lo..hi] with optional bounds; the result keeps the
// array's type.
func (c *Checker) checkSlice(node *ast.SliceExpression) typesystem.Type {
	left := c.checkExpression(node.Left)
	if left == nil {
		return nil
	}
	arr, ok := left.(*typesystem.Array)
	if !ok {
		c.errorf(diagnostics.TypeMismatch, node.Left, "cannot slice %s", left.String())
		return nil
	}
	for _, bound := range []ast.Expression{node.Low, node.High} {
		if bound == nil {
			continue
		}
		bt := c.checkExpression(bound)
		if bt == nil {
			return nil
		}
		if !typesystem.IsNumeric(bt) {
			c.errorf(diagnostics.TypeMismatch, bound,
				"slice bound must be numeric, got %s", bt.String())
			return nil
		}
	}
	return typesystem.NewArray(arr.Elem)
}

// checkRange infers lo..hi, always int[].
func (c *Checker) checkRange(node *ast.RangeExpression) typesystem.Type {
	ok := true
	for _, bound := range []ast.Expression{node.Low, node.High} {
		bt := c.checkExpression(bound)
		if bt == nil {
			ok = false
			continue
		}
		if !typesystem.IsNumeric(bt) {
			c.errorf(diagnostics.TypeMismatch, bound,
				"range bound must be numeric, got %s", bt.String())
			ok = false
		}
	}
	if !ok {
		return nil
	}
	return typesystem.NewArray(typesystem.Int)
}

// checkSizedArray infers T[n] and T[n; default].
func (c *Checker) checkSizedArray(node *ast.SizedArrayExpression) typesystem.Type {
	size := c.checkExpression(node.Size)
	if size == nil {
		return nil
	}
	if !typesystem.IsKind(size, typesystem.KindInt) && !typesystem.IsKind(size, typesystem.KindLong) {
		c.errorf(diagnostics.TypeMismatch, node.Size,
			"array size must be int or long, got %s", size.String())
		return nil
	}
	if node.Default != nil {
		def := c.checkExpression(node.Default)
		if def == nil {
			return nil
		}
		if !typesystem.Equal(def, node.ElemType) && !typesystem.Promotable(def, node.ElemType) {
			c.typeMismatch(node.Default, node.ElemType, def)
			return nil
		}
	}
	return typesystem.NewArray(node.ElemType)
}
