package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// checkLambda types a function literal. expected, when non-nil, is the
// function type the surrounding context (assignment target or parameter)
// demands; empty parameter and return slots are filled from it before the
// body is checked.
func (c *Checker) checkLambda(node *ast.FunctionLiteral, expected *typesystem.Func) typesystem.Type {
	if expected != nil {
		if len(expected.Params) != len(node.Parameters) {
			c.errorf(diagnostics.ArityMismatch, node,
				"lambda has %d parameters, context expects %d",
				len(node.Parameters), len(expected.Params))
			return nil
		}
		for i, p := range node.Parameters {
			if p.Type == nil {
				p.Type = expected.Params[i]
			}
		}
		if node.ReturnType == nil {
			node.ReturnType = expected.Return
		}
	}

	ft := &typesystem.Func{Return: typesystem.Void}
	if node.ReturnType != nil {
		ft.Return = node.ReturnType
	}
	for _, p := range node.Parameters {
		if p.Type == nil {
			c.errorf(diagnostics.TypeMismatch, node,
				"cannot infer type of lambda parameter '%s' without context", p.Name.Value)
			return nil
		}
		ft.Params = append(ft.Params, p.Type)
		ft.Quals = append(ft.Quals, p.Qual)
	}

	// When filled against an expected type, the annotation must agree with
	// it (an explicitly annotated lambda can still disagree with context).
	if expected != nil && !typesystem.Equal(ft, expected) {
		c.typeMismatch(node, expected, ft)
		return nil
	}

	c.table.EnterScope()
	for _, p := range node.Parameters {
		if sym := c.table.Declare(p.Name.Value, p.Type); sym != nil {
			sym.Qual = p.Qual
		} else {
			c.diags.Addf(diagnostics.Redeclaration, p.Name.Token,
				"duplicate parameter '%s'", p.Name.Value)
		}
	}
	c.returnTypes = append(c.returnTypes, ft.Return)
	for _, stmt := range node.Body.Statements {
		c.checkStatement(stmt)
	}
	c.returnTypes = c.returnTypes[:len(c.returnTypes)-1]
	c.exitScope(getToken(node.Body))

	return ft
}
