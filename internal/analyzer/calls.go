package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/config"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// randomCollectionMethods are the Random methods whose result type depends
// on the array argument's element type. The method table cannot express
// "T from T[]", so they are resolved here instead.
var randomCollectionMethods = []string{"choice", "shuffle", "weightedChoice", "sample"}

// isTypeNameShaped reports whether an undeclared call head looks like a
// static type reference rather than a misspelled variable.
func isTypeNameShaped(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}

func isRandomCollectionMethod(name string) bool {
	for _, m := range randomCollectionMethods {
		if m == name {
			return true
		}
	}
	return false
}

// checkCall types f(args). When the call is the direct target of a spawn,
// the concurrency analyzer picks the checked arguments up afterwards via
// their cached types.
func (c *Checker) checkCall(call *ast.CallExpression) typesystem.Type {
	// Hard-coded built-in rule: len. Its result depends on nothing but the
	// argument being a container.
	if ident, ok := call.Function.(*ast.Identifier); ok && ident.Value == config.LenFuncName {
		return c.checkLen(call)
	}

	if member, ok := call.Function.(*ast.MemberExpression); ok {
		if head, ok := member.Left.(*ast.Identifier); ok && c.table.Lookup(head.Value) == nil {
			if isStaticTypeName(head.Value) {
				return c.checkStaticCall(call, member, head.Value)
			}
			if isTypeNameShaped(head.Value) {
				c.errorf(diagnostics.UnknownStaticType, member.Left,
					"Unknown static type '%s'", head.Value)
				return nil
			}
		}
		// Parametric Random collection rules fire on the receiver type, not
		// the receiver expression shape. Namespace heads resolve through the
		// ordinary member path instead.
		headIsNamespace := false
		if head, ok := member.Left.(*ast.Identifier); ok {
			headIsNamespace = c.table.IsNamespace(head.Value)
		}
		if !headIsNamespace && !isStaticReceiver(c, member) && isRandomCollectionMethod(member.Member.Value) {
			if recv := c.checkExpression(member.Left); recv != nil {
				if cls, ok := recv.(*typesystem.Class); ok && cls.K == typesystem.ClassRandom {
					return c.checkRandomCollection(call, member)
				}
			}
		}
	}

	calleeType := c.checkExpression(call.Function)
	if calleeType == nil {
		return nil
	}
	callee, ok := calleeType.(*typesystem.Func)
	if !ok {
		c.errorf(diagnostics.TypeMismatch, call.Function,
			"cannot call a value of type %s", calleeType.String())
		return nil
	}
	if !c.checkArguments(call, callee) {
		return nil
	}
	return callee.Return
}

// isStaticReceiver reports whether the member's head names a static table
// and is not shadowed by a local symbol.
func isStaticReceiver(c *Checker, member *ast.MemberExpression) bool {
	head, ok := member.Left.(*ast.Identifier)
	return ok && c.table.Lookup(head.Value) == nil && isStaticTypeName(head.Value)
}

// checkArguments enforces arity and per-argument rules against the callee
// type. Returns false when any argument failed.
func (c *Checker) checkArguments(call *ast.CallExpression, callee *typesystem.Func) bool {
	fixed := len(callee.Params)
	if callee.Variadic {
		if len(call.Arguments) < fixed {
			c.errorf(diagnostics.ArityMismatch, call,
				"expected at least %d arguments, got %d", fixed, len(call.Arguments))
			return false
		}
	} else if len(call.Arguments) != fixed {
		c.errorf(diagnostics.ArityMismatch, call,
			"expected %d arguments, got %d", fixed, len(call.Arguments))
		return false
	}

	ok := true
	for i, arg := range call.Arguments {
		if i < fixed {
			param := callee.Params[i]
			// Bidirectional inference: an unannotated lambda takes its
			// parameter and return slots from the expected function type
			// before its body is checked.
			if lambda, isLambda := arg.(*ast.FunctionLiteral); isLambda {
				if expected, isFunc := param.(*typesystem.Func); isFunc {
					if c.checkLambda(lambda, expected) == nil {
						ok = false
					} else {
						arg.SetInferredType(expected)
					}
					continue
				}
			}
			at := c.checkExpression(arg)
			if at == nil {
				ok = false
				continue
			}
			if typesystem.IsKind(param, typesystem.KindAny) {
				if !typesystem.IsPrintable(at) {
					c.errorf(diagnostics.TypeMismatch, arg,
						"argument of type %s is not printable", at.String())
					ok = false
				}
				continue
			}
			if !typesystem.Equal(param, at) {
				c.typeMismatch(arg, param, at)
				ok = false
			}
			continue
		}

		// Variadic tail.
		at := c.checkExpression(arg)
		if at == nil {
			ok = false
			continue
		}
		if !typesystem.IsVariadicCompatible(at) {
			c.errorf(diagnostics.TypeMismatch, arg,
				"type %s cannot be passed variadically", at.String())
			ok = false
		}
	}
	return ok
}

// checkLen implements the built-in len rule.
func (c *Checker) checkLen(call *ast.CallExpression) typesystem.Type {
	if len(call.Arguments) != 1 {
		c.errorf(diagnostics.ArityMismatch, call, "len expects 1 argument, got %d", len(call.Arguments))
		return nil
	}
	at := c.checkExpression(call.Arguments[0])
	if at == nil {
		return nil
	}
	if _, isArr := at.(*typesystem.Array); !isArr && !typesystem.IsKind(at, typesystem.KindString) {
		c.errorf(diagnostics.TypeMismatch, call.Arguments[0],
			"len requires an array or string, got %s", at.String())
		return nil
	}
	call.Function.SetInferredType(typesystem.NewFunc(typesystem.Int, typesystem.Any))
	return typesystem.Int
}

// checkRandomCollection applies the parametric rules for Random's
// collection helpers: the result type derives from the array argument's
// element type.
func (c *Checker) checkRandomCollection(call *ast.CallExpression, member *ast.MemberExpression) typesystem.Type {
	method := member.Member.Value

	wantArity := 1
	if method == "sample" || method == "weightedChoice" {
		wantArity = 2
	}
	if len(call.Arguments) != wantArity {
		c.errorf(diagnostics.ArityMismatch, call,
			"Random.%s expects %d arguments, got %d", method, wantArity, len(call.Arguments))
		return nil
	}

	first := c.checkExpression(call.Arguments[0])
	if first == nil {
		return nil
	}
	arr, ok := first.(*typesystem.Array)
	if !ok {
		c.errorf(diagnostics.TypeMismatch, call.Arguments[0],
			"Random.%s requires an array argument, got %s", method, first.String())
		return nil
	}

	switch method {
	case "shuffle":
		return typesystem.Void
	case "choice":
		return arr.Elem
	case "sample":
		nt := c.checkExpression(call.Arguments[1])
		if nt == nil {
			return nil
		}
		if !typesystem.IsKind(nt, typesystem.KindInt) {
			c.errorf(diagnostics.TypeMismatch, call.Arguments[1],
				"Random.sample count must be int, got %s", nt.String())
			return nil
		}
		return typesystem.NewArray(arr.Elem)
	case "weightedChoice":
		wt := c.checkExpression(call.Arguments[1])
		if wt == nil {
			return nil
		}
		want := typesystem.NewArray(typesystem.Double)
		if !typesystem.Equal(wt, want) {
			c.errorf(diagnostics.TypeMismatch, call.Arguments[1],
				"Random.weightedChoice weights must be double[], got %s", wt.String())
			return nil
		}
		return arr.Elem
	}
	return nil
}
