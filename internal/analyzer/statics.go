package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// checkStaticCall resolves T.m(args) over the closed static-call tables:
// the built-in class set plus Path, Directory, Stdin, Stdout, Stderr,
// Bytes, Environment. Small overload sets (same name, different arity or
// parameter types) are allowed; the first entry whose parameters accept the
// arguments (equal, or promotable to the parameter type) wins.
func (c *Checker) checkStaticCall(call *ast.CallExpression, member *ast.MemberExpression, typeName string) typesystem.Type {
	entries, ok := staticEntries(typeName)
	if !ok {
		c.errorf(diagnostics.UnknownStaticType, member, "Unknown static type '%s'", typeName)
		return nil
	}

	argTypes := make([]typesystem.Type, len(call.Arguments))
	failed := false
	for i, arg := range call.Arguments {
		argTypes[i] = c.checkExpression(arg)
		if argTypes[i] == nil {
			failed = true
		}
	}
	if failed {
		return nil
	}

	methodName := member.Member.Value
	var overloads []*signature
	for i := range entries {
		if entries[i].name == methodName {
			overloads = append(overloads, entries[i].sig)
		}
	}
	if len(overloads) == 0 {
		var candidates []string
		for _, entry := range entries {
			candidates = append(candidates, entry.name)
		}
		d := diagnostics.New(diagnostics.InvalidMember, getToken(member),
			"Unknown %s static method '%s'", typeName, methodName)
		d.Suggestions = diagnostics.Suggest(methodName, candidates)
		c.diags.Add(d)
		return nil
	}

	for _, sig := range overloads {
		ft, ok := sig.funcType(nil)
		if !ok || len(ft.Params) != len(argTypes) {
			continue
		}
		match := true
		for i, pt := range ft.Params {
			if !typesystem.Equal(pt, argTypes[i]) && !typesystem.Promotable(argTypes[i], pt) {
				match = false
				break
			}
		}
		if match {
			return ft.Return
		}
	}

	// No overload fit; report against the closest by arity.
	best, _ := overloads[0].funcType(nil)
	for _, sig := range overloads {
		ft, _ := sig.funcType(nil)
		if ft != nil && len(ft.Params) == len(argTypes) {
			best = ft
			break
		}
	}
	if best != nil && len(best.Params) != len(argTypes) {
		c.errorf(diagnostics.ArityMismatch, call,
			"%s.%s expects %d arguments, got %d", typeName, methodName, len(best.Params), len(argTypes))
		return nil
	}
	c.errorf(diagnostics.TypeMismatch, call,
		"no %s.%s overload matches the given argument types", typeName, methodName)
	return nil
}
