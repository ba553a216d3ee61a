package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/typesystem"
	"github.com/funvibe/sindarin/internal/utils"
)

// checkMember types obj.m: namespace members, built-in class members, and
// the array/string/byte-array tables.
func (c *Checker) checkMember(node *ast.MemberExpression) typesystem.Type {
	if ident, ok := node.Left.(*ast.Identifier); ok {
		if sym := c.table.Lookup(ident.Value); sym != nil && sym.IsNamespace {
			return c.checkNamespaceMember(node, ident)
		}
		if c.table.Lookup(ident.Value) == nil && isStaticTypeName(ident.Value) {
			// T.m is only meaningful as the head of a static call; the call
			// checker intercepts that form before we get here.
			c.errorf(diagnostics.InvalidMember, node,
				"static member '%s.%s' must be called directly", ident.Value, node.Member.Value)
			return nil
		}
	}

	recv := c.checkExpression(node.Left)
	if recv == nil {
		return nil
	}

	memberType, entry, found := lookupMember(recv, node.Member.Value)
	if !found {
		c.unknownMember(node, recv, node.Member.Value, memberCandidates(recv))
		return nil
	}
	if entry.mutating {
		if base := baseSymbolOf(node.Left, c.table); base != nil && base.Frozen() {
			c.frozenMutation(node, base.Name)
			return nil
		}
	}
	return memberType
}

// checkNamespaceMember resolves ns.name against an imported module's
// exported symbols.
func (c *Checker) checkNamespaceMember(node *ast.MemberExpression, ident *ast.Identifier) typesystem.Type {
	ns := c.table.Lookup(ident.Value)
	member, ok := ns.Exports[node.Member.Value]
	if !ok {
		candidates := utils.SortedNames(ns.Exports)
		d := diagnostics.New(diagnostics.UndefinedName, getToken(node),
			"module '%s' has no exported symbol '%s'", ident.Value, node.Member.Value)
		d.Suggestions = diagnostics.Suggest(node.Member.Value, candidates)
		c.diags.Add(d)
		return nil
	}
	return member.Type
}
