package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// Error helper functions for the checker. These create structured
// diagnostics with location information and, where practical, a "did you
// mean" suggestion.

func (c *Checker) errorf(cat diagnostics.Category, node ast.Node, format string, args ...interface{}) {
	c.diags.Addf(cat, getToken(node), format, args...)
}

// undefinedName reports a lookup miss with a suggestion drawn from the
// names visible in the current scope.
func (c *Checker) undefinedName(node ast.Node, name string) {
	d := diagnostics.New(diagnostics.UndefinedName, getToken(node), "undefined variable '%s'", name)
	d.Suggestions = diagnostics.Suggest(name, c.table.AllNames())
	c.diags.Add(d)
}

// unknownMember reports a method-table miss with a suggestion drawn from
// that table's entries.
func (c *Checker) unknownMember(node ast.Node, recv typesystem.Type, member string, candidates []string) {
	d := diagnostics.New(diagnostics.InvalidMember, getToken(node),
		"no member '%s' on type %s", member, recv.String())
	d.Suggestions = diagnostics.Suggest(member, candidates)
	c.diags.Add(d)
}

func (c *Checker) typeMismatch(node ast.Node, expected, got typesystem.Type) {
	c.errorf(diagnostics.TypeMismatch, node, "type mismatch: expected %s, got %s",
		expected.String(), got.String())
}

func (c *Checker) pendingAccess(node ast.Node, name string) {
	c.errorf(diagnostics.PendingAccess, node,
		"cannot access task handle '%s' before synchronization", name)
}

func (c *Checker) frozenMutation(node ast.Node, name string) {
	c.errorf(diagnostics.FrozenMutation, node,
		"cannot mutate '%s' while it is captured by a running task", name)
}
