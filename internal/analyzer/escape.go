package analyzer

import (
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/symbols"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// checkEscape rejects bindings that would let region-owned values outlive a
// private scope: inside a private block or function, a non-primitive value
// may not be bound to a symbol declared in an enclosing scope. Scalar value
// kinds always cross freely; outside private regions all depths are
// equivalent.
func (c *Checker) checkEscape(node ast.Node, target *symbols.Symbol, valueType typesystem.Type) {
	if c.privateDepth == 0 {
		return
	}
	if target.ArenaDepth >= c.table.ArenaDepth() {
		return
	}
	if typesystem.IsValuePrimitive(valueType) {
		return
	}
	c.errorf(diagnostics.EscapeViolation, node,
		"cannot assign non-primitive type %s to variable '%s' declared outside private block",
		valueType.String(), target.Name)
}
