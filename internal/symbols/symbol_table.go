package symbols

import (
	"github.com/funvibe/sindarin/internal/typesystem"
)

// scope is one lexical frame. Frames form a chain through outer, innermost
// first, exactly one chain per SymbolTable.
type scope struct {
	symbols map[string]*Symbol
	order   []string // declaration order, for deterministic scope-exit checks
	depth   uint32
	outer   *scope
}

// SymbolTable is the shared mutable state of the semantic core: lexically
// scoped name resolution plus the per-symbol escape/thread-state metadata.
type SymbolTable struct {
	current *scope
}

// NewSymbolTable creates a table with the global scope open at depth 0.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		current: &scope{symbols: make(map[string]*Symbol), depth: 0},
	}
}

// ArenaDepth returns the lexical nesting level of the current scope.
func (t *SymbolTable) ArenaDepth() uint32 {
	return t.current.depth
}

// EnterScope opens a nested scope one arena level deeper.
func (t *SymbolTable) EnterScope() {
	t.current = &scope{
		symbols: make(map[string]*Symbol),
		depth:   t.current.depth + 1,
		outer:   t.current,
	}
}

// ExitScope pops the innermost scope and returns its symbols in declaration
// order so the caller can flag still-pending task handles. Popping the
// global scope is a no-op returning nil.
func (t *SymbolTable) ExitScope() []*Symbol {
	if t.current.outer == nil {
		return nil
	}
	popped := t.current
	t.current = popped.outer
	result := make([]*Symbol, 0, len(popped.order))
	for _, name := range popped.order {
		result = append(result, popped.symbols[name])
	}
	return result
}

// Declare binds a new symbol in the current scope. Returns nil if the name
// already exists in this same scope (shadowing an outer scope is fine).
func (t *SymbolTable) Declare(name string, typ typesystem.Type) *Symbol {
	if _, exists := t.current.symbols[name]; exists {
		return nil
	}
	sym := &Symbol{
		Name:       name,
		Type:       typ,
		ArenaDepth: t.current.depth,
	}
	t.current.symbols[name] = sym
	t.current.order = append(t.current.order, name)
	return sym
}

// DeclareNamespace binds an import namespace. Namespace symbols do not
// participate in value checking; they are reached only through member
// access.
func (t *SymbolTable) DeclareNamespace(name string, exports map[string]*Symbol) *Symbol {
	sym := t.Declare(name, nil)
	if sym == nil {
		return nil
	}
	sym.IsNamespace = true
	sym.Exports = exports
	return sym
}

// Lookup searches from innermost to outermost scope; ties resolve to the
// innermost declaration.
func (t *SymbolTable) Lookup(name string) *Symbol {
	for s := t.current; s != nil; s = s.outer {
		if sym, ok := s.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// IsNamespace reports whether name resolves to an import namespace.
func (t *SymbolTable) IsNamespace(name string) bool {
	sym := t.Lookup(name)
	return sym != nil && sym.IsNamespace
}

// AllNames returns every name visible from the current scope, innermost
// first. Used by the "did you mean" suggestion helper.
func (t *SymbolTable) AllNames() []string {
	seen := make(map[string]bool)
	var names []string
	for s := t.current; s != nil; s = s.outer {
		for _, name := range s.order {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// MarkPending transitions a handle symbol to PENDING. Returns false if the
// symbol is already pending: a symbol never becomes PENDING twice without an
// intervening synchronization.
func (t *SymbolTable) MarkPending(sym *Symbol) bool {
	if sym.ThreadState == StatePending {
		return false
	}
	sym.ThreadState = StatePending
	return true
}

// MarkSynchronized transitions a pending handle to SYNCHRONIZED and clears
// its frozen-argument list.
func (t *SymbolTable) MarkSynchronized(sym *Symbol) {
	sym.ThreadState = StateSynchronized
	sym.FrozenArgs = nil
}

// Freeze increments the freeze counter of sym (saturating).
func (t *SymbolTable) Freeze(sym *Symbol) {
	sym.Freeze()
}

// Unfreeze decrements the freeze counter of sym.
func (t *SymbolTable) Unfreeze(sym *Symbol) {
	sym.Unfreeze()
}

// SetFrozenArgs records the base symbols frozen on behalf of a handle.
func (t *SymbolTable) SetFrozenArgs(sym *Symbol, args []*Symbol) {
	sym.FrozenArgs = args
}
