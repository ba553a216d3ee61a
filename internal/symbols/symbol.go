package symbols

import (
	"math"

	"github.com/google/uuid"

	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// ThreadState tracks a symbol's relationship to spawned tasks.
type ThreadState int

const (
	StateNormal ThreadState = iota
	StatePending
	StateSynchronized
)

func (ts ThreadState) String() string {
	switch ts {
	case StatePending:
		return "pending"
	case StateSynchronized:
		return "synchronized"
	default:
		return "normal"
	}
}

// Symbol is one declared name. Created on declaration at the current scope
// depth; mutated only by the statement checker and the escape/concurrency
// analyses; dies with its scope.
type Symbol struct {
	Name       string
	Type       typesystem.Type
	ArenaDepth uint32
	IsFunction bool
	FuncMod    ast.Modifier
	Qual       typesystem.MemQual

	ThreadState ThreadState
	FreezeCount uint32
	FrozenArgs  []*Symbol // set while ThreadState == StatePending
	TaskID      uuid.UUID // identity of the task bound to a handle symbol

	IsNamespace bool
	Exports     map[string]*Symbol // namespace symbols only
}

// Frozen reports whether the symbol is currently read-only.
func (s *Symbol) Frozen() bool {
	return s.FreezeCount > 0
}

// Pending reports whether the symbol is a task handle awaiting sync.
func (s *Symbol) Pending() bool {
	return s.ThreadState == StatePending
}

// Freeze increments the freeze counter, saturating instead of wrapping.
func (s *Symbol) Freeze() {
	if s.FreezeCount < math.MaxUint32 {
		s.FreezeCount++
	}
}

// Unfreeze decrements the freeze counter; the symbol becomes writable again
// only when the count reaches zero.
func (s *Symbol) Unfreeze() {
	if s.FreezeCount > 0 {
		s.FreezeCount--
	}
}
