package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/sindarin/internal/token"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Category is the stable tag identifying what kind of rule a diagnostic
// comes from.
type Category string

const (
	UndefinedName      Category = "UndefinedName"
	TypeMismatch       Category = "TypeMismatch"
	ArityMismatch      Category = "ArityMismatch"
	InvalidOperator    Category = "InvalidOperator"
	InvalidMember      Category = "InvalidMember"
	EscapeViolation    Category = "EscapeViolation"
	FrozenMutation     Category = "FrozenMutation"
	PendingAccess      Category = "PendingAccess"
	SpawnShape         Category = "SpawnShape"
	PrivateSpawnReturn Category = "PrivateSpawnReturn"
	ImportError        Category = "ImportError"
	UnknownStaticType  Category = "UnknownStaticType"
	Redeclaration      Category = "Redeclaration"
	InvalidStatement   Category = "InvalidStatement"
)

// Diagnostic is a single analyzer finding.
type Diagnostic struct {
	Severity    Severity
	Category    Category
	Token       token.Token
	File        string
	Text        string
	Suggestions []string // optional "did you mean" candidates, closest first
}

func (d *Diagnostic) Error() string {
	prefix := ""
	if d.File != "" {
		prefix = d.File + ": "
	}
	var result string
	if d.Token.Line > 0 {
		result = fmt.Sprintf("%s%s at %d:%d [%s]: %s", prefix, d.Severity, d.Token.Line, d.Token.Column, d.Category, d.Text)
	} else {
		result = fmt.Sprintf("%s%s [%s]: %s", prefix, d.Severity, d.Category, d.Text)
	}
	if hint := d.suggestionHint(); hint != "" {
		result += " " + hint
	}
	return result
}

// suggestionHint renders the "did you mean" tail, or "" without candidates.
func (d *Diagnostic) suggestionHint() string {
	switch len(d.Suggestions) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("(did you mean '%s'?)", d.Suggestions[0])
	default:
		quoted := make([]string, len(d.Suggestions))
		for i, s := range d.Suggestions {
			quoted[i] = "'" + s + "'"
		}
		return fmt.Sprintf("(did you mean %s or %s?)",
			strings.Join(quoted[:len(quoted)-1], ", "), quoted[len(quoted)-1])
	}
}

// Suggested reports whether name is among the diagnostic's candidates.
func (d *Diagnostic) Suggested(name string) bool {
	for _, s := range d.Suggestions {
		if s == name {
			return true
		}
	}
	return false
}

// New creates an error-severity diagnostic.
func New(cat Category, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Severity: SeverityError,
		Category: cat,
		Token:    tok,
		Text:     fmt.Sprintf(format, args...),
	}
}

// Bag accumulates diagnostics for one analysis run. It deduplicates by
// position and category so a failed child expression cannot flood its
// parents, and carries the single had-error flag the final phase consults.
type Bag struct {
	set      map[string]*Diagnostic
	hadError bool
	file     string
}

func NewBag() *Bag {
	return &Bag{set: make(map[string]*Diagnostic)}
}

// SetFile sets the file name stamped onto subsequently added diagnostics.
func (b *Bag) SetFile(file string) {
	b.file = file
}

// Add records a diagnostic, deduplicating by position and category.
func (b *Bag) Add(d *Diagnostic) {
	if d == nil {
		return
	}
	if d.File == "" {
		d.File = b.file
	}
	if d.Severity == SeverityError {
		b.hadError = true
	}
	key := fmt.Sprintf("%d:%d:%s", d.Token.Line, d.Token.Column, d.Category)
	if _, exists := b.set[key]; exists {
		return
	}
	b.set[key] = d
}

// Addf builds and records an error diagnostic in one step.
func (b *Bag) Addf(cat Category, tok token.Token, format string, args ...interface{}) {
	b.Add(New(cat, tok, format, args...))
}

// HadError reports whether any error-severity diagnostic was recorded.
// Code generation is disabled when true.
func (b *Bag) HadError() bool {
	return b.hadError
}

// Len returns the number of unique diagnostics collected.
func (b *Bag) Len() int {
	return len(b.set)
}

// All returns the diagnostics sorted by source position.
func (b *Bag) All() []*Diagnostic {
	result := make([]*Diagnostic, 0, len(b.set))
	for _, d := range b.set {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Token.Line != result[j].Token.Line {
			return result[i].Token.Line < result[j].Token.Line
		}
		return result[i].Token.Column < result[j].Token.Column
	})
	return result
}

// Has reports whether any collected diagnostic carries the given category.
func (b *Bag) Has(cat Category) bool {
	for _, d := range b.set {
		if d.Category == cat {
			return true
		}
	}
	return false
}
