package config

// Built-in free function names seeded into the global scope.
const (
	LenFuncName     = "len"
	PrintFuncName   = "print"
	PrintlnFuncName = "println"
)

// ReservedKeywords are names an import namespace may not shadow.
var ReservedKeywords = []string{
	"var", "fun", "return", "if", "else", "while", "for", "in",
	"break", "continue", "import", "true", "false", "nil",
	"private", "shared", "as_val", "as_ref", "native",
	"int", "long", "double", "float", "char", "byte", "bool", "string", "void", "any",
}

// IsReservedKeyword reports whether name is a language keyword.
func IsReservedKeyword(name string) bool {
	for _, kw := range ReservedKeywords {
		if kw == name {
			return true
		}
	}
	return false
}
