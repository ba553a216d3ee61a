package prettyprinter

import (
	"strings"
	"testing"

	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/token"
	"github.com/funvibe/sindarin/internal/typesystem"
)

func tok(lexeme string) token.Token {
	return token.Token{Lexeme: lexeme, Line: 1, Column: 1}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: tok(name), Value: name}
}

func intLit(v int64) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Token: tok("int"), Value: v}
}

func TestExpressionPrinting(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{
			"precedence adds parens",
			&ast.InfixExpression{Token: tok("*"), Operator: "*",
				Left: &ast.InfixExpression{Token: tok("+"), Operator: "+",
					Left: intLit(1), Right: intLit(2)},
				Right: intLit(3)},
			"(1 + 2) * 3",
		},
		{
			"no redundant parens",
			&ast.InfixExpression{Token: tok("+"), Operator: "+",
				Left: intLit(1),
				Right: &ast.InfixExpression{Token: tok("*"), Operator: "*",
					Left: intLit(2), Right: intLit(3)}},
			"1 + 2 * 3",
		},
		{
			"call with member",
			&ast.CallExpression{Token: tok("("),
				Function:  &ast.MemberExpression{Token: tok("."), Left: ident("xs"), Member: ident("push")},
				Arguments: []ast.Expression{intLit(4)}},
			"xs.push(4)",
		},
		{
			"spawn and sync",
			&ast.SyncExpression{Token: tok("!"), Handle: ident("r")},
			"r!",
		},
		{
			"private spawn",
			&ast.SpawnExpression{Token: tok("&"), Modifier: ast.ModPrivate,
				Call: &ast.CallExpression{Token: tok("("), Function: ident("work")}},
			"private &work()",
		},
		{
			"slice with open bound",
			&ast.SliceExpression{Token: tok("["), Left: ident("xs"), High: intLit(3)},
			"xs[..3]",
		},
		{
			"sized array with default",
			&ast.SizedArrayExpression{Token: tok("["), ElemType: typesystem.Int,
				Size: intLit(8), Default: intLit(0)},
			"int[8; 0]",
		},
		{
			"interpolation",
			&ast.InterpolatedString{Token: tok("istr"),
				Literals: []string{"n = ", ""},
				Parts:    []ast.Expression{ident("n")}},
			`"n = {n}"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCodePrinter().PrintExpression(tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatementPrinting(t *testing.T) {
	decl := &ast.VarDeclaration{
		Token:          tok("var"),
		Name:           ident("xs"),
		TypeAnnotation: typesystem.NewArray(typesystem.Int),
		Value: &ast.ArrayLiteral{Token: tok("{"),
			Elements: []ast.Expression{intLit(1), intLit(2)}},
	}
	if got := NewCodePrinter().PrintStatement(decl); got != "var xs: int[] = {1, 2}\n" {
		t.Errorf("var declaration printed as %q", got)
	}

	private := &ast.BlockStatement{Token: tok("{"), Modifier: ast.ModPrivate,
		Statements: []ast.Statement{
			&ast.ExpressionStatement{Token: tok("e"), Expression: ident("x")},
		}}
	got := NewCodePrinter().PrintStatement(private)
	if !strings.HasPrefix(got, "private {") || !strings.Contains(got, "    x\n") {
		t.Errorf("private block printed as %q", got)
	}
}

func TestFunctionPrinting(t *testing.T) {
	fn := &ast.FunctionStatement{
		Token:    tok("fun"),
		Name:     ident("process"),
		Modifier: ast.ModShared,
		Parameters: []*ast.Parameter{
			{Token: tok("d"), Name: ident("d"), Type: typesystem.NewArray(typesystem.Int), Qual: typesystem.QualRef},
		},
		ReturnType: typesystem.Int,
		Body: &ast.BlockStatement{Token: tok("{"), Statements: []ast.Statement{
			&ast.ReturnStatement{Token: tok("return"), Value: intLit(0)},
		}},
	}
	got := NewCodePrinter().PrintStatement(fn)
	for _, want := range []string{"shared fun process(", "as_ref d: int[]", ") int {", "return 0"} {
		if !strings.Contains(got, want) {
			t.Errorf("function rendering %q misses %q", got, want)
		}
	}
}
