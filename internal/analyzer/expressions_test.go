package analyzer

import (
	"testing"

	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/typesystem"
)

func TestLiteralTypes(t *testing.T) {
	tests := []struct {
		expr ast.Expression
		want typesystem.Type
	}{
		{intLit(1), typesystem.Int},
		{longLit(1), typesystem.Long},
		{dblLit(1.5), typesystem.Double},
		{strLit("hi"), typesystem.String},
		{boolLit(true), typesystem.Bool},
		{&ast.CharLiteral{Token: nextToken("'a'"), Value: 'a'}, typesystem.Char},
		{&ast.ByteLiteral{Token: nextToken("0x1b"), Value: 1}, typesystem.Byte},
		{&ast.NilLiteral{Token: nextToken("nil")}, typesystem.Nil},
	}
	_, _, checker := analyzeFull(t)
	for _, tt := range tests {
		got := checker.CheckExpression(tt.expr)
		if !typesystem.Equal(got, tt.want) {
			t.Errorf("literal type = %v, want %s", got, tt.want)
		}
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	_, _, checker := analyzeFull(t)
	expr := infix(intLit(1), "+", dblLit(2))
	first := checker.CheckExpression(expr)
	second := checker.CheckExpression(expr)
	if !typesystem.Equal(first, typesystem.Double) || first != second {
		t.Fatalf("repeated checks disagree: %v vs %v", first, second)
	}
	if !typesystem.Equal(expr.InferredType(), typesystem.Double) {
		t.Fatalf("inferred type not cached on node")
	}
}

func TestArithmeticPromotion(t *testing.T) {
	tests := []struct {
		left, right ast.Expression
		op          string
		want        typesystem.Type
	}{
		{intLit(1), intLit(2), "+", typesystem.Int},
		{intLit(1), longLit(2), "+", typesystem.Long},
		{intLit(1), dblLit(2), "*", typesystem.Double},
		{longLit(1), dblLit(2), "-", typesystem.Double},
		{intLit(7), intLit(2), "%", typesystem.Int},
	}
	_, _, checker := analyzeFull(t)
	for _, tt := range tests {
		got := checker.CheckExpression(infix(tt.left, tt.op, tt.right))
		if !typesystem.Equal(got, tt.want) {
			t.Errorf("%s: got %v, want %s", tt.op, got, tt.want)
		}
	}
}

func TestStringConcatenation(t *testing.T) {
	_, _, checker := analyzeFull(t)
	if got := checker.CheckExpression(infix(strLit("n = "), "+", intLit(3))); !typesystem.Equal(got, typesystem.String) {
		t.Errorf("string + int = %v, want string", got)
	}
	if got := checker.CheckExpression(infix(intLit(3), "+", strLit("!"))); !typesystem.Equal(got, typesystem.String) {
		t.Errorf("int + string = %v, want string", got)
	}

	bag, _, checker := analyzeFull(t)
	if got := checker.CheckExpression(infix(strLit("x"), "+", arrayLit(intLit(1)))); got != nil {
		t.Errorf("string + array should fail, got %v", got)
	}
	expectCategory(t, bag, diagnostics.InvalidOperator)
}

func TestComparisons(t *testing.T) {
	_, _, checker := analyzeFull(t)
	cases := []ast.Expression{
		infix(intLit(1), "<", dblLit(2)),
		infix(strLit("a"), "==", strLit("b")),
		infix(boolLit(true), "!=", boolLit(false)),
	}
	for _, expr := range cases {
		if got := checker.CheckExpression(expr); !typesystem.Equal(got, typesystem.Bool) {
			t.Errorf("comparison type = %v, want bool", got)
		}
	}

	bag, _, checker := analyzeFull(t)
	if got := checker.CheckExpression(infix(strLit("a"), "<", intLit(1))); got != nil {
		t.Errorf("string < int should fail, got %v", got)
	}
	expectCategory(t, bag, diagnostics.InvalidOperator)
}

func TestLogicalOperators(t *testing.T) {
	bag, _, checker := analyzeFull(t)
	if got := checker.CheckExpression(infix(boolLit(true), "&&", boolLit(false))); !typesystem.Equal(got, typesystem.Bool) {
		t.Errorf("bool && bool = %v, want bool", got)
	}
	expectClean(t, bag)

	bag, _, checker = analyzeFull(t)
	checker.CheckExpression(infix(intLit(1), "||", boolLit(true)))
	expectCategory(t, bag, diagnostics.InvalidOperator)
}

func TestUnaryOperators(t *testing.T) {
	_, _, checker := analyzeFull(t)
	if got := checker.CheckExpression(prefix("-", dblLit(1))); !typesystem.Equal(got, typesystem.Double) {
		t.Errorf("-double = %v, want double", got)
	}
	if got := checker.CheckExpression(prefix("!", boolLit(true))); !typesystem.Equal(got, typesystem.Bool) {
		t.Errorf("!bool = %v, want bool", got)
	}

	bag, _, checker := analyzeFull(t)
	checker.CheckExpression(prefix("-", strLit("x")))
	expectCategory(t, bag, diagnostics.InvalidOperator)
}

func TestUndefinedVariableSuggestion(t *testing.T) {
	bag, _ := analyze(t,
		varDecl("count", typesystem.Int, intLit(0)),
		exprStmt(ident("conut")),
	)
	expectCategory(t, bag, diagnostics.UndefinedName)
	found := false
	for _, d := range bag.All() {
		if d.Category == diagnostics.UndefinedName && d.Suggested("count") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a 'count' suggestion, got: %v", bag.All())
	}
}

func TestInterpolatedString(t *testing.T) {
	bag, _ := analyze(t,
		varDecl("n", typesystem.Int, intLit(42)),
		exprStmt(&ast.InterpolatedString{
			Token:    nextToken("istr"),
			Literals: []string{"n is ", ""},
			Parts:    []ast.Expression{ident("n")},
		}),
	)
	expectClean(t, bag)

	bag, _ = analyze(t,
		varDecl("xs", typesystem.NewArray(typesystem.Int), arrayLit(intLit(1))),
		exprStmt(&ast.InterpolatedString{
			Token:    nextToken("istr"),
			Literals: []string{"xs is ", ""},
			Parts:    []ast.Expression{ident("xs")},
		}),
	)
	expectCategory(t, bag, diagnostics.TypeMismatch)
}

func TestArrayLiteralsAndIndexing(t *testing.T) {
	_, _, checker := analyzeFull(t)
	arr := arrayLit(intLit(1), intLit(2), intLit(3))
	if got := checker.CheckExpression(arr); !typesystem.Equal(got, typesystem.NewArray(typesystem.Int)) {
		t.Fatalf("array literal = %v, want int[]", got)
	}

	bag, _, checker := analyzeFull(t)
	checker.CheckExpression(arrayLit(intLit(1), strLit("two")))
	expectCategory(t, bag, diagnostics.TypeMismatch)

	bag, _ = analyze(t,
		varDecl("xs", typesystem.NewArray(typesystem.String), arrayLit(strLit("a"))),
		varDecl("s", typesystem.String, index(ident("xs"), intLit(0))),
	)
	expectClean(t, bag)
}

func TestRangeSliceSpread(t *testing.T) {
	_, _, checker := analyzeFull(t)
	rng := &ast.RangeExpression{Token: nextToken(".."), Low: intLit(0), High: intLit(10)}
	if got := checker.CheckExpression(rng); !typesystem.Equal(got, typesystem.NewArray(typesystem.Int)) {
		t.Fatalf("range = %v, want int[]", got)
	}

	bag, _ := analyze(t,
		varDecl("xs", typesystem.NewArray(typesystem.Int), arrayLit(intLit(1), intLit(2))),
		varDecl("head", typesystem.NewArray(typesystem.Int), &ast.SliceExpression{
			Token: nextToken("["), Left: ident("xs"), High: intLit(1),
		}),
		varDecl("all", typesystem.NewArray(typesystem.Int), arrayLit(
			intLit(0),
			&ast.SpreadExpression{Token: nextToken("..."), Expression: ident("xs")},
		)),
	)
	expectClean(t, bag)

	// A range element contributes int, so mixing with strings fails.
	bag, _, checker = analyzeFull(t)
	checker.CheckExpression(arrayLit(strLit("a"), rng))
	expectCategory(t, bag, diagnostics.TypeMismatch)
}

func TestSizedArrayAllocation(t *testing.T) {
	_, _, checker := analyzeFull(t)
	sized := &ast.SizedArrayExpression{
		Token: nextToken("["), ElemType: typesystem.Double, Size: intLit(8), Default: intLit(0),
	}
	// The default is promotable to the element type.
	if got := checker.CheckExpression(sized); !typesystem.Equal(got, typesystem.NewArray(typesystem.Double)) {
		t.Fatalf("sized array = %v, want double[]", got)
	}

	bag, _, checker := analyzeFull(t)
	checker.CheckExpression(&ast.SizedArrayExpression{
		Token: nextToken("["), ElemType: typesystem.String, Size: strLit("n"),
	})
	expectCategory(t, bag, diagnostics.TypeMismatch)
}

func TestIncrementDecrement(t *testing.T) {
	bag, _ := analyze(t,
		varDecl("n", typesystem.Int, intLit(0)),
		exprStmt(postfix(ident("n"), "++")),
	)
	expectClean(t, bag)

	bag, _ = analyze(t,
		varDecl("s", typesystem.String, strLit("x")),
		exprStmt(postfix(ident("s"), "--")),
	)
	expectCategory(t, bag, diagnostics.InvalidOperator)

	bag, _, checker := analyzeFull(t)
	checker.CheckExpression(postfix(intLit(5), "++"))
	expectCategory(t, bag, diagnostics.InvalidOperator)
}
