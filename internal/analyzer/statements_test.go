package analyzer

import (
	"testing"

	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/typesystem"
)

func TestVarDeclarationInference(t *testing.T) {
	bag, table := analyze(t,
		varDecl("n", nil, intLit(1)),
		varDecl("s", nil, strLit("hi")),
		varDecl("xs", nil, arrayLit(intLit(1), intLit(2))),
	)
	expectClean(t, bag)
	if sym := table.Lookup("n"); !typesystem.Equal(sym.Type, typesystem.Int) {
		t.Errorf("n inferred as %s", sym.Type)
	}
	if sym := table.Lookup("xs"); !typesystem.Equal(sym.Type, typesystem.NewArray(typesystem.Int)) {
		t.Errorf("xs inferred as %s", sym.Type)
	}
}

func TestVarDeclarationMismatch(t *testing.T) {
	bag, _ := analyze(t, varDecl("x", typesystem.Int, strLit("hello")))
	expectCategory(t, bag, diagnostics.TypeMismatch)
}

func TestVarDeclarationWidening(t *testing.T) {
	bag, _ := analyze(t, varDecl("d", typesystem.Double, intLit(1)))
	expectClean(t, bag)
}

func TestAssignmentRequiresEqualTypes(t *testing.T) {
	// The initializer may widen, but assignment proper may not.
	bag, _ := analyze(t,
		varDecl("d", typesystem.Double, dblLit(0)),
		exprStmt(assign(ident("d"), intLit(5))),
	)
	expectCategory(t, bag, diagnostics.TypeMismatch)
}

func TestReturnRequiresEqualType(t *testing.T) {
	bag, _ := analyze(t,
		fnDecl("half", typesystem.Double, nil, retStmt(intLit(1))),
	)
	expectCategory(t, bag, diagnostics.TypeMismatch)
}

func TestEmptyArrayLiteralUnifies(t *testing.T) {
	bag, table := analyze(t,
		varDecl("xs", typesystem.NewArray(typesystem.Int), arrayLit()),
		exprStmt(assign(ident("xs"), arrayLit(intLit(1)))),
	)
	expectClean(t, bag)

	// Without an annotation the element type is fixed by the first
	// assignment.
	bag, table = analyze(t,
		varDecl("ys", nil, arrayLit()),
		exprStmt(assign(ident("ys"), arrayLit(strLit("a")))),
	)
	expectClean(t, bag)
	if sym := table.Lookup("ys"); !typesystem.Equal(sym.Type, typesystem.NewArray(typesystem.String)) {
		t.Errorf("ys unified as %s, want string[]", sym.Type)
	}
}

func TestRedeclarationInSameScope(t *testing.T) {
	bag, _ := analyze(t,
		varDecl("x", typesystem.Int, intLit(1)),
		varDecl("x", typesystem.Int, intLit(2)),
	)
	expectCategory(t, bag, diagnostics.Redeclaration)
}

func TestShadowingInNestedBlock(t *testing.T) {
	bag, _ := analyze(t,
		varDecl("x", typesystem.Int, intLit(1)),
		block(ast.ModDefault,
			varDecl("x", typesystem.String, strLit("inner")),
			exprStmt(assign(ident("x"), strLit("ok"))),
		),
		exprStmt(assign(ident("x"), intLit(2))),
	)
	expectClean(t, bag)
}

func TestConditionsMustBeBool(t *testing.T) {
	bag, _ := analyze(t, &ast.IfStatement{
		Token:       nextToken("if"),
		Condition:   intLit(1),
		Consequence: block(ast.ModDefault),
	})
	expectCategory(t, bag, diagnostics.TypeMismatch)

	bag, _ = analyze(t, &ast.WhileStatement{
		Token:     nextToken("while"),
		Condition: boolLit(true),
		Body:      block(ast.ModDefault, &ast.BreakStatement{Token: nextToken("break")}),
	})
	expectClean(t, bag)
}

func TestBreakOutsideLoop(t *testing.T) {
	bag, _ := analyze(t, &ast.BreakStatement{Token: nextToken("break")})
	expectCategory(t, bag, diagnostics.InvalidStatement)

	bag, _ = analyze(t, &ast.ContinueStatement{Token: nextToken("continue")})
	expectCategory(t, bag, diagnostics.InvalidStatement)
}

func TestForEachBindsElementType(t *testing.T) {
	bag, _ := analyze(t,
		varDecl("xs", typesystem.NewArray(typesystem.String), arrayLit(strLit("a"))),
		&ast.ForEachStatement{
			Token:    nextToken("for"),
			Name:     ident("s"),
			Iterable: ident("xs"),
			Body: block(ast.ModDefault,
				varDecl("copy", typesystem.String, ident("s")),
			),
		},
	)
	expectClean(t, bag)

	bag, _ = analyze(t, &ast.ForEachStatement{
		Token:    nextToken("for"),
		Name:     ident("c"),
		Iterable: intLit(5),
		Body:     block(ast.ModDefault),
	})
	expectCategory(t, bag, diagnostics.TypeMismatch)
}

func TestCStyleForLoop(t *testing.T) {
	bag, _ := analyze(t, &ast.ForStatement{
		Token:     nextToken("for"),
		Init:      varDecl("i", nil, intLit(0)),
		Condition: infix(ident("i"), "<", intLit(10)),
		Post:      postfix(ident("i"), "++"),
		Body: block(ast.ModDefault,
			exprStmt(assign(ident("i"), infix(ident("i"), "+", intLit(1)))),
		),
	})
	expectClean(t, bag)
}

func TestFunctionDeclarationAndReturn(t *testing.T) {
	bag, _ := analyze(t,
		fnDecl("add", typesystem.Int,
			[]*ast.Parameter{param("a", typesystem.Int), param("b", typesystem.Int)},
			retStmt(infix(ident("a"), "+", ident("b"))),
		),
		varDecl("sum", typesystem.Int, call(ident("add"), intLit(1), intLit(2))),
	)
	expectClean(t, bag)
}

func TestReturnTypeMismatch(t *testing.T) {
	bag, _ := analyze(t,
		fnDecl("bad", typesystem.Int, nil, retStmt(strLit("nope"))),
	)
	expectCategory(t, bag, diagnostics.TypeMismatch)
}

func TestVoidFunctionReturningValue(t *testing.T) {
	bag, _ := analyze(t,
		fnDecl("sideEffect", nil, nil, retStmt(intLit(1))),
	)
	expectCategory(t, bag, diagnostics.TypeMismatch)
}

func TestReturnOutsideFunction(t *testing.T) {
	bag, _ := analyze(t, retStmt(intLit(1)))
	expectCategory(t, bag, diagnostics.InvalidStatement)
}

func TestTopLevelFunctionsAreHoisted(t *testing.T) {
	// Call before the declaration appears: the hoisting pass makes it
	// resolvable.
	bag, _ := analyze(t,
		varDecl("x", typesystem.Int, call(ident("later"))),
		fnDecl("later", typesystem.Int, nil, retStmt(intLit(7))),
	)
	expectClean(t, bag)
}

func TestNativeFunctionYieldsOpaque(t *testing.T) {
	native := &ast.FunctionStatement{
		Token:    nextToken("fun"),
		Name:     ident("clockHandle"),
		IsNative: true,
	}
	bag, table := analyze(t,
		native,
		varDecl("h", nil, call(ident("clockHandle"))),
		exprStmt(call(ident("print"), ident("h"))),
	)
	// Opaque handles flow through variables and variadic printing.
	expectClean(t, bag)
	if _, ok := table.Lookup("h").Type.(*typesystem.Opaque); !ok {
		t.Fatalf("native result = %s, want opaque", table.Lookup("h").Type)
	}
}

func TestVariadicParameterSeenAsArray(t *testing.T) {
	variadic := param("rest", typesystem.Int)
	variadic.Variadic = true
	bag, _ := analyze(t,
		fnDecl("sum", typesystem.Int,
			[]*ast.Parameter{variadic},
			retStmt(call(ident("len"), ident("rest"))),
		),
		varDecl("total", typesystem.Int, call(ident("sum"), intLit(1), intLit(2), intLit(3))),
	)
	expectClean(t, bag)
}
