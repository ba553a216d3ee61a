package analyzer

import (
	"testing"

	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/symbols"
	"github.com/funvibe/sindarin/internal/token"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// The parser is an external collaborator, so tests build ASTs directly.
// Every builder hands out a fresh token position: the diagnostics bag
// deduplicates by position, and distinct nodes must stay distinct.

var tokenCounter int

func nextToken(lexeme string) token.Token {
	tokenCounter++
	return token.Token{Lexeme: lexeme, Line: tokenCounter, Column: 1}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: nextToken(name), Value: name}
}

func intLit(v int64) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Token: nextToken("int"), Value: v}
}

func longLit(v int64) *ast.LongLiteral {
	return &ast.LongLiteral{Token: nextToken("long"), Value: v}
}

func dblLit(v float64) *ast.DoubleLiteral {
	return &ast.DoubleLiteral{Token: nextToken("double"), Value: v}
}

func strLit(v string) *ast.StringLiteral {
	return &ast.StringLiteral{Token: nextToken(v), Value: v}
}

func boolLit(v bool) *ast.BooleanLiteral {
	return &ast.BooleanLiteral{Token: nextToken("bool"), Value: v}
}

func arrayLit(elems ...ast.Expression) *ast.ArrayLiteral {
	return &ast.ArrayLiteral{Token: nextToken("{"), Elements: elems}
}

func infix(left ast.Expression, op string, right ast.Expression) *ast.InfixExpression {
	return &ast.InfixExpression{Token: nextToken(op), Operator: op, Left: left, Right: right}
}

func prefix(op string, right ast.Expression) *ast.PrefixExpression {
	return &ast.PrefixExpression{Token: nextToken(op), Operator: op, Right: right}
}

func postfix(operand ast.Expression, op string) *ast.PostfixExpression {
	return &ast.PostfixExpression{Token: nextToken(op), Operator: op, Operand: operand}
}

func assign(target, value ast.Expression) *ast.AssignExpression {
	return &ast.AssignExpression{Token: nextToken("="), Target: target, Value: value}
}

func index(left, idx ast.Expression) *ast.IndexExpression {
	return &ast.IndexExpression{Token: nextToken("["), Left: left, Index: idx}
}

func call(fn ast.Expression, args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{Token: nextToken("("), Function: fn, Arguments: args}
}

func member(left ast.Expression, name string) *ast.MemberExpression {
	return &ast.MemberExpression{Token: nextToken("."), Left: left, Member: ident(name)}
}

func spawn(target ast.Expression) *ast.SpawnExpression {
	return &ast.SpawnExpression{Token: nextToken("&"), Call: target}
}

func spawnMod(mod ast.Modifier, target ast.Expression) *ast.SpawnExpression {
	return &ast.SpawnExpression{Token: nextToken("&"), Modifier: mod, Call: target}
}

func syncExpr(handle ast.Expression) *ast.SyncExpression {
	return &ast.SyncExpression{Token: nextToken("!"), Handle: handle}
}

func exprStmt(expr ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Token: getToken(expr), Expression: expr}
}

func varDecl(name string, annotation typesystem.Type, value ast.Expression) *ast.VarDeclaration {
	return &ast.VarDeclaration{
		Token:          nextToken("var"),
		Name:           ident(name),
		TypeAnnotation: annotation,
		Value:          value,
	}
}

func block(mod ast.Modifier, stmts ...ast.Statement) *ast.BlockStatement {
	return &ast.BlockStatement{Token: nextToken("{"), Modifier: mod, Statements: stmts}
}

func param(name string, typ typesystem.Type) *ast.Parameter {
	return &ast.Parameter{Token: nextToken(name), Name: ident(name), Type: typ}
}

func fnDecl(name string, retType typesystem.Type, params []*ast.Parameter, body ...ast.Statement) *ast.FunctionStatement {
	return &ast.FunctionStatement{
		Token:      nextToken("fun"),
		Name:       ident(name),
		Parameters: params,
		ReturnType: retType,
		Body:       block(ast.ModDefault, body...),
	}
}

func retStmt(value ast.Expression) *ast.ReturnStatement {
	return &ast.ReturnStatement{Token: nextToken("return"), Value: value}
}

func lambda(params []*ast.Parameter, retType typesystem.Type, body ...ast.Statement) *ast.FunctionLiteral {
	return &ast.FunctionLiteral{
		Token:      nextToken("=>"),
		Parameters: params,
		ReturnType: retType,
		Body:       block(ast.ModDefault, body...),
	}
}

// analyze runs whole-module checking over the statements and returns the
// diagnostics and the resulting table.
func analyze(t *testing.T, stmts ...ast.Statement) (*diagnostics.Bag, *symbols.SymbolTable) {
	t.Helper()
	bag, table, _ := analyzeFull(t, stmts...)
	return bag, table
}

func analyzeFull(t *testing.T, stmts ...ast.Statement) (*diagnostics.Bag, *symbols.SymbolTable, *Checker) {
	t.Helper()
	table := symbols.NewSymbolTable()
	RegisterBuiltins(table)
	bag := diagnostics.NewBag()
	checker := New(table, bag)
	checker.Check(&ast.Program{Statements: stmts})
	return bag, table, checker
}

func countCategory(bag *diagnostics.Bag, cat diagnostics.Category) int {
	count := 0
	for _, d := range bag.All() {
		if d.Category == cat {
			count++
		}
	}
	return count
}

// expectClean fails the test if any diagnostics were reported.
func expectClean(t *testing.T, bag *diagnostics.Bag) {
	t.Helper()
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got: %v", bag.All())
	}
}

// expectCategory fails the test unless the bag holds the category.
func expectCategory(t *testing.T, bag *diagnostics.Bag, cat diagnostics.Category) {
	t.Helper()
	if !bag.Has(cat) {
		t.Fatalf("expected a %s diagnostic, got: %v", cat, bag.All())
	}
}
