package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/sindarin/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3,
	"!=": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"+":  5,
	"-":  5,
	"*":  6,
	"/":  6,
	"%":  6,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 7 // Default high precedence for unknown ops
}

// CodePrinter renders an analyzed (or raw) tree back to Sindarin source.
// Diagnostics tooling uses it to quote rewritten expressions; tests use it
// to assert tree shapes without walking nodes by hand.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders a whole module.
func (p *CodePrinter) Print(program *ast.Program) string {
	p.buf.Reset()
	for _, stmt := range program.Statements {
		p.printStatement(stmt)
	}
	return p.buf.String()
}

// PrintExpression renders a single expression.
func (p *CodePrinter) PrintExpression(expr ast.Expression) string {
	p.buf.Reset()
	p.printExpr(expr, 0)
	return p.buf.String()
}

// PrintStatement renders a single statement.
func (p *CodePrinter) PrintStatement(stmt ast.Statement) string {
	p.buf.Reset()
	p.printStatement(stmt)
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) line(s string) {
	p.writeIndent()
	p.write(s)
	p.write("\n")
}

func modifierPrefix(mod ast.Modifier) string {
	if mod == ast.ModDefault {
		return ""
	}
	return mod.String() + " "
}

func (p *CodePrinter) printStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		p.writeIndent()
		p.write("var ")
		if q := s.Qual.String(); q != "" {
			p.write(q + " ")
		}
		p.write(s.Name.Value)
		if s.TypeAnnotation != nil {
			p.write(": " + s.TypeAnnotation.String())
		}
		if s.Value != nil {
			p.write(" = ")
			p.printExpr(s.Value, 0)
		}
		p.write("\n")

	case *ast.ExpressionStatement:
		p.writeIndent()
		p.printExpr(s.Expression, 0)
		p.write("\n")

	case *ast.BlockStatement:
		p.writeIndent()
		p.write(modifierPrefix(s.Modifier))
		p.write("{\n")
		p.indent++
		for _, inner := range s.Statements {
			p.printStatement(inner)
		}
		p.indent--
		p.line("}")

	case *ast.IfStatement:
		p.writeIndent()
		p.write("if ")
		p.printExpr(s.Condition, 0)
		p.write(" ")
		p.printBlockInline(s.Consequence)
		if s.Alternative != nil {
			p.write(" else ")
			if chained, ok := s.Alternative.(*ast.IfStatement); ok {
				p.printIfInline(chained)
			} else if blk, ok := s.Alternative.(*ast.BlockStatement); ok {
				p.printBlockInline(blk)
			}
		}
		p.write("\n")

	case *ast.WhileStatement:
		p.writeIndent()
		if s.Shared {
			p.write("shared ")
		}
		p.write("while ")
		p.printExpr(s.Condition, 0)
		p.write(" ")
		p.printBlockInline(s.Body)
		p.write("\n")

	case *ast.ForStatement:
		p.writeIndent()
		if s.Shared {
			p.write("shared ")
		}
		p.write("for ")
		if s.Init != nil {
			p.write(strings.TrimSuffix(p.capture(s.Init), "\n"))
		}
		p.write("; ")
		if s.Condition != nil {
			p.printExpr(s.Condition, 0)
		}
		p.write("; ")
		if s.Post != nil {
			p.printExpr(s.Post, 0)
		}
		p.write(" ")
		p.printBlockInline(s.Body)
		p.write("\n")

	case *ast.ForEachStatement:
		p.writeIndent()
		if s.Shared {
			p.write("shared ")
		}
		p.write("for " + s.Name.Value + " in ")
		p.printExpr(s.Iterable, 0)
		p.write(" ")
		p.printBlockInline(s.Body)
		p.write("\n")

	case *ast.FunctionStatement:
		p.writeIndent()
		p.write(modifierPrefix(s.Modifier))
		p.write("fun " + s.Name.Value + "(")
		p.printParams(s.Parameters)
		p.write(")")
		if s.ReturnType != nil {
			p.write(" " + s.ReturnType.String())
		}
		if s.Body != nil {
			p.write(" ")
			p.printBlockInline(s.Body)
		}
		p.write("\n")

	case *ast.ReturnStatement:
		p.writeIndent()
		p.write("return")
		if s.Value != nil {
			p.write(" ")
			p.printExpr(s.Value, 0)
		}
		p.write("\n")

	case *ast.BreakStatement:
		p.line("break")
	case *ast.ContinueStatement:
		p.line("continue")

	case *ast.ImportStatement:
		p.writeIndent()
		p.write("import " + s.Module)
		if s.Alias != nil {
			p.write(" as " + s.Alias.Value)
		}
		p.write("\n")

	default:
		p.line("<???>")
	}
}

// capture renders a nested statement into a string without disturbing the
// main buffer.
func (p *CodePrinter) capture(stmt ast.Statement) string {
	nested := NewCodePrinter()
	return nested.PrintStatement(stmt)
}

func (p *CodePrinter) printIfInline(s *ast.IfStatement) {
	p.write("if ")
	p.printExpr(s.Condition, 0)
	p.write(" ")
	p.printBlockInline(s.Consequence)
	if s.Alternative != nil {
		p.write(" else ")
		if chained, ok := s.Alternative.(*ast.IfStatement); ok {
			p.printIfInline(chained)
		} else if blk, ok := s.Alternative.(*ast.BlockStatement); ok {
			p.printBlockInline(blk)
		}
	}
}

// printBlockInline prints a block starting at the current position.
func (p *CodePrinter) printBlockInline(block *ast.BlockStatement) {
	if block == nil {
		p.write("{}")
		return
	}
	p.write(modifierPrefix(block.Modifier))
	if len(block.Statements) == 0 {
		p.write("{}")
		return
	}
	p.write("{\n")
	p.indent++
	for _, inner := range block.Statements {
		p.printStatement(inner)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) printParams(params []*ast.Parameter) {
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		if q := param.Qual.String(); q != "" {
			p.write(q + " ")
		}
		if param.Variadic {
			p.write("...")
		}
		p.write(param.Name.Value)
		if param.Type != nil {
			p.write(": " + param.Type.String())
		}
	}
}

// printExpr prints an expression, adding parentheses only if needed.
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		p.write(e.Value)
	case *ast.IntegerLiteral:
		p.write(strconv.FormatInt(e.Value, 10))
	case *ast.LongLiteral:
		p.write(strconv.FormatInt(e.Value, 10) + "L")
	case *ast.DoubleLiteral:
		p.write(strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *ast.FloatLiteral:
		p.write(strconv.FormatFloat(e.Value, 'g', -1, 32) + "f")
	case *ast.CharLiteral:
		p.write("'" + string(e.Value) + "'")
	case *ast.ByteLiteral:
		p.write(fmt.Sprintf("0x%02Xb", e.Value))
	case *ast.BooleanLiteral:
		p.write(strconv.FormatBool(e.Value))
	case *ast.StringLiteral:
		p.write(strconv.Quote(e.Value))
	case *ast.NilLiteral:
		p.write("nil")

	case *ast.InterpolatedString:
		p.write("\"")
		for i, lit := range e.Literals {
			p.write(lit)
			if i < len(e.Parts) {
				p.write("{")
				p.printExpr(e.Parts[i], 0)
				p.write("}")
			}
		}
		p.write("\"")

	case *ast.InfixExpression:
		prec := getPrecedence(e.Operator)
		if prec < parentPrec {
			p.write("(")
		}
		p.printExpr(e.Left, prec)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec+1)
		if prec < parentPrec {
			p.write(")")
		}

	case *ast.PrefixExpression:
		p.write(e.Operator)
		p.printExpr(e.Right, getPrecedence("*")+1)

	case *ast.PostfixExpression:
		p.printExpr(e.Operand, getPrecedence("*")+1)
		p.write(e.Operator)

	case *ast.AssignExpression:
		p.printExpr(e.Target, 0)
		p.write(" = ")
		p.printExpr(e.Value, 0)

	case *ast.CallExpression:
		p.printExpr(e.Function, getPrecedence("*")+1)
		p.write("(")
		for i, arg := range e.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(arg, 0)
		}
		p.write(")")

	case *ast.MemberExpression:
		p.printExpr(e.Left, getPrecedence("*")+1)
		p.write("." + e.Member.Value)

	case *ast.ArrayLiteral:
		p.write("{")
		for i, elem := range e.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(elem, 0)
		}
		p.write("}")

	case *ast.IndexExpression:
		p.printExpr(e.Left, getPrecedence("*")+1)
		p.write("[")
		p.printExpr(e.Index, 0)
		p.write("]")

	case *ast.SliceExpression:
		p.printExpr(e.Left, getPrecedence("*")+1)
		p.write("[")
		if e.Low != nil {
			p.printExpr(e.Low, 0)
		}
		p.write("..")
		if e.High != nil {
			p.printExpr(e.High, 0)
		}
		p.write("]")

	case *ast.RangeExpression:
		p.printExpr(e.Low, getPrecedence("*")+1)
		p.write("..")
		p.printExpr(e.High, getPrecedence("*")+1)

	case *ast.SpreadExpression:
		p.write("...")
		p.printExpr(e.Expression, 0)

	case *ast.SizedArrayExpression:
		p.write(e.ElemType.String() + "[")
		p.printExpr(e.Size, 0)
		if e.Default != nil {
			p.write("; ")
			p.printExpr(e.Default, 0)
		}
		p.write("]")

	case *ast.FunctionLiteral:
		p.write("(")
		p.printParams(e.Parameters)
		p.write(")")
		if e.ReturnType != nil {
			p.write(": " + e.ReturnType.String())
		}
		p.write(" => ")
		p.printBlockInline(e.Body)

	case *ast.SpawnExpression:
		p.write(modifierPrefix(e.Modifier))
		p.write("&")
		p.printExpr(e.Call, 0)

	case *ast.SyncExpression:
		p.printExpr(e.Handle, getPrecedence("*")+1)
		p.write("!")

	default:
		p.write("<???>")
	}
}
