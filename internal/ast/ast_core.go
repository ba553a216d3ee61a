package ast

import (
	"github.com/funvibe/sindarin/internal/token"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// TokenProvider is an interface for any AST node that can provide its primary
// token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
	InferredType() typesystem.Type
	SetInferredType(typesystem.Type)
}

// typed is embedded by every expression node and holds the write-once
// inferred-type cache slot.
type typed struct {
	inferred typesystem.Type
}

func (t *typed) InferredType() typesystem.Type {
	return t.inferred
}

// SetInferredType writes the cache slot. The first write wins; the checker
// relies on this for idempotent re-checks of shared nodes.
func (t *typed) SetInferredType(ty typesystem.Type) {
	if t.inferred == nil {
		t.inferred = ty
	}
}

// Modifier marks functions, blocks, loops, and spawn forms.
type Modifier int

const (
	ModDefault Modifier = iota
	ModShared
	ModPrivate
)

func (m Modifier) String() string {
	switch m {
	case ModShared:
		return "shared"
	case ModPrivate:
		return "private"
	default:
		return ""
	}
}

// Program is the root node of every parsed module.
type Program struct {
	File       string // Source file path
	Name       string // Module name (import key)
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// VarDeclaration represents a variable binding.
// var x: int = 1, var y = f(), var as_ref buf: byte[] = ...
type VarDeclaration struct {
	Token          token.Token // The 'var' token
	Name           *Identifier
	TypeAnnotation typesystem.Type // nil when inferred from the initializer
	Qual           typesystem.MemQual
	Value          Expression // nil for bare declarations with annotation
}

func (vd *VarDeclaration) statementNode()       {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Lexeme }
func (vd *VarDeclaration) GetToken() token.Token {
	if vd == nil {
		return token.Token{}
	}
	return vd.Token
}

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// BlockStatement represents a list of statements within curly braces,
// optionally carrying a private/shared modifier.
type BlockStatement struct {
	Token      token.Token // {
	Modifier   Modifier
	Statements []Statement
}

func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// IfStatement: if cond { } else { } — Alternative is a BlockStatement or a
// chained IfStatement.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// WhileStatement: [shared] while cond { }
type WhileStatement struct {
	Token     token.Token
	Shared    bool
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// ForStatement: [shared] for init; cond; post { }
type ForStatement struct {
	Token     token.Token
	Shared    bool
	Init      Statement // nil or VarDeclaration/ExpressionStatement
	Condition Expression
	Post      Expression
	Body      *BlockStatement
}

func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token { return fs.Token }

// ForEachStatement: [shared] for x in iterable { }
type ForEachStatement struct {
	Token    token.Token
	Shared   bool
	Name     *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (fe *ForEachStatement) statementNode()        {}
func (fe *ForEachStatement) TokenLiteral() string  { return fe.Token.Lexeme }
func (fe *ForEachStatement) GetToken() token.Token { return fe.Token }

// Parameter of a function declaration or lambda. Type is nil in a lambda
// whose parameter types are inferred from context.
type Parameter struct {
	Token    token.Token
	Name     *Identifier
	Type     typesystem.Type
	Qual     typesystem.MemQual
	Variadic bool
}

// FunctionStatement represents a named function definition.
// [private|shared] fun name(params) returnType { body }
type FunctionStatement struct {
	Token      token.Token // The 'fun' token
	Name       *Identifier
	Modifier   Modifier
	Parameters []*Parameter
	ReturnType typesystem.Type // nil means void (opaque for native functions)
	Body       *BlockStatement
	IsNative   bool // native functions have no body; their type is opaque-bridged
}

func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }

// ReturnStatement: return [expr]
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for bare return
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// BreakStatement: break
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

// ContinueStatement: continue
type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) statementNode()        {}
func (cs *ContinueStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ContinueStatement) GetToken() token.Token { return cs.Token }

// ImportStatement: import mod [as ns]. Without an alias the module's exports
// are spliced into the importing scope; with one they are reached through the
// namespace symbol.
type ImportStatement struct {
	Token  token.Token
	Module string
	Alias  *Identifier // nil for unnamed imports
}

func (is *ImportStatement) statementNode()        {}
func (is *ImportStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token { return is.Token }
