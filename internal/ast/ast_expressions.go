package ast

import (
	"github.com/google/uuid"

	"github.com/funvibe/sindarin/internal/token"
	"github.com/funvibe/sindarin/internal/typesystem"
)

// Identifier is a bare name reference.
type Identifier struct {
	typed
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// IntegerLiteral: 42
type IntegerLiteral struct {
	typed
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// LongLiteral: 42L
type LongLiteral struct {
	typed
	Token token.Token
	Value int64
}

func (ll *LongLiteral) expressionNode()       {}
func (ll *LongLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *LongLiteral) GetToken() token.Token { return ll.Token }

// DoubleLiteral: 3.14
type DoubleLiteral struct {
	typed
	Token token.Token
	Value float64
}

func (dl *DoubleLiteral) expressionNode()       {}
func (dl *DoubleLiteral) TokenLiteral() string  { return dl.Token.Lexeme }
func (dl *DoubleLiteral) GetToken() token.Token { return dl.Token }

// FloatLiteral: 3.14f
type FloatLiteral struct {
	typed
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

// CharLiteral: 'a'
type CharLiteral struct {
	typed
	Token token.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()       {}
func (cl *CharLiteral) TokenLiteral() string  { return cl.Token.Lexeme }
func (cl *CharLiteral) GetToken() token.Token { return cl.Token }

// ByteLiteral: 0xFFb
type ByteLiteral struct {
	typed
	Token token.Token
	Value byte
}

func (bl *ByteLiteral) expressionNode()       {}
func (bl *ByteLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *ByteLiteral) GetToken() token.Token { return bl.Token }

// BooleanLiteral: true / false
type BooleanLiteral struct {
	typed
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// StringLiteral: "hello"
type StringLiteral struct {
	typed
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// NilLiteral: nil
type NilLiteral struct {
	typed
	Token token.Token
}

func (nl *NilLiteral) expressionNode()       {}
func (nl *NilLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NilLiteral) GetToken() token.Token { return nl.Token }

// InterpolatedString: "count: {n}". Literals has one more element than Parts
// and the two interleave: Literals[0] Parts[0] Literals[1] ...
type InterpolatedString struct {
	typed
	Token    token.Token
	Literals []string
	Parts    []Expression
}

func (is *InterpolatedString) expressionNode()       {}
func (is *InterpolatedString) TokenLiteral() string  { return is.Token.Lexeme }
func (is *InterpolatedString) GetToken() token.Token { return is.Token }

// PrefixExpression: -x, !b
type PrefixExpression struct {
	typed
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression: a + b, a == b, a && b
type InfixExpression struct {
	typed
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// PostfixExpression: x++, x--
type PostfixExpression struct {
	typed
	Token    token.Token
	Operator string
	Operand  Expression
}

func (pe *PostfixExpression) expressionNode()       {}
func (pe *PostfixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PostfixExpression) GetToken() token.Token { return pe.Token }

// AssignExpression: x = v, a[i] = v. Target is an Identifier or an
// IndexExpression.
type AssignExpression struct {
	typed
	Token  token.Token // The '=' token
	Target Expression
	Value  Expression
}

func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }

// CallExpression: f(a, b)
type CallExpression struct {
	typed
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// MemberExpression: obj.m, ns.name, Type.staticMethod
type MemberExpression struct {
	typed
	Token  token.Token // The '.' token
	Left   Expression
	Member *Identifier
}

func (me *MemberExpression) expressionNode()       {}
func (me *MemberExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token { return me.Token }

// ArrayLiteral: {1, 2, 3}
type ArrayLiteral struct {
	typed
	Token    token.Token // The '{' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

// IndexExpression: arr[i]
type IndexExpression struct {
	typed
	Token token.Token // The '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// SliceExpression: arr[lo..hi], either bound optional.
type SliceExpression struct {
	typed
	Token token.Token // The '[' token
	Left  Expression
	Low   Expression // nil for arr[..hi]
	High  Expression // nil for arr[lo..]
}

func (se *SliceExpression) expressionNode()       {}
func (se *SliceExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SliceExpression) GetToken() token.Token { return se.Token }

// RangeExpression: lo..hi (yields int[])
type RangeExpression struct {
	typed
	Token token.Token // The '..' token
	Low   Expression
	High  Expression
}

func (re *RangeExpression) expressionNode()       {}
func (re *RangeExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *RangeExpression) GetToken() token.Token { return re.Token }

// SpreadExpression: ...arr, valid only as an element of an array literal.
type SpreadExpression struct {
	typed
	Token      token.Token // The '...' token
	Expression Expression
}

func (se *SpreadExpression) expressionNode()       {}
func (se *SpreadExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SpreadExpression) GetToken() token.Token { return se.Token }

// SizedArrayExpression: int[10], string[n; ""]
type SizedArrayExpression struct {
	typed
	Token    token.Token
	ElemType typesystem.Type
	Size     Expression
	Default  Expression // nil when zero-initialized
}

func (sa *SizedArrayExpression) expressionNode()       {}
func (sa *SizedArrayExpression) TokenLiteral() string  { return sa.Token.Lexeme }
func (sa *SizedArrayExpression) GetToken() token.Token { return sa.Token }

// FunctionLiteral represents an anonymous function (lambda).
// (x, y) => x + y. Parameter and return types may be nil until the checker
// fills them from the surrounding context.
type FunctionLiteral struct {
	typed
	Token      token.Token
	Parameters []*Parameter
	ReturnType typesystem.Type
	Body       *BlockStatement
}

func (fl *FunctionLiteral) expressionNode()       {}
func (fl *FunctionLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token { return fl.Token }

// SpawnExpression: &f(args), private &g(). The enclosed expression must be a
// direct call. TaskID is assigned by the concurrency analyzer on success and
// names the task's C-side struct downstream.
type SpawnExpression struct {
	typed
	Token    token.Token // The '&' token
	Modifier Modifier
	Call     Expression
	TaskID   uuid.UUID
}

func (se *SpawnExpression) expressionNode()       {}
func (se *SpawnExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SpawnExpression) GetToken() token.Token { return se.Token }

// SyncExpression: h! or {h1, h2}!. Handle is an Identifier or an
// ArrayLiteral of identifiers.
type SyncExpression struct {
	typed
	Token  token.Token // The '!' token
	Handle Expression
}

func (se *SyncExpression) expressionNode()       {}
func (se *SyncExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SyncExpression) GetToken() token.Token { return se.Token }
