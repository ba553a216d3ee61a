package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all types in our system.
// Types form a tree; sharing by structural equality is always legal.
type Type interface {
	String() string
	typeNode()
}

// PrimitiveKind enumerates the built-in scalar kinds.
type PrimitiveKind int

const (
	KindInt PrimitiveKind = iota
	KindLong
	KindDouble
	KindFloat
	KindChar
	KindByte
	KindBool
	KindString
	KindVoid
	KindNil
	KindAny
)

var primitiveNames = map[PrimitiveKind]string{
	KindInt:    "int",
	KindLong:   "long",
	KindDouble: "double",
	KindFloat:  "float",
	KindChar:   "char",
	KindByte:   "byte",
	KindBool:   "bool",
	KindString: "string",
	KindVoid:   "void",
	KindNil:    "nil",
	KindAny:    "any",
}

// Primitive is a scalar type. Instances are interned by kind; always use the
// package-level singletons instead of constructing new values.
type Primitive struct {
	K PrimitiveKind
}

func (p *Primitive) typeNode() {}
func (p *Primitive) String() string {
	return primitiveNames[p.K]
}

// Interned primitives.
var (
	Int    = &Primitive{K: KindInt}
	Long   = &Primitive{K: KindLong}
	Double = &Primitive{K: KindDouble}
	Float  = &Primitive{K: KindFloat}
	Char   = &Primitive{K: KindChar}
	Byte   = &Primitive{K: KindByte}
	Bool   = &Primitive{K: KindBool}
	String = &Primitive{K: KindString}
	Void   = &Primitive{K: KindVoid}
	Nil    = &Primitive{K: KindNil}
	Any    = &Primitive{K: KindAny}
)

// Array is a homogeneous, dynamically sized array type.
// Elem is never nil except transiently for an empty literal.
type Array struct {
	Elem Type
}

func (a *Array) typeNode() {}
func (a *Array) String() string {
	if a.Elem == nil {
		return "[]"
	}
	return a.Elem.String() + "[]"
}

// NewArray returns an array type over elem.
func NewArray(elem Type) *Array {
	return &Array{Elem: elem}
}

// MemQual is the per-parameter / per-declaration memory qualifier.
type MemQual int

const (
	QualDefault MemQual = iota
	QualVal             // as_val: force by-value
	QualRef             // as_ref: force by-reference
)

func (q MemQual) String() string {
	switch q {
	case QualVal:
		return "as_val"
	case QualRef:
		return "as_ref"
	default:
		return ""
	}
}

// Func is a function type. len(Params) == len(Quals) always; for variadic
// functions the fixed parameters come first and extras are unconstrained
// beyond variadic compatibility.
type Func struct {
	Params   []Type
	Quals    []MemQual
	Return   Type
	Variadic bool
}

func (f *Func) typeNode() {}
func (f *Func) String() string {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	if f.Variadic {
		params = append(params, "...")
	}
	ret := "void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), ret)
}

// NewFunc builds a function type with default qualifiers on every parameter.
func NewFunc(ret Type, params ...Type) *Func {
	return &Func{
		Params: params,
		Quals:  make([]MemQual, len(params)),
		Return: ret,
	}
}

// NewVariadicFunc builds a variadic function type with default qualifiers.
func NewVariadicFunc(ret Type, fixed ...Type) *Func {
	f := NewFunc(ret, fixed...)
	f.Variadic = true
	return f
}

// Opaque is a payload-carrying foreign type used by native declarations.
type Opaque struct {
	Name string
}

func (o *Opaque) typeNode() {}
func (o *Opaque) String() string {
	if o.Name == "" {
		return "opaque"
	}
	return "opaque<" + o.Name + ">"
}

// ClassKind enumerates the built-in nominal classes. Each has a fixed method
// table owned by the analyzer.
type ClassKind int

const (
	ClassTextFile ClassKind = iota
	ClassBinaryFile
	ClassTime
	ClassDate
	ClassProcess
	ClassTcpListener
	ClassTcpStream
	ClassUdpSocket
	ClassRandom
	ClassUuid
)

var classNames = map[ClassKind]string{
	ClassTextFile:    "TextFile",
	ClassBinaryFile:  "BinaryFile",
	ClassTime:        "Time",
	ClassDate:        "Date",
	ClassProcess:     "Process",
	ClassTcpListener: "TcpListener",
	ClassTcpStream:   "TcpStream",
	ClassUdpSocket:   "UdpSocket",
	ClassRandom:      "Random",
	ClassUuid:        "UUID",
}

// Class is a built-in nominal class type. Interned by kind.
type Class struct {
	K ClassKind
}

func (c *Class) typeNode() {}
func (c *Class) String() string {
	return classNames[c.K]
}

// Interned classes.
var (
	TextFile    = &Class{K: ClassTextFile}
	BinaryFile  = &Class{K: ClassBinaryFile}
	Time        = &Class{K: ClassTime}
	Date        = &Class{K: ClassDate}
	Process     = &Class{K: ClassProcess}
	TcpListener = &Class{K: ClassTcpListener}
	TcpStream   = &Class{K: ClassTcpStream}
	UdpSocket   = &Class{K: ClassUdpSocket}
	Random      = &Class{K: ClassRandom}
	Uuid        = &Class{K: ClassUuid}
)

// ClassByName resolves a nominal class by its source-language name.
func ClassByName(name string) (*Class, bool) {
	for _, cls := range []*Class{TextFile, BinaryFile, Time, Date, Process, TcpListener, TcpStream, UdpSocket, Random, Uuid} {
		if classNames[cls.K] == name {
			return cls, true
		}
	}
	return nil, false
}

// Equal reports structural equality: identical variant, identical payload,
// recursively for arrays and functions.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case *Primitive:
		bt, ok := b.(*Primitive)
		return ok && at.K == bt.K
	case *Array:
		bt, ok := b.(*Array)
		return ok && Equal(at.Elem, bt.Elem)
	case *Func:
		bt, ok := b.(*Func)
		if !ok || at.Variadic != bt.Variadic || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !Equal(at.Params[i], bt.Params[i]) {
				return false
			}
			if at.Quals[i] != bt.Quals[i] {
				return false
			}
		}
		return Equal(at.Return, bt.Return)
	case *Opaque:
		bt, ok := b.(*Opaque)
		return ok && at.Name == bt.Name
	case *Class:
		bt, ok := b.(*Class)
		return ok && at.K == bt.K
	default:
		return false
	}
}

// IsKind reports whether t is the primitive of the given kind.
func IsKind(t Type, k PrimitiveKind) bool {
	p, ok := t.(*Primitive)
	return ok && p.K == k
}
