// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

// Type identifies the lexical class of a Token.
type Type string

const (
	TypeIdent      Type = "Ident"
	TypeResLoc     Type = "ResLoc"
	TypeInt        Type = "Int"
	TypeFloat      Type = "Float"
	TypeTypedNum   Type = "TypedNum"
	TypeString     Type = "String"
	TypeDocComment Type = "DocComment"
	TypePunct      Type = "Punct"
	TypeEOF        Type = "EOF"
)

// Punctuation values. Multi-character punctuation is always lexed by
// longest match (see Lexer.scanPunct).
const (
	PathSep      = "::"
	RangeClosed  = ".."
	RangeOpenHi  = "..<"
	RangeOpenLo  = "<.."
	RangeOpen    = "<..<"
	Question     = "?"
	At           = "@"
	Hash         = "#"
	Ellipsis     = "..."
	Assign       = "="
	Pipe         = "|"
	Comma        = ","
	Colon        = ":"
	BraceOpen    = "{"
	BraceClose   = "}"
	ParenOpen    = "("
	ParenClose   = ")"
	BracketOpen  = "["
	BracketClose = "]"
	AngleOpen    = "<"
	AngleClose   = ">"
	Percent      = "%"
)

// allPunct lists every token before any shorter token that is a prefix of
// it, so the lexer can do a simple linear longest-match scan.
var allPunct = []string{
	Ellipsis, RangeOpen, RangeOpenLo, RangeOpenHi, PathSep, RangeClosed,
	Question, At, Hash, Assign, Pipe, Comma, Colon,
	BraceOpen, BraceClose, ParenOpen, ParenClose, BracketOpen, BracketClose,
	AngleOpen, AngleClose, Percent,
}

// reservedWords may not be used as plain identifiers for declarations; the
// parser fails with a parse error when one appears where a declaration name
// is expected. symtab.LoadDir reports every parse error under the
// unknown-path code; no reserved-word-as-identifier diagnostic is produced.
var reservedWords = map[string]bool{
	"struct": true, "enum": true, "type": true, "use": true, "super": true,
	"dispatch": true, "inject": true, "as": true,
	"any": true, "unsafe": true, "boolean": true,
	"byte": true, "short": true, "int": true, "long": true, "float": true, "double": true,
	"string": true,
	"true":   true, "false": true,
}

// IsReserved reports whether ident is a reserved word.
func IsReserved(ident string) bool {
	return reservedWords[ident]
}

// Token is the interface implemented by every concrete token type.
type Token interface {
	Node
	TokenType() Type
}

// Ident is a plain identifier: a letter or '_' followed by letters, digits
// or '_' (Unicode letters and digits included).
type Ident struct {
	Position
	Value string
}

func (t *Ident) TokenType() Type { return TypeIdent }

// ResLoc is a resource location, namespace:path/with/segments. The presence
// of an interior ':' is what distinguishes it from an Ident.
type ResLoc struct {
	Position
	Namespace string
	Path      string
}

func (t *ResLoc) TokenType() Type { return TypeResLoc }

func (t *ResLoc) String() string {
	return t.Namespace + ":" + t.Path
}

// Int is an integer literal with no fractional part or suffix.
type Int struct {
	Position
	Value int64
}

func (t *Int) TokenType() Type { return TypeInt }

// Float is a floating point literal (has a '.' or an exponent) with no type
// suffix; a literal with a suffix is a TypedNum.
type Float struct {
	Position
	Value float64
}

func (t *Float) TokenType() Type { return TypeFloat }

// NumSuffix identifies the single-letter numeric type suffix attached to a
// TypedNum, case-insensitively.
type NumSuffix byte

const (
	SuffixByte   NumSuffix = 'b'
	SuffixShort  NumSuffix = 's'
	SuffixLong   NumSuffix = 'l'
	SuffixFloat  NumSuffix = 'f'
	SuffixDouble NumSuffix = 'd'
)

// TypedNum is a numeric literal immediately followed by a type suffix
// letter, e.g. "10b", "3.5f", "9001L".
type TypedNum struct {
	Position
	IsFloat bool
	IntVal  int64
	FltVal  float64
	Suffix  NumSuffix
}

func (t *TypedNum) TokenType() Type { return TypeTypedNum }

// String is a quoted string literal with escapes already resolved.
type String struct {
	Position
	Value string
}

func (t *String) TokenType() Type { return TypeString }

// DocComment is one "///" line, with the leading "///" and at most one
// following space stripped.
type DocComment struct {
	Position
	Value string
}

func (t *DocComment) TokenType() Type { return TypeDocComment }

// Punct is one of the fixed punctuation tokens (see the punctuation string
// constants and allPunct above).
type Punct struct {
	Position
	Value string
}

func (t *Punct) TokenType() Type { return TypePunct }
