// Package lexer tokenizes the script subset's source text, including
// Python's significant-whitespace rules (INDENT/DEDENT tracking,
// implicit line joining inside brackets). The teacher interpreter's
// lexer is a flat token stream with no indentation sensitivity at all;
// this package keeps its general shape (a Lexer that produces a
// Token slice up front, position-tagged) but adds the indent stack the
// source language actually needs.
package lexer

import "github.com/mwildehahn/monty/internal/errors"

type TokenKind int

const (
	EOF TokenKind = iota
	NEWLINE
	INDENT
	DEDENT
	NAME
	NUMBER
	STRING
	BYTES

	// Keywords
	KwAnd
	KwOr
	KwNot
	KwIn
	KwIs
	KwIf
	KwElif
	KwElse
	KwWhile
	KwFor
	KwDef
	KwReturn
	KwBreak
	KwContinue
	KwPass
	KwTrue
	KwFalse
	KwNone
	KwLambda
	KwTry
	KwExcept
	KwFinally
	KwRaise
	KwWith
	KwAs
	KwGlobal
	KwNonlocal
	KwAssert
	KwDel
	KwFrom
	KwImport
	KwYield
	KwClass

	// Operators/punctuation
	Plus
	Minus
	Star
	DoubleStar
	Slash
	DoubleSlash
	Percent
	At
	Amp
	Pipe
	Caret
	Tilde
	LShift
	RShift
	Lt
	Gt
	LtEq
	GtEq
	EqEq
	NotEq
	Assign
	PlusEq
	MinusEq
	StarEq
	SlashEq
	DoubleSlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	LShiftEq
	RShiftEq
	DoubleStarEq
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Colon
	Dot
	Semicolon
	Arrow
	Ellipsis
)

var keywords = map[string]TokenKind{
	"and": KwAnd, "or": KwOr, "not": KwNot, "in": KwIn, "is": KwIs,
	"if": KwIf, "elif": KwElif, "else": KwElse, "while": KwWhile, "for": KwFor,
	"def": KwDef, "return": KwReturn, "break": KwBreak, "continue": KwContinue,
	"pass": KwPass, "True": KwTrue, "False": KwFalse, "None": KwNone,
	"lambda": KwLambda, "try": KwTry, "except": KwExcept, "finally": KwFinally,
	"raise": KwRaise, "with": KwWith, "as": KwAs, "global": KwGlobal,
	"nonlocal": KwNonlocal, "assert": KwAssert, "del": KwDel, "from": KwFrom,
	"import": KwImport, "yield": KwYield, "class": KwClass,
}

// Token is one lexical unit with its source position.
type Token struct {
	Kind  TokenKind
	Text  string
	Pos   errors.Position
}
