package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token, including backtick-quoted names.
	Ident
	// KwFun represents the 'fun' keyword.
	KwFun // fun
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwGlobal represents the 'global' keyword.
	KwGlobal // global
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwType represents the 'type' keyword.
	KwType // type
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwVal represents the 'val' keyword.
	KwVal // val
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwRepeat represents the 'repeat' keyword.
	KwRepeat // repeat
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwThrow represents the 'throw' keyword.
	KwThrow // throw
	// KwAssert represents the 'assert' keyword.
	KwAssert // assert
	// KwTry represents the 'try' keyword.
	KwTry // try
	// KwCatch represents the 'catch' keyword.
	KwCatch // catch
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwIs represents the 'is' keyword.
	KwIs // is
	// KwLazy represents the 'lazy' keyword.
	KwLazy // lazy
	// KwMutate represents the 'mutate' keyword.
	KwMutate // mutate
	// KwTrue represents the 'true' literal.
	KwTrue // true
	// KwFalse represents the 'false' literal.
	KwFalse // false
	// KwNull represents the 'null' literal.
	KwNull // null

	// IntLit represents a decimal, hex or binary number literal.
	IntLit
	// StringLit represents a single-line or triple-quoted string literal.
	StringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// TildeSlash represents the rounding division operator token.
	TildeSlash // ~/
	// CaretSlash represents the ceiling division operator token.
	CaretSlash // ^/
	// Tilde represents the bitwise not operator token.
	Tilde // ~
	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// CaretAssign represents the caret assign operator token.
	CaretAssign // ^=
	// ShlAssign represents the shift left assign operator token.
	ShlAssign // <<=
	// ShrAssign represents the shift right assign operator token.
	ShrAssign // >>=
	// EqEq represents the equality operator token.
	EqEq // ==
	// Bang represents the bang operator token.
	Bang // !
	// BangEq represents the inequality operator token.
	BangEq // !=
	// NotIs represents the negated type test operator token.
	NotIs // !is
	// Lt represents the less than operator token.
	Lt // <
	// LtEq represents the less or equal operator token.
	LtEq // <=
	// Gt represents the greater than operator token.
	Gt // >
	// GtEq represents the greater or equal operator token.
	GtEq // >=
	// Spaceship represents the three-way comparison operator token.
	Spaceship // <=>
	// Shl represents the shift left operator token.
	Shl // <<
	// Shr represents the shift right operator token.
	Shr // >>
	// TildeShr represents the rounding shift right operator token.
	TildeShr // ~>>
	// CaretShr represents the ceiling shift right operator token.
	CaretShr // ^>>
	// Amp represents the amp operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// Caret represents the caret operator token.
	Caret // ^
	// AndAnd represents the logical and operator token.
	AndAnd // &&
	// OrOr represents the logical or operator token.
	OrOr // ||
	// Question represents the question operator token.
	Question // ?
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .
	// Arrow represents the arrow token.
	Arrow // ->
	// FatArrow represents the fat arrow token.
	FatArrow // =>
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// At represents the annotation marker token.
	At // @
	// Underscore represents the placeholder token.
	Underscore // _
)

var kindNames = [...]string{
	Invalid: "invalid", EOF: "end of file", Ident: "identifier",
	KwFun: "fun", KwImport: "import", KwGlobal: "global", KwConst: "const", KwType: "type",
	KwStruct: "struct", KwEnum: "enum", KwVar: "var", KwVal: "val", KwReturn: "return",
	KwIf: "if", KwElse: "else", KwWhile: "while", KwDo: "do", KwRepeat: "repeat",
	KwBreak: "break", KwContinue: "continue", KwThrow: "throw", KwAssert: "assert",
	KwTry: "try", KwCatch: "catch", KwMatch: "match", KwAs: "as", KwIs: "is",
	KwLazy: "lazy", KwMutate: "mutate", KwTrue: "true", KwFalse: "false", KwNull: "null",
	IntLit: "number", StringLit: "string",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", TildeSlash: "~/", CaretSlash: "^/",
	Tilde: "~", Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=", ShlAssign: "<<=",
	ShrAssign: ">>=", EqEq: "==", Bang: "!", BangEq: "!=", NotIs: "!is", Lt: "<", LtEq: "<=",
	Gt: ">", GtEq: ">=", Spaceship: "<=>", Shl: "<<", Shr: ">>", TildeShr: "~>>", CaretShr: "^>>",
	Amp: "&", Pipe: "|", Caret: "^", AndAnd: "&&", OrOr: "||", Question: "?", Colon: ":",
	Semicolon: ";", Comma: ",", Dot: ".", Arrow: "->", FatArrow: "=>", LParen: "(", RParen: ")",
	LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]", At: "@", Underscore: "_",
}

// String returns the source spelling for punctuation and keywords, or a category name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
