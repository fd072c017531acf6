package token

var keywords = map[string]Kind{
	"fun":      KwFun,
	"import":   KwImport,
	"global":   KwGlobal,
	"const":    KwConst,
	"type":     KwType,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"var":      KwVar,
	"val":      KwVal,
	"return":   KwReturn,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"do":       KwDo,
	"repeat":   KwRepeat,
	"break":    KwBreak,
	"continue": KwContinue,
	"throw":    KwThrow,
	"assert":   KwAssert,
	"try":      KwTry,
	"catch":    KwCatch,
	"match":    KwMatch,
	"as":       KwAs,
	"is":       KwIs,
	"lazy":     KwLazy,
	"mutate":   KwMutate,
	"true":     KwTrue,
	"false":    KwFalse,
	"null":     KwNull,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
// Контекстные слова (get, asm, builtin, redef, private, readonly, tolk) остаются Ident.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
