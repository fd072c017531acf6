package parser

import (
	"slices"

	"tolkfmt/internal/ast"
	"tolkfmt/internal/diag"
	"tolkfmt/internal/lexer"
	"tolkfmt/internal/source"
	"tolkfmt/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

// Parser: состояние парсера на один файл. Токены лексятся заранее целиком,
// чтобы спекулятивные проверки (generics, object literal) смотрели вперёд без отката лексера.
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	b        *ast.Builder
	opts     Options
	comments []source.Span
	lexErr   bool
}

// bailout прерывает разбор на первой синтаксической ошибке.
type bailout struct{}

// Parse builds the concrete syntax tree of file. It returns nil when the
// source has a lexical or syntax error; details go to opts.Reporter.
func Parse(file *source.File, opts Options) (tree *ast.Tree) {
	p := &Parser{
		file: file,
		b:    ast.NewBuilder(file, uint(len(file.Content)/2)),
		opts: opts,
	}
	lx := lexer.New(file, lexer.Options{Reporter: lexReporter{p: p, next: opts.Reporter}})
	p.toks = lx.All()
	if p.lexErr {
		return nil
	}
	for _, tok := range p.toks {
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				p.comments = append(p.comments, tr.Span)
			}
		}
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			tree = nil
		}
	}()

	root := p.parseSourceFile()
	p.b.InsertComments(root, p.comments)
	return p.b.Finish(root)
}

// ParseFile parses file collecting diagnostics into a fresh bag. The tree is
// nil when the bag holds an error.
func ParseFile(file *source.File) (*ast.Tree, *diag.Bag) {
	bag := diag.NewBag(maxDiagnostics)
	tree := Parse(file, Options{Reporter: diag.BagReporter{Bag: bag}})
	return tree, bag
}

// maxDiagnostics: разбор всё равно останавливается на первой ошибке.
const maxDiagnostics = 16

// lexReporter помечает парсер ошибочным и пробрасывает диагностику дальше.
type lexReporter struct {
	p    *Parser
	next diag.Reporter
}

func (r lexReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if sev == diag.SevError {
		r.p.lexErr = true
	}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

func (p *Parser) parseSourceFile() ast.NodeID {
	var children []ast.Child
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			children = p.appendToken(children)
			continue
		}
		children = append(children, ast.C(p.parseTopLevel()))
	}
	return p.b.Node("source_file", children...)
}

// ===== Работа с токенами =====

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

// peekN возвращает токен на n позиций вперёд; за концом: EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOneOf(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atWord проверяет контекстное слово (get, asm, builtin, ...).
func (p *Parser) atWord(word string) bool {
	return p.peek().IsContextual(word)
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

// token съедает текущий токен как анонимный узел.
func (p *Parser) token() ast.NodeID {
	tok := p.advance()
	return p.b.Leaf(tok.Text, false, tok.Span)
}

// named съедает текущий токен как именованный лист типа typ.
func (p *Parser) named(typ string) ast.NodeID {
	tok := p.advance()
	return p.b.Leaf(typ, true, tok.Span)
}

func (p *Parser) appendToken(children []ast.Child) []ast.Child {
	return append(children, ast.C(p.token()))
}

// expect: ожидаем конкретный токен и возвращаем его анонимным узлом.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) ast.NodeID {
	if !p.at(k) {
		p.fail(code, msg)
	}
	return p.token()
}

// expectIdent accepts an identifier and returns it as an "identifier" leaf.
func (p *Parser) expectIdent(what string) ast.NodeID {
	if !p.at(token.Ident) {
		p.fail(diag.SynExpectIdentifier, "expected "+what)
	}
	return p.named("identifier")
}

// expectWord accepts an identifier or a keyword used as a name.
func (p *Parser) expectWord(what string) ast.NodeID {
	if !p.peek().IsWord() {
		p.fail(diag.SynExpectIdentifier, "expected "+what)
	}
	return p.named("identifier")
}

func (p *Parser) fail(code diag.Code, msg string) {
	tok := p.peek()
	got := tok.Text
	if tok.Kind == token.EOF {
		got = tok.Kind.String()
	}
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, tok.Span, msg+", got \""+got+"\"").Emit()
	}
	panic(bailout{})
}

// splitShr разбивает ">>" на два ">" для закрытия вложенных generic-списков.
func (p *Parser) splitShr() {
	tok := p.peek()
	if tok.Kind != token.Shr {
		return
	}
	first := token.Token{Kind: token.Gt, Text: ">", Leading: tok.Leading,
		Span: source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + 1}}
	second := token.Token{Kind: token.Gt, Text: ">",
		Span: source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End}}
	p.toks[p.pos] = first
	p.toks = slices.Insert(p.toks, p.pos+1, second)
}
