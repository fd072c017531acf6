package format

import (
	"slices"
	"strings"

	"tolkfmt/internal/ast"
	"tolkfmt/internal/comments"
	"tolkfmt/internal/doc"
	"tolkfmt/internal/source"
)

// handler prints one node type. nil means the node has an unexpected shape;
// the caller prints nothing in its place.
type handler func(p *printer, n *ast.Node) *doc.Doc

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		// declarations
		"source_file":              (*printer).printSourceFile,
		"import_directive":         (*printer).printImportDirective,
		"tolk_required_version":    (*printer).printRequiredVersion,
		"version_value":            (*printer).printVersionValue,
		"global_var_declaration":   (*printer).printGlobalVar,
		"constant_declaration":     (*printer).printConstant,
		"type_alias_declaration":   (*printer).printTypeAlias,
		"struct_declaration":       (*printer).printStruct,
		"struct_body":              (*printer).printStructBody,
		"struct_field_declaration": (*printer).printStructField,
		"enum_declaration":         (*printer).printEnum,
		"enum_body":                (*printer).printEnumBody,
		"enum_member_declaration":  (*printer).printEnumMember,
		"function_declaration":     (*printer).printFunction,
		"method_declaration":       (*printer).printFunction,
		"get_method_declaration":   (*printer).printFunction,
		"method_receiver":          (*printer).printMethodReceiver,
		"parameter_list":           (*printer).printParameterList,
		"parameter_declaration":    (*printer).printParameter,
		"type_parameters":          (*printer).printTypeParameters,
		"type_parameter":           (*printer).printTypeParameter,
		"annotation_list":          (*printer).printAnnotationList,
		"annotation":               (*printer).printAnnotation,
		"annotation_arguments":     (*printer).printAnnotationArguments,
		"asm_body":                 (*printer).printAsmBody,
		"builtin_specifier":        (*printer).printLeaf,

		// types
		"type_identifier":     (*printer).printLeaf,
		"union_type":          (*printer).printUnionType,
		"nullable_type":       (*printer).printNullableType,
		"parenthesized_type":  (*printer).printParenthesizedType,
		"tensor_type":         (*printer).printTensorType,
		"tuple_type":          (*printer).printTupleType,
		"fun_callable_type":   (*printer).printFunCallableType,
		"type_instantiatedTs": (*printer).printTypeInstantiatedTs,
		"instantiationT_list": (*printer).printInstantiationList,

		// expressions
		"identifier":               (*printer).printLeaf,
		"number_literal":           (*printer).printLeaf,
		"string_literal":           (*printer).printLeaf,
		"boolean_literal":          (*printer).printLeaf,
		"null_literal":             (*printer).printLeaf,
		"underscore":               (*printer).printLeaf,
		"numeric_index":            (*printer).printLeaf,
		"binary_operator":          (*printer).printBinary,
		"unary_operator":           (*printer).printUnary,
		"assignment":               (*printer).printAssignment,
		"set_assignment":           (*printer).printSetAssignment,
		"ternary_operator":         (*printer).printTernary,
		"dot_access":               (*printer).printDotAccess,
		"function_call":            (*printer).printFunctionCall,
		"argument_list":            (*printer).printArgumentList,
		"call_argument":            (*printer).printCallArgument,
		"parenthesized_expression": (*printer).printParenthesizedExpr,
		"tensor_expression":        (*printer).printTensorExpr,
		"typed_tuple":              (*printer).printTypedTuple,
		"cast_as_operator":         (*printer).printCastAs,
		"is_type_operator":         (*printer).printIsType,
		"not_null_operator":        (*printer).printNotNull,
		"lazy_expression":          (*printer).printLazy,
		"object_literal":           (*printer).printObjectLiteral,
		"object_literal_body":      (*printer).printObjectLiteralBody,
		"generic_instantiation":    (*printer).printGenericInstantiation,
		"match_expression":         (*printer).printMatchExpression,
		"match_body":               (*printer).printMatchBody,
		"match_arm":                (*printer).printMatchArm,

		// statements
		"block_statement":         (*printer).printBlock,
		"expression_statement":    (*printer).printExpressionStatement,
		"return_statement":        (*printer).printReturn,
		"break_statement":         (*printer).printKeywordStatement,
		"continue_statement":      (*printer).printKeywordStatement,
		"throw_statement":         (*printer).printThrow,
		"if_statement":            (*printer).printIf,
		"while_statement":         (*printer).printWhile,
		"do_while_statement":      (*printer).printDoWhile,
		"repeat_statement":        (*printer).printRepeat,
		"local_vars_declaration":  (*printer).printLocalVars,
		"var_declaration":         (*printer).printVarDeclaration,
		"tuple_vars_declaration":  (*printer).printTupleVars,
		"tensor_vars_declaration": (*printer).printTensorVars,
		"empty_statement":         (*printer).printEmptyStatement,
		"assert_statement":        (*printer).printAssert,
		"try_catch_statement":     (*printer).printTryCatch,
		"catch_clause":            (*printer).printCatchClause,
		"match_statement":         (*printer).printMatchStatement,
	}
}

// ignoreDirective is the line comment that keeps the next node as written.
const ignoreDirective = "fmt-ignore"

type printer struct {
	file        *source.File
	comments    *comments.Map
	rng         *pointRange
	sortImports bool
	// carry holds line comments moved past a '{' by carryInto; the body
	// printed next takes them.
	carry []comments.Comment
}

// print dispatches n to its handler. Nodes outside the requested range and
// nodes marked with the ignore directive come out verbatim.
func (p *printer) print(n *ast.Node) *doc.Doc {
	if n == nil {
		return nil
	}
	if n.Type != "source_file" {
		if p.rng != nil && !p.rng.intersects(n.StartPoint, n.EndPoint) {
			return p.verbatim(n)
		}
		if hasIgnoreDirective(p.comments.Leading(n)) {
			return p.verbatim(n)
		}
	}
	h, ok := handlers[n.Type]
	if !ok {
		return nil
	}
	d := h(p, n)

	// Комментарии, которые обработчик не забрал, печатаются по краям узла.
	if lead := p.comments.TakeLeading(n); len(lead) > 0 {
		d = doc.Concat(formatLeading(lead), d)
	}
	if dangling := p.comments.TakeDangling(n); len(dangling) > 0 {
		d = doc.Concat(d, trailingDoc(dangling))
	}
	if trail := p.comments.TakeTrailing(n); len(trail) > 0 {
		d = doc.Concat(d, trailingDoc(trail))
	}
	return d
}

// printLeaf prints a token-like node as written, with its inline leading comments.
func (p *printer) printLeaf(n *ast.Node) *doc.Doc {
	return doc.Concat(formatLeading(p.comments.TakeLeading(n)), doc.Text(n.Text()), p.trailing(n))
}

// printStatement prints a member of a block-like container: leading comments
// on their own lines, then the node.
func (p *printer) printStatement(n *ast.Node) *doc.Doc {
	if hasIgnoreDirective(p.comments.Leading(n)) {
		return p.verbatim(n)
	}
	if p.rng != nil && !p.rng.intersects(n.StartPoint, n.EndPoint) {
		return p.verbatim(n)
	}
	return doc.Concat(leadingLines(p.comments.TakeLeading(n)), p.print(n))
}

// verbatim emits the original text of n with the comments bound to its
// subtree. Comments inside n are already part of the text.
func (p *printer) verbatim(n *ast.Node) *doc.Doc {
	var lead, trail []*doc.Doc
	for _, c := range p.comments.TakeAll(n) {
		switch {
		case c.End <= n.Start():
			lead = append(lead, doc.Text(c.Text), doc.HardLine())
		case c.Start >= n.End():
			trail = append(trail, trailingComment(c))
		}
	}
	text := n.Text()
	if needsSemicolon(n) {
		text += ";"
	}
	return doc.Concat(doc.Concat(lead...), doc.Text(text), doc.Concat(trail...))
}

// needsSemicolon reports whether the ';' terminating n belongs to the
// enclosing block rather than to n itself.
func needsSemicolon(n *ast.Node) bool {
	switch n.Type {
	case "local_vars_declaration":
		return !parentIs(n, "match_expression")
	case "return_statement", "break_statement", "continue_statement", "throw_statement":
		return !parentIs(n, "match_arm")
	case "do_while_statement", "assert_statement", "expression_statement":
		return true
	}
	return false
}

func parentIs(n *ast.Node, typ string) bool {
	parent := n.Parent()
	return parent != nil && parent.Type == typ
}

func hasIgnoreDirective(leading []comments.Comment) bool {
	for _, c := range leading {
		if isIgnoreDirective(c.Text) {
			return true
		}
	}
	return false
}

func isIgnoreDirective(text string) bool {
	body, ok := strings.CutPrefix(text, "//")
	return ok && strings.TrimSpace(body) == ignoreDirective
}

// ===== comments =====

// trailing takes the trailing comments of n and renders them after it.
func (p *printer) trailing(n *ast.Node) *doc.Doc {
	return trailingDoc(p.comments.TakeTrailing(n))
}

func trailingDoc(cs []comments.Comment) *doc.Doc {
	if len(cs) == 0 {
		return nil
	}
	parts := make([]*doc.Doc, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, trailingComment(c))
	}
	return doc.Concat(parts...)
}

// trailingComment renders a comment after code on the same line. A line
// comment waits for the next line break so nothing is printed after it,
// and its group is forced to break.
func trailingComment(c comments.Comment) *doc.Doc {
	if isLineComment(c.Text) {
		return doc.Concat(doc.BreakParent(), doc.LineSuffix(doc.Text(" "+c.Text)))
	}
	return doc.Text(" " + c.Text)
}

// splitTrailing takes the trailing comments of n before n is printed. Block
// comments come back rendered; line comments are returned for carryInto.
func (p *printer) splitTrailing(n *ast.Node) (*doc.Doc, []comments.Comment) {
	var inline []*doc.Doc
	var carried []comments.Comment
	for _, c := range p.comments.TakeTrailing(n) {
		if isLineComment(c.Text) {
			carried = append(carried, c)
		} else {
			inline = append(inline, trailingComment(c))
		}
	}
	return doc.Concat(inline...), carried
}

// carryInto prints sep and next. Line comments that followed the code before
// next move to the first line of the body next opens. A node that opens no
// body, or comes out verbatim, starts on a new line after them instead.
func (p *printer) carryInto(carried []comments.Comment, sep string, next *ast.Node) *doc.Doc {
	if len(carried) == 0 {
		return doc.Concat(doc.Text(sep), p.print(next))
	}
	switch next.Type {
	case "block_statement", "catch_clause", "struct_body", "enum_body":
		p.carry = carried
		d := p.print(next)
		if p.carry == nil {
			return doc.Concat(doc.Text(sep), d)
		}
		p.carry = nil
		return doc.Concat(trailingDoc(carried), doc.HardLine(), doc.Text(strings.TrimLeft(sep, " ")), d)
	}
	return doc.Concat(trailingDoc(carried), doc.HardLine(), doc.Text(strings.TrimLeft(sep, " ")), p.print(next))
}

func (p *printer) takeCarry() []comments.Comment {
	c := p.carry
	p.carry = nil
	return c
}

// leadingLines puts every comment on its own line.
func leadingLines(cs []comments.Comment) *doc.Doc {
	if len(cs) == 0 {
		return nil
	}
	parts := make([]*doc.Doc, 0, 2*len(cs))
	for _, c := range cs {
		parts = append(parts, doc.Text(c.Text), doc.HardLine())
	}
	return doc.Concat(parts...)
}

// formatLeading keeps a single block comment inline: `/* x */ value`.
func formatLeading(cs []comments.Comment) *doc.Doc {
	if len(cs) == 1 && !isLineComment(cs[0].Text) {
		return doc.Text(cs[0].Text + " ")
	}
	return leadingLines(cs)
}

// formatDangling prints comments one per line without a final break.
func formatDangling(cs []comments.Comment) *doc.Doc {
	if len(cs) == 0 {
		return nil
	}
	parts := make([]*doc.Doc, 0, 2*len(cs))
	for i, c := range cs {
		if i > 0 {
			parts = append(parts, doc.HardLine())
		}
		parts = append(parts, doc.Text(c.Text))
	}
	return doc.Concat(parts...)
}

func isLineComment(text string) bool {
	return strings.HasPrefix(text, "//")
}

// blankLinesBetween counts empty source lines between siblings a and b,
// measured from a's last trailing comment to b's first leading comment.
// It must run before either node is printed.
func (p *printer) blankLinesBetween(a, b *ast.Node) int {
	endRow := int(a.EndPoint.Row)
	if tr := p.comments.Trailing(a); len(tr) > 0 {
		endRow = tr[len(tr)-1].EndRow
	}
	startRow := int(b.StartPoint.Row)
	if ld := p.comments.Leading(b); len(ld) > 0 {
		startRow = ld[0].StartRow
	}
	return max(startRow-endRow-1, 0)
}

// gaps precomputes blankLinesBetween for consecutive members.
func (p *printer) gaps(members []*ast.Node) []int {
	if len(members) < 2 {
		return nil
	}
	out := make([]int, len(members)-1)
	for i := range out {
		out[i] = p.blankLinesBetween(members[i], members[i+1])
	}
	return out
}

// ===== children =====

// childrenOfType returns direct children of the given type.
func childrenOfType(n *ast.Node, typ string) []*ast.Node {
	var out []*ast.Node
	for _, c := range n.NamedChildren() {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// codeChildren returns named children that are not comments.
func codeChildren(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, c := range n.NamedChildren() {
		if !c.IsComment() {
			out = append(out, c)
		}
	}
	return out
}

func (p *printer) printAll(nodes []*ast.Node) []*doc.Doc {
	out := make([]*doc.Doc, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, p.print(n))
	}
	return out
}

// delimitedList lays out a bracketed list: empty and single lists stay
// inline, longer ones become a group that breaks one element per line.
func delimitedList(open, sep, closing string, parts []*doc.Doc, trailingComma bool, tail *doc.Doc) *doc.Doc {
	switch len(parts) {
	case 0:
		return doc.Concat(doc.Text(open+closing), tail)
	case 1:
		return doc.Concat(doc.Text(open), parts[0], doc.Text(closing), tail)
	}
	body := make([]*doc.Doc, 0, 3*len(parts))
	body = append(body, doc.SoftLine())
	for i, part := range parts {
		if i > 0 {
			body = append(body, doc.Text(sep), doc.Line())
		}
		body = append(body, part)
	}
	var comma *doc.Doc
	if trailingComma {
		comma = doc.IfBreak(doc.Text(sep), nil)
	}
	return doc.Concat(doc.Group(doc.Text(open), doc.Indent(body...), comma, doc.SoftLine(), doc.Text(closing)), tail)
}

// list is delimitedList for node n. Comments left inside an empty list stay
// between its brackets: block comments inline, line comments one per line.
func (p *printer) list(n *ast.Node, open, sep, closing string, parts []*doc.Doc, trailingComma bool, tail *doc.Doc) *doc.Doc {
	cs := p.comments.TakeDangling(n)
	switch {
	case len(cs) == 0:
		return delimitedList(open, sep, closing, parts, trailingComma, tail)
	case len(parts) > 0:
		return delimitedList(open, sep, closing, parts, trailingComma, doc.Concat(trailingDoc(cs), tail))
	case !slices.ContainsFunc(cs, func(c comments.Comment) bool { return isLineComment(c.Text) }):
		texts := make([]*doc.Doc, 0, len(cs))
		for _, c := range cs {
			texts = append(texts, doc.Text(c.Text))
		}
		return doc.Concat(doc.Text(open), doc.Join(doc.Text(" "), texts), doc.Text(closing), tail)
	}
	return doc.Concat(
		doc.Text(open),
		doc.Indent(doc.HardLine(), formatDangling(cs)),
		doc.HardLine(),
		doc.Text(closing),
		tail,
	)
}

// inlineList joins parts with sep without any break opportunity.
func inlineList(open, sep, closing string, parts []*doc.Doc, tail *doc.Doc) *doc.Doc {
	return doc.Concat(doc.Text(open), doc.Join(doc.Text(sep), parts), doc.Text(closing), tail)
}
