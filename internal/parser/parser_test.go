package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolkfmt/internal/ast"
	"tolkfmt/internal/diag"
	"tolkfmt/internal/parser"
	"tolkfmt/internal/source"
)

func parse(t *testing.T, input string) (*ast.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tolk", []byte(input)))
	bag := diag.NewBag(16)
	return parser.Parse(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func dump(t *testing.T, input string) string {
	t.Helper()
	tree, bag := parse(t, input)
	require.False(t, bag.HasErrors(), "unexpected diagnostics: %v", bag.Items())
	require.NotNil(t, tree)
	return ast.Dump(tree.RootNode())
}

func TestParseImport(t *testing.T) {
	assert.Equal(t, `(source_file (import_directive path: (string_literal)))`, dump(t, `import "@stdlib/tvm-dicts"`))
}

func TestParseRequiredVersion(t *testing.T) {
	tree, bag := parse(t, "tolk 0.6.0\n")
	require.False(t, bag.HasErrors())
	v := tree.RootNode().FirstNamedChild().ChildByField("value")
	require.NotNil(t, v)
	assert.Equal(t, "0.6.0", v.Text())
}

func TestParseBinaryPrecedence(t *testing.T) {
	got := dump(t, `fun main() { return 1 + 2 * 3; }`)
	assert.Equal(t, "(source_file (function_declaration name: (identifier) parameters: (parameter_list) "+
		"body: (block_statement (return_statement body: (binary_operator (number_literal) "+
		"(binary_operator (number_literal) (number_literal)))))))", got)
}

func TestParseGenericCallVersusLess(t *testing.T) {
	got := dump(t, `fun f() { Foo<int32>.new(); a < b; }`)
	assert.Equal(t, "(source_file (function_declaration name: (identifier) parameters: (parameter_list) "+
		"body: (block_statement "+
		"(expression_statement (function_call callee: (dot_access obj: (generic_instantiation expr: (identifier) "+
		"instantiationTs: (instantiationT_list types: (type_identifier))) field: (identifier)) arguments: (argument_list))) "+
		"(expression_statement (binary_operator (identifier) (identifier))))))", got)
}

func TestParseObjectLiteralStatement(t *testing.T) {
	got := dump(t, `fun f() { {foo: 1}; }`)
	assert.Contains(t, got, "(expression_statement (object_literal arguments: (object_literal_body "+
		"(instance_argument name: (identifier) value: (number_literal)))))")
}

func TestParseNestedGenericType(t *testing.T) {
	got := dump(t, `type M = Map<int, Cell<int>>`)
	assert.Equal(t, "(source_file (type_alias_declaration name: (identifier) underlying_type: "+
		"(type_instantiatedTs name: (type_identifier) arguments: (instantiationT_list types: (type_identifier) "+
		"types: (type_instantiatedTs name: (type_identifier) arguments: (instantiationT_list types: (type_identifier)))))))", got)
}

func TestParseMatch(t *testing.T) {
	got := dump(t, `fun f() { match (x) { int => 1, else => { } } }`)
	assert.Contains(t, got, "(match_statement (match_expression expr: (identifier) body: (match_body "+
		"(match_arm pattern_type: (type_identifier) expr: (number_literal)) "+
		"(match_arm block: (block_statement)))))")
}

func TestParseLocalVars(t *testing.T) {
	got := dump(t, `fun f() { var (a: int, b redef) = t; }`)
	assert.Contains(t, got, "(local_vars_declaration lhs: (tensor_vars_declaration "+
		"vars: (var_declaration name: (identifier) type: (type_identifier)) "+
		"vars: (var_declaration name: (identifier))) assigned_val: (identifier))")
}

func TestParseMethodReceiver(t *testing.T) {
	got := dump(t, `fun Bar<Foo>.test() {}`)
	assert.Equal(t, "(source_file (method_declaration receiver: (method_receiver receiver_type: "+
		"(type_instantiatedTs name: (type_identifier) arguments: (instantiationT_list types: (type_identifier)))) "+
		"name: (identifier) parameters: (parameter_list) body: (block_statement)))", got)
}

func TestParseAssertAndTryCatch(t *testing.T) {
	got := dump(t, `fun f() { assert(a) throw 5; try {} catch (e) {} }`)
	assert.Contains(t, got, "(assert_statement condition: (identifier) excNo: (number_literal))")
	assert.Contains(t, got, "(try_catch_statement try_body: (block_statement) catch: "+
		"(catch_clause catch_var1: (identifier) catch_body: (block_statement)))")
}

func TestParseOptionalSemicolonBeforeBrace(t *testing.T) {
	got := dump(t, `fun test() { foo.bar }`)
	assert.Contains(t, got, "(expression_statement (dot_access obj: (identifier) field: (identifier)))")
}

func TestCommentsInsertedIntoBlock(t *testing.T) {
	got := dump(t, "fun f() {\n    // hi\n    a;\n}\n")
	assert.Contains(t, got, "(block_statement (comment) (expression_statement (identifier)))")
}

func TestParseSyntaxErrorReturnsNil(t *testing.T) {
	tree, bag := parse(t, `fun f() { a = }`)
	assert.Nil(t, tree)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diag.SynExpectExpression, bag.Items()[0].Code)
	assert.Contains(t, bag.Items()[0].Message, `got "}"`)
}

func TestParseMissingSemicolon(t *testing.T) {
	tree, bag := parse(t, `fun f() { a b }`)
	assert.Nil(t, tree)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diag.SynExpectSemicolon, bag.Items()[0].Code)
}

func TestParseLexErrorReturnsNil(t *testing.T) {
	tree, bag := parse(t, "fun f() { \"abc }\n")
	assert.Nil(t, tree)
	assert.True(t, bag.HasErrors())
}

func TestParseFileCollectsDiagnostics(t *testing.T) {
	tree, bag := parser.ParseFile(source.NewFile("bad.tolk", []byte(`fun f() { a = }`)))
	assert.Nil(t, tree)
	require.True(t, bag.HasErrors())

	tree, bag = parser.ParseFile(source.NewFile("ok.tolk", []byte(`fun f() {}`)))
	require.NotNil(t, tree)
	assert.Zero(t, bag.Len())
}
