package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// languageSeeds cover every construct group the printer handles.
var languageSeeds = []string{
	"",
	"fun main() {}\n",
	"tolk 0.6.0\nimport \"@stdlib/tvm-dicts\"\nimport \"./a\"\n",
	"// header\nfun f(a: int, b: int): int {\n    // body\n    return a * b; // product\n}\n",
	"struct (0x01) Msg {\n    private readonly a: int = 1\n    b: cell?\n}\n",
	"enum Color {\n    Red,\n    Green = 2,\n}\n",
	"type U = int | slice | cell\n",
	"const A = 1\n\nglobal g: int\n",
	"@inline\nfun f() {\n    if (a) {\n        b();\n    } else {\n        c();\n    }\n}\n",
	"fun f() {\n    while (i < 10) {\n        i += 1;\n    }\n    repeat (3) {\n        g();\n    }\n}\n",
	"fun f() {\n    val p = Point { x: 1, y: 2 };\n    return a ? b : c;\n}\n",
	"fun f() {\n    assert(x, 100);\n    assert (y) throw 200;\n}\n",
	"fun f() {\n    try {\n        g();\n    } catch (e) {\n        h();\n    }\n}\n",
	"fun f(/* a */ x: int) {}\n",
	"fun f() {\n    // fmt-ignore\n    foo(  1,2 );\n}\n",
	"fun f( {",
	"/* unterminated",
	"\uFEFFfun   f() {}\n",
	"fun f() {\n    if (a) { b(); } // t\n    else { c(); }\n}\n",
	"fun f() // c\n{ a(); }",
	"fun f(\n    // c\n) {}",
	"fun f() /* c */ {}",
}

// roundTripSeeds are inputs known to format into a fixed point.
var roundTripSeeds = []string{
	"fun   test(  x: int,y:string   ): string{\nreturn    x+y;\n}",
	"fun f() {\n    foo(); // trailing comment\n    bar();\n}\n",
	"// header\nimport \"@stdlib/tvm-dicts\"\n\n/* doc */\nfun f(a: int, b: int): int {\n    // body\n    return a * b; // product\n}\n",
	"struct (0x01) Msg {\n    private readonly a: int = 1\n    b: cell?\n}\n",
	"type U = int | slice | cell\n",
	"fun f( {",
	"/* unterminated",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every *.tolk file under the repository testdata, if any.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".tolk" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
