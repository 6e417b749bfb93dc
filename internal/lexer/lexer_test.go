package lexer

import (
	"errors"
	"strings"
	"testing"
)

func kindsOf(blocks []CodeBlock) []Kind {
	out := make([]Kind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func equalKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// checkCoverage asserts the blocks tile the source without gaps or
// overlaps.
func checkCoverage(t *testing.T, src []byte, blocks []CodeBlock) {
	t.Helper()
	pos := 0
	for i, b := range blocks {
		if b.Begin != pos {
			t.Fatalf("block %d (%s) begins at %d, want %d", i, b.Kind, b.Begin, pos)
		}
		if b.End < b.Begin {
			t.Fatalf("block %d (%s) has End %d before Begin %d", i, b.Kind, b.End, b.Begin)
		}
		pos = b.End + 1
	}
	if pos != len(src) {
		t.Fatalf("blocks cover %d bytes, source has %d", pos, len(src))
	}
}

func mustLex(t *testing.T, src string) []CodeBlock {
	t.Helper()
	blocks, err := Lex([]byte(src))
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	checkCoverage(t, []byte(src), blocks)
	return blocks
}

func TestLex_EmptySource(t *testing.T) {
	blocks, err := Lex(nil)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
}

func TestLex_CoversSource(t *testing.T) {
	inputs := []string{
		"int x;\n",
		"int x = c ? a : b;\n",
		"a + b - c * d / e;\n",
		"#define X /* open\nstill comment */ int x;\n",
		"#define Y /* closed */\nint y;\n",
		"namespace a::b { enum class E { One, Two }; }\n",
		"struct S {\nS() : a(1), b{2} {}\nint a;\nint b;\n};\n",
		"auto s = R\"tag(no \" escape ' here)tag\";\n",
		"char c = '\\x41';\nchar d = '\\101';\nchar e = '\\u0041';\n",
		"void f(int a,\n       int b);\n",
		"// one\n// two\n/* three */   int z;\n",
		"template <typename T> T max(T a, T b) { return a > b ? a : b; }\n",
	}
	for _, src := range inputs {
		mustLex(t, src)
	}
}

func TestLex_ClassMethodKinds(t *testing.T) {
	src := "class C { public: int f() { return 1; } };"
	blocks := mustLex(t, src)

	want := []Kind{
		KindClassKeyword, KindEmpty, KindIdentifier, KindBeginGroup,
		KindEmpty, KindAccessModifier, KindEmpty, KindIdentifier,
		KindEmpty, KindFunctionName, KindArgumentsOrParameters,
		KindBeginGroup, KindEmpty, KindIdentifier, KindEmpty, KindOther,
		KindStatementTerminator, KindEmpty, KindEndGroup, KindEmpty,
		KindEndGroup, KindStatementTerminator,
	}
	if !equalKinds(kindsOf(blocks), want) {
		t.Fatalf("kind sequence mismatch:\n got: %v\nwant: %v", kindsOf(blocks), want)
	}

	if got := blocks[5].Text([]byte(src)); got != "public:" {
		t.Fatalf("access modifier text: got %q", got)
	}
	if got := blocks[9].Text([]byte(src)); got != "f" {
		t.Fatalf("function name text: got %q", got)
	}
	if got := blocks[10].Text([]byte(src)); got != "()" {
		t.Fatalf("parameter text: got %q", got)
	}
}

func TestLex_ScopedIdentifierMerge(t *testing.T) {
	src := "std::vector v;"
	blocks := mustLex(t, src)

	want := []Kind{KindIdentifier, KindEmpty, KindIdentifier, KindStatementTerminator}
	if !equalKinds(kindsOf(blocks), want) {
		t.Fatalf("kind sequence mismatch:\n got: %v\nwant: %v", kindsOf(blocks), want)
	}
	if got := blocks[0].Text([]byte(src)); got != "std::vector" {
		t.Fatalf("merged identifier text: got %q", got)
	}
}

func TestLex_LineCommentsCollapse(t *testing.T) {
	src := "// one\n// two\nint x;"
	blocks := mustLex(t, src)

	if blocks[0].Kind != KindComment {
		t.Fatalf("expected leading comment, got %s", blocks[0].Kind)
	}
	if got := blocks[0].Text([]byte(src)); got != "// one\n// two\n" {
		t.Fatalf("comment text: got %q", got)
	}
}

func TestLex_BlockCommentSwallowsTrailingWhitespace(t *testing.T) {
	src := "/* c */  \nint x;"
	blocks := mustLex(t, src)

	if blocks[0].Kind != KindComment {
		t.Fatalf("expected leading comment, got %s", blocks[0].Kind)
	}
	if got := blocks[0].Text([]byte(src)); got != "/* c */  \n" {
		t.Fatalf("comment text: got %q", got)
	}
	if blocks[1].Kind != KindIdentifier {
		t.Fatalf("expected identifier after comment, got %s", blocks[1].Kind)
	}
}

func TestLex_DirectiveLine(t *testing.T) {
	src := "#include <vector>\nint x;"
	blocks := mustLex(t, src)

	if blocks[0].Kind != KindDirective {
		t.Fatalf("expected directive, got %s", blocks[0].Kind)
	}
	if got := blocks[0].Text([]byte(src)); got != "#include <vector>\n" {
		t.Fatalf("directive text: got %q", got)
	}
}

func TestLex_DirectiveKeepsOpenComment(t *testing.T) {
	src := "#define X /* note\nspans */ int x;"
	blocks := mustLex(t, src)

	if blocks[0].Kind != KindDirective {
		t.Fatalf("expected directive, got %s", blocks[0].Kind)
	}
	if got := blocks[0].Text([]byte(src)); got != "#define X " {
		t.Fatalf("directive text: got %q", got)
	}
	if blocks[1].Kind != KindComment {
		t.Fatalf("expected comment after directive, got %s", blocks[1].Kind)
	}
}

func TestLex_RawString(t *testing.T) {
	src := `auto s = R"(hi " there)";`
	blocks := mustLex(t, src)

	var lit *CodeBlock
	for i := range blocks {
		if blocks[i].Kind == KindStringLiteral {
			lit = &blocks[i]
			break
		}
	}
	if lit == nil {
		t.Fatalf("no string literal block in %v", kindsOf(blocks))
	}
	if got := lit.Text([]byte(src)); got != `"(hi " there)"` {
		t.Fatalf("raw string text: got %q", got)
	}
}

func TestLex_FunctionPromotion(t *testing.T) {
	src := "int f();"
	blocks := mustLex(t, src)

	want := []Kind{KindIdentifier, KindEmpty, KindFunctionName, KindArgumentsOrParameters, KindStatementTerminator}
	if !equalKinds(kindsOf(blocks), want) {
		t.Fatalf("kind sequence mismatch:\n got: %v\nwant: %v", kindsOf(blocks), want)
	}
}

func TestLex_ConstructorPromotion(t *testing.T) {
	src := "class Point {\npublic:\n    Point(int x) : x_(x) {}\n    int x_;\n};\n"
	blocks := mustLex(t, src)

	var ctor, initList *CodeBlock
	for i := range blocks {
		switch blocks[i].Kind {
		case KindConstructorDestructor:
			ctor = &blocks[i]
		case KindInitializationList:
			initList = &blocks[i]
		}
	}
	if ctor == nil {
		t.Fatalf("no constructor block in %v", kindsOf(blocks))
	}
	if got := ctor.Text([]byte(src)); got != "Point" {
		t.Fatalf("constructor text: got %q", got)
	}
	if initList == nil {
		t.Fatalf("no initialisation list block in %v", kindsOf(blocks))
	}
	if got := initList.Text([]byte(src)); got != ": x_(x)" {
		t.Fatalf("initialisation list text: got %q", got)
	}
}

func TestLex_InitializationListChain(t *testing.T) {
	src := "struct P {\nP() : a(1), b(2) {}\nint a;\nint b;\n};\n"
	blocks := mustLex(t, src)

	count := 0
	var text string
	for _, b := range blocks {
		if b.Kind == KindInitializationList {
			count++
			text = b.Text([]byte(src))
		}
	}
	if count != 1 {
		t.Fatalf("expected one initialisation list block, got %d", count)
	}
	if text != ": a(1), b(2)" {
		t.Fatalf("initialisation list text: got %q", text)
	}
}

func TestLex_DestructorTilde(t *testing.T) {
	src := "class W {\n~W() {}\n};\n"
	blocks := mustLex(t, src)

	var dtor *CodeBlock
	for i := range blocks {
		if blocks[i].Kind == KindConstructorDestructor {
			dtor = &blocks[i]
			break
		}
	}
	if dtor == nil {
		t.Fatalf("no destructor block in %v", kindsOf(blocks))
	}
	if got := dtor.Text([]byte(src)); got != "~W" {
		t.Fatalf("destructor text: got %q", got)
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    ErrorKind
		line    int
		excerpt string
	}{
		{"unterminated block comment", "int a;\n/* never closed", ErrUnterminatedComment, 2, "/* never closed"},
		{"unterminated string", "auto s = \"abc\nint x;", ErrUnterminatedString, 1, "\"abc"},
		{"string open at end of file", "auto s = \"abc", ErrUnterminatedString, 1, "\"abc"},
		{"empty char literal", "char c = '';", ErrEmptyCharLiteral, 1, "';"},
		{"char literal missing delimiter", "char c = 'ab';", ErrUnterminatedCharLiteral, 1, "b';"},
		{"invalid escape", `char c = '\q';`, ErrInvalidEscapeSequence, 1, "q';"},
		{"invalid raw string delimiter", `auto s = R"de lim(x)";`, ErrInvalidRawString, 1, `"de lim(x)";`},
		{"raw string never closed", `auto s = R"(abc`, ErrInvalidRawString, 1, `"(abc`},
		{"extra closing brace", "int x;\nint y; }", ErrUnbalancedBrace, 2, "}"},
		{"extra closing paren", "int x; )", ErrUnbalancedParen, 1, ")"},
		{"excerpt is capped", "}" + strings.Repeat("a", 40), ErrUnbalancedBrace, 1, "}" + strings.Repeat("a", 27)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := Lex([]byte(tt.input))
			if err == nil {
				t.Fatalf("expected error, got blocks %v", kindsOf(blocks))
			}
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if lexErr.Kind != tt.kind {
				t.Fatalf("kind: got %d, want %d (%v)", lexErr.Kind, tt.kind, err)
			}
			if lexErr.Line != tt.line {
				t.Fatalf("line: got %d, want %d (%v)", lexErr.Line, tt.line, err)
			}
			if lexErr.Excerpt != tt.excerpt {
				t.Fatalf("excerpt: got %q, want %q", lexErr.Excerpt, tt.excerpt)
			}
			if !strings.Contains(lexErr.Error(), lexErr.Message()) {
				t.Fatalf("Error() %q does not contain message %q", lexErr.Error(), lexErr.Message())
			}
		})
	}
}
