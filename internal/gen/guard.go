package gen

import (
	"strings"

	"github.com/cppx-tools/cppxgen/internal/lexer"
	helpers "github.com/cppx-tools/cppxgen/internal/utils"
)

// Guard derives the include guard macro for a header generated from the
// lexed source. Namespaces opened before any other declaration contribute
// their names, then the file stem and an H suffix, all normalised into a
// valid macro identifier.
func Guard(src []byte, blocks []lexer.CodeBlock, stem string) string {
	var chain strings.Builder
walk:
	for i := 0; i < len(blocks); i++ {
		switch blocks[i].Kind {
		case lexer.KindEmpty, lexer.KindComment, lexer.KindDirective,
			lexer.KindOther, lexer.KindStatementTerminator:
		case lexer.KindNamespaceKeyword:
			i = appendNamespace(src, blocks, i, &chain)
		case lexer.KindClassKeyword, lexer.KindStructKeyword, lexer.KindEnumKeyword:
			i = skipContainer(blocks, i)
		default:
			break walk
		}
	}
	return helpers.MacroIdent(chain.String() + stem + "_H")
}

// appendNamespace collects the names of a namespace introduction. The
// names count only when the namespace actually opens a scope; forward
// declarations and aliases are discarded.
func appendNamespace(src []byte, blocks []lexer.CodeBlock, i int, chain *strings.Builder) int {
	var names []string
	for j := i + 1; j < len(blocks); j++ {
		switch blocks[j].Kind {
		case lexer.KindEmpty, lexer.KindComment:
		case lexer.KindIdentifier:
			names = append(names, blocks[j].Text(src))
		case lexer.KindBeginGroup:
			for _, n := range names {
				chain.WriteString(n)
				chain.WriteString("_")
			}
			return j
		default:
			return j
		}
	}
	return len(blocks)
}

// skipContainer advances past a class, struct or enum, either to its
// closing brace or to the terminator of a forward declaration.
func skipContainer(blocks []lexer.CodeBlock, i int) int {
	depth := 0
	for j := i + 1; j < len(blocks); j++ {
		switch blocks[j].Kind {
		case lexer.KindBeginGroup:
			depth++
		case lexer.KindEndGroup:
			depth--
			if depth == 0 {
				return j
			}
		case lexer.KindStatementTerminator:
			if depth == 0 {
				return j
			}
		}
	}
	return len(blocks)
}
