// Package gen turns the lexer's block stream into the two generated
// files: a header carrying the interface and an implementation file
// carrying the bodies, qualified with their enclosing scopes.
package gen

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/cppx-tools/cppxgen/internal/lexer"
)

// frame tracks one scope the header is currently inside. The bottom frame
// is a sentinel for file scope.
type frame struct {
	name   string
	braces int
}

type splitter struct {
	src     []byte
	blocks  []lexer.CodeBlock
	hdr     *bufio.Writer
	impl    *bufio.Writer
	pending bytes.Buffer
	stack   []frame
}

// Split writes the interface and implementation renditions of the lexed
// source to hdr and impl. stem names the generated pair; it appears in the
// include guard and in the #include line of the implementation.
func Split(src []byte, blocks []lexer.CodeBlock, stem string, hdr, impl io.Writer) error {
	s := &splitter{
		src:    src,
		blocks: blocks,
		hdr:    bufio.NewWriter(hdr),
		impl:   bufio.NewWriter(impl),
		stack:  []frame{{}},
	}
	s.run(stem)
	if err := s.hdr.Flush(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := s.impl.Flush(); err != nil {
		return fmt.Errorf("write implementation: %w", err)
	}
	return nil
}

func (s *splitter) top() *frame {
	return &s.stack[len(s.stack)-1]
}

func (s *splitter) run(stem string) {
	guard := Guard(s.src, s.blocks, stem)

	i := 0
	if len(s.blocks) > 0 && s.blocks[0].Kind == lexer.KindComment {
		text := s.blocks[0].Text(s.src)
		s.hdr.WriteString(text)
		s.impl.WriteString(text)
		i = 1
	}
	s.hdr.WriteString("#ifndef " + guard + "\n#define " + guard + "\n\n")
	s.impl.WriteString("#include \"" + stem + ".h\"\n")

	for ; i < len(s.blocks); i++ {
		b := s.blocks[i]
		switch b.Kind {
		case lexer.KindDirective, lexer.KindAccessModifier, lexer.KindStatementTerminator:
			s.flushHdr()
			s.hdr.Write(b.Bytes(s.src))
		case lexer.KindNamespaceKeyword, lexer.KindClassKeyword,
			lexer.KindStructKeyword, lexer.KindEnumKeyword:
			i = s.containerHeader(i)
		case lexer.KindFunctionName, lexer.KindConstructorDestructor:
			i = s.function(i)
		case lexer.KindBeginGroup:
			s.flushHdr()
			s.hdr.Write(b.Bytes(s.src))
			s.top().braces++
		case lexer.KindEndGroup:
			s.flushHdr()
			s.hdr.Write(b.Bytes(s.src))
			s.top().braces--
			if s.top().braces == 0 && len(s.stack) > 1 {
				s.stack = s.stack[:len(s.stack)-1]
			}
		default:
			s.pending.Write(b.Bytes(s.src))
		}
	}

	s.flushHdr()
	s.hdr.WriteString("\n\n#endif // " + guard + "\n")
}

// containerHeader copies a namespace, class, struct or enum introduction
// to the header. When the construct opens a scope a frame is pushed under
// the first identifier of the introduction.
func (s *splitter) containerHeader(i int) int {
	var buf bytes.Buffer
	name := ""
	for ; i < len(s.blocks); i++ {
		b := s.blocks[i]
		buf.Write(b.Bytes(s.src))
		switch b.Kind {
		case lexer.KindIdentifier:
			if name == "" {
				name = b.Text(s.src)
			}
		case lexer.KindBeginGroup:
			s.flushHdr()
			s.hdr.Write(buf.Bytes())
			s.stack = append(s.stack, frame{name: name, braces: 1})
			return i
		case lexer.KindStatementTerminator:
			s.flushHdr()
			s.hdr.Write(buf.Bytes())
			return i
		}
	}
	s.flushHdr()
	s.hdr.Write(buf.Bytes())
	return i
}

// function routes a function, constructor or destructor. Declarations stay
// in the header. For definitions the signature goes to both streams, with
// the scope qualification prefixed on the implementation side, and the body
// goes to the implementation only.
func (s *splitter) function(i int) int {
	var sig bytes.Buffer
	for ; i < len(s.blocks); i++ {
		b := s.blocks[i]
		switch b.Kind {
		case lexer.KindBeginGroup, lexer.KindInitializationList:
			s.flushBoth()
			s.impl.WriteString(s.scopePrefix())
			s.hdr.WriteString(strings.TrimRight(sig.String(), " \t\r\n"))
			s.impl.Write(sig.Bytes())
			s.hdr.WriteString(";")
			s.impl.Write(b.Bytes(s.src))
			depth := 0
			if b.Kind == lexer.KindBeginGroup {
				depth = 1
			}
			return s.functionBody(i+1, depth)
		case lexer.KindStatementTerminator:
			s.flushHdr()
			sig.Write(b.Bytes(s.src))
			s.hdr.Write(sig.Bytes())
			return i
		default:
			sig.Write(b.Bytes(s.src))
		}
	}
	s.flushHdr()
	s.hdr.Write(sig.Bytes())
	return i
}

// functionBody copies blocks to the implementation until the body's
// closing brace. depth is 0 while an initialisation list is still open.
func (s *splitter) functionBody(i, depth int) int {
	for ; i < len(s.blocks); i++ {
		b := s.blocks[i]
		s.impl.Write(b.Bytes(s.src))
		switch b.Kind {
		case lexer.KindBeginGroup:
			depth++
		case lexer.KindEndGroup:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return i
}

// scopePrefix is the qualification for definitions moved out of their
// containers, such as "A::B::" for a member of class B in namespace A.
func (s *splitter) scopePrefix() string {
	var sb strings.Builder
	for _, f := range s.stack {
		if f.name != "" {
			sb.WriteString(f.name)
			sb.WriteString("::")
		}
	}
	return sb.String()
}

func (s *splitter) flushHdr() {
	if s.pending.Len() == 0 {
		return
	}
	s.hdr.Write(s.pending.Bytes())
	s.pending.Reset()
}

func (s *splitter) flushBoth() {
	if s.pending.Len() == 0 {
		return
	}
	s.hdr.Write(s.pending.Bytes())
	s.impl.Write(s.pending.Bytes())
	s.pending.Reset()
}
