// Package lexer performs a single pass over extended C++ source and tags
// every byte with the syntactic role it plays. The output is a contiguous
// sequence of CodeBlocks covering the whole input.
package lexer

import (
	"bytes"
	"strings"
)

// Lexer holds the scan state for one source buffer. A stack of Containers
// tracks the lexically open constructs; the bottom frame is a sentinel that
// counts braces and parentheses outside any construct.
type Lexer struct {
	src            []byte
	cur            cursor
	blocks         []CodeBlock
	containers     []Container
	nextContainer  ContainerKind
	lastIdentifier string
	containerName  string
}

// Lex scans src and returns the tagged blocks. The blocks cover every byte
// of src exactly once, in order. On a lexical failure the returned error is
// a *Error carrying the line and an excerpt of the offending source.
func Lex(src []byte) ([]CodeBlock, error) {
	lx := &Lexer{
		src:        src,
		cur:        newCursor(src),
		containers: []Container{{Kind: ContainerNone}},
	}
	if err := lx.run(); err != nil {
		return nil, err
	}
	return lx.blocks, nil
}

func (lx *Lexer) top() *Container {
	return &lx.containers[len(lx.containers)-1]
}

func (lx *Lexer) pop() {
	lx.containers = lx.containers[:len(lx.containers)-1]
}

func (lx *Lexer) lastBlock() *CodeBlock {
	return &lx.blocks[len(lx.blocks)-1]
}

func (lx *Lexer) run() error {
	for lx.cur.pos < len(lx.src) {
		begin := lx.cur.pos
		kind := kindNone

		switch c := lx.cur.value(); {
		case c == '\'':
			if err := lx.lexCharLiteral(); err != nil {
				return err
			}
			kind = KindCharLiteral

		case c == '"':
			var err error
			if lx.cur.prevValue() == 'R' {
				err = lx.lexRawString()
			} else {
				err = lx.lexString()
			}
			if err != nil {
				return err
			}
			kind = KindStringLiteral

		case c == '#':
			lx.lexDirective()
			kind = KindDirective

		case c == ';':
			kind = KindStatementTerminator
			lx.nextContainer = ContainerNone
			lx.containerName = ""
			lx.cur.moveNext()

		case c == '{':
			kind = KindBeginGroup
			if lx.nextContainer == ContainerNone || lx.top().Kind == ContainerInitList {
				lx.top().Braces++
			} else {
				lx.containers = append(lx.containers, Container{
					Kind:   lx.nextContainer,
					Name:   lx.containerName,
					Braces: 1,
				})
				lx.nextContainer = ContainerNone
				lx.containerName = ""
			}
			lx.cur.moveNext()

		case c == '}':
			top := lx.top()
			if top.Braces == 0 {
				return newError(ErrUnbalancedBrace, lx.cur)
			}
			top.Braces--
			if top.Kind == ContainerInitList {
				kind = kindPrevious
				if top.Braces == 0 && top.Parens == 0 {
					lx.pop()
				}
			} else {
				kind = KindEndGroup
				if top.Braces == 0 && len(lx.containers) > 1 {
					lx.pop()
				}
			}
			lx.cur.moveNext()

		case c == '(':
			if k := lx.top().Kind; k != ContainerFunction && k != ContainerInitList {
				lx.promoteFunctionName()
			}
			lx.top().Parens++
			kind = KindArgumentsOrParameters
			lx.cur.moveNext()

		case c == ')':
			top := lx.top()
			if top.Parens == 0 {
				return newError(ErrUnbalancedParen, lx.cur)
			}
			top.Parens--
			if top.Kind == ContainerInitList {
				kind = kindPrevious
				if top.Braces == 0 && top.Parens == 0 {
					lx.pop()
				}
			} else {
				kind = KindArgumentsOrParameters
			}
			lx.cur.moveNext()

		case c == ',':
			// A comma at initialisation-list level introduces the next
			// member initialiser.
			if lx.top().Kind != ContainerInitList && newRevIter(lx.blocks).kind() == KindInitializationList {
				kind = KindInitializationList
				lx.containers = append(lx.containers, Container{Kind: ContainerInitList})
				lx.cur.moveNext()
			}

		case c == ':':
			switch n := lx.cur.next(); {
			case n == ':':
				kind = KindIdentifierScope
				lx.cur.moveNext()
			case lx.nextContainer == ContainerCtorDtor:
				kind = KindInitializationList
				lx.containers = append(lx.containers, Container{Kind: ContainerInitList})
			case isAccessModifier(lx.lastIdentifier):
				kind = KindAccessModifier
			}

		case c == '/':
			ok, err := lx.lexComments()
			if err != nil {
				return err
			}
			if ok {
				kind = KindComment
			}

		case isIdentStart(c):
			kind = lx.lexWord()

		case isSpace(c):
			kind = KindEmpty
			lx.lexWhitespace()
		}

		if kind == kindNone {
			lx.cur.moveNext()
			continue
		}
		lx.insert(kind, begin)
	}

	// Flush any trailing untagged bytes.
	lx.insert(kindNone, lx.cur.pos)
	return nil
}

// insert records the range [begin, cur.pos-1] under kind. Untagged bytes
// between the previous block and begin become an Other block first.
func (lx *Lexer) insert(kind Kind, begin int) {
	codeToProcess := 0
	if len(lx.blocks) > 0 {
		if lx.mergeWithPrevious(kind) {
			lx.lastBlock().End = lx.cur.pos - 1
			return
		}
		codeToProcess = lx.lastBlock().End + 1
	}
	if begin > codeToProcess {
		lx.blocks = append(lx.blocks, CodeBlock{Kind: KindOther, Begin: codeToProcess, End: begin - 1})
	}
	if kind == kindNone {
		return
	}
	b := CodeBlock{Kind: kind, Begin: begin, End: lx.cur.pos - 1}
	if !lx.mergeBlocks(b) {
		lx.blocks = append(lx.blocks, b)
	}
}

// mergeWithPrevious reports whether the new range simply extends the last
// block: same kind, an explicit continuation, unfinished argument lists and
// unfinished initialisation lists.
func (lx *Lexer) mergeWithPrevious(kind Kind) bool {
	last := lx.lastBlock()
	switch {
	case kind == kindPrevious:
		return true
	case kind == last.Kind:
		return true
	case last.Kind == KindArgumentsOrParameters && lx.top().Parens > 0:
		return true
	case last.Kind == KindInitializationList && lx.top().Kind == ContainerInitList:
		return true
	}
	return false
}

// mergeBlocks collapses b together with earlier blocks when they form one
// construct: a begin-group absorbs the whitespace before it, a scoped name
// A::B becomes one identifier, an access modifier absorbs its keyword and
// consecutive member initialisers chain into one list.
func (lx *Lexer) mergeBlocks(b CodeBlock) bool {
	merge := 0
	switch b.Kind {
	case KindBeginGroup:
		if lx.lastBlock().Kind == KindEmpty {
			merge = 1
		}
	case KindIdentifier:
		it := newRevIter(lx.blocks)
		if it.kind() == KindIdentifierScope {
			it.next()
			if it.kind() == KindIdentifier {
				merge = it.skipped + 2
			}
		}
	case KindAccessModifier:
		it := newRevIter(lx.blocks)
		if it.kind() == KindIdentifier {
			merge = it.skipped + 1
		}
	case KindInitializationList:
		it := newRevIter(lx.blocks)
		if it.kind() == KindInitializationList {
			merge = it.skipped + 1
		}
	}
	if merge == 0 || merge > len(lx.blocks) {
		return false
	}
	lx.blocks = lx.blocks[:len(lx.blocks)-(merge-1)]
	last := lx.lastBlock()
	last.Kind = b.Kind
	last.End = b.End
	return true
}

// promoteFunctionName retags the identifier preceding a '(' as a function
// name, or as a constructor or destructor when it matches the name of the
// enclosing container.
func (lx *Lexer) promoteFunctionName() {
	it := newRevIter(lx.blocks)
	if it.kind() != KindIdentifier {
		return
	}
	blk := &lx.blocks[it.idx]
	if blk.Text(lx.src) == lx.top().Name {
		blk.Kind = KindConstructorDestructor
		lx.nextContainer = ContainerCtorDtor
		lx.absorbTilde(it.idx)
	} else {
		blk.Kind = KindFunctionName
		lx.nextContainer = ContainerFunction
	}
	lx.containerName = lx.lastIdentifier
}

// absorbTilde pulls a '~' immediately before a destructor name into the
// ConstructorDestructor block.
func (lx *Lexer) absorbTilde(i int) {
	if i == 0 {
		return
	}
	blk := &lx.blocks[i]
	prev := &lx.blocks[i-1]
	if prev.Kind != KindOther || prev.End != blk.Begin-1 || lx.src[prev.End] != '~' {
		return
	}
	blk.Begin--
	if prev.Begin == prev.End {
		lx.blocks = append(lx.blocks[:i-1], lx.blocks[i:]...)
	} else {
		prev.End--
	}
}

func (lx *Lexer) lexCharLiteral() error {
	switch lx.cur.next() {
	case '\'':
		return newError(ErrEmptyCharLiteral, lx.cur)
	case '\\':
		if err := lx.lexEscapeSequence(); err != nil {
			return err
		}
	default:
		lx.cur.moveNext()
	}
	if lx.cur.value() != '\'' {
		return newError(ErrUnterminatedCharLiteral, lx.cur)
	}
	lx.cur.moveNext()
	return nil
}

// lexEscapeSequence validates the escape under the cursor's next position
// and advances past it. The cursor is expected to sit on the backslash.
func (lx *Lexer) lexEscapeSequence() error {
	lx.cur.moveNext()
	c := lx.cur.value()
	var n int
	switch {
	case c != 0 && strings.IndexByte(`'"?\abfnrtv`, c) >= 0:
		n = 1
	case lx.cur.lookaheadAll(0, 3, isOctal):
		n = 3
	case c == 'x' && lx.cur.lookaheadAll(1, 2, isHex):
		n = 3
	case c == 'u' && lx.cur.lookaheadAll(1, 4, isHex):
		n = 5
	case c == 'U' && lx.cur.lookaheadAll(1, 8, isHex):
		n = 9
	default:
		return newError(ErrInvalidEscapeSequence, lx.cur)
	}
	lx.cur.advance(n)
	return nil
}

func (lx *Lexer) lexString() error {
	start := lx.cur
	lx.cur.moveNext()
	for {
		if !lx.cur.advanceUntil("\\\"\n") {
			return newError(ErrUnterminatedString, start)
		}
		switch lx.cur.value() {
		case '"':
			lx.cur.moveNext()
			return nil
		case '\\':
			if err := lx.lexEscapeSequence(); err != nil {
				return err
			}
		case '\n':
			return newError(ErrUnterminatedString, start)
		}
	}
}

// lexRawString scans R"delim( ... )delim". The delimiter may hold at most
// 16 characters and no parenthesis, backslash or whitespace. The body may
// span any number of lines.
func (lx *Lexer) lexRawString() error {
	start := lx.cur
	lx.cur.moveNext()
	delimBegin := lx.cur.pos
	for lx.cur.value() != '(' {
		c := lx.cur.value()
		if c == 0 || c == ')' || c == '\\' || isSpace(c) || lx.cur.pos-delimBegin >= 16 {
			return newError(ErrInvalidRawString, start)
		}
		lx.cur.moveNext()
	}
	delim := string(lx.src[delimBegin:lx.cur.pos])
	lx.cur.moveNext()
	closing := []byte(")" + delim + `"`)
	i := bytes.Index(lx.src[lx.cur.pos:], closing)
	if i < 0 {
		return newError(ErrInvalidRawString, start)
	}
	lx.cur.moveTo(lx.cur.pos + i + len(closing))
	return nil
}

// lexDirective consumes a preprocessor line. A C style comment opening on
// the line is left for the comment lexer unless it also closes there.
func (lx *Lexer) lexDirective() {
	lx.cur.moveNext()
	rest := lx.src[lx.cur.pos:]
	line := rest
	if eol := bytes.IndexByte(rest, '\n'); eol >= 0 {
		line = rest[:eol]
	}
	if k := bytes.Index(line, []byte("/*")); k >= 0 {
		if bytes.Contains(line[k:], []byte("*/")) {
			lx.cur.moveTo(lx.cur.pos + len(line))
		} else {
			lx.cur.moveTo(lx.cur.pos + k)
		}
		return
	}
	lx.cur.moveTo(lx.cur.pos + len(line))
	lx.cur.moveNext()
}

// lexComments handles both comment forms. A block comment swallows the
// whitespace after it; consecutive line comments separated only by
// whitespace collapse into one block. Returns false when the '/' does not
// start a comment.
func (lx *Lexer) lexComments() (bool, error) {
	switch lx.cur.peek() {
	case '*':
		i := bytes.Index(lx.src[lx.cur.pos+2:], []byte("*/"))
		if i < 0 {
			return false, newError(ErrUnterminatedComment, lx.cur)
		}
		lx.cur.moveTo(lx.cur.pos + 2 + i + 2)
		for isSpace(lx.cur.value()) {
			lx.cur.moveNext()
		}
		return true, nil
	case '/':
		lx.skipLine()
		for {
			save := lx.cur
			for isSpace(lx.cur.value()) {
				lx.cur.moveNext()
			}
			if lx.cur.value() == '/' && lx.cur.peek() == '/' {
				lx.skipLine()
				continue
			}
			lx.cur = save
			return true, nil
		}
	}
	return false, nil
}

func (lx *Lexer) skipLine() {
	if lx.cur.advanceUntil("\n") {
		lx.cur.moveNext()
	}
}

func (lx *Lexer) lexWord() Kind {
	begin := lx.cur.pos
	for isIdentChar(lx.cur.value()) {
		lx.cur.moveNext()
	}
	word := string(lx.src[begin:lx.cur.pos])
	switch word {
	case "namespace":
		lx.nextContainer = ContainerNamespace
		lx.containerName = ""
		return KindNamespaceKeyword
	case "class":
		lx.nextContainer = ContainerClass
		lx.containerName = ""
		return KindClassKeyword
	case "struct":
		lx.nextContainer = ContainerStruct
		lx.containerName = ""
		return KindStructKeyword
	case "enum":
		lx.nextContainer = ContainerEnum
		lx.containerName = ""
		return KindEnumKeyword
	}
	lx.lastIdentifier = word
	if lx.containerName == "" {
		lx.containerName = word
	}
	return KindIdentifier
}

func (lx *Lexer) lexWhitespace() {
	for {
		lx.cur.moveNext()
		if !isSpace(lx.cur.value()) {
			return
		}
	}
}

func isAccessModifier(word string) bool {
	switch word {
	case "public", "protected", "private":
		return true
	}
	return false
}

// revIter walks the block list backwards, transparently skipping Empty and
// Comment blocks. skipped counts how many of those were stepped over.
type revIter struct {
	blocks  []CodeBlock
	idx     int
	skipped int
}

func newRevIter(blocks []CodeBlock) *revIter {
	it := &revIter{blocks: blocks, idx: len(blocks) - 1}
	it.skip()
	return it
}

func (it *revIter) skip() {
	for it.idx >= 0 {
		k := it.blocks[it.idx].Kind
		if k != KindEmpty && k != KindComment {
			return
		}
		it.skipped++
		it.idx--
	}
}

func (it *revIter) next() {
	it.idx--
	it.skip()
}

func (it *revIter) kind() Kind {
	if it.idx < 0 {
		return kindNone
	}
	return it.blocks[it.idx].Kind
}
