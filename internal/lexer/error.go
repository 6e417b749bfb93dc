package lexer

// ErrorKind is the closed set of failures the lexer can report.
type ErrorKind int

const (
	ErrUnterminatedComment ErrorKind = iota
	ErrUnterminatedString
	ErrUnterminatedCharLiteral
	ErrInvalidEscapeSequence
	ErrInvalidRawString
	ErrEmptyCharLiteral
	ErrUnbalancedBrace
	ErrUnbalancedParen
)

var errorMessages = map[ErrorKind]string{
	ErrUnterminatedComment:     "C style comment (/*) does not end (*/)",
	ErrUnterminatedString:      "String does not end",
	ErrUnterminatedCharLiteral: "Character literal delimiter is missing",
	ErrInvalidEscapeSequence:   "Invalid escape sequence",
	ErrInvalidRawString:        "Invalid raw string",
	ErrEmptyCharLiteral:        "Empty character literal found",
	ErrUnbalancedBrace:         "An extra '}' was found. Perhaps you forgot a '{'",
	ErrUnbalancedParen:         "An extra ')' was found. Perhaps you forgot a '('",
}

// excerptLen bounds the amount of source quoted in an error.
const excerptLen = 28

// Error carries the failure kind, the 1-based line where it was detected and
// a short excerpt of the source starting at the error position.
type Error struct {
	Kind    ErrorKind
	Line    int
	Excerpt string
}

func (e *Error) Message() string {
	return errorMessages[e.Kind]
}

func (e *Error) Error() string {
	if e.Excerpt == "" {
		return e.Message()
	}
	return e.Message() + ": " + e.Excerpt
}

func newError(kind ErrorKind, cur cursor) *Error {
	return &Error{Kind: kind, Line: cur.line, Excerpt: excerpt(cur.src, cur.pos)}
}

func excerpt(src []byte, pos int) string {
	end := pos
	for end < len(src) && end-pos < excerptLen && src[end] != '\n' {
		end++
	}
	return string(src[pos:end])
}
