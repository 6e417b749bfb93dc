package lexer

// Kind classifies a contiguous byte range of the source.
type Kind int

const (
	kindNone Kind = iota
	KindOther
	KindEmpty
	KindComment
	KindDirective
	KindCharLiteral
	KindStringLiteral
	KindIdentifier
	KindIdentifierScope
	KindAccessModifier
	KindNamespaceKeyword
	KindClassKeyword
	KindStructKeyword
	KindEnumKeyword
	KindArgumentsOrParameters
	KindFunctionName
	KindConstructorDestructor
	KindInitializationList
	KindBeginGroup
	KindEndGroup
	KindStatementTerminator

	// kindPrevious marks a range that extends the previous block,
	// whatever its kind (used when an initialisation list closes).
	kindPrevious
)

var kindNames = map[Kind]string{
	kindNone:                  "None",
	KindOther:                 "Other",
	KindEmpty:                 "Empty",
	KindComment:               "Comment",
	KindDirective:             "Directive",
	KindCharLiteral:           "CharLiteral",
	KindStringLiteral:         "StringLiteral",
	KindIdentifier:            "Identifier",
	KindIdentifierScope:       "IdentifierScope",
	KindAccessModifier:        "AccessModifier",
	KindNamespaceKeyword:      "NamespaceKeyword",
	KindClassKeyword:          "ClassKeyword",
	KindStructKeyword:         "StructKeyword",
	KindEnumKeyword:           "EnumKeyword",
	KindArgumentsOrParameters: "ArgumentsOrParameters",
	KindFunctionName:          "FunctionName",
	KindConstructorDestructor: "ConstructorDestructor",
	KindInitializationList:    "InitializationList",
	KindBeginGroup:            "BeginGroup",
	KindEndGroup:              "EndGroup",
	KindStatementTerminator:   "StatementTerminator",
	kindPrevious:              "Previous",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// CodeBlock is a tagged byte range [Begin, End] of the source buffer.
// Both offsets are inclusive, so a single-byte block has Begin == End.
type CodeBlock struct {
	Kind  Kind
	Begin int
	End   int
}

func (b CodeBlock) Size() int {
	return b.End - b.Begin + 1
}

func (b CodeBlock) Bytes(src []byte) []byte {
	return src[b.Begin : b.End+1]
}

func (b CodeBlock) Text(src []byte) string {
	return string(b.Bytes(src))
}
