package lexer

// ContainerKind identifies the syntactic construct a stack frame tracks.
type ContainerKind int

const (
	ContainerNone ContainerKind = iota
	ContainerNamespace
	ContainerClass
	ContainerStruct
	ContainerEnum
	ContainerFunction
	ContainerCtorDtor
	ContainerInitList
)

var containerNames = map[ContainerKind]string{
	ContainerNone:      "None",
	ContainerNamespace: "Namespace",
	ContainerClass:     "Class",
	ContainerStruct:    "Struct",
	ContainerEnum:      "Enum",
	ContainerFunction:  "Function",
	ContainerCtorDtor:  "ConstructorDestructor",
	ContainerInitList:  "InitializationList",
}

func (k ContainerKind) String() string {
	if s, ok := containerNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Container is a stack frame for a lexically open construct. Name holds the
// first identifier seen after the introducer keyword; it is what constructor
// and destructor names are matched against.
type Container struct {
	Kind   ContainerKind
	Name   string
	Braces int
	Parens int
}
