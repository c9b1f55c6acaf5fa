package scanner

// Kind classifies a node of a location chain.
type Kind int

const (
	KindFile Kind = iota
	KindNew
	KindTop
	KindType
	KindConstructor
	KindMethod
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindNew:
		return "new"
	case KindTop:
		return "top"
	case KindType:
		return "type"
	case KindConstructor:
		return "constructor"
	case KindMethod:
		return "method"
	case KindVariable:
		return "variable"
	}
	return "unknown"
}

// Location is one node of the nested structural position of a source line:
// file at the root, then types, functions and variables below it. Chains
// are immutable; children share their parent's tail.
type Location struct {
	Parent *Location
	Kind   Kind
	// Keyword is the declaring keyword (class, enum, interface) for
	// KindType nodes.
	Keyword string
	Name    string
	// IsFunctionDeclaration marks a function signature ending in a
	// semicolon: a declaration without a body, scoped to a single line.
	IsFunctionDeclaration bool
}

// NewFileLocation returns the root of a chain for one source file.
func NewFileLocation(name string) *Location {
	return &Location{Kind: KindFile, Name: name}
}

// IsFile reports whether l is a file root.
func (l *Location) IsFile() bool { return l.Kind == KindFile }

// IsFunction reports whether l is function-like.
func (l *Location) IsFunction() bool {
	return l.Kind == KindConstructor || l.Kind == KindMethod
}

// Depth is the number of nodes from l to the root, inclusive.
func (l *Location) Depth() int {
	depth := 0
	for c := l; c != nil; c = c.Parent {
		depth++
	}
	return depth
}

// PopToDepth returns the ancestor whose chain keeps the root plus depth
// further nodes. If the chain is already shallower, l is returned
// unchanged.
func (l *Location) PopToDepth(depth int) *Location {
	var chain []*Location
	for c := l; c != nil; c = c.Parent {
		chain = append(chain, c)
	}
	if len(chain) < depth+1 {
		return l
	}
	return chain[len(chain)-depth-1]
}

// Equal compares two chains structurally. A nil location only equals nil.
func (l *Location) Equal(other *Location) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.Kind != other.Kind || l.Keyword != other.Keyword ||
		l.Name != other.Name ||
		l.IsFunctionDeclaration != other.IsFunctionDeclaration {
		return false
	}
	return l.Parent.Equal(other.Parent)
}

// KeywordOrKind returns the declaring keyword for type nodes and the kind
// name otherwise; this is the word used in rendered breadcrumbs.
func (l *Location) KeywordOrKind() string {
	if l.Kind == KindType {
		return l.Keyword
	}
	return l.Kind.String()
}
