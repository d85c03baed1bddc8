package domain

// DynamicSentinel is how story files spell a dynamic edge.
const DynamicSentinel = "__DYNAMIC_S07__"

// EdgeKind tags the variant held by an Edge.
type EdgeKind uint8

const (
	// EdgeNone means the node has no outgoing edge.
	EdgeNone EdgeKind = iota
	// EdgeConcrete points at a node id.
	EdgeConcrete
	// EdgeDynamic is composed at traversal time from the collected persona and shadow keys.
	EdgeDynamic
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeConcrete:
		return "concrete"
	case EdgeDynamic:
		return "dynamic"
	default:
		return "none"
	}
}

// Edge is the outgoing link of a node: Concrete(id) | Dynamic | none.
type Edge struct {
	Kind   EdgeKind
	Target string
}

// To returns a concrete edge. An empty id yields the zero (absent) edge.
func To(id string) Edge {
	if id == "" {
		return Edge{}
	}
	return Edge{Kind: EdgeConcrete, Target: id}
}

// Dynamic returns the edge resolved from the collected keys.
func Dynamic() Edge {
	return Edge{Kind: EdgeDynamic}
}

// ParseEdge maps the file representation onto an Edge.
func ParseEdge(raw string) Edge {
	if raw == DynamicSentinel {
		return Dynamic()
	}
	return To(raw)
}

// IsZero reports whether the edge is absent.
func (e Edge) IsZero() bool {
	return e.Kind == EdgeNone
}

// IsDynamic reports whether the edge must be composed from keys.
func (e Edge) IsDynamic() bool {
	return e.Kind == EdgeDynamic
}

func (e Edge) String() string {
	switch e.Kind {
	case EdgeConcrete:
		return e.Target
	case EdgeDynamic:
		return DynamicSentinel
	default:
		return ""
	}
}

// MarshalText writes the file representation.
func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText reads the file representation.
func (e *Edge) UnmarshalText(text []byte) error {
	*e = ParseEdge(string(text))
	return nil
}
