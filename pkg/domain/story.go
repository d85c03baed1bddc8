package domain

import (
	"maps"
	"slices"
	"sort"
)

// Well-known defaults of the bundled story.
const (
	DefaultTitleID       = "title"
	DefaultTerminalID    = "end"
	DefaultDynamicPrefix = "s07_"
	DefaultLetterID      = "s13"
)

// Story is the immutable Story Graph plus the tables and ids the engine needs.
// It is supplied once and treated as read-only afterwards.
type Story struct {
	// TitleID is the initial node and the restart target.
	TitleID string
	// TerminalID is the end node that triggers the automatic restart.
	TerminalID string
	// DynamicPrefix is prepended to persona+shadow when resolving a dynamic edge.
	DynamicPrefix string
	// LetterID is the end node that offers a "close letter" affordance.
	LetterID string

	Nodes map[string]Node

	// PersonaKeys and ShadowKeys map a choice target id to a derived key.
	PersonaKeys map[string]string
	ShadowKeys  map[string]string
}

// NewStory builds a story from nodes, applying the default ids.
// Node ids are taken from Node.ID.
func NewStory(nodes ...Node) *Story {
	s := &Story{
		Nodes:       make(map[string]Node, len(nodes)),
		PersonaKeys: map[string]string{},
		ShadowKeys:  map[string]string{},
	}
	for _, n := range nodes {
		s.Nodes[n.ID] = n
	}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills unset ids and tables with the package defaults.
func (s *Story) ApplyDefaults() {
	if s.TitleID == "" {
		s.TitleID = DefaultTitleID
	}
	if s.TerminalID == "" {
		s.TerminalID = DefaultTerminalID
	}
	if s.DynamicPrefix == "" {
		s.DynamicPrefix = DefaultDynamicPrefix
	}
	if s.LetterID == "" {
		s.LetterID = DefaultLetterID
	}
	if s.Nodes == nil {
		s.Nodes = map[string]Node{}
	}
	if s.PersonaKeys == nil {
		s.PersonaKeys = map[string]string{}
	}
	if s.ShadowKeys == nil {
		s.ShadowKeys = map[string]string{}
	}
	for id, n := range s.Nodes {
		if n.ID == "" {
			n.ID = id
			s.Nodes[id] = n
		}
	}
}

// Clone deep-copies s. The copy shares nothing mutable with s.
func (s *Story) Clone() *Story {
	if s == nil {
		return nil
	}
	out := *s
	out.Nodes = make(map[string]Node, len(s.Nodes))
	for id, n := range s.Nodes {
		n.Lines = slices.Clone(n.Lines)
		n.Choices = slices.Clone(n.Choices)
		out.Nodes[id] = n
	}
	out.PersonaKeys = maps.Clone(s.PersonaKeys)
	out.ShadowKeys = maps.Clone(s.ShadowKeys)
	return &out
}

// Node looks a node up by id.
func (s *Story) Node(id string) (Node, bool) {
	n, ok := s.Nodes[id]
	return n, ok
}

// IDs returns every node id in deterministic order.
func (s *Story) IDs() []string {
	ids := make([]string, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedNodes returns every node ordered by id.
func (s *Story) SortedNodes() []Node {
	ids := s.IDs()
	nodes := make([]Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, s.Nodes[id])
	}
	return nodes
}
