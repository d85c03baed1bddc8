package dto

import (
	"fmt"
	"maps"

	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// StoryMetadata is the story-level header shared by story files and the
// manifest document of a node directory.
// It uses "mapstructure" tags so YAML, JSON and frontmatter decode alike;
// the json and yaml tags are only used when writing.
type StoryMetadata struct {
	Title         string            `json:"title,omitempty" mapstructure:"title" yaml:"title,omitempty"`
	Terminal      string            `json:"terminal,omitempty" mapstructure:"terminal" yaml:"terminal,omitempty"`
	DynamicPrefix string            `json:"dynamic_prefix,omitempty" mapstructure:"dynamic_prefix" yaml:"dynamic_prefix,omitempty"`
	Letter        string            `json:"letter,omitempty" mapstructure:"letter" yaml:"letter,omitempty"`
	PersonaKeys   map[string]string `json:"persona_keys,omitempty" mapstructure:"persona_keys" yaml:"persona_keys,omitempty"`
	ShadowKeys    map[string]string `json:"shadow_keys,omitempty" mapstructure:"shadow_keys" yaml:"shadow_keys,omitempty"`
}

// StoryFile is a whole story in one document.
type StoryFile struct {
	StoryMetadata `mapstructure:",squash" yaml:",inline"`
	Nodes         map[string]NodeMetadata `json:"nodes" mapstructure:"nodes" yaml:"nodes"`
}

// NodeMetadata is one node as written by authors.
type NodeMetadata struct {
	ID      string           `json:"id,omitempty" mapstructure:"id" yaml:"id,omitempty"`
	Type    string           `json:"type" mapstructure:"type" yaml:"type"`
	Lines   []string         `json:"lines,omitempty" mapstructure:"lines" yaml:"lines,omitempty"`
	Next    string           `json:"next,omitempty" mapstructure:"next" yaml:"next,omitempty"`
	Choices []ChoiceMetadata `json:"choices,omitempty" mapstructure:"choices" yaml:"choices,omitempty"`
}

// ChoiceMetadata is one option of a choice node.
type ChoiceMetadata struct {
	Label string `json:"label" mapstructure:"label" yaml:"label"`
	Next  string `json:"next" mapstructure:"next" yaml:"next"`
}

// Decode maps a generic document (as produced by yaml or json) onto out,
// rejecting unknown keys.
func Decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// ToDomain converts node metadata. id is used when the metadata has none.
func (m NodeMetadata) ToDomain(id string) (domain.Node, error) {
	if m.ID != "" {
		id = m.ID
	}
	if id == "" {
		return domain.Node{}, fmt.Errorf("node missing ID")
	}
	n := domain.Node{
		ID:    id,
		Type:  domain.NodeType(m.Type),
		Lines: m.Lines,
		Next:  domain.ParseEdge(m.Next),
	}
	for _, c := range m.Choices {
		n.Choices = append(n.Choices, domain.Choice{Label: c.Label, Next: c.Next})
	}
	return n, nil
}

// Apply copies the header onto s. Unset fields keep their defaults.
func (m StoryMetadata) Apply(s *domain.Story) {
	s.TitleID = m.Title
	s.TerminalID = m.Terminal
	s.DynamicPrefix = m.DynamicPrefix
	s.LetterID = m.Letter
	s.PersonaKeys = maps.Clone(m.PersonaKeys)
	s.ShadowKeys = maps.Clone(m.ShadowKeys)
	s.ApplyDefaults()
}

// ToDomain converts a whole story file.
func (f StoryFile) ToDomain() (*domain.Story, error) {
	s := &domain.Story{Nodes: make(map[string]domain.Node, len(f.Nodes))}
	for key, meta := range f.Nodes {
		n, err := meta.ToDomain(key)
		if err != nil {
			return nil, err
		}
		if _, dup := s.Nodes[n.ID]; dup {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined twice", n.ID)
		}
		s.Nodes[n.ID] = n
	}
	f.StoryMetadata.Apply(s)
	return s, nil
}

// FromDomain is the inverse of StoryFile.ToDomain.
func FromDomain(s *domain.Story) StoryFile {
	f := StoryFile{
		StoryMetadata: StoryMetadata{
			Title:         s.TitleID,
			Terminal:      s.TerminalID,
			DynamicPrefix: s.DynamicPrefix,
			Letter:        s.LetterID,
			PersonaKeys:   s.PersonaKeys,
			ShadowKeys:    s.ShadowKeys,
		},
		Nodes: make(map[string]NodeMetadata, len(s.Nodes)),
	}
	for id, n := range s.Nodes {
		meta := NodeMetadata{Type: string(n.Type), Lines: n.Lines, Next: n.Next.String()}
		for _, c := range n.Choices {
			meta.Choices = append(meta.Choices, ChoiceMetadata{Label: c.Label, Next: c.Next})
		}
		f.Nodes[id] = meta
	}
	return f
}
