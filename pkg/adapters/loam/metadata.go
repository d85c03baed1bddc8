package loam

import (
	"github.com/aretw0/tapestry/internal/dto"
)

// ManifestType marks the document that carries story-level settings.
const ManifestType = "story"

// DocumentMetadata is the frontmatter of one document in a story directory.
// Node documents use the node keys; the manifest (type: story) uses the
// story keys.
type DocumentMetadata struct {
	dto.NodeMetadata  `mapstructure:",squash"`
	dto.StoryMetadata `mapstructure:",squash"`
}

// IsManifest reports whether the document holds story settings.
func (m DocumentMetadata) IsManifest() bool {
	return m.Type == ManifestType
}
