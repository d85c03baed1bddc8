package file_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tapestry/pkg/adapters/file"
	"github.com/aretw0/tapestry/pkg/domain"
	contract "github.com/aretw0/tapestry/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storyYAML = `
title: cover
terminal: fin
persona_keys:
  s02a: A
shadow_keys:
  s02a: X
nodes:
  cover:
    type: title
    lines:
      - Tapestry
      - ""
      - a short story
    next: s01
  s01:
    type: choice
    lines: ["Who are you?"]
    choices:
      - label: wanderer
        next: s02a
  s02a:
    type: reveal
    lines: ["A wanderer."]
    next: __DYNAMIC_S07__
  s07_AX:
    type: end
    lines: ["Dear reader,"]
    next: fin
  fin:
    type: end
`

const storyJSON = `{
  "title": "cover",
  "terminal": "fin",
  "persona_keys": {"s02a": "A"},
  "shadow_keys": {"s02a": "X"},
  "nodes": {
    "cover": {"type": "title", "lines": ["Tapestry", "", "a short story"], "next": "s01"},
    "s01": {"type": "choice", "lines": ["Who are you?"], "choices": [{"label": "wanderer", "next": "s02a"}]},
    "s02a": {"type": "reveal", "lines": ["A wanderer."], "next": "__DYNAMIC_S07__"},
    "s07_AX": {"type": "end", "lines": ["Dear reader,"], "next": "fin"},
    "fin": {"type": "end"}
  }
}`

func expectedStory() *domain.Story {
	s := domain.NewStory(
		domain.Node{ID: "cover", Type: domain.NodeTypeTitle, Lines: []string{"Tapestry", "", "a short story"}, Next: domain.To("s01")},
		domain.Node{ID: "s01", Type: domain.NodeTypeChoice, Lines: []string{"Who are you?"}, Choices: []domain.Choice{{Label: "wanderer", Next: "s02a"}}},
		domain.Node{ID: "s02a", Type: domain.NodeTypeReveal, Lines: []string{"A wanderer."}, Next: domain.Dynamic()},
		domain.Node{ID: "s07_AX", Type: domain.NodeTypeEnd, Lines: []string{"Dear reader,"}, Next: domain.To("fin")},
		domain.Node{ID: "fin", Type: domain.NodeTypeEnd},
	)
	s.TitleID = "cover"
	s.TerminalID = "fin"
	s.PersonaKeys = map[string]string{"s02a": "A"}
	s.ShadowKeys = map[string]string{"s02a": "X"}
	return s
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_YAML_Contract(t *testing.T) {
	contract.StoryLoaderContract(t, file.New(writeFile(t, "story.yaml", storyYAML)), expectedStory())
}

func TestLoader_JSON_Contract(t *testing.T) {
	contract.StoryLoaderContract(t, file.New(writeFile(t, "story.json", storyJSON)), expectedStory())
}

func TestLoader_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := file.New(filepath.Join(t.TempDir(), "missing.yaml")).Load(ctx)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = file.New(writeFile(t, "bad.yaml", "nodes: [")).Load(ctx)
	assert.ErrorContains(t, err, "failed to parse story yaml")

	_, err = file.New(writeFile(t, "empty.yaml", "")).Load(ctx)
	assert.ErrorContains(t, err, "story document is empty")

	_, err = file.New(writeFile(t, "typo.yaml", "nodes:\n  a:\n    type: end\n    nxt: b\n")).Load(ctx)
	assert.ErrorContains(t, err, "nxt")
}

func TestEncode_RoundTrip(t *testing.T) {
	for _, format := range []file.Format{file.FormatYAML, file.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, file.Encode(&buf, expectedStory(), format))

			got, err := file.Parse(buf.Bytes(), format)
			require.NoError(t, err)
			assert.Equal(t, expectedStory(), got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, file.FormatJSON, file.FormatFromPath("a/story.JSON"))
	assert.Equal(t, file.FormatYAML, file.FormatFromPath("story.yml"))
	assert.True(t, file.IsStoryFile("x.yaml"))
	assert.False(t, file.IsStoryFile("x.md"))
}
