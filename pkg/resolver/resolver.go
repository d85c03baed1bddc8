// Package resolver holds the persona and shadow key tables and composes
// dynamic node ids from the keys a reader collected.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/tapestry/pkg/domain"
)

// MissingKeyError reports which keys were absent when a dynamic edge was resolved.
type MissingKeyError struct {
	Persona bool
	Shadow  bool
}

func (e *MissingKeyError) Error() string {
	var missing []string
	if e.Persona {
		missing = append(missing, "persona")
	}
	if e.Shadow {
		missing = append(missing, "shadow")
	}
	return fmt.Sprintf("%v: missing %s", domain.ErrKeysMissing, strings.Join(missing, " and "))
}

func (e *MissingKeyError) Unwrap() error {
	return domain.ErrKeysMissing
}

// Keys is the outcome of resolving a single choice target.
// An empty value means that table did not derive a key.
type Keys struct {
	Persona string
	Shadow  string
}

// Resolver consults the two tables read-only.
type Resolver struct {
	persona map[string]string
	shadow  map[string]string
}

// New copies the tables so later edits to the caller's maps have no effect.
func New(persona, shadow map[string]string) *Resolver {
	r := &Resolver{
		persona: make(map[string]string, len(persona)),
		shadow:  make(map[string]string, len(shadow)),
	}
	for k, v := range persona {
		r.persona[k] = v
	}
	for k, v := range shadow {
		r.shadow[k] = v
	}
	return r
}

// FromStory builds a resolver over the story's tables.
func FromStory(s *domain.Story) *Resolver {
	return New(s.PersonaKeys, s.ShadowKeys)
}

// Resolve looks target up in both tables independently.
func (r *Resolver) Resolve(target string) Keys {
	return Keys{
		Persona: r.persona[target],
		Shadow:  r.shadow[target],
	}
}

// PersonaValues returns the distinct persona keys.
func (r *Resolver) PersonaValues() []string {
	return distinct(r.persona)
}

// ShadowValues returns the distinct shadow keys.
func (r *Resolver) ShadowValues() []string {
	return distinct(r.shadow)
}

// Candidates lists every id a dynamic edge may resolve to, persona-major.
func (r *Resolver) Candidates(prefix string) []string {
	personas, shadows := r.PersonaValues(), r.ShadowValues()
	out := make([]string, 0, len(personas)*len(shadows))
	for _, p := range personas {
		for _, s := range shadows {
			out = append(out, prefix+p+s)
		}
	}
	return out
}

// Compose concatenates prefix, persona and shadow in that order.
// Both keys must be non-empty.
func Compose(prefix, persona, shadow string) (string, error) {
	if persona == "" || shadow == "" {
		return "", &MissingKeyError{Persona: persona == "", Shadow: shadow == ""}
	}
	return prefix + persona + shadow, nil
}

// IsMissingKey reports whether err comes from Compose.
func IsMissingKey(err error) bool {
	var mk *MissingKeyError
	return errors.As(err, &mk)
}
