/*
Package domain contains the core domain models of the Tapestry narrative engine.

It defines the Story Graph (nodes, edges and choices), the derived presentation
flags and the read-only Snapshot a renderer consumes. This package is kept pure
and free of I/O, persistence or timing concerns.

# Key Entities

  - Node: A screen of the story (title, narration, choice, reveal or end).
  - Edge: The outgoing link of a node, either a concrete id or a dynamic composition.
  - Story: The immutable graph plus the key tables and the well-known node ids.
  - Flags: Transient reveal flags recomputed on every navigation.
  - Snapshot: What a renderer reads after each signal.
*/
package domain
