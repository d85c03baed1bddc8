/*
Package ports defines the driven ports (interfaces) for the Tapestry engine.

These interfaces decouple the narrative core from where stories come from and
where session activity goes, so the engine runs the same against an embedded
graph, a story file, or a directory of markdown nodes.

# Key Interfaces

  - StoryLoader: Produces the immutable Story Graph (e.g., from Memory, a file or Loam).
  - DistributedLocker: Serializes signals for one session across replicas.
  - EventPublisher: Ships lifecycle events and snapshot diffs to other processes.
*/
package ports
