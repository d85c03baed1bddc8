/*
Package session runs many independent reading sessions side by side.

Each session owns its own engine. Signals for one session are serialized in
arrival order; signals for different sessions never block each other. A
DistributedLocker can be added so that several replicas sharing a Redis
instance never interleave transitions of the same session.
*/
package session
