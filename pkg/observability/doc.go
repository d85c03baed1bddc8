/*
Package observability turns engine lifecycle events into Prometheus metrics.

Metrics.Hooks returns a domain.LifecycleHooks value that can be passed to
tapestry.WithLifecycleHooks alongside any other hooks.
*/
package observability
