/*
Package observability turns pipeline lifecycle events into metrics and logs.

Both Metrics.Hooks and LogHooks return domain.LifecycleHooks; combine them with
LifecycleHooks.Merge and pass the result to depsnap.WithLifecycleHooks.
*/
package observability
