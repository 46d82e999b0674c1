// Package health checks whether the service's backing dependencies are
// reachable.
//
// The registry of dependency targets is derived from the configuration
// snapshot. Every check fans out one TCP probe per target, plus an optional
// datastore readiness check, and waits for all of them to settle before
// deciding. One failing dependency never cancels or hides the result of
// another.
package health
