// Package preview defines the preview-environment descriptor used across
// the preview lifecycle's create/status/destroy/logs/exec/extend/gc
// actions.
package preview

// Descriptor is a virtual record describing a PR preview environment.
type Descriptor struct {
	PRNumber      int
	GitRepoURL    string
	CommitSHA     string
	NewTTLHours   int
	ComponentName string
	CommandToExec []string
	Annotations   map[string]string
}

// TraceAnnotationKey is the annotation key distributed-trace context is
// propagated under when a preview environment is created.
const TraceAnnotationKey = "ph.io/trace-context"
