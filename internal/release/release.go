// Package release defines the rollout/release descriptor consumed by the
// "kube rollout" leaves and serialized into envelopes for
// run_release_orchestrator.
package release

// Descriptor is a virtual record describing a progressive rollout. Not
// every field applies to every action; callers set only what their
// subcommand's flag table defines.
type Descriptor struct {
	Strategy        string
	App             string
	Image           string
	Steps           []string
	Metric          string
	AnalysisWindow  string
	PublicKey       string
	SkipSigCheck    bool
	ID              string
	ToRevision      string
	Watch           bool
	PreviewURL      string
}
