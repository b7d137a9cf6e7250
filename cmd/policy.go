package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/phkaiser13/phgit/internal/envelope"
	"github.com/phkaiser13/phgit/internal/intparse"
	"github.com/phkaiser13/phgit/internal/status"
)

// policyCmd implements the "policy" group, which spec.md §4.7 lists only
// by name; the full flag tables below are grounded in
// original_source/.../policy_handler.c per SPEC_FULL.md §12.
var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Evaluate and apply policy-as-code against manifests and clusters",
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyScanCmd, policyApplyCmd, policyTestCmd)
}

// ── policy scan ──────────────────────────────────────────────────────────

var (
	scanPath, scanPolicyRepo string
	scanFailOnViolation      bool
)

var policyScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan manifests under --path against policy rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		if missing, ok := requireFlags(
			flagValue{"--path", scanPath},
			flagValue{"--policy-repo", scanPolicyRepo},
		); !ok {
			return finishStatus(status.INVALID_ARGS, "policy scan requires "+missing)
		}

		params, err := json.Marshal(struct {
			ManifestPath    string `json:"manifest_path"`
			PolicyRepoPath  string `json:"policy_repo_path,omitempty"`
			FailOnViolation bool   `json:"fail_on_violation"`
		}{
			ManifestPath:    scanPath,
			PolicyRepoPath:  scanPolicyRepo,
			FailOnViolation: scanFailOnViolation,
		})
		if err != nil {
			return finishStatus(status.MEMORY_ALLOC, "policy scan parameters composition")
		}

		env, st := envelope.Open("scan").
			Field("parameters", json.RawMessage(params)).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "policy scan envelope composition")
		}

		res := a.Worker.RunPolicyEngine(cmd.Context(), env)
		return finishWorker("policy scan complete", res)
	},
}

func init() {
	policyScanCmd.Flags().StringVar(&scanPath, "path", "", "manifest path to scan (required)")
	policyScanCmd.Flags().StringVar(&scanPolicyRepo, "policy-repo", "", "policy rule repository")
	policyScanCmd.Flags().BoolVar(&scanFailOnViolation, "fail-on-violation", false, "non-zero exit on any violation")
}

// ── policy apply ─────────────────────────────────────────────────────────

var (
	applyMode, applyPolicyRepo, applyCluster string
)

var policyApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply policy rules to a cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		if applyMode == "" {
			return finishStatus(status.INVALID_ARGS, "policy apply requires --mode")
		}

		// Optional fields are appended only when present (omitted key, not
		// JSON null) — this worker's documented contract differs from
		// "kube sync"'s explicit-null `context` field; both are preserved
		// as each is its own worker's contract, per SPEC_FULL.md §12. Unlike
		// most cluster-scoped commands, apply never falls back to the active
		// cluster: cluster_name is present only when --cluster is explicit.
		fields := map[string]any{"mode": applyMode}
		if applyPolicyRepo != "" {
			fields["policy_repo"] = applyPolicyRepo
		}
		if applyCluster != "" {
			fields["cluster_name"] = applyCluster
		}
		params, err := json.Marshal(fields)
		if err != nil {
			return finishStatus(status.MEMORY_ALLOC, "policy apply parameters composition")
		}

		env, st := envelope.Open("apply").
			Field("parameters", json.RawMessage(params)).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "policy apply envelope composition")
		}

		res := a.Worker.RunPolicyEngine(cmd.Context(), env)
		return finishWorker("policy applied", res)
	},
}

func init() {
	policyApplyCmd.Flags().StringVar(&applyMode, "mode", "", "enforcement mode (required)")
	policyApplyCmd.Flags().StringVar(&applyPolicyRepo, "policy-repo", "", "policy rule repository")
	policyApplyCmd.Flags().StringVar(&applyCluster, "cluster", "", "target cluster (omitted from the request unless set)")
}

// ── policy test ──────────────────────────────────────────────────────────

var (
	testPolicyRepo string
	testPR         string
)

var policyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Dry-run policy evaluation against a pull request",
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, ok := intparse.Positive(testPR)
		if !ok {
			return finishStatus(status.INVALID_ARGS, "policy test requires --pr as a positive integer")
		}

		fields := map[string]any{"pr_number": pr}
		if testPolicyRepo != "" {
			fields["policy_repo_path"] = testPolicyRepo
		}
		params, err := json.Marshal(fields)
		if err != nil {
			return finishStatus(status.MEMORY_ALLOC, "policy test parameters composition")
		}

		env, st := envelope.Open("test").
			Field("parameters", json.RawMessage(params)).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "policy test envelope composition")
		}

		res := a.Worker.RunPolicyEngine(cmd.Context(), env)
		return finishWorker("policy test complete", res)
	},
}

func init() {
	policyTestCmd.Flags().StringVar(&testPolicyRepo, "policy-repo", "", "policy rule repository")
	policyTestCmd.Flags().StringVar(&testPR, "pr", "", "pull request number (required, positive integer)")
}
