package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phkaiser13/phgit/internal/envelope"
	"github.com/phkaiser13/phgit/internal/intparse"
	"github.com/phkaiser13/phgit/internal/status"
)

var kubeCmd = &cobra.Command{
	Use:   "kube",
	Short: "Sync, drift, rollout, multi-cluster, and RBAC operations",
}

func init() {
	rootCmd.AddCommand(kubeCmd)
	kubeCmd.AddCommand(kubeSyncCmd, kubeDriftCmd, kubeRolloutCmd, kubeMultiCmd,
		kubeListClustersCmd, kubeUseClusterCmd, kubeInfoCmd, kubeClusterCmd,
		kubeGrantCmd, kubeRevokeCmd, kubeFailoverCmd)
}

// ── sync ─────────────────────────────────────────────────────────────────

var (
	syncPath                      string
	syncCluster, syncContext      string
	syncDryRun, syncForce         bool
	syncApply, syncSkipSigCheck   bool
)

var kubeSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize manifests from Git to a cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		if syncPath == "" {
			return finishStatus(status.INVALID_ARGS, "sync requires --path")
		}
		cluster := resolveActiveCluster(syncCluster)

		var ctxValue any
		if syncContext != "" {
			ctxValue = syncContext
		}

		env, st := envelope.Open("sync").
			Field("path", syncPath).
			Field("cluster", cluster).
			Field("context", ctxValue).
			Field("dry_run", syncDryRun).
			Field("force", syncForce).
			Field("apply", syncApply).
			Field("skip_signature_verification", syncSkipSigCheck).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "sync envelope composition")
		}

		res := a.Worker.RunSync(cmd.Context(), env)
		return finishWorker("sync complete", res)
	},
}

func init() {
	kubeSyncCmd.Flags().StringVar(&syncPath, "path", "", "manifest path to sync (required)")
	kubeSyncCmd.Flags().StringVar(&syncCluster, "cluster", "", "target cluster (default: active cluster)")
	kubeSyncCmd.Flags().StringVar(&syncContext, "context", "", "override kubeconfig context")
	kubeSyncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "plan only, apply nothing")
	kubeSyncCmd.Flags().BoolVar(&syncForce, "force", false, "force sync over conflicting state")
	kubeSyncCmd.Flags().BoolVar(&syncApply, "apply", false, "apply the computed plan")
	kubeSyncCmd.Flags().BoolVar(&syncSkipSigCheck, "skip-signature-verification", false, "skip commit signature verification")
}

// ── drift ────────────────────────────────────────────────────────────────

var (
	driftOpenPR, driftAutoApply bool
	driftCluster                string
)

var kubeDriftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Detect and optionally remediate configuration drift",
	RunE: func(cmd *cobra.Command, args []string) error {
		if driftOpenPR && driftAutoApply {
			return finishStatus(status.INVALID_ARGS, "--open-pr and --auto-apply are mutually exclusive")
		}
		cluster := resolveActiveCluster(driftCluster)

		env, st := envelope.Open("drift").
			Field("cluster", cluster).
			Field("open_pr", driftOpenPR).
			Field("auto_apply", driftAutoApply).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "drift envelope composition")
		}

		res := a.Worker.RunDriftDetector(cmd.Context(), env)
		return finishWorker("drift check complete", res)
	},
}

func init() {
	kubeDriftCmd.Flags().BoolVar(&driftOpenPR, "open-pr", false, "open a PR with the remediation diff")
	kubeDriftCmd.Flags().BoolVar(&driftAutoApply, "auto-apply", false, "apply remediation automatically")
	kubeDriftCmd.Flags().StringVar(&driftCluster, "cluster", "", "target cluster (default: active cluster)")
}

// ── rollout ──────────────────────────────────────────────────────────────

var kubeRolloutCmd = &cobra.Command{
	Use:   "rollout",
	Short: "Progressive rollout control: start, status, plan, promote, rollback",
}

func init() {
	kubeRolloutCmd.AddCommand(
		rolloutStartCmd, rolloutStatusCmd, rolloutPlanCmd,
		rolloutPromoteCmd, rolloutRollbackCmd,
	)
}

var (
	rolloutStrategy, rolloutApp, rolloutImage string
	rolloutSteps                              []string
	rolloutMetric, rolloutAnalysisWindow      string
	rolloutPublicKey                          string
	rolloutSkipSigCheck                       bool
)

var rolloutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new progressive rollout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if missing, ok := requireFlags(
			flagValue{"--app", rolloutApp},
			flagValue{"--image", rolloutImage},
		); !ok {
			return finishStatus(status.INVALID_ARGS, "rollout start requires "+missing)
		}

		b := envelope.OpenDiscriminant("type", "start", envelope.DefaultCap).
			Field("strategy", rolloutStrategy).
			Field("app", rolloutApp).
			Field("image", rolloutImage).
			Field("steps", rolloutSteps).
			Field("metric", rolloutMetric).
			Field("analysisWindow", rolloutAnalysisWindow).
			Field("skipSigCheck", rolloutSkipSigCheck)
		if rolloutPublicKey != "" {
			b.Field("publicKey", rolloutPublicKey)
		}
		env, st := b.Close()
		if st != status.SUCCESS {
			return finishStatus(st, "rollout start envelope composition")
		}

		res := a.Worker.RunReleaseOrchestrator(cmd.Context(), env)
		return finishWorker("rollout started", res)
	},
}

func init() {
	for _, c := range []*cobra.Command{rolloutStartCmd} {
		c.Flags().StringVar(&rolloutStrategy, "strategy", "canary", "rollout strategy")
		c.Flags().StringVar(&rolloutApp, "app", "", "application name (required)")
		c.Flags().StringVar(&rolloutImage, "image", "", "target image (required)")
		c.Flags().StringSliceVar(&rolloutSteps, "step", nil, "a progressive rollout step weight (repeatable)")
		c.Flags().StringVar(&rolloutMetric, "metric", "", "analysis metric name")
		c.Flags().StringVar(&rolloutAnalysisWindow, "analysis-window", "", "analysis window duration")
		c.Flags().StringVar(&rolloutPublicKey, "public-key", "", "signature verification public key")
		c.Flags().BoolVar(&rolloutSkipSigCheck, "skip-signature-verification", false, "skip commit signature verification")
	}
}

var (
	rolloutStatusID    string
	rolloutStatusWatch bool
)

var rolloutStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a rollout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rolloutStatusID == "" {
			return finishStatus(status.INVALID_ARGS, "rollout status requires --id")
		}
		env, st := envelope.OpenDiscriminant("type", "status", envelope.DefaultCap).
			Field("id", rolloutStatusID).
			Field("watch", rolloutStatusWatch).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "rollout status envelope composition")
		}
		res := a.Worker.RunReleaseOrchestrator(cmd.Context(), env)
		return finishWorker("rollout status retrieved", res)
	},
}

func init() {
	rolloutStatusCmd.Flags().StringVar(&rolloutStatusID, "id", "", "rollout id (required)")
	rolloutStatusCmd.Flags().BoolVar(&rolloutStatusWatch, "watch", false, "block until the rollout reaches a terminal state")
}

var rolloutPlanApp string

var rolloutPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the next rollout step without applying it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rolloutPlanApp == "" {
			return finishStatus(status.INVALID_ARGS, "rollout plan requires --app")
		}
		env, st := envelope.OpenDiscriminant("type", "plan", envelope.DefaultCap).
			Field("app", rolloutPlanApp).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "rollout plan envelope composition")
		}
		res := a.Worker.RunReleaseOrchestrator(cmd.Context(), env)
		return finishWorker("rollout plan computed", res)
	},
}

func init() {
	rolloutPlanCmd.Flags().StringVar(&rolloutPlanApp, "app", "", "application name (required)")
}

var (
	rolloutID         string
	rolloutToRevision string
)

// runRolloutTransition implements promote/rollback, which share a flag
// set. Both always serialize and pass the envelope actually composed for
// this call — the original implementation's promote/rollback branch that
// passed a stale buffer variable to the worker is not reproduced.
func runRolloutTransition(cmd *cobra.Command, kind string) error {
	if rolloutID == "" {
		return finishStatus(status.INVALID_ARGS, "rollout "+kind+" requires --id")
	}
	if rolloutToRevision != "" {
		if _, ok := intparse.Positive(rolloutToRevision); !ok {
			return finishStatus(status.INVALID_ARGS, "--to-revision must be a positive integer")
		}
	}

	b := envelope.OpenDiscriminant("type", kind, envelope.DefaultCap).
		Field("id", rolloutID)
	if rolloutToRevision != "" {
		b.Field("toRevision", rolloutToRevision)
	}

	env, st := b.Close()
	if st != status.SUCCESS {
		return finishStatus(st, "rollout "+kind+" envelope composition")
	}

	res := a.Worker.RunReleaseOrchestrator(cmd.Context(), env)
	return finishWorker("rollout "+kind+" complete", res)
}

var rolloutPromoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Promote a rollout to the next step",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRolloutTransition(cmd, "promote")
	},
}

var rolloutRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back to a prior revision",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRolloutTransition(cmd, "rollback")
	},
}

func init() {
	for _, c := range []*cobra.Command{rolloutPromoteCmd, rolloutRollbackCmd} {
		c.Flags().StringVar(&rolloutID, "id", "", "rollout id (required)")
		c.Flags().StringVar(&rolloutToRevision, "to-revision", "", "target revision (positive integer)")
	}
}

// ── multi apply ──────────────────────────────────────────────────────────

var kubeMultiCmd = &cobra.Command{
	Use:   "multi",
	Short: "Multi-cluster manifest operations",
}

func init() {
	kubeMultiCmd.AddCommand(kubeMultiApplyCmd)
}

var (
	multiClusters string
	multiPath     string
)

var kubeMultiApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a manifest across multiple clusters",
	RunE: func(cmd *cobra.Command, args []string) error {
		clusters := splitCommaList(multiClusters)
		if len(clusters) == 0 || multiPath == "" {
			return finishStatus(status.INVALID_ARGS, "multi apply requires --clusters and --path")
		}
		content, st := readManifest(multiPath)
		if st != status.SUCCESS {
			return finishStatus(st, "reading manifest "+multiPath)
		}

		b := envelope.OpenCap("multi_apply", envelope.LargeCap).
			Field("targets", clusters).
			Field("manifest", content).
			Field("cluster_configs", clusters)
		env, st := b.Close()
		if st != status.SUCCESS {
			return finishStatus(st, "multi apply envelope composition")
		}

		res := a.Worker.RunMultiClusterOrchestrator(cmd.Context(), env)
		return finishWorker(fmt.Sprintf("applied to %d clusters", len(clusters)), res)
	},
}

func init() {
	kubeMultiApplyCmd.Flags().StringVar(&multiClusters, "clusters", "", "comma-separated cluster names (required)")
	kubeMultiApplyCmd.Flags().StringVar(&multiPath, "path", "", "manifest path to apply (required)")
}

// ── list-clusters / use-cluster / info ──────────────────────────────────

var kubeListClustersCmd = &cobra.Command{
	Use:   "list-clusters",
	Short: "List registered clusters",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, e := range a.Clusters.List() {
			fmt.Println(e.Name)
		}
		return nil
	},
}

var kubeUseClusterCmd = &cobra.Command{
	Use:   "use-cluster <name>",
	Short: "Set the active cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := a.Clusters.SetActive(args[0])
		return finishStatus(st, "active cluster set to "+args[0])
	},
}

var kubeInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about the active cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		cluster := resolveActiveCluster("")
		env, st := envelope.Open("info").Field("cluster", cluster).Close()
		if st != status.SUCCESS {
			return finishStatus(st, "info envelope composition")
		}
		res := a.Worker.RunK8sInfo(cmd.Context(), env)
		return finishWorker("cluster info retrieved", res)
	},
}

// ── cluster policy ───────────────────────────────────────────────────────

var kubeClusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Per-cluster policy binding",
}

func init() {
	kubeClusterCmd.AddCommand(kubeClusterPolicyCmd)
}

var clusterPolicyFile string

var kubeClusterPolicyCmd = &cobra.Command{
	Use:   "policy <name>",
	Short: "Bind a policy file to a named cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if clusterPolicyFile == "" {
			return finishStatus(status.INVALID_ARGS, "cluster policy requires --policy-file")
		}
		// The file path is passed through without validating readability
		// here, matching the upstream worker's documented contract.
		env, st := envelope.Open("cluster_policy").
			Field("cluster_name", args[0]).
			Field("policy_file", clusterPolicyFile).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "cluster policy envelope composition")
		}
		res := a.Worker.RunRBACManager(cmd.Context(), env)
		return finishWorker("cluster policy bound", res)
	},
}

func init() {
	kubeClusterPolicyCmd.Flags().StringVar(&clusterPolicyFile, "policy-file", "", "policy file path (required)")
}

// ── grant / revoke / failover ───────────────────────────────────────────

var (
	rbacRole, rbacSubject, rbacCluster string
)

func runRBACChange(cmd *cobra.Command, action string) error {
	if missing, ok := requireFlags(
		flagValue{"--role", rbacRole},
		flagValue{"--subject", rbacSubject},
	); !ok {
		return finishStatus(status.INVALID_ARGS, action+" requires "+missing)
	}
	cluster := resolveActiveCluster(rbacCluster)

	env, st := envelope.Open(action).
		Field("role", rbacRole).
		Field("subject", rbacSubject).
		Field("cluster", cluster).
		Close()
	if st != status.SUCCESS {
		return finishStatus(st, action+" envelope composition")
	}
	res := a.Worker.RunRBACManager(cmd.Context(), env)
	return finishWorker(action+" complete", res)
}

var kubeGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Grant a role to a subject",
	RunE:  func(cmd *cobra.Command, args []string) error { return runRBACChange(cmd, "grant") },
}

var kubeRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke a role from a subject",
	RunE:  func(cmd *cobra.Command, args []string) error { return runRBACChange(cmd, "revoke") },
}

func init() {
	for _, c := range []*cobra.Command{kubeGrantCmd, kubeRevokeCmd} {
		c.Flags().StringVar(&rbacRole, "role", "", "role name (required)")
		c.Flags().StringVar(&rbacSubject, "subject", "", "subject (required)")
		c.Flags().StringVar(&rbacCluster, "cluster", "", "target cluster (default: active cluster)")
	}
}

var failoverApp, failoverFrom, failoverTo string

var kubeFailoverCmd = &cobra.Command{
	Use:   "failover",
	Short: "Fail an application over between clusters",
	RunE: func(cmd *cobra.Command, args []string) error {
		if missing, ok := requireFlags(
			flagValue{"--app", failoverApp},
			flagValue{"--from", failoverFrom},
			flagValue{"--to", failoverTo},
		); !ok {
			return finishStatus(status.INVALID_ARGS, "failover requires "+missing)
		}
		env, st := envelope.Open("failover").
			Field("app", failoverApp).
			Field("from", failoverFrom).
			Field("to", failoverTo).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "failover envelope composition")
		}
		res := a.Worker.RunRBACManager(cmd.Context(), env)
		return finishWorker("failover complete", res)
	},
}

func init() {
	kubeFailoverCmd.Flags().StringVar(&failoverApp, "app", "", "application name (required)")
	kubeFailoverCmd.Flags().StringVar(&failoverFrom, "from", "", "source cluster (required)")
	kubeFailoverCmd.Flags().StringVar(&failoverTo, "to", "", "destination cluster (required)")
}
