package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/phkaiser13/phgit/internal/envelope"
	"github.com/phkaiser13/phgit/internal/status"
)

var runnersCmd = &cobra.Command{
	Use:   "runners",
	Short: "CI runner pool scaling and autoscaler installation",
}

var runnersHpaCmd = &cobra.Command{
	Use:   "hpa",
	Short: "Runner HorizontalPodAutoscaler management",
}

func init() {
	rootCmd.AddCommand(runnersCmd)
	runnersCmd.AddCommand(runnersScaleCmd, runnersHpaCmd)
	runnersHpaCmd.AddCommand(runnersHpaInstallCmd)
}

// ── runners scale ────────────────────────────────────────────────────────

var (
	scaleMin, scaleMax int
	scaleMetric        string
	scaleCluster       string
)

var runnersScaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Adjust runner pool scaling parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("min") || !cmd.Flags().Changed("max") {
			return finishStatus(status.INVALID_ARGS, "scale requires --min and --max")
		}
		if scaleMin < 0 || scaleMax < 0 {
			return finishStatus(status.INVALID_ARGS, "--min and --max must be non-negative")
		}
		if scaleMin > scaleMax {
			return finishStatus(status.INVALID_ARGS, "--min cannot be greater than --max")
		}

		cluster := resolveActiveCluster(scaleCluster)
		if cluster == "" {
			return finishStatus(status.NOT_FOUND, "no cluster specified and no default cluster is set")
		}

		params, err := json.Marshal(struct {
			MinReplicas int    `json:"min_replicas"`
			MaxReplicas int    `json:"max_replicas"`
			Metric      string `json:"metric"`
			Cluster     string `json:"cluster"`
		}{scaleMin, scaleMax, scaleMetric, cluster})
		if err != nil {
			return finishStatus(status.MEMORY_ALLOC, "scale parameters composition")
		}

		env, st := envelope.Open("scale").
			Field("parameters", json.RawMessage(params)).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "scale envelope composition")
		}

		res := a.Worker.RunRunnerManager(cmd.Context(), env)
		return finishWorker("runner scaling configuration applied", res)
	},
}

func init() {
	runnersScaleCmd.Flags().IntVar(&scaleMin, "min", 0, "minimum replica count (required)")
	runnersScaleCmd.Flags().IntVar(&scaleMax, "max", 0, "maximum replica count (required)")
	runnersScaleCmd.Flags().StringVar(&scaleMetric, "autoscale-metric", "build_queue_length", "autoscaling metric name")
	runnersScaleCmd.Flags().StringVar(&scaleCluster, "cluster", "", "target cluster (default: active cluster)")
}

// ── runners hpa install ─────────────────────────────────────────────────

var (
	hpaNamespace, hpaMetric, hpaTarget string
)

var runnersHpaInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the runner pool HorizontalPodAutoscaler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if hpaTarget == "" {
			return finishStatus(status.INVALID_ARGS, "--target is required for 'runners hpa install'")
		}

		params, err := json.Marshal(struct {
			Namespace string `json:"namespace"`
			Metric    string `json:"metric"`
			Target    string `json:"target"`
		}{hpaNamespace, hpaMetric, hpaTarget})
		if err != nil {
			return finishStatus(status.MEMORY_ALLOC, "hpa install parameters composition")
		}

		env, st := envelope.Open("hpa_install").
			Field("parameters", json.RawMessage(params)).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "hpa install envelope composition")
		}

		res := a.Worker.RunRunnerManager(cmd.Context(), env)
		return finishWorker("runner HPA resources installed", res)
	},
}

func init() {
	runnersHpaInstallCmd.Flags().StringVar(&hpaNamespace, "namespace", "phgit-runner", "target namespace")
	runnersHpaInstallCmd.Flags().StringVar(&hpaMetric, "metric", "phgit_build_queue_length", "autoscaling metric name")
	runnersHpaInstallCmd.Flags().StringVar(&hpaTarget, "target", "", "autoscaling target value (required)")
}
