package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phkaiser13/phgit/internal/envelope"
	"github.com/phkaiser13/phgit/internal/status"
)

// healthCmd implements the combined "health"/"autoheal" group: §4.7 states
// the two names share one handler. "health" is registered as the primary
// name and "autoheal" as an alias so both invocation spellings route to
// the same cobra command tree.
var healthCmd = &cobra.Command{
	Use:     "health",
	Aliases: []string{"autoheal"},
	Short:   "Application health checks and auto-heal rule management",
}

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.AddCommand(healthCheckCmd, healthEnableCmd)
}

// ── health check ─────────────────────────────────────────────────────────

var (
	checkApp, checkCluster string
	checkFull              bool
)

var healthCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check application health",
	RunE: func(cmd *cobra.Command, args []string) error {
		if missing, ok := requireFlags(
			flagValue{"--app", checkApp},
			flagValue{"--cluster", checkCluster},
		); !ok {
			return finishStatus(status.INVALID_ARGS, "health check requires "+missing)
		}

		params, err := json.Marshal(struct {
			App       string `json:"app"`
			Cluster   string `json:"cluster"`
			FullCheck bool   `json:"full_check"`
		}{checkApp, checkCluster, checkFull})
		if err != nil {
			return finishStatus(status.MEMORY_ALLOC, "health check parameters composition")
		}

		env, st := envelope.Open("check").
			Field("parameters", json.RawMessage(params)).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "health check envelope composition")
		}

		res := a.Worker.RunHealthManager(cmd.Context(), env)
		return finishWorker("health check complete", res)
	},
}

func init() {
	healthCheckCmd.Flags().StringVar(&checkApp, "app", "", "application name (required)")
	healthCheckCmd.Flags().StringVar(&checkCluster, "cluster", "", "target cluster (required)")
	healthCheckCmd.Flags().BoolVar(&checkFull, "full", false, "run the full diagnostic suite")
}

// ── health enable ────────────────────────────────────────────────────────

var (
	enableOn       string
	enableActions  []string
	enableCooldown string
)

// autoHealRuleTemplate is the fixed YAML custom resource template §4.7
// describes: the resource name is derived from the trigger, and the
// caller is responsible for the result being valid DNS-1123 (the trigger
// name is passed through unvalidated, matching the original).
const autoHealRuleTemplate = `apiVersion: ph.kaiser.io/v1alpha1
kind: phAutoHealRule
metadata:
  name: autoheal-rule-%s
  namespace: ph-operator
spec:
  triggerName: %q
  cooldown: %q
  actions:
%s`

var healthEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable an auto-heal rule for a trigger",
	RunE: func(cmd *cobra.Command, args []string) error {
		if missing, ok := requireFlags(
			flagValue{"--on", enableOn},
			flagValue{"--cooldown", enableCooldown},
		); !ok {
			return finishStatus(status.INVALID_ARGS, "health enable requires "+missing)
		}
		if len(enableActions) == 0 {
			return finishStatus(status.INVALID_ARGS, "health enable requires at least one --actions")
		}

		var actions strings.Builder
		for _, script := range enableActions {
			fmt.Fprintf(&actions, "    - runbook:\n        scriptName: %s\n", script)
		}

		yaml := fmt.Sprintf(autoHealRuleTemplate, enableOn, enableOn, enableCooldown, actions.String())

		st := a.Applier.Apply(cmd.Context(), []byte(yaml))
		return finishStatus(st, "autoheal rule 'autoheal-rule-"+enableOn+"' enabled")
	},
}

func init() {
	healthEnableCmd.Flags().StringVar(&enableOn, "on", "", "trigger name (required)")
	healthEnableCmd.Flags().StringArrayVar(&enableActions, "actions", nil, "runbook script name to run (repeatable, required)")
	healthEnableCmd.Flags().StringVar(&enableCooldown, "cooldown", "", "cooldown duration, e.g. '10m' (required)")
}
