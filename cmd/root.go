package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phkaiser13/phgit/internal/dispatch"
	"github.com/phkaiser13/phgit/internal/status"
)

var projectDir string

var rootCmd = &cobra.Command{
	Use:   "phgit",
	Short: "phgit — a polyglot command-line control plane for Kubernetes GitOps workflows",
	Long: `phgit synchronizes manifests from Git to clusters, detects and remediates
drift, drives progressive rollouts, manages multi-cluster fleets, rotates
secrets, evaluates policy-as-code, orchestrates ephemeral PR preview
environments, scales CI runners, and enforces RBAC.

  phgit kube sync --path ./manifests --apply
  phgit kube rollout promote --id rel-42
  phgit preview create --pr 17 --repo https://github.com/org/repo.git
  phgit secrets sync --provider vault --k8s-secret app/creds --path KEY=path
  phgit runners scale --min 2 --max 10
  phgit menu`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	RunE:          runFallback,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project-dir", "p", "", "phgit project root (default: current directory)")
}

// Execute runs the root command, translating the final Status into a
// process exit code. SUCCESS maps to 0; every other status is non-zero.
func Execute() int {
	cobra.OnInitialize(func() {
		dir := projectDir
		if dir == "" {
			if cwd, err := os.Getwd(); err == nil {
				dir = cwd
			}
		}
		a = newApp(dir)
	})

	// A group invoked without a subcommand is INVALID_ARGS rather than
	// cobra's default of printing help and exiting 0.
	for _, group := range rootCmd.Commands() {
		if group.HasSubCommands() && !group.Runnable() {
			group.RunE = func(cmd *cobra.Command, args []string) error {
				return finishStatus(status.INVALID_ARGS, "'"+cmd.Name()+"' requires a subcommand")
			}
		}
	}

	if err := rootCmd.Execute(); err != nil {
		if st, ok := err.(status.Status); ok {
			if st != status.SUCCESS {
				fmt.Fprintln(os.Stderr, st.Error())
			}
			return exitCodeFor(st)
		}
		fmt.Fprintln(os.Stderr, err)
		return exitCodeFor(status.GENERAL)
	}
	return 0
}

// exitCodeFor maps a Status to a process exit code. The mapping is
// implementation-defined but stable: SUCCESS is always 0, every failure
// status is its own distinct non-zero code so scripts can branch on it.
func exitCodeFor(s status.Status) int {
	if s == status.SUCCESS {
		return 0
	}
	return int(s)
}

// runFallback is reached for any top-level argument cobra did not resolve
// to a registered group subcommand: it implements dispatch stages 1, 3, 4
// and 5 (a recognized group, including its required-subcommand check set
// up in Execute, is handled by that group's own cobra command, not here).
func runFallback(cmd *cobra.Command, args []string) error {
	d := &dispatch.Dispatcher{
		Scripted: a.Scripted,
		Native:   a.Native,
		OnError: func(msg string) {
			a.Printer.Error(msg, "")
		},
	}
	st := d.Run(cmd.Context(), args)
	if st != status.SUCCESS {
		return st
	}
	return nil
}
