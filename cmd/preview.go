package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/phkaiser13/phgit/internal/envelope"
	"github.com/phkaiser13/phgit/internal/intparse"
	"github.com/phkaiser13/phgit/internal/preview"
	"github.com/phkaiser13/phgit/internal/status"
)

// previewCmd implements §4.8, the richest subsystem: create / status /
// teardown / logs / exec / extend / gc over a PR preview environment.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Ephemeral pull-request preview environment lifecycle",
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.AddCommand(
		previewCreateCmd, previewStatusCmd, previewTeardownCmd,
		previewLogsCmd, previewExecCmd, previewExtendCmd, previewGCCmd,
	)
}

// parsePR validates --pr per §4.8: a strict positive integer, no trailing
// garbage.
func parsePR(s string) (int, error) {
	n, ok := intparse.Positive(s)
	if !ok {
		return 0, fmt.Errorf("--pr must be a positive integer")
	}
	return n, nil
}

// ── preview create ───────────────────────────────────────────────────────

var (
	createPR, createTTL               string
	createRepo, createImage, createSHA string
	createCopyURL                     bool
)

var previewCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a preview environment for a pull request",
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, err := parsePR(createPR)
		if err != nil || createRepo == "" {
			return finishStatus(status.INVALID_ARGS, "preview create requires --pr (positive integer) and --repo")
		}

		b := envelope.Open("create").
			Field("pr_number", pr).
			Field("git_repo_url", createRepo)
		if createImage != "" {
			b.Field("image", createImage)
		}
		if createSHA != "" {
			b.Field("commit_sha", createSHA)
		}
		if createTTL != "" {
			ttl, ok := intparse.NonNegative(createTTL)
			if !ok {
				return finishStatus(status.INVALID_ARGS, "--ttl must be a non-negative integer")
			}
			b.Field("new_ttl", ttl)
		}

		// Trace propagation on create only: §4.8 extracts traceparent and
		// embeds it as a single annotation; a failed trace source (null
		// result) is not an error, the handler proceeds without it.
		if tp, ok := a.Trace.StartSpan(cmd.Context(), "preview create"); ok {
			a.Trace.Free()
			annotations, mErr := json.Marshal(map[string]string{preview.TraceAnnotationKey: tp})
			if mErr == nil {
				b.Field("annotations", json.RawMessage(annotations))
			}
		} else {
			a.Trace.Free()
		}

		env, st := b.Close()
		if st != status.SUCCESS {
			return finishStatus(st, "preview create envelope composition")
		}

		res := a.Worker.RunPreviewManager(cmd.Context(), env)
		if err := finishWorker(fmt.Sprintf("preview environment for PR #%d created", pr), res); err != nil {
			return err
		}

		if createCopyURL {
			url := fmt.Sprintf("https://pr-%d.preview.phgit.dev", pr)
			// Best-effort: headless/CI environments have no clipboard, and
			// that is not a failure of the preview-create operation itself.
			if clipErr := clipboard.WriteAll(url); clipErr == nil {
				a.Printer.Success("preview URL copied to clipboard: " + url)
			}
		}
		return nil
	},
}

func init() {
	previewCreateCmd.Flags().StringVar(&createPR, "pr", "", "pull request number (required, positive integer)")
	previewCreateCmd.Flags().StringVar(&createRepo, "repo", "", "git repository URL (required)")
	previewCreateCmd.Flags().StringVar(&createImage, "image", "", "image override")
	previewCreateCmd.Flags().StringVar(&createSHA, "commit-sha", "", "commit SHA to deploy")
	previewCreateCmd.Flags().StringVar(&createTTL, "ttl", "", "time to live in hours")
	previewCreateCmd.Flags().BoolVar(&createCopyURL, "copy-url", false, "copy the synthesized preview URL to the clipboard")
}

// ── preview status ───────────────────────────────────────────────────────

var statusPR string

var previewStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a preview environment's status",
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, err := parsePR(statusPR)
		if err != nil {
			return finishStatus(status.INVALID_ARGS, "preview status requires --pr as a positive integer")
		}
		env, st := envelope.Open("status").Field("pr_number", pr).Close()
		if st != status.SUCCESS {
			return finishStatus(st, "preview status envelope composition")
		}
		res := a.Worker.RunPreviewManager(cmd.Context(), env)
		return finishWorker(fmt.Sprintf("preview status for PR #%d retrieved", pr), res)
	},
}

func init() {
	previewStatusCmd.Flags().StringVar(&statusPR, "pr", "", "pull request number (required, positive integer)")
}

// ── preview teardown ─────────────────────────────────────────────────────

var teardownPR string

var previewTeardownCmd = &cobra.Command{
	Use:   "teardown",
	Short: "Tear down a preview environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, err := parsePR(teardownPR)
		if err != nil {
			return finishStatus(status.INVALID_ARGS, "preview teardown requires --pr as a positive integer")
		}
		env, st := envelope.Open("destroy").Field("pr_number", pr).Close()
		if st != status.SUCCESS {
			return finishStatus(st, "preview teardown envelope composition")
		}
		res := a.Worker.RunPreviewManager(cmd.Context(), env)
		return finishWorker(fmt.Sprintf("preview environment for PR #%d torn down", pr), res)
	},
}

func init() {
	previewTeardownCmd.Flags().StringVar(&teardownPR, "pr", "", "pull request number (required, positive integer)")
}

// ── preview logs ─────────────────────────────────────────────────────────

var (
	logsPR, logsComponent string
)

var previewLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Fetch logs for a preview environment component",
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, err := parsePR(logsPR)
		if err != nil || logsComponent == "" {
			return finishStatus(status.INVALID_ARGS, "preview logs requires --pr (positive integer) and --component")
		}
		env, st := envelope.Open("logs").
			Field("pr_number", pr).
			Field("component_name", logsComponent).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "preview logs envelope composition")
		}
		res := a.Worker.RunPreviewManager(cmd.Context(), env)
		return finishWorker(fmt.Sprintf("logs for PR #%d/%s retrieved", pr, logsComponent), res)
	},
}

func init() {
	previewLogsCmd.Flags().StringVar(&logsPR, "pr", "", "pull request number (required, positive integer)")
	previewLogsCmd.Flags().StringVar(&logsComponent, "component", "", "component name (required)")
}

// ── preview exec ─────────────────────────────────────────────────────────

var (
	execPR, execComponent string
)

var previewExecCmd = &cobra.Command{
	Use:   "exec -- <cmd> [args...]",
	Short: "Execute a command inside a preview environment component",
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, err := parsePR(execPR)
		if err != nil || execComponent == "" {
			return finishStatus(status.INVALID_ARGS, "preview exec requires --pr (positive integer) and --component")
		}

		// The first literal "--" splits flags from the in-preview command
		// vector; ArgsLenAtDash is cobra's native equivalent of scanning
		// argv for that boundary token.
		dash := cmd.ArgsLenAtDash()
		var command []string
		if dash >= 0 {
			command = args[dash:]
		}
		if len(command) == 0 {
			return finishStatus(status.INVALID_ARGS, "preview exec requires a non-empty command after '--'")
		}

		env, st := envelope.Open("exec").
			Field("pr_number", pr).
			Field("component_name", execComponent).
			Field("command_to_exec", command).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "preview exec envelope composition")
		}
		res := a.Worker.RunPreviewManager(cmd.Context(), env)
		return finishWorker(fmt.Sprintf("exec in PR #%d/%s complete", pr, execComponent), res)
	},
}

func init() {
	previewExecCmd.Flags().StringVar(&execPR, "pr", "", "pull request number (required, positive integer)")
	previewExecCmd.Flags().StringVar(&execComponent, "component", "", "component name (required)")
}

// ── preview extend ───────────────────────────────────────────────────────

var (
	extendPR, extendTTL string
)

var previewExtendCmd = &cobra.Command{
	Use:   "extend",
	Short: "Extend a preview environment's time to live",
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, err := parsePR(extendPR)
		ttl, ttlOK := intparse.NonNegative(extendTTL)
		if err != nil || !ttlOK {
			return finishStatus(status.INVALID_ARGS, "preview extend requires --pr (positive integer) and --ttl (non-negative integer)")
		}
		env, st := envelope.Open("extend").
			Field("pr_number", pr).
			Field("new_ttl", ttl).
			Close()
		if st != status.SUCCESS {
			return finishStatus(st, "preview extend envelope composition")
		}
		res := a.Worker.RunPreviewManager(cmd.Context(), env)
		expiry := time.Now().Add(time.Duration(ttl) * time.Hour)
		return finishWorker(fmt.Sprintf("preview for PR #%d extended, expires %s", pr, humanize.Time(expiry)), res)
	},
}

func init() {
	previewExtendCmd.Flags().StringVar(&extendPR, "pr", "", "pull request number (required, positive integer)")
	previewExtendCmd.Flags().StringVar(&extendTTL, "ttl", "", "new time to live in hours (required, non-negative integer)")
}

// ── preview gc ────────────────────────────────────────────────────────────

var gcMaxAgeHours string

var previewGCCmd = &cobra.Command{
	Use:   "gc",
	Short: "Garbage-collect preview environments older than --max-age-hours",
	RunE: func(cmd *cobra.Command, args []string) error {
		maxAge, ok := intparse.NonNegative(gcMaxAgeHours)
		if !ok {
			return finishStatus(status.INVALID_ARGS, "preview gc requires --max-age-hours as a non-negative integer")
		}
		env, st := envelope.Open("gc").Field("max_age_hours", maxAge).Close()
		if st != status.SUCCESS {
			return finishStatus(st, "preview gc envelope composition")
		}
		res := a.Worker.RunPreviewManager(cmd.Context(), env)
		cutoff := time.Now().Add(-time.Duration(maxAge) * time.Hour)
		return finishWorker(fmt.Sprintf("preview gc complete, removed environments created before %s", humanize.Time(cutoff)), res)
	},
}

func init() {
	previewGCCmd.Flags().StringVar(&gcMaxAgeHours, "max-age-hours", "", "maximum age in hours (required, non-negative integer)")
}
