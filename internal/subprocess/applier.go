// Package subprocess implements the subprocess invoker: spawning an
// external tool, streaming bytes to its stdin, and inspecting its exit
// status. The only production subprocess contract the core currently
// needs is "pipe YAML to kubectl apply -f -", grounded directly in the
// teacher's core.KubectlApplyStdin and in the original implementation's
// apply_yaml_via_kubectl (popen/pclose + WIFEXITED/WEXITSTATUS).
package subprocess

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/phkaiser13/phgit/internal/status"
)

// ManifestApplier applies a YAML manifest to a cluster. SUCCESS iff the
// child process exits normally with status zero.
type ManifestApplier interface {
	Apply(ctx context.Context, yaml []byte) status.Status
}

// KubectlApplier pipes manifest bytes to "kubectl apply -f -", optionally
// scoped to a context (kubeconfig context name).
type KubectlApplier struct {
	// Context, if non-empty, is passed to kubectl as --context.
	Context string
}

// Apply spawns kubectl, writes yaml to its stdin, and inspects its exit
// status. A non-zero exit, or a failure to start the process, both map to
// EXEC_FAILED.
func (k KubectlApplier) Apply(ctx context.Context, yaml []byte) status.Status {
	args := []string{}
	if k.Context != "" {
		args = append(args, "--context", k.Context)
	}
	args = append(args, "apply", "-f", "-")

	cmd := exec.CommandContext(ctx, "kubectl", args...)
	cmd.Stdin = bytes.NewReader(yaml)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return status.EXEC_FAILED
	}
	return status.SUCCESS
}

// RecordingApplier is a test double that records every manifest it was
// asked to apply and always reports a configurable status.
type RecordingApplier struct {
	Result  status.Status
	Applied [][]byte
}

// Apply records yaml and returns the configured Result (SUCCESS if unset).
func (r *RecordingApplier) Apply(ctx context.Context, yaml []byte) status.Status {
	r.Applied = append(r.Applied, yaml)
	return r.Result
}

// TrimOutput is a small helper shared by callers that want to surface
// kubectl's combined output as an error buffer.
func TrimOutput(s string) string {
	return strings.TrimSpace(s)
}
