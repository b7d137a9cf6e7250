package cmd

import (
	"io"
	"strings"
	"testing"

	"github.com/phkaiser13/phgit/internal/config"
	"github.com/phkaiser13/phgit/internal/status"
	"github.com/phkaiser13/phgit/internal/ui"
	"github.com/phkaiser13/phgit/internal/worker"
)

// newTestApp builds a minimal app good enough to drive a single command's
// RunE directly, without going through cobra.Execute or any filesystem
// state. Shared by every cmd package test file.
func newTestApp(stub *worker.Stub) *app {
	return &app{
		Config:  config.New(),
		Worker:  stub,
		Printer: &ui.Printer{Out: io.Discard},
	}
}

func TestPolicyScanRequiresPath(t *testing.T) {
	a = newTestApp(&worker.Stub{})
	scanPath, scanPolicyRepo, scanFailOnViolation = "", "org/policies", false

	err := policyScanCmd.RunE(policyScanCmd, nil)
	if st, ok := err.(status.Status); !ok || st != status.INVALID_ARGS {
		t.Errorf("policy scan without --path = %v, want INVALID_ARGS", err)
	}

	scanPath, scanPolicyRepo = "./manifests", ""
	err = policyScanCmd.RunE(policyScanCmd, nil)
	if st, ok := err.(status.Status); !ok || st != status.INVALID_ARGS {
		t.Errorf("policy scan without --policy-repo = %v, want INVALID_ARGS", err)
	}
}

func TestPolicyScanInvokesWorker(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)
	scanPath, scanPolicyRepo, scanFailOnViolation = "./manifests", "org/policies", true

	if err := policyScanCmd.RunE(policyScanCmd, nil); err != nil {
		t.Fatalf("policy scan = %v, want nil", err)
	}
	if len(stub.Calls) != 1 || stub.Calls[0].Method != "RunPolicyEngine" {
		t.Fatalf("expected one RunPolicyEngine call, got %v", stub.Calls)
	}
	env := stub.Calls[0].Envelope
	if !strings.Contains(env, `"action":"scan"`) || !strings.Contains(env, `"manifest_path":"./manifests"`) ||
		!strings.Contains(env, `"policy_repo_path":"org/policies"`) {
		t.Errorf("unexpected envelope: %s", env)
	}
}

func TestPolicyApplyOmitsAbsentOptionalFields(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)
	applyMode, applyPolicyRepo, applyCluster = "enforce", "", ""

	if err := policyApplyCmd.RunE(policyApplyCmd, nil); err != nil {
		t.Fatalf("policy apply = %v, want nil", err)
	}
	env := stub.Calls[0].Envelope
	if strings.Contains(env, "policy_repo") || strings.Contains(env, "cluster_name") {
		t.Errorf("expected absent optional fields to be omitted, got %s", env)
	}
	if !strings.Contains(env, `"mode":"enforce"`) {
		t.Errorf("expected mode field, got %s", env)
	}
}

func TestPolicyApplyUsesExplicitClusterOnly(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)
	applyMode, applyPolicyRepo, applyCluster = "enforce", "", "staging"

	if err := policyApplyCmd.RunE(policyApplyCmd, nil); err != nil {
		t.Fatalf("policy apply = %v, want nil", err)
	}
	env := stub.Calls[0].Envelope
	if !strings.Contains(env, `"cluster_name":"staging"`) {
		t.Errorf("expected explicit cluster_name, got %s", env)
	}
}

func TestPolicyApplyRequiresMode(t *testing.T) {
	a = newTestApp(&worker.Stub{})
	applyMode, applyPolicyRepo, applyCluster = "", "", ""

	err := policyApplyCmd.RunE(policyApplyCmd, nil)
	if st, ok := err.(status.Status); !ok || st != status.INVALID_ARGS {
		t.Errorf("policy apply without --mode = %v, want INVALID_ARGS", err)
	}
}

func TestPolicyTestRequiresPositivePR(t *testing.T) {
	a = newTestApp(&worker.Stub{})
	tests := []string{"", "0", "-1", "10abc"}
	for _, pr := range tests {
		testPR, testPolicyRepo = pr, ""
		err := policyTestCmd.RunE(policyTestCmd, nil)
		if st, ok := err.(status.Status); !ok || st != status.INVALID_ARGS {
			t.Errorf("policy test --pr %q = %v, want INVALID_ARGS", pr, err)
		}
	}
}

func TestPolicyTestSuccess(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)
	testPR, testPolicyRepo = "42", "org/policies"

	if err := policyTestCmd.RunE(policyTestCmd, nil); err != nil {
		t.Fatalf("policy test = %v, want nil", err)
	}
	env := stub.Calls[0].Envelope
	if !strings.Contains(env, `"pr_number":42`) || !strings.Contains(env, `"policy_repo_path":"org/policies"`) {
		t.Errorf("unexpected envelope: %s", env)
	}
}
