package cmd

import (
	"strings"
	"testing"

	"github.com/phkaiser13/phgit/internal/status"
	phtrace "github.com/phkaiser13/phgit/internal/trace"
	"github.com/phkaiser13/phgit/internal/worker"
)

func TestPreviewCreateRequiresPRAndRepo(t *testing.T) {
	a = newTestApp(&worker.Stub{})
	a.Trace = &phtrace.StubSource{Fails: true}

	createPR, createRepo, createTTL, createImage, createSHA, createCopyURL = "", "", "", "", "", false
	if err := previewCreateCmd.RunE(previewCreateCmd, nil); err == nil {
		t.Fatal("expected INVALID_ARGS with --pr and --repo missing")
	}

	for _, pr := range []string{"0", "-1", "abc"} {
		createPR, createRepo = pr, "https://example.com/r.git"
		err := previewCreateCmd.RunE(previewCreateCmd, nil)
		if st, ok := err.(status.Status); !ok || st != status.INVALID_ARGS {
			t.Errorf("preview create --pr %q = %v, want INVALID_ARGS", pr, err)
		}
	}
}

func TestPreviewCreateEmbedsTraceAnnotation(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)
	a.Trace = &phtrace.StubSource{Traceparent: "00-abcd-1234-01"}

	createPR, createRepo, createTTL = "17", "https://g.example/r.git", "4"
	createImage, createSHA, createCopyURL = "", "", false

	if err := previewCreateCmd.RunE(previewCreateCmd, nil); err != nil {
		t.Fatalf("preview create = %v, want nil", err)
	}
	if len(stub.Calls) != 1 {
		t.Fatalf("expected one worker call, got %d", len(stub.Calls))
	}
	env := stub.Calls[0].Envelope
	for _, want := range []string{
		`"action":"create"`, `"pr_number":17`, `"git_repo_url":"https://g.example/r.git"`,
		`"new_ttl":4`, `"ph.io/trace-context":"00-abcd-1234-01"`,
	} {
		if !strings.Contains(env, want) {
			t.Errorf("envelope missing %q: %s", want, env)
		}
	}
	if strings.Contains(env, "commit_sha") || strings.Contains(env, `"image"`) {
		t.Errorf("envelope should omit absent optional fields: %s", env)
	}
}

func TestPreviewCreateProceedsWithoutTraceOnFailure(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)
	src := &phtrace.StubSource{Fails: true}
	a.Trace = src

	createPR, createRepo, createTTL = "17", "https://g.example/r.git", ""
	createImage, createSHA, createCopyURL = "", "", false

	if err := previewCreateCmd.RunE(previewCreateCmd, nil); err != nil {
		t.Fatalf("preview create = %v, want nil", err)
	}
	env := stub.Calls[0].Envelope
	if strings.Contains(env, "annotations") {
		t.Errorf("envelope should have no annotations when trace source fails: %s", env)
	}
	if src.Freed != 1 {
		t.Errorf("trace source Free() called %d times, want 1", src.Freed)
	}
}

func TestPreviewStatusRequiresPositivePR(t *testing.T) {
	a = newTestApp(&worker.Stub{})
	statusPR = "0"
	err := previewStatusCmd.RunE(previewStatusCmd, nil)
	if st, ok := err.(status.Status); !ok || st != status.INVALID_ARGS {
		t.Errorf("preview status --pr 0 = %v, want INVALID_ARGS", err)
	}
}

func TestPreviewTeardownEnvelope(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)
	teardownPR = "9"
	if err := previewTeardownCmd.RunE(previewTeardownCmd, nil); err != nil {
		t.Fatalf("preview teardown = %v, want nil", err)
	}
	env := stub.Calls[0].Envelope
	if !strings.Contains(env, `"action":"destroy"`) || !strings.Contains(env, `"pr_number":9`) {
		t.Errorf("unexpected envelope: %s", env)
	}
}

func TestPreviewLogsRequiresComponent(t *testing.T) {
	a = newTestApp(&worker.Stub{})
	logsPR, logsComponent = "9", ""
	err := previewLogsCmd.RunE(previewLogsCmd, nil)
	if st, ok := err.(status.Status); !ok || st != status.INVALID_ARGS {
		t.Errorf("preview logs without --component = %v, want INVALID_ARGS", err)
	}
}

func TestPreviewExecRequiresNonEmptyCommandAfterDash(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)

	// cobra always executes from the root command, so the argv is given
	// to rootCmd with the full "preview exec" path.
	rootCmd.SetArgs([]string{"preview", "exec", "--pr", "17", "--component", "api", "--"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected INVALID_ARGS with an empty command after '--'")
	}
}

func TestPreviewExecSplitsCommandAtDash(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)

	rootCmd.SetArgs([]string{"preview", "exec", "--pr", "17", "--component", "api", "--", "ls", "-la", "/tmp"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("preview exec = %v, want nil", err)
	}
	env := stub.Calls[0].Envelope
	if !strings.Contains(env, `"command_to_exec":["ls","-la","/tmp"]`) {
		t.Errorf("unexpected envelope: %s", env)
	}
}

func TestPreviewExtendRequiresNonNegativeTTL(t *testing.T) {
	a = newTestApp(&worker.Stub{})
	extendPR, extendTTL = "17", "-1"
	err := previewExtendCmd.RunE(previewExtendCmd, nil)
	if st, ok := err.(status.Status); !ok || st != status.INVALID_ARGS {
		t.Errorf("preview extend --ttl -1 = %v, want INVALID_ARGS", err)
	}
}

func TestPreviewGCZeroIsValid(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)
	gcMaxAgeHours = "0"
	if err := previewGCCmd.RunE(previewGCCmd, nil); err != nil {
		t.Fatalf("preview gc --max-age-hours 0 = %v, want nil (collect-all is valid)", err)
	}
	env := stub.Calls[0].Envelope
	if !strings.Contains(env, `"max_age_hours":0`) {
		t.Errorf("unexpected envelope: %s", env)
	}
}

func TestPreviewGCRejectsNegative(t *testing.T) {
	a = newTestApp(&worker.Stub{})
	gcMaxAgeHours = "-1"
	err := previewGCCmd.RunE(previewGCCmd, nil)
	if st, ok := err.(status.Status); !ok || st != status.INVALID_ARGS {
		t.Errorf("preview gc --max-age-hours -1 = %v, want INVALID_ARGS", err)
	}
}
