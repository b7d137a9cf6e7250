package cmd

import (
	"strings"
	"testing"

	"github.com/phkaiser13/phgit/internal/status"
	"github.com/phkaiser13/phgit/internal/subprocess"
	"github.com/phkaiser13/phgit/internal/worker"
)

func TestHealthCheckRequiresAppAndCluster(t *testing.T) {
	a = newTestApp(&worker.Stub{})
	checkApp, checkCluster, checkFull = "", "prod", false
	if err := healthCheckCmd.RunE(healthCheckCmd, nil); err == nil {
		t.Fatal("expected INVALID_ARGS with --app missing")
	}
	checkApp, checkCluster = "api", ""
	if err := healthCheckCmd.RunE(healthCheckCmd, nil); err == nil {
		t.Fatal("expected INVALID_ARGS with --cluster missing")
	}
}

func TestHealthCheckInvokesWorker(t *testing.T) {
	stub := &worker.Stub{}
	a = newTestApp(stub)
	checkApp, checkCluster, checkFull = "api", "prod", true

	if err := healthCheckCmd.RunE(healthCheckCmd, nil); err != nil {
		t.Fatalf("health check = %v, want nil", err)
	}
	if len(stub.Calls) != 1 || stub.Calls[0].Method != "RunHealthManager" {
		t.Fatalf("expected one RunHealthManager call, got %v", stub.Calls)
	}
	env := stub.Calls[0].Envelope
	if !strings.Contains(env, `"parameters":`) || !strings.Contains(env, `"app":"api"`) ||
		!strings.Contains(env, `"cluster":"prod"`) || !strings.Contains(env, `"full_check":true`) {
		t.Errorf("unexpected envelope: %s", env)
	}
}

func TestHealthEnableRequiresFlags(t *testing.T) {
	a = newTestApp(&worker.Stub{})
	a.Applier = &subprocess.RecordingApplier{}

	enableOn, enableActions, enableCooldown = "", nil, ""
	if err := healthEnableCmd.RunE(healthEnableCmd, nil); err == nil {
		t.Fatal("expected INVALID_ARGS with no flags set")
	}

	enableOn, enableCooldown = "HighErrorRate", "10m"
	enableActions = nil
	if err := healthEnableCmd.RunE(healthEnableCmd, nil); err == nil {
		t.Fatal("expected INVALID_ARGS with no --actions")
	}
}

func TestHealthEnableAppliesGeneratedManifest(t *testing.T) {
	applier := &subprocess.RecordingApplier{}
	a = newTestApp(&worker.Stub{})
	a.Applier = applier

	enableOn = "HighErrorRate"
	enableActions = []string{"restart-api"}
	enableCooldown = "10m"

	if err := healthEnableCmd.RunE(healthEnableCmd, nil); err != nil {
		t.Fatalf("health enable = %v, want nil", err)
	}
	if len(applier.Applied) != 1 {
		t.Fatalf("expected one applied manifest, got %d", len(applier.Applied))
	}
	yaml := string(applier.Applied[0])
	for _, want := range []string{
		"kind: phAutoHealRule",
		"name: autoheal-rule-HighErrorRate",
		"namespace: ph-operator",
		`triggerName: "HighErrorRate"`,
		`cooldown: "10m"`,
		"scriptName: restart-api",
	} {
		if !strings.Contains(yaml, want) {
			t.Errorf("generated manifest missing %q:\n%s", want, yaml)
		}
	}
}

func TestHealthEnableSurfacesApplierFailure(t *testing.T) {
	applier := &subprocess.RecordingApplier{Result: status.EXEC_FAILED}
	a = newTestApp(&worker.Stub{})
	a.Applier = applier

	enableOn = "HighErrorRate"
	enableActions = []string{"restart-api"}
	enableCooldown = "10m"

	err := healthEnableCmd.RunE(healthEnableCmd, nil)
	if st, ok := err.(status.Status); !ok || st != status.EXEC_FAILED {
		t.Errorf("health enable with failing applier = %v, want EXEC_FAILED", err)
	}
}
