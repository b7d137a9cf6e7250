package cmd

import (
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/trace"

	"github.com/phkaiser13/phgit/internal/cluster"
	"github.com/phkaiser13/phgit/internal/config"
	"github.com/phkaiser13/phgit/internal/registry"
	"github.com/phkaiser13/phgit/internal/subprocess"
	phtrace "github.com/phkaiser13/phgit/internal/trace"
	"github.com/phkaiser13/phgit/internal/ui"
	"github.com/phkaiser13/phgit/internal/worker"
)

// app bundles the process-wide singletons every handler needs: the config
// store and cluster registry (§5's process-scoped mutable state), the
// worker capability, the trace-context source, and the manifest applier.
// Built once by the cobra.OnInitialize hook in root.go's Execute and shared
// by every command.
type app struct {
	Config   *config.Store
	Clusters *cluster.Registry
	Worker   worker.Worker
	Trace    phtrace.Source
	Applier  subprocess.ManifestApplier
	Scripted registry.ScriptedCommands
	Native   registry.NativeModules
	Printer  *ui.Printer
}

var a *app

// newApp constructs the default production app rooted at dir (the
// resolved project directory).
func newApp(dir string) *app {
	cfg := config.New()
	cfg.Load(filepath.Join(dir, ".ph.conf"))

	clusters := cluster.New(filepath.Join(dir, "config", "clusters.yaml"), cfg)

	return &app{
		Config:   cfg,
		Clusters: clusters,
		Worker:   &worker.CLIWorker{Applier: subprocess.KubectlApplier{}},
		Trace:    phtrace.NewOTELSource(trace.NewNoopTracerProvider()),
		Applier:  subprocess.KubectlApplier{},
		Scripted: registry.NewScriptedTable(),
		Native:   registry.NewNativeTable(),
		Printer:  ui.NewPrinter(os.Stdout),
	}
}

// resolveActiveCluster returns flagCluster if set, otherwise the registry's
// active cluster, otherwise "".
func resolveActiveCluster(flagCluster string) string {
	if flagCluster != "" {
		return flagCluster
	}
	if name, ok := a.Clusters.GetActive(); ok {
		return name
	}
	return ""
}
