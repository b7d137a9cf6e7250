package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phkaiser13/phgit/internal/status"
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Sync and rotate secrets from an external provider",
}

func init() {
	rootCmd.AddCommand(secretsCmd)
	secretsCmd.AddCommand(secretsSyncCmd, secretsRotateCmd)
}

type providerRef struct {
	Provider string `json:"provider"`
	Address  string `json:"address"`
	Token    string `json:"token"`
}

func resolveProvider(name string) (providerRef, status.Status) {
	addr, ok := a.Config.ProviderAddress(name)
	if !ok {
		return providerRef{}, status.CONFIG_READ
	}
	tok, ok := a.Config.ProviderToken(name)
	if !ok {
		return providerRef{}, status.CONFIG_READ
	}
	return providerRef{Provider: name, Address: addr, Token: tok}, status.SUCCESS
}

// ── secrets sync ─────────────────────────────────────────────────────────

var (
	syncSecretsProvider string
	syncK8sSecret       string
	syncPaths           []string
)

var secretsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync secrets from a provider into a Kubernetes Secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		if syncSecretsProvider == "" || syncK8sSecret == "" || len(syncPaths) == 0 {
			return finishStatus(status.INVALID_ARGS,
				"sync requires --provider, --k8s-secret, and at least one --path")
		}

		namespace, secretName, ok := strings.Cut(syncK8sSecret, "/")
		if !ok {
			return finishStatus(status.INVALID_ARGS,
				"invalid format for --k8s-secret, expected 'namespace/secret_name'")
		}

		type secretEntry struct {
			Name      string `json:"name"`
			ValueFrom string `json:"value_from"`
		}
		entries := make([]secretEntry, 0, len(syncPaths))
		for _, p := range syncPaths {
			key, valueFrom, ok := strings.Cut(p, "=")
			if !ok {
				return finishStatus(status.INVALID_ARGS,
					"invalid format for --path, expected 'K8S_KEY=PROVIDER_PATH'")
			}
			entries = append(entries, secretEntry{Name: key, ValueFrom: valueFrom})
		}

		provider, st := resolveProvider(syncSecretsProvider)
		if st != status.SUCCESS {
			return finishStatus(st, "configuration for provider '"+syncSecretsProvider+"' not found")
		}

		payload, err := json.Marshal(struct {
			Provider   providerRef   `json:"provider"`
			Namespace  string        `json:"namespace"`
			SecretName string        `json:"secret_name"`
			Secrets    []secretEntry `json:"secrets"`
		}{provider, namespace, secretName, entries})
		if err != nil {
			return finishStatus(status.MEMORY_ALLOC, "sync payload composition")
		}

		res := a.Worker.RunSecretSync(cmd.Context(), string(payload))
		return finishWorker("secrets synchronized", res)
	},
}

func init() {
	secretsSyncCmd.Flags().StringVar(&syncSecretsProvider, "provider", "", "secret provider name (required)")
	secretsSyncCmd.Flags().StringVar(&syncK8sSecret, "k8s-secret", "", "namespace/secret_name (required)")
	secretsSyncCmd.Flags().StringArrayVar(&syncPaths, "path", nil, "K8S_KEY=PROVIDER_PATH (repeatable, required)")
}

// ── secrets rotate ───────────────────────────────────────────────────────

var (
	rotateProvider, rotateSecretPath string
	rotateForce                     bool
)

var secretsRotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate a secret at its provider and re-sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rotateProvider == "" || rotateSecretPath == "" {
			return finishStatus(status.INVALID_ARGS, "rotate requires --provider and --secret-path")
		}

		provider, st := resolveProvider(rotateProvider)
		if st != status.SUCCESS {
			return finishStatus(st, "configuration for provider '"+rotateProvider+"' not found")
		}

		payload, err := json.Marshal(struct {
			Provider providerRef `json:"provider"`
			Path     string      `json:"path"`
			Force    bool        `json:"force"`
		}{provider, rotateSecretPath, rotateForce})
		if err != nil {
			return finishStatus(status.MEMORY_ALLOC, "rotate payload composition")
		}

		res := a.Worker.RunSecretRotation(cmd.Context(), string(payload))
		return finishWorker("secret rotated", res)
	},
}

func init() {
	secretsRotateCmd.Flags().StringVar(&rotateProvider, "provider", "", "secret provider name (required)")
	secretsRotateCmd.Flags().StringVar(&rotateSecretPath, "secret-path", "", "provider-side secret path (required)")
	secretsRotateCmd.Flags().BoolVar(&rotateForce, "force", false, "force rotation even if not due")
}
