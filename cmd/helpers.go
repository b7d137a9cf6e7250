package cmd

import (
	"os"
	"strings"

	"github.com/phkaiser13/phgit/internal/status"
)

// splitCommaList splits a comma-separated flag value into trimmed,
// non-empty parts.
func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readManifest reads a manifest file fully, mapping I/O failure to IO.
func readManifest(path string) (string, status.Status) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", status.IO
	}
	return string(data), status.SUCCESS
}

// flagValue names a required flag and its parsed value.
type flagValue struct {
	Name  string
	Value string
}

// requireFlags reports the first empty flag, in the order given, so
// "missing required flag" errors are deterministic.
func requireFlags(values ...flagValue) (missing string, ok bool) {
	for _, v := range values {
		if v.Value == "" {
			return v.Name, false
		}
	}
	return "", true
}
