package envelope

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/phkaiser13/phgit/internal/status"
)

func TestBuilderRoundTripsThroughJSON(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"plain", "hello"},
		{"quote", `say "hi"`},
		{"backslash", `C:\path\to\file`},
		{"newline", "line1\nline2"},
		{"tab and cr", "a\tb\rc"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, st := Open("sync").Field("path", tt.value).Close()
			if st != status.SUCCESS {
				t.Fatalf("Close() = %v, want SUCCESS", st)
			}
			var decoded map[string]any
			if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
				t.Fatalf("produced invalid JSON %q: %v", raw, err)
			}
			if decoded["path"] != tt.value {
				t.Errorf("round-tripped %q, want %q", decoded["path"], tt.value)
			}
		})
	}
}

func TestBuilderNullField(t *testing.T) {
	raw, st := Open("sync").Field("context", nil).Close()
	if st != status.SUCCESS {
		t.Fatalf("Close() = %v", st)
	}
	var decoded map[string]any
	json.Unmarshal([]byte(raw), &decoded)
	if v, ok := decoded["context"]; !ok || v != nil {
		t.Errorf("context = %v, want explicit null", v)
	}
}

func TestBuilderBoolAndInt(t *testing.T) {
	raw, _ := Open("sync").Field("apply", true).Field("ttl", 4).Close()
	var decoded map[string]any
	json.Unmarshal([]byte(raw), &decoded)
	if decoded["apply"] != true {
		t.Errorf("apply = %v, want true", decoded["apply"])
	}
	if decoded["ttl"].(float64) != 4 {
		t.Errorf("ttl = %v, want 4", decoded["ttl"])
	}
}

func TestBuilderStringSlice(t *testing.T) {
	raw, _ := Open("exec").Field("command_to_exec", []string{"ls", "-la", "/tmp"}).Close()
	var decoded map[string]any
	json.Unmarshal([]byte(raw), &decoded)
	cmd, ok := decoded["command_to_exec"].([]any)
	if !ok || len(cmd) != 3 || cmd[2] != "/tmp" {
		t.Errorf("command_to_exec = %v", decoded["command_to_exec"])
	}
}

func TestBuilderDiscriminantOverride(t *testing.T) {
	raw, _ := OpenDiscriminant("type", "promote", DefaultCap).Field("id", "rel-42").Close()
	var decoded map[string]any
	json.Unmarshal([]byte(raw), &decoded)
	if decoded["type"] != "promote" {
		t.Errorf("type = %v, want promote", decoded["type"])
	}
	if _, hasAction := decoded["action"]; hasAction {
		t.Error("envelope should not also carry an 'action' field")
	}
}

func TestBuilderBufferTooSmallAborts(t *testing.T) {
	b := OpenCap("sync", 32)
	b.Field("path", strings.Repeat("x", 100))
	_, st := b.Close()
	if st != status.BUFFER_TOO_SMALL {
		t.Errorf("Close() = %v, want BUFFER_TOO_SMALL", st)
	}
}

func TestBuilderExactCapSucceeds(t *testing.T) {
	const want = `{"action":"a"}`
	raw, st := OpenCap("a", len(want)).Close()
	if st != status.SUCCESS || raw != want {
		t.Errorf("envelope exactly at its cap should succeed: raw=%q st=%v", raw, st)
	}
}
