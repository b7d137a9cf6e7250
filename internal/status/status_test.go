package status

import "testing"

func TestMapExitCode(t *testing.T) {
	tests := []struct {
		name string
		code int
		want Status
	}{
		{"zero is success", 0, SUCCESS},
		{"positive is exec failed", 1, EXEC_FAILED},
		{"negative is exec failed", -1, EXEC_FAILED},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapExitCode(tt.code); got != tt.want {
				t.Errorf("MapExitCode(%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestStatusOK(t *testing.T) {
	if !SUCCESS.OK() {
		t.Error("SUCCESS.OK() = false, want true")
	}
	if INVALID_ARGS.OK() {
		t.Error("INVALID_ARGS.OK() = true, want false")
	}
}

func TestStatusString(t *testing.T) {
	if SUCCESS.String() != "SUCCESS" {
		t.Errorf("SUCCESS.String() = %q, want %q", SUCCESS.String(), "SUCCESS")
	}
	if got := Status(999).String(); got != "UNKNOWN" {
		t.Errorf("Status(999).String() = %q, want %q", got, "UNKNOWN")
	}
}

func TestStatusZeroValueIsSuccess(t *testing.T) {
	var s Status
	if s != SUCCESS {
		t.Errorf("zero value Status = %v, want SUCCESS", s)
	}
}
