// Package envelope builds the JSON request payloads passed to backend
// workers: a bounded, escaping string builder that returns
// status.BUFFER_TOO_SMALL instead of ever producing a truncated envelope.
package envelope

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/phkaiser13/phgit/internal/status"
)

// DefaultCap is the default envelope size cap. Scenarios that embed file
// content (kube multi apply) should construct a Builder with a larger cap
// via OpenCap.
const DefaultCap = 8 * 1024

// LargeCap is the cap used by envelopes that embed manifest content.
const LargeCap = 32 * 1024

// Builder composes a single JSON object with a discriminant field plus a
// flat set of additional fields, enforcing a byte-size cap as it goes.
// Zero value is not usable; construct with Open.
type Builder struct {
	cap     int
	buf     strings.Builder
	first   bool
	failed  bool
	closed  bool
}

// Open starts a new envelope with `"<discriminant>":"<action>"` as its
// first member, where discriminant is "action" unless overridden by
// OpenDiscriminant. Uses DefaultCap.
func Open(action string) *Builder {
	return OpenCap(action, DefaultCap)
}

// OpenCap is Open with an explicit byte-size cap.
func OpenCap(action string, cap int) *Builder {
	b := &Builder{cap: cap, first: true}
	b.buf.WriteByte('{')
	b.rawField("action", quote(action))
	return b
}

// OpenDiscriminant starts a new envelope using a caller-chosen discriminant
// field name (e.g. "type" for rollout envelopes) instead of "action".
func OpenDiscriminant(discriminant, value string, cap int) *Builder {
	b := &Builder{cap: cap, first: true}
	b.buf.WriteByte('{')
	b.rawField(discriminant, quote(value))
	return b
}

// Field appends a name/value member. Supported value types: string, int,
// bool, nil (serialized as JSON null), []string, and json.RawMessage (a
// pre-built sub-object or sub-array embedded verbatim). Any other type is
// a programmer error and panics, since every call site in this codebase
// controls its own value types.
func (b *Builder) Field(name string, value any) *Builder {
	if b.failed || b.closed {
		return b
	}
	rendered, ok := render(value)
	if !ok {
		panic("envelope: unsupported field value type for " + name)
	}
	b.rawField(name, rendered)
	return b
}

// rawField appends `,"<name>":<rendered>` (or without the leading comma
// for the very first field), enforcing the size cap on every write.
func (b *Builder) rawField(name, rendered string) {
	piece := rendered
	if !b.first {
		piece = "," + quote(name) + ":" + piece
	} else {
		piece = quote(name) + ":" + piece
		b.first = false
	}
	if b.buf.Len()+len(piece) > b.cap {
		b.failed = true
		return
	}
	b.buf.WriteString(piece)
}

// Close finalizes the envelope and returns the composed JSON string. If
// any prior Field call would have exceeded the cap, Close returns
// BUFFER_TOO_SMALL and an empty string instead, and the worker must not be
// invoked.
func (b *Builder) Close() (string, status.Status) {
	b.closed = true
	if b.failed {
		return "", status.BUFFER_TOO_SMALL
	}
	if b.buf.Len()+1 > b.cap {
		return "", status.BUFFER_TOO_SMALL
	}
	return b.buf.String() + "}", status.SUCCESS
}

func render(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "null", true
	case string:
		return quote(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		if v {
			return "true", true
		}
		return "false", true
	case []string:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, s := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quote(s))
		}
		sb.WriteByte(']')
		return sb.String(), true
	case json.RawMessage:
		return string(v), true
	case *string:
		if v == nil {
			return "null", true
		}
		return quote(*v), true
	default:
		return "", false
	}
}

// quote escapes s per the envelope's escaping rules (", \, \n, \r, \t) and
// wraps it in double quotes.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Escape exposes the envelope escaping rule for callers that need to embed
// an already-quoted JSON fragment built elsewhere (e.g. manifest content
// escaped ahead of being wrapped as a string field).
func Escape(s string) string {
	return quote(s)
}
