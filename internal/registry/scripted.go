package registry

import (
	"context"

	"github.com/phkaiser13/phgit/internal/status"
)

// ScriptedCommand is a single command exposed by an external scripting
// bridge (e.g. a Lua or Python engine embedded elsewhere in the binary).
type ScriptedCommand struct {
	Description string
	Exec        func(ctx context.Context, name string, argv []string) status.Status
}

// ScriptedCommands is the capability interface the root dispatcher uses
// to reach an external scripting bridge. The dispatcher calls only these
// operations; it never assumes anything about execution semantics beyond
// status-code parity.
type ScriptedCommands interface {
	Has(name string) bool
	Exec(ctx context.Context, name string, argv []string) status.Status
	Count() int
	Names() []string
	Description(name string) (string, bool)
}

// ScriptedTable adapts a Table[ScriptedCommand] to the ScriptedCommands
// interface.
type ScriptedTable struct {
	table *Table[ScriptedCommand]
}

// NewScriptedTable returns an empty ScriptedTable.
func NewScriptedTable() *ScriptedTable {
	return &ScriptedTable{table: NewTable[ScriptedCommand]()}
}

// Register adds a scripted command under name.
func (s *ScriptedTable) Register(name, description string, exec func(ctx context.Context, name string, argv []string) status.Status) {
	s.table.Register(name, ScriptedCommand{Description: description, Exec: exec})
}

func (s *ScriptedTable) Has(name string) bool { return s.table.Has(name) }

func (s *ScriptedTable) Exec(ctx context.Context, name string, argv []string) status.Status {
	cmd, ok := s.table.Get(name)
	if !ok {
		return status.NOT_FOUND
	}
	return cmd.Exec(ctx, name, argv)
}

func (s *ScriptedTable) Count() int { return s.table.Count() }

func (s *ScriptedTable) Names() []string { return s.table.Names() }

func (s *ScriptedTable) Description(name string) (string, bool) {
	cmd, ok := s.table.Get(name)
	if !ok {
		return "", false
	}
	return cmd.Description, true
}
