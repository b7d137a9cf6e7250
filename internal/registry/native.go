package registry

import (
	"context"

	"github.com/phkaiser13/phgit/internal/status"
)

// Module is an in-process compiled module registered at startup that
// claims one or more command names. Modeled after both the original's
// "handler_module->exec_func" shape and pkg/ci's Provider registration.
type Module struct {
	Name        string
	Description string
	Commands    []string
	Exec        func(ctx context.Context, argv []string) status.Status
}

// NativeModules is the capability interface the root dispatcher uses to
// reach natively compiled command modules. Registration itself is out of
// scope for the core; it only finds and invokes.
type NativeModules interface {
	Find(name string) (Module, bool)
	All() []Module
}

// NativeTable adapts a Table[Module] to the NativeModules interface,
// resolving by command name rather than module name: a module claiming
// commands {"info", "status"} is found by either name.
type NativeTable struct {
	table *Table[Module]
	byCmd map[string]string // command name -> module name
}

// NewNativeTable returns an empty NativeTable.
func NewNativeTable() *NativeTable {
	return &NativeTable{table: NewTable[Module](), byCmd: make(map[string]string)}
}

// Register adds a module and indexes each of its claimed command names.
func (n *NativeTable) Register(m Module) {
	n.table.Register(m.Name, m)
	for _, c := range m.Commands {
		n.byCmd[c] = m.Name
	}
}

func (n *NativeTable) Find(name string) (Module, bool) {
	if modName, ok := n.byCmd[name]; ok {
		return n.table.Get(modName)
	}
	return n.table.Get(name)
}

func (n *NativeTable) All() []Module { return n.table.All() }
