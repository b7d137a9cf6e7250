// Package dispatch implements the root command dispatcher: the 4-stage,
// priority-ordered routing contract described in the specification and
// grounded directly in the original's cli_parser.c. Dispatcher implements
// all five stages; stage 2 runs only for names in its Groups map. cmd/
// leaves Groups empty, because there the cobra command tree routes group
// commands itself and Dispatcher serves as cobra's fallback handler for
// anything that isn't a known group. Its tests exercise every stage
// directly (the unit-testable properties in §8).
package dispatch

import (
	"context"
	"fmt"

	"github.com/phkaiser13/phgit/internal/registry"
	"github.com/phkaiser13/phgit/internal/status"
)

// GroupHandler parses and executes one command group's subcommand.
type GroupHandler func(ctx context.Context, argv []string) status.Status

// Dispatcher implements the stage-wise root dispatch contract.
type Dispatcher struct {
	Groups   map[string]GroupHandler
	Scripted registry.ScriptedCommands
	Native   registry.NativeModules

	// OnWarn and OnError receive the human-readable lines the original
	// logs/prints at each failing stage. Both may be nil.
	OnWarn  func(msg string)
	OnError func(msg string)
}

func (d *Dispatcher) warn(msg string) {
	if d.OnWarn != nil {
		d.OnWarn(msg)
	}
}

func (d *Dispatcher) error(msg string) {
	if d.OnError != nil {
		d.OnError(msg)
	}
}

// Run implements the exact 4-stage contract:
//
//  1. argv[0] missing or empty -> INVALID_ARGS.
//  2. argv[0] names a known group -> require len(argv) >= 2, else
//     INVALID_ARGS; delegate to the group handler with argv[1:].
//  3. Else if the scripted registry has argv[0] -> delegate with the full
//     argv (argv[0] is the command's own name, as a handler's argv[0]
//     conventionally is), propagate.
//  4. Else if the native registry resolves argv[0] -> delegate with the
//     full argv, propagate.
//  5. Else -> NOT_FOUND.
//
// argv here is the command and its arguments (the tool name itself is not
// part of argv), matching how cmd/root.go invokes it.
func (d *Dispatcher) Run(ctx context.Context, argv []string) status.Status {
	if len(argv) < 1 || argv[0] == "" {
		d.warn("no command provided")
		d.error("No command provided. Use --help to see available commands.")
		return status.INVALID_ARGS
	}

	command := argv[0]

	if handler, ok := d.Groups[command]; ok {
		if len(argv) < 2 {
			d.error(fmt.Sprintf("'%s' requires a subcommand", command))
			return status.INVALID_ARGS
		}
		return handler(ctx, argv[1:])
	}

	if d.Scripted != nil && d.Scripted.Has(command) {
		return d.Scripted.Exec(ctx, command, argv)
	}

	if d.Native != nil {
		if mod, ok := d.Native.Find(command); ok {
			return mod.Exec(ctx, argv)
		}
	}

	d.error(fmt.Sprintf("Unknown command: '%s'", command))
	return status.NOT_FOUND
}
