package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/phkaiser13/phgit/internal/dispatch"
	"github.com/phkaiser13/phgit/internal/menu"
	"github.com/phkaiser13/phgit/internal/status"
)

// menuCmd implements §4.11's interactive menu driver: the union of native
// and scripted command names (plus a synthetic "Exit"), with selection
// forwarded to the root dispatcher exactly as a typed invocation would be.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactively choose and run a command",
	RunE: func(cmd *cobra.Command, args []string) error {
		var nativeNames []string
		for _, m := range a.Native.All() {
			nativeNames = append(nativeNames, m.Commands...)
		}
		items := menu.Items(nativeNames, a.Scripted.Names())

		var sel menu.Selection
		var ok bool
		var err error
		if isatty.IsTerminal(os.Stdin.Fd()) {
			sel, ok, err = menu.RunInteractive(rootCmd.Name(), items)
		} else {
			sel, ok, err = menu.RunNonInteractive(rootCmd.Name(), items, os.Stdin, os.Stdout)
		}
		if err != nil {
			return finishStatus(status.INVALID_ARGS, "menu selection: "+err.Error())
		}
		if !ok {
			return nil
		}

		d := &dispatch.Dispatcher{
			Scripted: a.Scripted,
			Native:   a.Native,
			OnError: func(msg string) {
				a.Printer.Error(msg, "")
			},
		}
		st := d.Run(cmd.Context(), []string{sel.Name})
		if st != status.SUCCESS {
			return st
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
