// Package menu implements the interactive menu driver: composes the union
// of native-module and scripted-registry command names (plus a synthetic
// "Exit"), and lets the user pick one for forwarding to the root
// dispatcher. Rendered with charmbracelet/huh — a real terminal-form
// library the teacher module carried only as an unexercised indirect
// dependency — with a strict-integer stdin fallback for non-TTY use,
// which is the literal behavior spec.md's prose describes.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// Selection is what a chosen menu item forwards to the root dispatcher.
type Selection struct {
	Tool string
	Name string
}

const exitLabel = "Exit"

// Items composes the sorted union of native and scripted command names
// plus a trailing "Exit" entry. Duplicates are preserved, not
// deduplicated, matching the original's menu composition.
func Items(nativeCommands, scriptedCommands []string) []string {
	items := make([]string, 0, len(nativeCommands)+len(scriptedCommands)+1)
	items = append(items, nativeCommands...)
	items = append(items, scriptedCommands...)
	sort.Strings(items)
	items = append(items, exitLabel)
	return items
}

// RunInteractive renders items as a huh.Select form and returns the
// chosen Selection, or ok=false if the user picked "Exit" or aborted.
func RunInteractive(tool string, items []string) (Selection, bool, error) {
	options := make([]huh.Option[string], len(items))
	for i, item := range items {
		options[i] = huh.NewOption(item, item)
	}

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("%s — choose a command", tool)).
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return Selection{}, false, err
	}
	if choice == "" || choice == exitLabel {
		return Selection{}, false, nil
	}
	return Selection{Tool: tool, Name: choice}, true, nil
}

// RunNonInteractive implements the non-TTY fallback: it prints a numbered
// list of items to out and reads a strict base-10 integer choice from in.
// An out-of-range or unparsable choice reports ok=false with an error;
// selecting the trailing "Exit" entry reports ok=false with no error.
func RunNonInteractive(tool string, items []string, in io.Reader, out io.Writer) (Selection, bool, error) {
	for i, item := range items {
		fmt.Fprintf(out, "%2d) %s\n", i+1, item)
	}
	fmt.Fprint(out, "choice: ")

	reader := bufio.NewReader(in)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)

	n, err := strconv.Atoi(line)
	if err != nil {
		return Selection{}, false, fmt.Errorf("invalid selection %q: %w", line, err)
	}
	if n < 1 || n > len(items) {
		return Selection{}, false, fmt.Errorf("selection %d out of range", n)
	}

	chosen := items[n-1]
	if chosen == exitLabel {
		return Selection{}, false, nil
	}
	return Selection{Tool: tool, Name: chosen}, true, nil
}
