package cmd

import (
	"github.com/phkaiser13/phgit/internal/status"
	"github.com/phkaiser13/phgit/internal/worker"
)

// finishWorker maps a worker Result to a Status, emitting the single
// success/error UI line the error-handling design specifies. On failure
// it surfaces the worker's error buffer verbatim when non-empty.
func finishWorker(successMsg string, res worker.Result) error {
	st := status.MapExitCode(res.ExitCode)
	if st == status.SUCCESS {
		a.Printer.Success(successMsg)
		return nil
	}
	a.Printer.Error(successMsg+" failed", res.ErrBuf)
	return st
}

// finishStatus emits the UI line for a status reached without calling a
// worker (argument validation, envelope composition, config lookups).
func finishStatus(st status.Status, msg string) error {
	if st == status.SUCCESS {
		a.Printer.Success(msg)
		return nil
	}
	a.Printer.Error(msg, "")
	return st
}
