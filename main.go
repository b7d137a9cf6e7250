package main

import (
	"os"

	"github.com/phkaiser13/phgit/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
