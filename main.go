package main

import (
	"os"

	"github.com/AnyUserName/imgcrypt-cli/cmd"
	"github.com/AnyUserName/imgcrypt-cli/internal/errs"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errs.ExitCode(err))
	}
}
