package main

import (
	"fmt"
	"os"

	"github.com/abyssgo/assembler/cmd/assemble/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := app.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		return app.ExitCode(err)
	}

	return 0
}
