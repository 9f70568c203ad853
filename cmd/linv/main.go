package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/RichardEWillis/pi-label-inventory/internal/cli"
)

func main() {
	err := cli.Execute()
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// usage errors; everything else was already reported by the command
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
