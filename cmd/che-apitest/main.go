package main

import (
	"os"

	"github.com/eclipse-che/apitest/cmd/che-apitest/cmd"
)

func main() {
	os.Exit(cmd.ExitCode(cmd.Execute()))
}
