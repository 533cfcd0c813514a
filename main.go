// main is the entry point for the debtscan CLI.
package main

import (
	"debtscan/cmd"
	"debtscan/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
