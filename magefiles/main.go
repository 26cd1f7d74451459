//go:build mage

package main

import (
	"os"

	"github.com/crewlinker/cltopo/clenv"
	"github.com/magefile/mage/sh"
)

// init performs some sanity checks before running anything
func init() {
	mustBeInRoot()

	if err := clenv.Load(".", ".env"); err != nil {
		panic("failed to load .env: " + err.Error())
	}
}

// Test perform the whole project's unit tests
func Test() error {
	return sh.Run(
		"go", "run", "-mod=readonly", "github.com/onsi/ginkgo/v2/ginkgo",
		"-p", "-randomize-all", "-repeat=5", "--fail-on-pending", "--race", "--trace",
		"--junit-report=test-report.xml", "./...",
	)
}

// mustBeInRoot checks that the command is run in the project root
func mustBeInRoot() {
	if _, err := os.Stat("go.mod"); err != nil {
		panic("must be in root, couldn't stat go.mod file: " + err.Error())
	}
}
