package main

import (
	"os"

	"github.com/uezu-lgtm/demo8-job-proposal-draft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
