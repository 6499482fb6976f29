package main

import (
	"github.com/spf13/cobra"

	"github.com/yamasampo/bibmanager/src/cmd/bibman/checkcmd"
)

// newCheckCmd creates the "check" command to validate a bibliography file.
func newCheckCmd() *cobra.Command { return checkcmd.New() }
