package main

import (
	"github.com/spf13/cobra"

	"github.com/yamasampo/bibmanager/src/cmd/bibman/insertcmd"
)

// newInsertCmd creates the "insert" command to record citation keys in a field.
func newInsertCmd() *cobra.Command { return insertcmd.New() }
