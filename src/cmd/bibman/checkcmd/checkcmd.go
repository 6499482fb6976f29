package checkcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamasampo/bibmanager/src/internal/library"
)

// New returns the check command, which parses a bibliography and reports the
// record count without writing anything. Malformed records and duplicate
// citation keys fail the check.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "check <input.bib>",
		Short:        "Parse a bibliography and report whether it is well formed",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := library.Read(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d records\n", len(recs))
			return err
		},
	}
	return cmd
}
