package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamasampo/bibmanager/src/internal/library"
)

func newFormatCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:          "format <input.bib>",
		Short:        "Rewrite a bibliography in canonical form",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("output path is required")
			}
			recs, err := library.Read(args[0])
			if err != nil {
				return err
			}
			if err := library.Write(output, recs); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d records)\n", output, len(recs))
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output bib file path (must not exist)")
	return cmd
}
