package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yamasampo/bibmanager/src/internal/library"
)

func newListCmd() *cobra.Command {
	var typeFilter string
	cmd := &cobra.Command{
		Use:          "list <input.bib>",
		Short:        "List citation keys and entry types in a bibliography",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := library.Read(args[0])
			if err != nil {
				return err
			}
			n := 0
			for _, rec := range recs {
				if typeFilter != "" && !strings.EqualFold(rec.Type, typeFilter) {
					continue
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", rec.Key, rec.Type); err != nil {
					return err
				}
				n++
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d records\n", n)
			return err
		},
	}
	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "Only list records of this entry type (case-insensitive)")
	return cmd
}
