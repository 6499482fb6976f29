package insertcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamasampo/bibmanager/src/internal/control"
	"github.com/yamasampo/bibmanager/src/internal/library"
)

// Section is the control-file section this command reads its parameters from.
const Section = "insert"

// New returns the insert command. It reads a bibliography, records every
// record's citation key in a chosen field, and writes the result to a new
// file. Parameters come from flags or, when --control is given, from the
// "insert" section of a YAML control file.
func New() *cobra.Command {
	var (
		output string
		field  string
		prefix string
		suffix string
		ctlRef string
	)
	cmd := &cobra.Command{
		Use:          "insert <input.bib>",
		Short:        "Rewrite a bibliography with each citation key recorded in a field",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if ctlRef != "" {
				path, err := control.Resolve(ctlRef)
				if err != nil {
					return err
				}
				params, err := control.Load(path, Section)
				if err != nil {
					return err
				}
				// The control file replaces the flags wholesale; keys its
				// section leaves out fall back to the defaults.
				output, field, prefix, suffix = "", library.DefaultField, "", ""
				if params.HasOutput {
					output = params.Output
				}
				if params.HasField {
					field = params.Field
				}
				if params.HasPrefix {
					prefix = params.Prefix
				}
				if params.HasSuffix {
					suffix = params.Suffix
				}
			}
			if output == "" {
				return fmt.Errorf("output path is required (set --output or the control file)")
			}
			if field == "" {
				return fmt.Errorf("target field name is required (set --field or the control file)")
			}
			if err := library.EnsureAbsent(output); err != nil {
				return err
			}
			recs, err := library.Read(input)
			if err != nil {
				return err
			}
			out := library.InsertCiteKeys(recs, field, prefix, suffix)
			if err := library.Write(output, out); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d records)\n", output, len(out))
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output bib file path (must not exist)")
	cmd.Flags().StringVar(&field, "field", library.DefaultField, "Record field that receives the citation key")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Text placed before the citation key")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Text placed after the citation key")
	cmd.Flags().StringVar(&ctlRef, "control", "", "Path or glob of a YAML control file supplying parameters")
	return cmd
}
