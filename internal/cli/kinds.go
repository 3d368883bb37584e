package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docrst/internal/doctree"
	"github.com/dgallion1/docrst/internal/parser"
)

func newKindsCmd() *cobra.Command {
	var formats bool

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the document node kinds the renderer supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if formats {
				_, err := fmt.Fprintln(out, strings.Join(parser.Extensions(), "\n"))
				return err
			}
			for _, k := range doctree.Kinds() {
				if _, err := fmt.Fprintln(out, k); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&formats, "formats", false, "list accepted input file extensions instead")

	return cmd
}
