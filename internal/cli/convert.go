package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docrst/internal/parser"
	"github.com/dgallion1/docrst/internal/pipeline"
)

func newConvertCmd() *cobra.Command {
	var (
		output string
		title  string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a document and print the reStructuredText",
		Long: "Convert reads a document, picking the reader from the file extension\n" +
			"(or --from), and writes reStructuredText to stdout or --output.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := getEnv(cmd)
			if err != nil {
				return err
			}

			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			name := filepath.Base(path)
			if from != "" {
				name = strings.TrimSuffix(name, filepath.Ext(name)) + "." + trimDot(from)
			}

			w := pipeline.NewWorker(
				parser.Options{PDFFallbackPdftotext: e.cfg.PDFFallbackPdftotext},
				e.cfg.RenderOptions(),
				e.log.With("file", path),
			)
			out, err := w.Convert(name, data, title)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			if output == "" || output == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
				return err
			}
			e.log.Info("wrote output", "path", output, "bytes", len(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "wrap the document in a section with this title")
	cmd.Flags().StringVar(&from, "from", "", "input format extension, overriding the file name (e.g. md, html)")

	return cmd
}

func trimDot(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
