package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/wa-widget/internal/page"
	"github.com/sells-group/wa-widget/internal/tracking"
)

var (
	resolveDoc    documentFlags
	resolveFormat string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the attribution resolved for a page",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := resolveDoc.document()
		if err := validateDocument(doc); err != nil {
			return err
		}

		resolved := tracking.NewDefaultResolver(resolverOptions(cfg)...).Resolve(page.Static(doc))

		var out []byte
		var err error
		switch resolveFormat {
		case "json":
			out, err = json.MarshalIndent(resolved, "", "  ")
			out = append(out, '\n')
		case "yaml":
			out, err = yaml.Marshal(resolved)
		default:
			return eris.Errorf("unknown format %q (want json or yaml)", resolveFormat)
		}
		if err != nil {
			return eris.Wrap(err, "resolve: encode")
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	resolveDoc.register(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "json", "output format: json or yaml")
	rootCmd.AddCommand(resolveCmd)
}
