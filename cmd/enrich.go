package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/wa-widget/internal/page"
	"github.com/sells-group/wa-widget/internal/tracking"
)

var enrichDoc documentFlags

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Print the page URL with resolved attribution appended",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := enrichDoc.document()
		if err := validateDocument(doc); err != nil {
			return err
		}

		enriched := tracking.NewDefaultResolver(resolverOptions(cfg)...).EnrichedURL(page.Static(doc))
		_, err := fmt.Fprintln(cmd.OutOrStdout(), enriched)
		return err
	},
}

func init() {
	enrichDoc.register(enrichCmd)
	rootCmd.AddCommand(enrichCmd)
}
