package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/wa-widget/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wa-widget",
	Short: "WhatsApp contact links with marketing attribution",
	Long:  "Resolves UTM and click-ID attribution from referrer, RD Station cookie and page URL, and builds wa.me contact links carrying the enriched page URL.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
