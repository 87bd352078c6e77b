package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/wa-widget/internal/message"
	"github.com/sells-group/wa-widget/internal/page"
)

var (
	linkDoc     documentFlags
	linkPhone   string
	linkMessage string
	linkNoUTM   bool
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Build the wa.me contact link for a page",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := linkDoc.document()
		if err := validateDocument(doc); err != nil {
			return err
		}

		widget := cfg.Widget
		if linkPhone != "" {
			widget.Phone = linkPhone
		}
		if cmd.Flags().Changed("message") {
			widget.Message = linkMessage
		}
		if linkNoUTM {
			widget.UTM = false
		}

		linkCfg := *cfg
		linkCfg.Widget = widget
		if err := linkCfg.Validate("link"); err != nil {
			return err
		}

		b := message.NewBuilder(widget.UTM, resolverOptions(cfg)...)
		link, err := b.BuildURL(widget.Phone, widget.Message, page.Static(doc))
		if err != nil {
			return err
		}

		zap.L().Debug("link built",
			zap.String("page", doc.URL),
			zap.Bool("tracking", widget.UTM),
		)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), link)
		return err
	},
}

func init() {
	linkDoc.register(linkCmd)
	linkCmd.Flags().StringVar(&linkPhone, "phone", "", "destination phone number (default from config)")
	linkCmd.Flags().StringVar(&linkMessage, "message", "", "message template with {url} {title} {domain} {path} (default from config)")
	linkCmd.Flags().BoolVar(&linkNoUTM, "no-utm", false, "disable attribution enrichment of {url}")
	rootCmd.AddCommand(linkCmd)
}
