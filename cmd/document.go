package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/wa-widget/internal/config"
	"github.com/sells-group/wa-widget/internal/page"
	"github.com/sells-group/wa-widget/internal/tracking"
)

// documentFlags holds the page state passed on the command line.
type documentFlags struct {
	url      string
	referrer string
	cookie   string
	title    string
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.url, "url", "", "page URL (window.location.href)")
	cmd.Flags().StringVar(&f.referrer, "referrer", "", "document.referrer")
	cmd.Flags().StringVar(&f.cookie, "cookie", "", "document.cookie")
	cmd.Flags().StringVar(&f.title, "title", "", "document.title")
	_ = cmd.MarkFlagRequired("url")
}

func (f *documentFlags) document() page.Document {
	return page.Document{
		URL:      f.url,
		Referrer: f.referrer,
		Cookie:   f.cookie,
		Title:    f.title,
	}
}

// validateDocument rejects documents without a page URL.
func validateDocument(doc page.Document) error {
	if doc.URL == "" {
		return eris.New("page url is required")
	}
	return nil
}

// resolverOptions maps tracking config onto resolver options.
func resolverOptions(c *config.Config) []tracking.Option {
	if c != nil && c.Tracking.Concurrent {
		return []tracking.Option{tracking.WithConcurrency()}
	}
	return nil
}
