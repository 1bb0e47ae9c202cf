// Package crawl implements the command that crawls company websites
// and writes scraped page records to a JSON file.
package crawl

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/companyfinder/cmd/common"
	"github.com/jonesrussell/companyfinder/internal/crawler"
)

// Command returns the crawl command for use in the root command
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl company websites for contact data",
		Long: `Crawl visits each domain from the domains file (or a single
--url target), extracts company names, phones, social media links and
addresses, and writes the scraped pages to a JSON output file.`,
		RunE: runCrawl,
	}

	cmd.Flags().StringP("domains", "d", "", "CSV file with a 'domain' column (default from config)")
	cmd.Flags().StringP("url", "u", "", "crawl a single URL instead of the domains file")
	cmd.Flags().StringP("output", "o", "", "output JSON file (default from config)")

	return cmd
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	cfg := deps.Config.GetCrawlerConfig()
	if domainsFile, _ := cmd.Flags().GetString("domains"); domainsFile != "" {
		cfg.DomainsFile = domainsFile
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputFile = output
	}
	targetURL, _ := cmd.Flags().GetString("url")

	c := crawler.New(cfg, deps.Logger)

	if targetURL != "" {
		err = c.CrawlURL(cmd.Context(), targetURL)
	} else {
		loader := crawler.NewDomainLoader(deps.Logger)
		domains, loadErr := loader.LoadDomains(cfg.DomainsFile)
		if loadErr != nil {
			return fmt.Errorf("failed to load domains: %w", loadErr)
		}
		err = c.Crawl(cmd.Context(), domains)
	}
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	if writeErr := crawler.WriteResults(cfg.OutputFile, c.Results()); writeErr != nil {
		return fmt.Errorf("failed to write results: %w", writeErr)
	}

	c.Stats().LogSummary(deps.Logger)
	fmt.Printf("Scraped %d pages to %s\n", c.Stats().PagesCrawled(), cfg.OutputFile)
	return nil
}
